package forms

// Title presence is checked in the service to control the error message
type SectionForm struct {
	Title   string `json:"title" binding:"omitempty,max=100"`
	Summary string `json:"summary" binding:"omitempty,max=500"`
	Order   int    `json:"order" binding:"omitempty,min=1"`
}

type UpdateSectionForm struct {
	Title       string `json:"title" binding:"omitempty,min=1,max=100"`
	Summary     string `json:"summary" binding:"omitempty,max=500"`
	Order       int    `json:"order" binding:"omitempty,min=1"`
	IsPublished *bool  `json:"is_published"`
}
