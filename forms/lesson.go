package forms

// Multipart form; files travel as featuredImage, videoFile and
// exerciseFiles[] alongside these fields
type LessonForm struct {
	Title           string `form:"title" binding:"required,min=1,max=100"`
	Description     string `form:"description" binding:"omitempty,max=1500"`
	DurationHours   int    `form:"duration_hours" binding:"omitempty,min=0"`
	DurationMinutes int    `form:"duration_minutes" binding:"omitempty,min=0,max=59"`
	DurationSeconds int    `form:"duration_seconds" binding:"omitempty,min=0,max=59"`
	IsPublished     *bool  `form:"is_published"`
}
