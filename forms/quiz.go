package forms

type QuizQuestionForm struct {
	Question string   `json:"question" binding:"required,min=3"`
	Options  []string `json:"options" binding:"required,min=2,dive,min=1,max=200"`
	Correct  *int     `json:"correct" binding:"required,min=0"`
	Points   int      `json:"points" binding:"omitempty,min=0"`
}

type QuizForm struct {
	Title       string             `json:"title" binding:"required,min=1,max=100"`
	Description string             `json:"description" binding:"omitempty,max=500"`
	Questions   []QuizQuestionForm `json:"questions" binding:"required,min=1,dive"`
	TimeLimit   int                `json:"time_limit" binding:"omitempty,min=1"` // Minutes
}
