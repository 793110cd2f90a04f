package forms

import (
	"github.com/go-playground/validator/v10"
)

// Multipart form; attachments travel as attachments[]
type AssignmentForm struct {
	Title          string `form:"title" binding:"required,min=1,max=100"`
	Description    string `form:"description" binding:"omitempty,max=1500"`
	Lecture        string `form:"lecture"`
	DueDate        string `form:"due_date" binding:"required"`
	TimeLimitValue int    `form:"time_limit_value" binding:"omitempty,min=1"`
	TimeLimitUnit  string `form:"time_limit_unit" binding:"required_with=TimeLimitValue,omitempty,timeUnit"`
	MaxPoints      int    `form:"max_points" binding:"omitempty,min=0"`
}

type GradeSubmissionForm struct {
	Grade    *float64 `json:"grade" binding:"required,min=0"`
	Feedback string   `json:"feedback" binding:"omitempty,max=1000"`
}

var TimeUnit validator.Func = func(fl validator.FieldLevel) bool {
	if fl.Field().Interface() == "minutes" {
		return true
	}
	if fl.Field().Interface() == "hours" {
		return true
	}
	if fl.Field().Interface() == "days" {
		return true
	}
	return false
}
