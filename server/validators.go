package server

import (
	"github.com/edumesh/Backend_ELearning/forms"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func InitValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("questionType", forms.QuestionType)
		v.RegisterValidation("availableFor", forms.AvailableFor)
		v.RegisterValidation("courseStatus", forms.CourseStatus)
		v.RegisterValidation("timeUnit", forms.TimeUnit)
	}
}
