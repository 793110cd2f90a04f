package forms

import (
	"github.com/go-playground/validator/v10"
)

type MockTestQuestionForm struct {
	Question       string   `json:"question" binding:"required,min=3"`
	Type           string   `json:"type" binding:"required,questionType"`
	Options        []string `json:"options" binding:"omitempty,dive,min=1,max=200"`
	CorrectAnswer  string   `json:"correct_answer" binding:"required_if=Type multipleChoice,required_if=Type trueFalse"`
	CorrectAnswers []string `json:"correct_answers" binding:"required_if=Type matching,required_if=Type fillInTheBlank,omitempty,min=1"`
	Points         int      `json:"points" binding:"required,min=1"`
}

type MockTestSectionForm struct {
	Title     string                 `json:"title" binding:"required,min=1,max=100"`
	Questions []MockTestQuestionForm `json:"questions" binding:"omitempty,dive"`
}

type MockTestForm struct {
	Title           string                `json:"title" binding:"required,min=1,max=100"`
	Description     string                `json:"description" binding:"omitempty,max=1500"`
	Language        string                `json:"language" binding:"required"`
	Sections        []MockTestSectionForm `json:"sections" binding:"omitempty,dive"`
	PassScore       float64               `json:"pass_score" binding:"required,min=0"`
	Duration        int                   `json:"duration" binding:"omitempty,min=1"` // Minutes
	AvailableFor    string                `json:"available_for" binding:"required,availableFor"`
	SpecificCourses []string              `json:"specific_courses" binding:"required_if=AvailableFor Specific,omitempty,min=1"`
}

type UpdateMockTestForm struct {
	Title           string                `json:"title" binding:"omitempty,min=1,max=100"`
	Description     string                `json:"description" binding:"omitempty,max=1500"`
	Sections        []MockTestSectionForm `json:"sections" binding:"omitempty,dive"`
	PassScore       *float64              `json:"pass_score" binding:"omitempty,min=0"`
	Duration        int                   `json:"duration" binding:"omitempty,min=1"`
	AvailableFor    string                `json:"available_for" binding:"omitempty,availableFor"`
	SpecificCourses []string              `json:"specific_courses" binding:"omitempty,min=1"`
}

var QuestionType validator.Func = func(fl validator.FieldLevel) bool {
	if fl.Field().Interface() == "multipleChoice" {
		return true
	}
	if fl.Field().Interface() == "trueFalse" {
		return true
	}
	if fl.Field().Interface() == "matching" {
		return true
	}
	if fl.Field().Interface() == "fillInTheBlank" {
		return true
	}
	if fl.Field().Interface() == "shortAnswer" {
		return true
	}
	return false
}

var AvailableFor validator.Func = func(fl validator.FieldLevel) bool {
	if fl.Field().Interface() == "All" {
		return true
	}
	if fl.Field().Interface() == "Premium" {
		return true
	}
	if fl.Field().Interface() == "Specific" {
		return true
	}
	return false
}
