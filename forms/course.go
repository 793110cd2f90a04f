package forms

import (
	"github.com/go-playground/validator/v10"
)

type CourseBatchForm struct {
	Name      string `json:"name" binding:"required,min=1,max=100"`
	DateStart string `json:"date_start" binding:"required"`
}

type CourseForm struct {
	Title         string            `json:"title" binding:"required,min=1,max=100"`
	Language      string            `json:"language" binding:"required"`
	Level         string            `json:"level" binding:"omitempty,max=50"`
	Description   string            `json:"description" binding:"omitempty,max=1500"`
	Duration      int               `json:"duration" binding:"omitempty,min=0"` // Hours
	Price         float64           `json:"price" binding:"min=0"`
	DiscountPrice float64           `json:"discount_price" binding:"omitempty,min=0"`
	LiveEnabled   bool              `json:"live_enabled"`
	MeetingUrl    string            `json:"meeting_url" binding:"omitempty,url"`
	Batches       []CourseBatchForm `json:"batches" binding:"omitempty,dive"`
}

type CourseStatusForm struct {
	Status string `json:"status" binding:"required,courseStatus"`
}

var CourseStatus validator.Func = func(fl validator.FieldLevel) bool {
	if fl.Field().Interface() == "draft" {
		return true
	}
	if fl.Field().Interface() == "inProgress" {
		return true
	}
	if fl.Field().Interface() == "published" {
		return true
	}
	if fl.Field().Interface() == "archived" {
		return true
	}
	if fl.Field().Interface() == "underReview" {
		return true
	}
	return false
}
