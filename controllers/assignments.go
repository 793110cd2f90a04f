package controllers

import (
	"io"
	"net/http"

	"github.com/edumesh/Backend_ELearning/forms"
	"github.com/edumesh/Backend_ELearning/res"
	"github.com/edumesh/Backend_ELearning/services"
	"github.com/gin-gonic/gin"
)

// Services
var assignmentsService = services.NewAssignmentsService()

type AssignmentController struct{}

func (assignment *AssignmentController) SubmitAssignment(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	idAssignment := c.Param("idAssignment")
	form, err := c.MultipartForm()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, &res.Response{
			Success: false,
			Message: err.Error(),
		})
		return
	}
	files := form.File["files[]"]
	response, errRes := assignmentsService.SubmitAssignment(files, idAssignment, claims)
	if errRes != nil {
		c.AbortWithStatusJSON(errRes.StatusCode, &res.Response{
			Success: false,
			Message: errRes.Error(),
		})
		return
	}
	c.JSON(201, &res.Response{
		Success: true,
		Data:    response,
	})
}

func (assignment *AssignmentController) GradeSubmission(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	idAssignment := c.Param("idAssignment")
	idSubmission := c.Param("idSubmission")
	var grade *forms.GradeSubmissionForm
	if err := c.BindJSON(&grade); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, &res.Response{
			Success: false,
			Message: err.Error(),
		})
		return
	}
	if errRes := assignmentsService.GradeSubmission(grade, idAssignment, idSubmission, claims); errRes != nil {
		c.AbortWithStatusJSON(errRes.StatusCode, &res.Response{
			Success: false,
			Message: errRes.Error(),
		})
		return
	}
	c.JSON(200, &res.Response{
		Success: true,
	})
}

func (assignment *AssignmentController) DownloadSubmissionFiles(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	idAssignment := c.Param("idAssignment")
	idSubmission := c.Param("idSubmission")
	c.Writer.Header().Set("Content-type", "application/octet-stream")
	c.Stream(func(w io.Writer) bool {
		ar, errRes := assignmentsService.DownloadSubmissionFiles(
			idAssignment,
			idSubmission,
			claims,
			w,
		)
		if errRes != nil {
			c.AbortWithStatusJSON(errRes.StatusCode, &res.Response{
				Success: false,
				Message: errRes.Error(),
			})
			return false
		}
		c.Writer.Header().Set(
			"Content-Disposition",
			"attachment; filename='submission.zip'",
		)
		ar.Close()
		return false
	})
}
