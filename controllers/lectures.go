package controllers

import (
	"github.com/edumesh/Backend_ELearning/res"
	"github.com/edumesh/Backend_ELearning/services"
	"github.com/gin-gonic/gin"
)

// Services
var lecturesService = services.NewLecturesService()

type LectureController struct{}

func (lecture *LectureController) CompleteLecture(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	idCourse := c.Param("idCourse")
	idLesson := c.Param("idLesson")
	if errRes := lecturesService.CompleteLecture(idCourse, idLesson, claims); errRes != nil {
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
