package controllers

import (
	"net/http"

	"github.com/edumesh/Backend_ELearning/forms"
	"github.com/edumesh/Backend_ELearning/res"
	"github.com/edumesh/Backend_ELearning/services"
	"github.com/gin-gonic/gin"
)

// Services
var coursesService = services.NewCoursesService()

type CourseController struct{}

func (course *CourseController) CreateCourse(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	var courseForm *forms.CourseForm
	if err := c.BindJSON(&courseForm); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, &res.Response{
			Success: false,
			Message: err.Error(),
		})
		return
	}
	response, errRes := coursesService.CreateCourse(courseForm, claims)
	if errRes != nil {
		c.AbortWithStatusJSON(errRes.StatusCode, &res.Response{
			Success: false,
			Message: errRes.Error(),
		})
		return
	}
	c.JSON(200, &res.Response{
		Success: true,
		Data:    response,
	})
}

func (course *CourseController) GetCourses(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	courses, errRes := coursesService.GetCourses(claims)
	if errRes != nil {
		c.AbortWithStatusJSON(errRes.StatusCode, &res.Response{
			Success: false,
			Message: errRes.Error(),
		})
		return
	}
	// Response
	response := make(map[string]interface{})
	response["courses"] = courses
	c.JSON(200, &res.Response{
		Success: true,
		Data:    response,
	})
}

func (course *CourseController) GetCourse(c *gin.Context) {
	idCourse := c.Param("idCourse")
	courseData, errRes := coursesService.GetCourse(idCourse)
	if errRes != nil {
		c.AbortWithStatusJSON(errRes.StatusCode, &res.Response{
			Success: false,
			Message: errRes.Error(),
		})
		return
	}
	response := make(map[string]interface{})
	response["course"] = courseData
	c.JSON(200, &res.Response{
		Success: true,
		Data:    response,
	})
}

func (course *CourseController) GetLanguages(c *gin.Context) {
	languages, errRes := coursesService.GetLanguages()
	if errRes != nil {
		c.AbortWithStatusJSON(errRes.StatusCode, &res.Response{
			Success: false,
			Message: errRes.Error(),
		})
		return
	}
	response := make(map[string]interface{})
	response["languages"] = languages
	c.JSON(200, &res.Response{
		Success: true,
		Data:    response,
	})
}

func (course *CourseController) Search(c *gin.Context) {
	search := c.Query("search")
	if search == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, &res.Response{
			Success: false,
			Message: "search is required",
		})
		return
	}
	hits, errRes := coursesService.Search(search)
	if errRes != nil {
		c.AbortWithStatusJSON(errRes.StatusCode, &res.Response{
			Success: false,
			Message: errRes.Error(),
		})
		return
	}
	response := make(map[string]interface{})
	response["hits"] = hits
	c.JSON(200, &res.Response{
		Success: true,
		Data:    response,
	})
}

func (course *CourseController) UpdateStatus(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	idCourse := c.Param("idCourse")
	var status *forms.CourseStatusForm
	if err := c.BindJSON(&status); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, &res.Response{
			Success: false,
			Message: err.Error(),
		})
		return
	}
	if errRes := coursesService.UpdateStatus(idCourse, status, claims); errRes != nil {
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
