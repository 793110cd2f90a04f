package controllers

import (
	"net/http"

	"github.com/edumesh/Backend_ELearning/forms"
	"github.com/edumesh/Backend_ELearning/res"
	"github.com/edumesh/Backend_ELearning/services"
	"github.com/gin-gonic/gin"
)

// Services
var sectionsService = services.NewSectionsService()

type SectionController struct{}

func (section *SectionController) GetSections(c *gin.Context) {
	idCourse := c.Param("idCourse")
	sections, errRes := sectionsService.GetSections(idCourse)
	if errRes != nil {
		c.AbortWithStatusJSON(errRes.StatusCode, &res.Response{
			Success: false,
			Message: errRes.Error(),
		})
		return
	}
	// Response
	response := make(map[string]interface{})
	response["sections"] = sections
	c.JSON(200, &res.Response{
		Success: true,
		Data:    response,
	})
}

func (section *SectionController) CreateSection(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	idCourse := c.Param("idCourse")
	var sectionForm *forms.SectionForm
	if err := c.BindJSON(&sectionForm); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, &res.Response{
			Success: false,
			Message: err.Error(),
		})
		return
	}
	response, errRes := sectionsService.CreateSection(sectionForm, idCourse, claims)
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

func (section *SectionController) UpdateSection(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	idCourse := c.Param("idCourse")
	idSection := c.Param("idSection")
	var sectionForm *forms.UpdateSectionForm
	if err := c.BindJSON(&sectionForm); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, &res.Response{
			Success: false,
			Message: err.Error(),
		})
		return
	}
	if errRes := sectionsService.UpdateSection(sectionForm, idCourse, idSection, claims); errRes != nil {
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

func (section *SectionController) DeleteSection(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	idCourse := c.Param("idCourse")
	idSection := c.Param("idSection")
	if errRes := sectionsService.DeleteSection(idCourse, idSection, claims); errRes != nil {
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

func (section *SectionController) AddLesson(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	idCourse := c.Param("idCourse")
	idSection := c.Param("idSection")
	var lesson forms.LessonForm
	if err := c.Bind(&lesson); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, &res.Response{
			Success: false,
			Message: err.Error(),
		})
		return
	}
	form, err := c.MultipartForm()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, &res.Response{
			Success: false,
			Message: err.Error(),
		})
		return
	}
	var featuredImage, videoFile = firstFile(form, "featuredImage"), firstFile(form, "videoFile")
	exerciseFiles := form.File["exerciseFiles[]"]
	response, errRes := sectionsService.AddLesson(
		&lesson,
		featuredImage,
		videoFile,
		exerciseFiles,
		idCourse,
		idSection,
		claims,
	)
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

func (section *SectionController) AddQuiz(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	idCourse := c.Param("idCourse")
	idSection := c.Param("idSection")
	var quiz *forms.QuizForm
	if err := c.BindJSON(&quiz); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, &res.Response{
			Success: false,
			Message: err.Error(),
		})
		return
	}
	response, errRes := sectionsService.AddQuiz(quiz, idCourse, idSection, claims)
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

func (section *SectionController) AddAssignment(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	idCourse := c.Param("idCourse")
	idSection := c.Param("idSection")
	var assignment forms.AssignmentForm
	if err := c.Bind(&assignment); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, &res.Response{
			Success: false,
			Message: err.Error(),
		})
		return
	}
	form, err := c.MultipartForm()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, &res.Response{
			Success: false,
			Message: err.Error(),
		})
		return
	}
	attachments := form.File["attachments[]"]
	response, errRes := sectionsService.AddAssignment(
		&assignment,
		attachments,
		idCourse,
		idSection,
		claims,
	)
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

func (section *SectionController) AddLiveLesson(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	idCourse := c.Param("idCourse")
	idSection := c.Param("idSection")
	var liveLesson *forms.LiveLessonForm
	if err := c.BindJSON(&liveLesson); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, &res.Response{
			Success: false,
			Message: err.Error(),
		})
		return
	}
	response, errRes := sectionsService.AddLiveLesson(liveLesson, idCourse, idSection, claims)
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
