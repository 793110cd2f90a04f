package controllers

import (
	"net/http"

	"github.com/edumesh/Backend_ELearning/forms"
	"github.com/edumesh/Backend_ELearning/res"
	"github.com/edumesh/Backend_ELearning/services"
	"github.com/gin-gonic/gin"
)

// Services
var attemptsService = services.NewAttemptsService()
var certificatesService = services.NewCertificatesService()

type AttemptController struct{}

func (attempt *AttemptController) StartAttempt(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	idTest := c.Param("idTest")
	response, errRes := attemptsService.StartAttempt(idTest, claims)
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

func (attempt *AttemptController) SubmitAnswers(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	idAttempt := c.Param("idAttempt")
	var answers *forms.SubmitAnswersForm
	if err := c.BindJSON(&answers); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, &res.Response{
			Success: false,
			Message: err.Error(),
		})
		return
	}
	response, errRes := attemptsService.SubmitAnswers(answers, idAttempt, claims)
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

func (attempt *AttemptController) GetAttempts(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	attempts, errRes := attemptsService.GetAttempts(claims)
	if errRes != nil {
		c.AbortWithStatusJSON(errRes.StatusCode, &res.Response{
			Success: false,
			Message: errRes.Error(),
		})
		return
	}
	// Response
	response := make(map[string]interface{})
	response["attempts"] = attempts
	c.JSON(200, &res.Response{
		Success: true,
		Data:    response,
	})
}

func (attempt *AttemptController) GetAttempt(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	idAttempt := c.Param("idAttempt")
	attemptData, errRes := attemptsService.GetAttempt(idAttempt, claims)
	if errRes != nil {
		c.AbortWithStatusJSON(errRes.StatusCode, &res.Response{
			Success: false,
			Message: errRes.Error(),
		})
		return
	}
	response := make(map[string]interface{})
	response["attempt"] = attemptData
	c.JSON(200, &res.Response{
		Success: true,
		Data:    response,
	})
}

func (attempt *AttemptController) GradeAttempt(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	idAttempt := c.Param("idAttempt")
	var grade *forms.GradeAttemptForm
	if err := c.BindJSON(&grade); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, &res.Response{
			Success: false,
			Message: err.Error(),
		})
		return
	}
	response, errRes := attemptsService.GradeAttempt(grade, idAttempt, claims)
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

func (attempt *AttemptController) GetCertificate(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	idAttempt := c.Param("idAttempt")
	response, errRes := certificatesService.GetCertificate(idAttempt, claims)
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
