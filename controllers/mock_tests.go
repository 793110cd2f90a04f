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
var mockTestsService = services.NewMockTestsService()
var reportsService = services.NewReportsService()

type MockTestController struct{}

func (mockTest *MockTestController) CreateMockTest(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	var test *forms.MockTestForm
	if err := c.BindJSON(&test); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, &res.Response{
			Success: false,
			Message: err.Error(),
		})
		return
	}
	response, errRes := mockTestsService.CreateMockTest(test, claims)
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

func (mockTest *MockTestController) GetMockTests(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	tests, errRes := mockTestsService.GetMockTests(claims)
	if errRes != nil {
		c.AbortWithStatusJSON(errRes.StatusCode, &res.Response{
			Success: false,
			Message: errRes.Error(),
		})
		return
	}
	// Response
	response := make(map[string]interface{})
	response["mock_tests"] = tests
	c.JSON(200, &res.Response{
		Success: true,
		Data:    response,
	})
}

func (mockTest *MockTestController) GetMockTest(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	idTest := c.Param("idTest")
	test, errRes := mockTestsService.GetMockTest(idTest, claims)
	if errRes != nil {
		c.AbortWithStatusJSON(errRes.StatusCode, &res.Response{
			Success: false,
			Message: errRes.Error(),
		})
		return
	}
	response := make(map[string]interface{})
	response["mock_test"] = test
	c.JSON(200, &res.Response{
		Success: true,
		Data:    response,
	})
}

func (mockTest *MockTestController) UpdateMockTest(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	idTest := c.Param("idTest")
	var test *forms.UpdateMockTestForm
	if err := c.BindJSON(&test); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, &res.Response{
			Success: false,
			Message: err.Error(),
		})
		return
	}
	if errRes := mockTestsService.UpdateMockTest(test, idTest, claims); errRes != nil {
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

func (mockTest *MockTestController) DeleteMockTest(c *gin.Context) {
	idTest := c.Param("idTest")
	if errRes := mockTestsService.DeleteMockTest(idTest); errRes != nil {
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

func (mockTest *MockTestController) TogglePublishStatus(c *gin.Context) {
	idTest := c.Param("idTest")
	response, errRes := mockTestsService.TogglePublishStatus(idTest)
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

func (mockTest *MockTestController) ExportAttempts(c *gin.Context) {
	idTest := c.Param("idTest")
	c.Writer.Header().Set(
		"Content-type",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	)
	c.Stream(func(w io.Writer) bool {
		_, errRes := reportsService.ExportAttempts(idTest, w)
		if errRes != nil {
			c.AbortWithStatusJSON(errRes.StatusCode, &res.Response{
				Success: false,
				Message: errRes.Error(),
			})
			return false
		}
		c.Writer.Header().Set(
			"Content-Disposition",
			"attachment; filename='attempts.xlsx'",
		)
		return false
	})
}
