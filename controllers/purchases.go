package controllers

import (
	"io"
	"log"
	"net/http"

	"github.com/edumesh/Backend_ELearning/forms"
	"github.com/edumesh/Backend_ELearning/res"
	"github.com/edumesh/Backend_ELearning/services"
	"github.com/gin-gonic/gin"
)

// Services
var purchasesService = services.NewPurchasesService()

type PurchaseController struct{}

func (purchase *PurchaseController) CreateOrder(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	var order *forms.CreateOrderForm
	if err := c.BindJSON(&order); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, &res.Response{
			Success: false,
			Message: err.Error(),
		})
		return
	}
	response, errRes := purchasesService.CreateOrder(order, claims)
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

func (purchase *PurchaseController) VerifyPayment(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	var payment *forms.VerifyPaymentForm
	if err := c.BindJSON(&payment); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, &res.Response{
			Success: false,
			Message: err.Error(),
		})
		return
	}
	if errRes := purchasesService.VerifyPayment(payment, claims); errRes != nil {
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

// HandleWebhook always answers 200 so the provider stops retrying;
// processing failures only get logged
func (purchase *PurchaseController) HandleWebhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		log.Printf("webhook: read body: %v", err)
		c.JSON(200, &res.Response{
			Success: true,
		})
		return
	}
	signature := c.GetHeader("X-Razorpay-Signature")
	if errRes := purchasesService.HandleWebhook(payload, signature); errRes != nil {
		log.Printf("webhook: %v", errRes.Error())
	}
	c.JSON(200, &res.Response{
		Success: true,
	})
}

func (purchase *PurchaseController) GetCoursePurchases(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	idCourse := c.Param("idCourse")
	purchases, errRes := purchasesService.GetCoursePurchases(idCourse, claims)
	if errRes != nil {
		c.AbortWithStatusJSON(errRes.StatusCode, &res.Response{
			Success: false,
			Message: errRes.Error(),
		})
		return
	}
	// Response
	response := make(map[string]interface{})
	response["purchases"] = purchases
	c.JSON(200, &res.Response{
		Success: true,
		Data:    response,
	})
}

func (purchase *PurchaseController) GetMyCourses(c *gin.Context) {
	claims, _ := services.NewClaimsFromContext(c)
	courses, errRes := purchasesService.GetMyCourses(claims)
	if errRes != nil {
		c.AbortWithStatusJSON(errRes.StatusCode, &res.Response{
			Success: false,
			Message: errRes.Error(),
		})
		return
	}
	response := make(map[string]interface{})
	response["courses"] = courses
	c.JSON(200, &res.Response{
		Success: true,
		Data:    response,
	})
}

func (purchase *PurchaseController) GetAllPurchases(c *gin.Context) {
	purchases, errRes := purchasesService.GetAllPurchases()
	if errRes != nil {
		c.AbortWithStatusJSON(errRes.StatusCode, &res.Response{
			Success: false,
			Message: errRes.Error(),
		})
		return
	}
	response := make(map[string]interface{})
	response["purchases"] = purchases
	c.JSON(200, &res.Response{
		Success: true,
		Data:    response,
	})
}

func (purchase *PurchaseController) ExportPurchases(c *gin.Context) {
	c.Writer.Header().Set(
		"Content-type",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	)
	c.Stream(func(w io.Writer) bool {
		_, errRes := reportsService.ExportPurchases(w)
		if errRes != nil {
			c.AbortWithStatusJSON(errRes.StatusCode, &res.Response{
				Success: false,
				Message: errRes.Error(),
			})
			return false
		}
		c.Writer.Header().Set(
			"Content-Disposition",
			"attachment; filename='purchases.xlsx'",
		)
		return false
	})
}
