package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/edumesh/Backend_ELearning/db"
	"github.com/edumesh/Backend_ELearning/forms"
	"github.com/edumesh/Backend_ELearning/models"
	"github.com/edumesh/Backend_ELearning/res"
	"github.com/edumesh/Backend_ELearning/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const RAZORPAY_ORDERS_URL = "https://api.razorpay.com/v1/orders"

var purchasesService *PurchasesService

type PurchasesService struct{}

type razorpayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

// VerifyPaymentSignature checks the checkout callback signature:
// HMAC-SHA256 over "orderId|paymentId" with the key secret, hex encoded
func VerifyPaymentSignature(orderId, paymentId, signature, secret string) bool {
	return utils.VerifyHMACHex([]byte(orderId+"|"+paymentId), signature, secret)
}

// VerifyWebhookSignature checks the webhook signature over the raw payload
// with the webhook secret
func VerifyWebhookSignature(payload []byte, signature, secret string) bool {
	return utils.VerifyHMACHex(payload, signature, secret)
}

func (p *PurchasesService) createRazorpayOrder(
	amount int64,
	currency,
	receipt string,
) (*razorpayOrder, error) {
	body, err := json.Marshal(map[string]interface{}{
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
	})
	if err != nil {
		return nil, err
	}
	request, err := http.NewRequest(
		http.MethodPost,
		RAZORPAY_ORDERS_URL,
		bytes.NewReader(body),
	)
	if err != nil {
		return nil, err
	}
	request.Header.Set("Content-Type", "application/json")
	request.SetBasicAuth(settingsData.RAZORPAY_KEY_ID, settingsData.RAZORPAY_KEY_SECRET)

	client := &http.Client{Timeout: 10 * time.Second}
	response, err := client.Do(request)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(response.Body)
		return nil, fmt.Errorf("razorpay: %s", string(data))
	}
	var order razorpayOrder
	if err := json.NewDecoder(response.Body).Decode(&order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (p *PurchasesService) CreateOrder(
	form *forms.CreateOrderForm,
	claims *Claims,
) (map[string]interface{}, *res.ErrorRes) {
	course, errRes := NewCoursesService().getCourseFromId(form.Course)
	if errRes != nil {
		return nil, errRes
	}
	if course.Status != models.COURSE_PUBLISHED {
		return nil, &res.ErrorRes{
			Err:        fmt.Errorf("Course is not published"),
			StatusCode: http.StatusBadRequest,
		}
	}
	idObjUser, err := primitive.ObjectIDFromHex(claims.ID)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}
	var completed *models.CoursePurchase
	cursor := purchaseModel.GetOne(bson.D{
		{
			Key:   "user",
			Value: idObjUser,
		},
		{
			Key:   "course",
			Value: course.ID,
		},
		{
			Key:   "status",
			Value: models.PURCHASE_COMPLETED,
		},
	})
	if err := cursor.Decode(&completed); err == nil {
		return nil, &res.ErrorRes{
			Err:        fmt.Errorf("You have already purchased this course"),
			StatusCode: http.StatusConflict,
		}
	} else if err.Error() != db.NO_SINGLE_DOCUMENT {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	price := course.Price
	if course.DiscountPrice > 0 {
		price = course.DiscountPrice
	}
	// Razorpay wants currency subunits
	amount := utils.Subunits(price)
	order, err := p.createRazorpayOrder(amount, "INR", course.ID.Hex())
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	modelPurchase := models.NewModelCoursePurchase(
		idObjUser,
		course.ID,
		order.ID,
		order.Currency,
		float64(order.Amount),
	)
	if _, err := purchaseModel.NewDocument(modelPurchase); err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	return map[string]interface{}{
		"order_id": order.ID,
		"amount":   order.Amount,
		"currency": order.Currency,
		"key_id":   settingsData.RAZORPAY_KEY_ID,
	}, nil
}

// completePurchase marks the purchase paid and enrolls the student.
// $addToSet keeps it idempotent for the verify + webhook double path
func (p *PurchasesService) completePurchase(
	purchase *models.CoursePurchase,
	paymentId string,
) *res.ErrorRes {
	now := primitive.NewDateTimeFromTime(time.Now())
	_, err := purchaseModel.Use().UpdateByID(db.Ctx, purchase.ID, bson.D{{
		Key: "$set",
		Value: bson.M{
			"status":      models.PURCHASE_COMPLETED,
			"payment_id":  paymentId,
			"date_update": now,
		},
	}})
	if err != nil {
		return &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	_, err = userModel.Use().UpdateByID(db.Ctx, purchase.User, bson.D{{
		Key: "$addToSet",
		Value: bson.M{
			"enrolled_courses": purchase.Course,
		},
	}})
	if err != nil {
		return &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	_, err = courseModel.Use().UpdateByID(db.Ctx, purchase.Course, bson.D{{
		Key: "$addToSet",
		Value: bson.M{
			"enrolled_students": purchase.User,
		},
	}})
	if err != nil {
		return &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	nats.PublishEncode("courses/enrollment", map[string]interface{}{
		"user":   purchase.User.Hex(),
		"course": purchase.Course.Hex(),
		"order":  purchase.OrderID,
	})
	return nil
}

func (p *PurchasesService) getPurchaseFromOrderId(orderId string) (*models.CoursePurchase, *res.ErrorRes) {
	var purchase *models.CoursePurchase
	cursor := purchaseModel.GetOne(bson.D{{
		Key:   "order_id",
		Value: orderId,
	}})
	if err := cursor.Decode(&purchase); err != nil {
		if err.Error() == db.NO_SINGLE_DOCUMENT {
			return nil, &res.ErrorRes{
				Err:        fmt.Errorf("Purchase not found"),
				StatusCode: http.StatusNotFound,
			}
		}
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	return purchase, nil
}

func (p *PurchasesService) VerifyPayment(
	form *forms.VerifyPaymentForm,
	claims *Claims,
) *res.ErrorRes {
	purchase, errRes := p.getPurchaseFromOrderId(form.OrderID)
	if errRes != nil {
		return errRes
	}
	if purchase.User.Hex() != claims.ID {
		return &res.ErrorRes{
			Err:        fmt.Errorf("This purchase belongs to another user"),
			StatusCode: http.StatusForbidden,
		}
	}
	valid := VerifyPaymentSignature(
		form.OrderID,
		form.PaymentID,
		form.Signature,
		settingsData.RAZORPAY_KEY_SECRET,
	)
	if !valid {
		return &res.ErrorRes{
			Err:        fmt.Errorf("Invalid payment signature"),
			StatusCode: http.StatusBadRequest,
		}
	}
	if purchase.Status == models.PURCHASE_COMPLETED {
		return nil
	}
	return p.completePurchase(purchase, form.PaymentID)
}

type webhookEvent struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID      string `json:"id"`
				OrderID string `json:"order_id"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

// HandleWebhook processes payment.captured events. The controller always
// answers 200 so the provider does not retry forever; errors are only logged
func (p *PurchasesService) HandleWebhook(payload []byte, signature string) *res.ErrorRes {
	valid := VerifyWebhookSignature(
		payload,
		signature,
		settingsData.RAZORPAY_WEBHOOK_SECRET,
	)
	if !valid {
		return &res.ErrorRes{
			Err:        fmt.Errorf("Invalid webhook signature"),
			StatusCode: http.StatusBadRequest,
		}
	}
	var event webhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}
	if event.Event != "payment.captured" {
		return nil
	}
	purchase, errRes := p.getPurchaseFromOrderId(event.Payload.Payment.Entity.OrderID)
	if errRes != nil {
		return errRes
	}
	if purchase.Status == models.PURCHASE_COMPLETED {
		return nil
	}
	return p.completePurchase(purchase, event.Payload.Payment.Entity.ID)
}

func (p *PurchasesService) GetCoursePurchases(
	idCourse string,
	claims *Claims,
) ([]models.CoursePurchase, *res.ErrorRes) {
	course, errRes := NewCoursesService().getCourseFromId(idCourse)
	if errRes != nil {
		return nil, errRes
	}
	if errRes := NewCoursesService().authorizeCourseEdit(course, claims); errRes != nil {
		return nil, errRes
	}
	return p.findPurchases(bson.D{{
		Key:   "course",
		Value: course.ID,
	}})
}

func (p *PurchasesService) GetAllPurchases() ([]models.CoursePurchase, *res.ErrorRes) {
	return p.findPurchases(bson.D{})
}

func (p *PurchasesService) findPurchases(filter bson.D) ([]models.CoursePurchase, *res.ErrorRes) {
	opts := options.Find().SetSort(bson.D{{
		Key:   "date_upload",
		Value: -1,
	}})
	cursor, err := purchaseModel.GetAll(filter, opts)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	var purchases []models.CoursePurchase
	if err := cursor.All(db.Ctx, &purchases); err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	return purchases, nil
}

func (p *PurchasesService) GetMyCourses(claims *Claims) ([]models.Course, *res.ErrorRes) {
	idObjUser, err := primitive.ObjectIDFromHex(claims.ID)
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusBadRequest,
		}
	}
	var user *models.User
	cursor := userModel.GetByID(idObjUser)
	if err := cursor.Decode(&user); err != nil {
		if err.Error() == db.NO_SINGLE_DOCUMENT {
			return nil, &res.ErrorRes{
				Err:        fmt.Errorf("User not found"),
				StatusCode: http.StatusNotFound,
			}
		}
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	if len(user.EnrolledCourses) == 0 {
		return []models.Course{}, nil
	}
	coursesCursor, err := courseModel.GetAll(bson.D{{
		Key: "_id",
		Value: bson.M{
			"$in": user.EnrolledCourses,
		},
	}}, options.Find())
	if err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	var courses []models.Course
	if err := coursesCursor.All(db.Ctx, &courses); err != nil {
		return nil, &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusServiceUnavailable,
		}
	}
	return courses, nil
}

func NewPurchasesService() *PurchasesService {
	if purchasesService == nil {
		purchasesService = &PurchasesService{}
	}
	return purchasesService
}
