package forms

type CreateOrderForm struct {
	Course string `json:"course" binding:"required"`
}

type VerifyPaymentForm struct {
	OrderID   string `json:"razorpay_order_id" binding:"required"`
	PaymentID string `json:"razorpay_payment_id" binding:"required"`
	Signature string `json:"razorpay_signature" binding:"required"`
}
