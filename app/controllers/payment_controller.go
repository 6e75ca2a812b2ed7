package controllers

import (
	"github.com/shashiranjanraj/campuskart/app/services"
	"github.com/shashiranjanraj/campuskart/pkg/ctx"
)

type PaymentController struct {
	service *services.CheckoutService
	auth    *services.AuthService
}

func NewPaymentController() *PaymentController {
	return &PaymentController{
		service: services.NewCheckoutService(),
		auth:    services.NewAuthService(),
	}
}

// CreateOrder registers the cart total with the payment gateway.
func (pc *PaymentController) CreateOrder(c *ctx.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	gatewayOrder, err := pc.service.CreatePaymentOrder(c.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(gatewayOrder)
}

// Verify checks a gateway signature without creating anything.
func (pc *PaymentController) Verify(c *ctx.Context) {
	var in struct {
		GatewayOrderID string `json:"gateway_order_id" validate:"required"`
		PaymentID      string `json:"payment_id" validate:"required"`
		Signature      string `json:"signature" validate:"required"`
	}
	if !c.BindJSON(&in) {
		return
	}

	if err := pc.service.VerifyPayment(in.GatewayOrderID, in.PaymentID, in.Signature); err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]bool{"verified": true})
}

// Complete reconciles a captured payment into orders.
func (pc *PaymentController) Complete(c *ctx.Context) {
	buyerID, ok := callerID(c)
	if !ok {
		return
	}

	var in services.CompleteInput
	if !c.BindJSON(&in) {
		return
	}

	buyer, err := pc.auth.Profile(c.Context(), buyerID)
	if err != nil {
		fail(c, err)
		return
	}

	orders, err := pc.service.Complete(c.Context(), buyer, in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(orders)
}
