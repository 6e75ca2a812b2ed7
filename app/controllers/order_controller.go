package controllers

import (
	"github.com/shashiranjanraj/campuskart/app/services"
	"github.com/shashiranjanraj/campuskart/pkg/ctx"
)

type OrderController struct {
	service *services.OrderService
	auth    *services.AuthService
}

func NewOrderController() *OrderController {
	return &OrderController{
		service: services.NewOrderService(),
		auth:    services.NewAuthService(),
	}
}

// Place creates a single direct order.
func (oc *OrderController) Place(c *ctx.Context) {
	buyerID, ok := callerID(c)
	if !ok {
		return
	}

	var in services.PlaceInput
	if !c.BindJSON(&in) {
		return
	}

	buyer, err := oc.auth.Profile(c.Context(), buyerID)
	if err != nil {
		fail(c, err)
		return
	}

	order, err := oc.service.Place(c.Context(), buyer, in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(order)
}

// UpdateStatus moves an order along the lifecycle (seller only).
func (oc *OrderController) UpdateStatus(c *ctx.Context) {
	sellerID, ok := callerID(c)
	if !ok {
		return
	}
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var in struct {
		Status string `json:"status" validate:"required,in=accepted,rejected,cancelled,delivered,completed"`
	}
	if !c.BindJSON(&in) {
		return
	}

	order, err := oc.service.UpdateStatus(c.Context(), sellerID, orderID, in.Status)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(order)
}

// Verify consumes the buyer's handoff code (seller only).
func (oc *OrderController) Verify(c *ctx.Context) {
	sellerID, ok := callerID(c)
	if !ok {
		return
	}
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var in struct {
		Code string `json:"code" validate:"required,digits=6"`
	}
	if !c.BindJSON(&in) {
		return
	}

	order, err := oc.service.VerifyHandoff(c.Context(), sellerID, orderID, in.Code)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(order)
}

// MyOrders lists the caller's purchases.
func (oc *OrderController) MyOrders(c *ctx.Context) {
	buyerID, ok := callerID(c)
	if !ok {
		return
	}

	p, l := page(c)
	orders, err := oc.service.MyOrders(c.Context(), buyerID, p, l)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(orders)
}

// SellerOrders lists the caller's incoming orders.
func (oc *OrderController) SellerOrders(c *ctx.Context) {
	sellerID, ok := callerID(c)
	if !ok {
		return
	}

	p, l := page(c)
	orders, err := oc.service.SellerOrders(c.Context(), sellerID, p, l)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(orders)
}
