package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/campuskart/app/services"
	"github.com/shashiranjanraj/campuskart/pkg/ctx"
)

type CartController struct {
	service *services.CartService
}

func NewCartController() *CartController {
	return &CartController{service: services.NewCartService()}
}

func (cc *CartController) Show(c *ctx.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	cart, err := cc.service.Get(c.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(cart)
}

func (cc *CartController) Add(c *ctx.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var in services.AddInput
	if !c.BindJSON(&in) {
		return
	}

	cart, err := cc.service.Add(c.Context(), userID, in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(cart)
}

func (cc *CartController) SetQuantity(c *ctx.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	listingID, ok := pathID(c, "listingId")
	if !ok {
		return
	}

	var in struct {
		Quantity int `json:"quantity" validate:"gte=0"`
	}
	if !c.BindJSON(&in) {
		return
	}

	cart, err := cc.service.SetQuantity(c.Context(), userID, listingID, in.Quantity)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(cart)
}

func (cc *CartController) Remove(c *ctx.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	listingID, ok := pathID(c, "listingId")
	if !ok {
		return
	}

	cart, err := cc.service.RemoveLine(c.Context(), userID, listingID)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(cart)
}

func (cc *CartController) Clear(c *ctx.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	if err := cc.service.Clear(c.Context(), userID); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
