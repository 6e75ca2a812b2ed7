package controllers

import (
	"github.com/shashiranjanraj/campuskart/app/services"
	"github.com/shashiranjanraj/campuskart/pkg/ctx"
)

type ReviewController struct {
	service *services.ReviewService
}

func NewReviewController() *ReviewController {
	return &ReviewController{service: services.NewReviewService()}
}

// Create rates one of the caller's fulfilled orders.
func (rc *ReviewController) Create(c *ctx.Context) {
	buyerID, ok := callerID(c)
	if !ok {
		return
	}

	var in services.ReviewInput
	if !c.BindJSON(&in) {
		return
	}

	review, err := rc.service.Create(c.Context(), buyerID, in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(review)
}

// ForListing returns a listing's reviews (public).
func (rc *ReviewController) ForListing(c *ctx.Context) {
	listingID, ok := pathID(c, "id")
	if !ok {
		return
	}

	reviews, err := rc.service.ForListing(c.Context(), listingID)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(reviews)
}
