package controllers

import (
	"github.com/shashiranjanraj/campuskart/app/services"
	"github.com/shashiranjanraj/campuskart/pkg/ctx"
	"github.com/shashiranjanraj/campuskart/pkg/resource"
)

type CatalogController struct {
	service *services.CatalogService
}

func NewCatalogController() *CatalogController {
	return &CatalogController{service: services.NewCatalogService()}
}

// Listings is the public, buyer-facing catalogue (banned sellers hidden).
func (cc *CatalogController) Listings(c *ctx.Context) {
	hostel := c.Query("hostel")
	views, err := cc.service.PublicCatalog(c.Context(), hostel)
	if err != nil {
		fail(c, err)
		return
	}

	meta := resource.Map{"count": len(views)}
	if hostel != "" {
		meta["hostel"] = hostel
	}
	resource.CollectionOf(&listingResource{}, views).WithMeta(meta).Respond(c.W)
}

// Products lists the shared product catalogue.
func (cc *CatalogController) Products(c *ctx.Context) {
	products, err := cc.service.Products(c.Context(), c.Query("hostel"))
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(products)
}

// MyListings shows the authenticated seller their own listings.
func (cc *CatalogController) MyListings(c *ctx.Context) {
	sellerID, ok := callerID(c)
	if !ok {
		return
	}

	views, err := cc.service.SellerListings(c.Context(), sellerID)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(views)
}

func (cc *CatalogController) CreateListing(c *ctx.Context) {
	sellerID, ok := callerID(c)
	if !ok {
		return
	}

	var in services.CreateListingInput
	if !c.BindJSON(&in) {
		return
	}

	listing, err := cc.service.CreateListing(c.Context(), sellerID, in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(listing)
}

func (cc *CatalogController) AdjustListing(c *ctx.Context) {
	sellerID, ok := callerID(c)
	if !ok {
		return
	}
	listingID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var in services.AdjustListingInput
	if !c.BindJSON(&in) {
		return
	}

	listing, err := cc.service.AdjustListing(c.Context(), sellerID, listingID, in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(listing)
}
