package controllers

import (
	"github.com/shashiranjanraj/campuskart/app/models"
	"github.com/shashiranjanraj/campuskart/pkg/resource"
)

// listingResource shapes the buyer-facing catalogue entry. Seller and product
// ids stay internal; buyers address a listing by its own id.
type listingResource struct{ resource.Base }

func (r *listingResource) ToArray(v interface{}) resource.Map {
	view := v.(models.ListingView)
	return resource.Map{
		"id":           view.ID.Hex(),
		"product_name": view.ProductName,
		"category":     view.Category,
		"image":        view.Image,
		"price":        view.Price,
		"stock":        view.Stock,
		"hostel":       view.Hostel,
		"seller_name":  view.SellerName,
	}
}
