package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/campuskart/app/models"
	"github.com/shashiranjanraj/campuskart/app/repositories"
)

// CartStore is the slice of the carts repository the cart service needs.
type CartStore interface {
	FindByUser(ctx context.Context, userID primitive.ObjectID) (models.Cart, error)
	Save(ctx context.Context, cart *models.Cart) error
	DeleteByUser(ctx context.Context, userID primitive.ObjectID) error
}

// CartService manages the per-user cart document.
type CartService struct {
	carts    CartStore
	listings ListingStore
	products ProductStore
}

func NewCartService() *CartService {
	return &CartService{
		carts:    repositories.NewCartRepository(),
		listings: repositories.NewListingRepository(),
		products: repositories.NewProductRepository(),
	}
}

// Get returns the user's cart (empty if they have none yet).
func (s *CartService) Get(ctx context.Context, userID primitive.ObjectID) (models.Cart, error) {
	return s.carts.FindByUser(ctx, userID)
}

// AddInput adds qty units of a listing to the cart.
type AddInput struct {
	ListingID string `json:"listing_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gte=1"`
}

// Add puts a listing in the cart, or bumps the quantity when the line already
// exists. Name, price and image are snapshotted from the catalogue at add
// time and stay frozen afterwards.
func (s *CartService) Add(ctx context.Context, userID primitive.ObjectID, in AddInput) (models.Cart, error) {
	listingID, err := primitive.ObjectIDFromHex(in.ListingID)
	if err != nil {
		return models.Cart{}, E(ErrValidation, "invalid listing id")
	}

	listing, err := s.listings.FindByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Cart{}, E(ErrNotFound, "listing not found")
		}
		return models.Cart{}, err
	}

	cart, err := s.carts.FindByUser(ctx, userID)
	if err != nil {
		return models.Cart{}, err
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].ListingID == listingID {
			cart.Items[i].Quantity += in.Quantity
			found = true
			break
		}
	}
	if !found {
		product, err := s.products.FindByID(ctx, listing.ProductID)
		if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
			return models.Cart{}, err
		}
		cart.Items = append(cart.Items, models.CartItem{
			ListingID: listingID,
			Name:      product.Name,
			Price:     listing.Price,
			Image:     product.Image,
			Quantity:  in.Quantity,
		})
	}

	return s.save(ctx, &cart)
}

// SetQuantity replaces a line's quantity; zero removes the line.
func (s *CartService) SetQuantity(ctx context.Context, userID, listingID primitive.ObjectID, qty int) (models.Cart, error) {
	if qty < 0 {
		return models.Cart{}, E(ErrValidation, "quantity cannot be negative")
	}

	cart, err := s.carts.FindByUser(ctx, userID)
	if err != nil {
		return models.Cart{}, err
	}

	idx := -1
	for i := range cart.Items {
		if cart.Items[i].ListingID == listingID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return models.Cart{}, E(ErrNotFound, "item not in cart")
	}

	if qty == 0 {
		cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
	} else {
		cart.Items[idx].Quantity = qty
	}

	return s.save(ctx, &cart)
}

// RemoveLine drops a line from the cart entirely.
func (s *CartService) RemoveLine(ctx context.Context, userID, listingID primitive.ObjectID) (models.Cart, error) {
	return s.SetQuantity(ctx, userID, listingID, 0)
}

// Clear empties the cart.
func (s *CartService) Clear(ctx context.Context, userID primitive.ObjectID) error {
	return s.carts.DeleteByUser(ctx, userID)
}

// save recomputes the total and persists. Every mutation funnels through
// here, keeping totalPrice == sum(price * qty) at all times.
func (s *CartService) save(ctx context.Context, cart *models.Cart) (models.Cart, error) {
	cart.TotalPrice = cart.ComputeTotal()
	if err := s.carts.Save(ctx, cart); err != nil {
		return models.Cart{}, err
	}
	return *cart, nil
}
