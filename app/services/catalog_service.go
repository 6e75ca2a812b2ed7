package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/campuskart/app/models"
	"github.com/shashiranjanraj/campuskart/app/repositories"
	"github.com/shashiranjanraj/campuskart/pkg/cache"
)

// ProductStore is the slice of the products repository catalog needs.
type ProductStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Product, error)
	FindByName(ctx context.Context, name, hostel string) (models.Product, error)
	Create(ctx context.Context, p *models.Product) error
	All(ctx context.Context, hostel string) ([]models.Product, error)
}

// ListingStore is the slice of the seller_products repository catalog needs.
type ListingStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Listing, error)
	FindByProductAndSeller(ctx context.Context, productID, sellerID primitive.ObjectID) (models.Listing, error)
	Create(ctx context.Context, l *models.Listing) error
	SetFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error
	DecrementStock(ctx context.Context, id primitive.ObjectID, qty int) (bool, error)
	IncrementStock(ctx context.Context, id primitive.ObjectID, qty int) error
	ListBySeller(ctx context.Context, sellerID primitive.ObjectID) ([]models.ListingView, error)
	ListPublic(ctx context.Context, hostel string) ([]models.ListingView, error)
}

// CatalogService manages products and seller listings.
type CatalogService struct {
	products ProductStore
	listings ListingStore
}

func NewCatalogService() *CatalogService {
	return &CatalogService{
		products: repositories.NewProductRepository(),
		listings: repositories.NewListingRepository(),
	}
}

// CreateListingInput is a seller's offer for an existing product.
type CreateListingInput struct {
	ProductID string  `json:"product_id" validate:"required"`
	Price     float64 `json:"price" validate:"required,gt=0"`
	Stock     int     `json:"stock" validate:"gte=0"`
}

// CreateListing stocks a product for a seller. The product must already be
// in the catalogue, and a seller holds at most one listing per product.
func (s *CatalogService) CreateListing(ctx context.Context, sellerID primitive.ObjectID, in CreateListingInput) (models.Listing, error) {
	productID, err := primitive.ObjectIDFromHex(in.ProductID)
	if err != nil {
		return models.Listing{}, E(ErrValidation, "invalid product id")
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Listing{}, E(ErrNotFound, "product not found")
		}
		return models.Listing{}, err
	}

	if _, err := s.listings.FindByProductAndSeller(ctx, productID, sellerID); err == nil {
		return models.Listing{}, E(ErrConflict, "you already have a listing for %q", product.Name)
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return models.Listing{}, err
	}

	listing := models.Listing{
		ProductID: productID,
		SellerID:  sellerID,
		Price:     in.Price,
		Stock:     in.Stock,
		Hostel:    product.Hostel,
	}
	if err := s.listings.Create(ctx, &listing); err != nil {
		return models.Listing{}, err
	}

	s.invalidateCatalogCache(listing.Hostel)
	return listing, nil
}

// AdjustListingInput patches price and/or stock. Nil means "leave alone".
type AdjustListingInput struct {
	Price *float64 `json:"price" validate:"nullable,gt=0"`
	Stock *int     `json:"stock" validate:"nullable,gte=0"`
}

// AdjustListing updates a listing's price or stock. Only the owning seller
// may touch it.
func (s *CatalogService) AdjustListing(ctx context.Context, sellerID, listingID primitive.ObjectID, in AdjustListingInput) (models.Listing, error) {
	listing, err := s.listings.FindByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Listing{}, E(ErrNotFound, "listing not found")
		}
		return models.Listing{}, err
	}
	if listing.SellerID != sellerID {
		return models.Listing{}, E(ErrForbidden, "this listing belongs to another seller")
	}

	fields := bson.M{}
	if in.Price != nil {
		fields["price"] = *in.Price
		listing.Price = *in.Price
	}
	if in.Stock != nil {
		fields["stock"] = *in.Stock
		listing.Stock = *in.Stock
	}
	if len(fields) == 0 {
		return listing, nil
	}

	if err := s.listings.SetFields(ctx, listingID, fields); err != nil {
		return models.Listing{}, err
	}

	s.invalidateCatalogCache(listing.Hostel)
	return listing, nil
}

// PublicCatalog returns the buyer-facing listings for a hostel, with banned
// sellers filtered out. The result is cached briefly; listing writes
// invalidate it.
func (s *CatalogService) PublicCatalog(ctx context.Context, hostel string) ([]models.ListingView, error) {
	key := catalogCacheKey(hostel)

	var cached []models.ListingView
	if cache.Get(key, &cached) {
		return cached, nil
	}

	views, err := s.listings.ListPublic(ctx, hostel)
	if err != nil {
		return nil, err
	}

	_ = cache.Set(key, views, 30*time.Second)
	return views, nil
}

// SellerListings returns a seller's own listings, banned or not.
func (s *CatalogService) SellerListings(ctx context.Context, sellerID primitive.ObjectID) ([]models.ListingView, error) {
	return s.listings.ListBySeller(ctx, sellerID)
}

// Products returns the product catalogue, optionally per hostel.
func (s *CatalogService) Products(ctx context.Context, hostel string) ([]models.Product, error) {
	return s.products.All(ctx, hostel)
}

func catalogCacheKey(hostel string) string {
	if hostel == "" {
		hostel = "all"
	}
	return "campuskart:catalog:" + hostel
}

func (s *CatalogService) invalidateCatalogCache(hostel string) {
	_ = cache.Del(catalogCacheKey(hostel), catalogCacheKey(""))
}
