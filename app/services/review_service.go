package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/campuskart/app/models"
	"github.com/shashiranjanraj/campuskart/app/repositories"
)

// ReviewStore is the slice of the reviews repository the service needs.
type ReviewStore interface {
	Create(ctx context.Context, review *models.Review) error
	FindByOrder(ctx context.Context, orderID primitive.ObjectID) (models.Review, error)
	ListByListing(ctx context.Context, listingID primitive.ObjectID) ([]models.Review, error)
}

// ReviewService lets buyers rate fulfilled orders.
type ReviewService struct {
	reviews ReviewStore
	orders  OrderStore
}

func NewReviewService() *ReviewService {
	return &ReviewService{
		reviews: repositories.NewReviewRepository(),
		orders:  repositories.NewOrderRepository(),
	}
}

// ReviewInput rates one order.
type ReviewInput struct {
	OrderID string `json:"order_id" validate:"required"`
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment" validate:"nullable,max=1000"`
}

// Create adds a review for a delivered or completed order the caller bought.
// One review per order.
func (s *ReviewService) Create(ctx context.Context, buyerID primitive.ObjectID, in ReviewInput) (models.Review, error) {
	orderID, err := primitive.ObjectIDFromHex(in.OrderID)
	if err != nil {
		return models.Review{}, E(ErrValidation, "invalid order id")
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Review{}, E(ErrNotFound, "order not found")
		}
		return models.Review{}, err
	}
	if order.BuyerID != buyerID {
		return models.Review{}, E(ErrForbidden, "you can only review your own orders")
	}
	if order.Status != models.OrderDelivered && order.Status != models.OrderCompleted {
		return models.Review{}, E(ErrConflict, "order has not been delivered yet")
	}

	if _, err := s.reviews.FindByOrder(ctx, orderID); err == nil {
		return models.Review{}, E(ErrConflict, "this order has already been reviewed")
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return models.Review{}, err
	}

	review := models.Review{
		OrderID:   orderID,
		BuyerID:   buyerID,
		ListingID: order.ListingID,
		Rating:    in.Rating,
		Comment:   in.Comment,
	}
	if err := s.reviews.Create(ctx, &review); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.Review{}, E(ErrConflict, "this order has already been reviewed")
		}
		return models.Review{}, err
	}
	return review, nil
}

// ForListing returns a listing's reviews, newest first.
func (s *ReviewService) ForListing(ctx context.Context, listingID primitive.ObjectID) ([]models.Review, error) {
	return s.reviews.ListByListing(ctx, listingID)
}
