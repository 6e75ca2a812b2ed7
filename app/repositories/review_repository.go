package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/campuskart/app/models"
	"github.com/shashiranjanraj/campuskart/pkg/database"
)

// ReviewRepository handles the reviews collection.
type ReviewRepository struct {
	col *mongo.Collection
}

func NewReviewRepository() *ReviewRepository {
	return &ReviewRepository{col: database.Collection("reviews")}
}

// Create persists a review and fills in its ID. The unique orderId index
// turns a duplicate into a mongo write error the service maps to Conflict.
func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	review.CreatedAt = time.Now()

	res, err := r.col.InsertOne(ctx, review)
	if err != nil {
		return err
	}
	review.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByOrder returns the review for an order, if any.
func (r *ReviewRepository) FindByOrder(ctx context.Context, orderID primitive.ObjectID) (models.Review, error) {
	var review models.Review
	err := r.col.FindOne(ctx, bson.M{"orderId": orderID}).Decode(&review)
	return review, err
}

// ListByListing returns a listing's reviews, newest first.
func (r *ReviewRepository) ListByListing(ctx context.Context, listingID primitive.ObjectID) ([]models.Review, error) {
	cur, err := r.col.Find(ctx,
		bson.M{"listingId": listingID},
		findPage(1, 100, bson.D{{Key: "createdAt", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}

	var reviews []models.Review
	if err := cur.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}
