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

// ProductRequestRepository handles the product_requests collection.
type ProductRequestRepository struct {
	col *mongo.Collection
}

func NewProductRequestRepository() *ProductRequestRepository {
	return &ProductRequestRepository{col: database.Collection("product_requests")}
}

// Create persists a new request and fills in its ID.
func (r *ProductRequestRepository) Create(ctx context.Context, req *models.ProductRequest) error {
	now := time.Now()
	req.CreatedAt = now
	req.UpdatedAt = now

	res, err := r.col.InsertOne(ctx, req)
	if err != nil {
		return err
	}
	req.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByID looks up a request by primary key.
func (r *ProductRequestRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.ProductRequest, error) {
	var req models.ProductRequest
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&req)
	return req, err
}

// ListBySeller returns a seller's own requests, newest first.
func (r *ProductRequestRepository) ListBySeller(ctx context.Context, sellerID primitive.ObjectID) ([]models.ProductRequest, error) {
	return r.list(ctx, bson.M{"sellerId": sellerID})
}

// ListByStatus returns all requests in a state; empty status means all.
func (r *ProductRequestRepository) ListByStatus(ctx context.Context, status string) ([]models.ProductRequest, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	return r.list(ctx, filter)
}

// Resolve moves a pending request to the given terminal status. The filter
// insists on pending, so a request resolved by a concurrent admin reports
// (false, nil) instead of flipping twice.
func (r *ProductRequestRepository) Resolve(ctx context.Context, id primitive.ObjectID, status string) (bool, error) {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.RequestPending},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}

func (r *ProductRequestRepository) list(ctx context.Context, filter bson.M) ([]models.ProductRequest, error) {
	cur, err := r.col.Find(ctx, filter, findPage(1, 100, bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}

	var requests []models.ProductRequest
	if err := cur.All(ctx, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}
