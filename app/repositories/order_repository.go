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

// OrderRepository handles the orders collection.
type OrderRepository struct {
	col *mongo.Collection
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{col: database.Collection("orders")}
}

// Create persists a single order and fills in its ID.
func (r *OrderRepository) Create(ctx context.Context, o *models.Order) error {
	now := time.Now()
	o.CreatedAt = now
	o.UpdatedAt = now

	res, err := r.col.InsertOne(ctx, o)
	if err != nil {
		return err
	}
	o.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// CreateMany persists a batch of orders (one checkout) and fills in IDs.
func (r *OrderRepository) CreateMany(ctx context.Context, orders []*models.Order) error {
	if len(orders) == 0 {
		return nil
	}

	now := time.Now()
	docs := make([]interface{}, len(orders))
	for i, o := range orders {
		o.CreatedAt = now
		o.UpdatedAt = now
		docs[i] = o
	}

	res, err := r.col.InsertMany(ctx, docs)
	if err != nil {
		return err
	}
	for i, id := range res.InsertedIDs {
		orders[i].ID = id.(primitive.ObjectID)
	}
	return nil
}

// FindByID looks up an order by primary key.
func (r *OrderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.Order, error) {
	var o models.Order
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&o)
	return o, err
}

// SetStatus moves an order to the given status.
func (r *OrderRepository) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// SetVerified flags an order's handoff code as consumed.
func (r *OrderRepository) SetVerified(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"isVerified": true, "updatedAt": time.Now()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// ListByBuyer returns a buyer's orders, newest first.
func (r *OrderRepository) ListByBuyer(ctx context.Context, buyerID primitive.ObjectID, page, limit int64) ([]models.Order, error) {
	return r.list(ctx, bson.M{"buyerId": buyerID}, page, limit)
}

// ListBySeller returns a seller's incoming orders, newest first.
func (r *OrderRepository) ListBySeller(ctx context.Context, sellerID primitive.ObjectID, page, limit int64) ([]models.Order, error) {
	return r.list(ctx, bson.M{"sellerId": sellerID}, page, limit)
}

func (r *OrderRepository) list(ctx context.Context, filter bson.M, page, limit int64) ([]models.Order, error) {
	cur, err := r.col.Find(ctx, filter, findPage(page, limit, bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}

	var orders []models.Order
	if err := cur.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}
