package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/campuskart/app/models"
	"github.com/shashiranjanraj/campuskart/pkg/database"
)

// CartRepository handles the carts collection. Each user has at most one
// cart document, enforced by the unique userId index.
type CartRepository struct {
	col *mongo.Collection
}

func NewCartRepository() *CartRepository {
	return &CartRepository{col: database.Collection("carts")}
}

// FindByUser returns the user's cart, or an empty one when none exists yet.
func (r *CartRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) (models.Cart, error) {
	var cart models.Cart
	err := r.col.FindOne(ctx, bson.M{"userId": userID}).Decode(&cart)
	if err == mongo.ErrNoDocuments {
		return models.Cart{UserID: userID, Items: []models.CartItem{}}, nil
	}
	return cart, err
}

// Save upserts the cart keyed by its userId.
func (r *CartRepository) Save(ctx context.Context, cart *models.Cart) error {
	cart.UpdatedAt = time.Now()
	_, err := r.col.ReplaceOne(ctx,
		bson.M{"userId": cart.UserID},
		cart,
		options.Replace().SetUpsert(true),
	)
	return err
}

// DeleteByUser removes the user's cart wholesale.
func (r *CartRepository) DeleteByUser(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"userId": userID})
	return err
}
