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

// ListingRepository handles the seller_products collection.
type ListingRepository struct {
	col *mongo.Collection
}

func NewListingRepository() *ListingRepository {
	return &ListingRepository{col: database.Collection("seller_products")}
}

// FindByID looks up a listing by primary key.
func (r *ListingRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.Listing, error) {
	var l models.Listing
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&l)
	return l, err
}

// FindByProductAndSeller returns the one listing a seller holds for a product.
func (r *ListingRepository) FindByProductAndSeller(ctx context.Context, productID, sellerID primitive.ObjectID) (models.Listing, error) {
	var l models.Listing
	err := r.col.FindOne(ctx, bson.M{"productId": productID, "sellerId": sellerID}).Decode(&l)
	return l, err
}

// Create persists a new listing and fills in its ID.
func (r *ListingRepository) Create(ctx context.Context, l *models.Listing) error {
	now := time.Now()
	l.CreatedAt = now
	l.UpdatedAt = now

	res, err := r.col.InsertOne(ctx, l)
	if err != nil {
		return err
	}
	l.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// SetFields patches individual fields on a listing document.
func (r *ListingRepository) SetFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	fields["updatedAt"] = time.Now()
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// DecrementStock atomically takes qty units off a listing's stock. The filter
// requires stock >= qty, so a concurrent shopper can never drive it negative.
// Returns (false, nil) when the listing is missing or short on stock.
func (r *ListingRepository) DecrementStock(ctx context.Context, id primitive.ObjectID, qty int) (bool, error) {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "stock": bson.M{"$gte": qty}},
		bson.M{
			"$inc": bson.M{"stock": -qty},
			"$set": bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}

// IncrementStock returns qty units to a listing, compensating a decrement
// whose order never materialized.
func (r *ListingRepository) IncrementStock(ctx context.Context, id primitive.ObjectID, qty int) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{
			"$inc": bson.M{"stock": qty},
			"$set": bson.M{"updatedAt": time.Now()},
		},
	)
	return err
}

// ListBySeller returns every listing owned by a seller, joined with product
// details.
func (r *ListingRepository) ListBySeller(ctx context.Context, sellerID primitive.ObjectID) ([]models.ListingView, error) {
	pipeline := append(
		mongo.Pipeline{{{Key: "$match", Value: bson.M{"sellerId": sellerID}}}},
		lookupStages()...,
	)
	pipeline = append(pipeline, projectViewStage())
	return r.aggregate(ctx, pipeline)
}

// ListPublic returns the buyer-facing catalogue for a hostel. Listings whose
// seller is banned are excluded by the join.
func (r *ListingRepository) ListPublic(ctx context.Context, hostel string) ([]models.ListingView, error) {
	match := bson.M{"stock": bson.M{"$gt": 0}}
	if hostel != "" {
		match["hostel"] = hostel
	}

	pipeline := append(
		mongo.Pipeline{{{Key: "$match", Value: match}}},
		lookupStages()...,
	)
	pipeline = append(pipeline,
		bson.D{{Key: "$match", Value: bson.M{"seller.banned": false}}},
		projectViewStage(),
	)
	return r.aggregate(ctx, pipeline)
}

// lookupStages joins products and users onto a listing and flattens the
// fields ListingView needs. The raw joined documents are stripped afterwards
// by projectViewStage.
func lookupStages() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$lookup", Value: bson.M{
			"from":         "products",
			"localField":   "productId",
			"foreignField": "_id",
			"as":           "product",
		}}},
		{{Key: "$unwind", Value: "$product"}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "sellerId",
			"foreignField": "_id",
			"as":           "seller",
		}}},
		{{Key: "$unwind", Value: "$seller"}},
		{{Key: "$addFields", Value: bson.M{
			"productName": "$product.name",
			"category":    "$product.category",
			"image":       "$product.image",
			"sellerName":  "$seller.name",
		}}},
	}
}

func projectViewStage() bson.D {
	return bson.D{{Key: "$project", Value: bson.M{"product": 0, "seller": 0}}}
}

func (r *ListingRepository) aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]models.ListingView, error) {
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}

	var views []models.ListingView
	if err := cur.All(ctx, &views); err != nil {
		return nil, err
	}
	return views, nil
}
