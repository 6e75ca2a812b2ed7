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

// ProductRepository handles the products collection.
type ProductRepository struct {
	col *mongo.Collection
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{col: database.Collection("products")}
}

// FindByID looks up a product by primary key.
func (r *ProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.Product, error) {
	var p models.Product
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	return p, err
}

// FindByName looks up a product by (name, hostel).
func (r *ProductRepository) FindByName(ctx context.Context, name, hostel string) (models.Product, error) {
	var p models.Product
	err := r.col.FindOne(ctx, bson.M{"name": name, "hostel": hostel}).Decode(&p)
	return p, err
}

// Create persists a new product and fills in its ID.
func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	res, err := r.col.InsertOne(ctx, p)
	if err != nil {
		return err
	}
	p.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// All returns every product, optionally filtered by hostel.
func (r *ProductRepository) All(ctx context.Context, hostel string) ([]models.Product, error) {
	filter := bson.M{}
	if hostel != "" {
		filter["hostel"] = hostel
	}

	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}

	var products []models.Product
	if err := cur.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}
