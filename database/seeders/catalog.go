package seeders

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/shashiranjanraj/campuskart/app/models"
)

func init() {
	Register("demo-catalog", SeedDemoCatalog)
}

// SeedDemoCatalog inserts a verified demo seller with a handful of products
// and stocked listings so a fresh install has something to browse.
// Running it twice is a no-op.
func SeedDemoCatalog(ctx context.Context, db *mongo.Database) error {
	users := db.Collection("users")
	products := db.Collection("products")
	listings := db.Collection("seller_products")

	const sellerEmail = "demo.seller@campuskart.local"
	now := time.Now()

	var seller models.User
	err := users.FindOne(ctx, bson.M{"email": sellerEmail}).Decode(&seller)
	switch {
	case err == nil:
		return nil // already seeded
	case !errors.Is(err, mongo.ErrNoDocuments):
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	res, err := users.InsertOne(ctx, models.User{
		Name:         "Demo Seller",
		Email:        sellerEmail,
		Password:     string(hash),
		Role:         models.RoleSeller,
		SellerStatus: models.SellerVerified,
		Hostel:       "Hostel A",
		Room:         "101",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return err
	}
	sellerID := res.InsertedID.(primitive.ObjectID)

	demo := []struct {
		product models.Product
		price   float64
		stock   int
	}{
		{models.Product{Name: "Maggi Noodles", Category: "snacks", Hostel: "Hostel A"}, 20, 50},
		{models.Product{Name: "Cold Coffee", Category: "beverages", Hostel: "Hostel A"}, 40, 30},
		{models.Product{Name: "Veg Sandwich", Category: "meals", Hostel: "Hostel A"}, 50, 10},
	}

	for _, d := range demo {
		d.product.CreatedAt = now
		d.product.UpdatedAt = now

		var existing models.Product
		filter := bson.M{"name": d.product.Name, "hostel": d.product.Hostel}
		err := products.FindOneAndUpdate(ctx, filter,
			bson.M{"$setOnInsert": d.product},
			options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
		).Decode(&existing)
		if err != nil {
			return err
		}

		_, err = listings.InsertOne(ctx, models.Listing{
			ProductID: existing.ID,
			SellerID:  sellerID,
			Price:     d.price,
			Stock:     d.stock,
			Hostel:    d.product.Hostel,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			return err
		}
	}
	return nil
}
