// Package database manages the MongoDB connection for CampusKart.
//
// Boot once at startup:
//
//	if err := database.Connect(); err != nil { ... }
//	defer database.Close()
//
// Collections are reached through database.Collection("orders").
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/campuskart/config"
)

var (
	client *mongo.Client

	// DB is the application database handle. Nil until Connect succeeds.
	DB *mongo.Database
)

// Connect opens the MongoDB client, verifies the connection with a ping and
// creates the indexes the application relies on. Returns an error instead of
// calling log.Fatal so the caller can shut down gracefully.
func Connect() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Client().ApplyURI(config.MongoURI()).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(25)

	var err error
	client, err = mongo.Connect(ctx, opts)
	if err != nil {
		return fmt.Errorf("database: connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("database: ping: %w", err)
	}

	DB = client.Database(config.MongoDB())

	if err := ensureIndexes(ctx); err != nil {
		return fmt.Errorf("database: indexes: %w", err)
	}

	return nil
}

// Collection returns a handle to the named collection. Before Connect it
// returns nil, which lets repositories be constructed (e.g. for route
// listing) as long as no query runs.
func Collection(name string) *mongo.Collection {
	if DB == nil {
		return nil
	}
	return DB.Collection(name)
}

// Ping verifies the server is still reachable. Used by health checks.
func Ping(ctx context.Context) error {
	if client == nil {
		return fmt.Errorf("database: not connected")
	}
	return client.Ping(ctx, nil)
}

// Close disconnects the client. Safe to call when Connect never ran.
func Close() error {
	if client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return client.Disconnect(ctx)
}

// ensureIndexes creates the indexes every boot. CreateMany is idempotent, so
// re-running on an existing database is a no-op.
func ensureIndexes(ctx context.Context) error {
	type idx struct {
		collection string
		models     []mongo.IndexModel
	}

	unique := options.Index().SetUnique(true)

	plan := []idx{
		{"users", []mongo.IndexModel{
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		}},
		{"products", []mongo.IndexModel{
			{Keys: bson.D{{Key: "name", Value: 1}, {Key: "hostel", Value: 1}}},
		}},
		// The one-listing-per-(product, seller) rule is enforced by the
		// catalog service; this index just makes the lookup cheap.
		{"seller_products", []mongo.IndexModel{
			{Keys: bson.D{{Key: "productId", Value: 1}, {Key: "sellerId", Value: 1}}},
			{Keys: bson.D{{Key: "hostel", Value: 1}}},
		}},
		{"carts", []mongo.IndexModel{
			{Keys: bson.D{{Key: "userId", Value: 1}}, Options: unique},
		}},
		{"orders", []mongo.IndexModel{
			{Keys: bson.D{{Key: "buyerId", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "sellerId", Value: 1}, {Key: "createdAt", Value: -1}}},
		}},
		{"notifications", []mongo.IndexModel{
			{Keys: bson.D{{Key: "recipientId", Value: 1}, {Key: "createdAt", Value: -1}}},
		}},
		{"product_requests", []mongo.IndexModel{
			{Keys: bson.D{{Key: "sellerId", Value: 1}, {Key: "status", Value: 1}}},
		}},
		{"reviews", []mongo.IndexModel{
			{Keys: bson.D{{Key: "orderId", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "listingId", Value: 1}}},
		}},
		{"failed_jobs", []mongo.IndexModel{
			{Keys: bson.D{{Key: "jobType", Value: 1}}},
		}},
	}

	for _, p := range plan {
		if _, err := DB.Collection(p.collection).Indexes().CreateMany(ctx, p.models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", p.collection, err)
		}
	}
	return nil
}
