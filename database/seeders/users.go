package seeders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/shashiranjanraj/campuskart/app/models"
	"github.com/shashiranjanraj/campuskart/config"
)

func init() {
	Register("admin-user", SeedAdminUser)
}

// SeedAdminUser creates the bootstrap admin account if it does not exist.
// Email and password come from ADMIN_EMAIL / ADMIN_PASSWORD; the defaults
// are only acceptable for local development.
func SeedAdminUser(ctx context.Context, db *mongo.Database) error {
	email := config.Get("ADMIN_EMAIL", "admin@campuskart.local")
	password := config.Get("ADMIN_PASSWORD", "admin123")

	users := db.Collection("users")

	err := users.FindOne(ctx, bson.M{"email": email}).Err()
	if err == nil {
		return nil // already seeded
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	now := time.Now()
	_, err = users.InsertOne(ctx, models.User{
		Name:      "Admin",
		Email:     email,
		Password:  string(hash),
		Role:      models.RoleAdmin,
		CreatedAt: now,
		UpdatedAt: now,
	})
	return err
}
