package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles a user account can hold.
const (
	RoleUser   = "user"
	RoleSeller = "seller"
	RoleAdmin  = "admin"
)

// Seller verification states. Empty means the account is not a seller.
const (
	SellerPending  = "pending"
	SellerVerified = "verified"
)

// User is an account document. Password holds the bcrypt hash and is never
// serialised.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	Password     string             `bson:"password" json:"-"`
	Role         string             `bson:"role" json:"role"`
	Banned       bool               `bson:"banned" json:"banned"`
	SellerStatus string             `bson:"sellerStatus,omitempty" json:"seller_status,omitempty"`
	Hostel       string             `bson:"hostel,omitempty" json:"hostel,omitempty"`
	Room         string             `bson:"room,omitempty" json:"room,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updated_at"`
}

// IsSeller reports whether the account can hold listings.
func (u User) IsSeller() bool { return u.Role == RoleSeller || u.Role == RoleAdmin }
