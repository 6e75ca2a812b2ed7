package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a catalogue entry shared by all sellers of that item.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Category    string             `bson:"category" json:"category"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	Hostel      string             `bson:"hostel,omitempty" json:"hostel,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updated_at"`
}

// Listing is one seller's offer of a product: their price and their stock.
// At most one listing exists per (product, seller) pair.
type Listing struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProductID primitive.ObjectID `bson:"productId" json:"product_id"`
	SellerID  primitive.ObjectID `bson:"sellerId" json:"seller_id"`
	Price     float64            `bson:"price" json:"price"`
	Stock     int                `bson:"stock" json:"stock"`
	Hostel    string             `bson:"hostel,omitempty" json:"hostel,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updated_at"`
}

// ListingView is a listing joined with its product and seller for catalogue
// responses ($lookup output).
type ListingView struct {
	Listing     `bson:",inline"`
	ProductName string `bson:"productName" json:"product_name"`
	Category    string `bson:"category" json:"category"`
	Image       string `bson:"image,omitempty" json:"image,omitempty"`
	SellerName  string `bson:"sellerName" json:"seller_name"`
}

// Product request moderation states.
const (
	RequestPending  = "pending"
	RequestApproved = "approved"
	RequestRejected = "rejected"
)

// ProductRequest is a seller's proposal for a product that is not in the
// catalogue yet. Approval creates the Product and an initial Listing.
type ProductRequest struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SellerID    primitive.ObjectID `bson:"sellerId" json:"seller_id"`
	Name        string             `bson:"name" json:"name"`
	Category    string             `bson:"category" json:"category"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	Hostel      string             `bson:"hostel,omitempty" json:"hostel,omitempty"`
	Price       float64            `bson:"price" json:"price"`
	Stock       int                `bson:"stock" json:"stock"`
	Status      string             `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updated_at"`
}
