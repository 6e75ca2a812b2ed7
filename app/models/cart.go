package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem is one line in a cart. Name, Price and Image are snapshots taken
// when the line was added; later listing edits do not touch them.
type CartItem struct {
	ListingID primitive.ObjectID `bson:"listingId" json:"listing_id"`
	Name      string             `bson:"name" json:"name"`
	Price     float64            `bson:"price" json:"price"`
	Image     string             `bson:"image,omitempty" json:"image,omitempty"`
	Quantity  int                `bson:"quantity" json:"quantity"`
}

// Cart is a user's single cart document. TotalPrice is recomputed on every
// mutation as the sum of price x quantity over the items.
type Cart struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID `bson:"userId" json:"user_id"`
	Items      []CartItem         `bson:"items" json:"items"`
	TotalPrice float64            `bson:"totalPrice" json:"total_price"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updated_at"`
}

// ComputeTotal returns the invariant total of the cart's lines.
func (c Cart) ComputeTotal() float64 {
	var total float64
	for _, it := range c.Items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}
