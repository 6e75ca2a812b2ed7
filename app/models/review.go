package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is a buyer's rating of a fulfilled order. One review per order.
type Review struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderID   primitive.ObjectID `bson:"orderId" json:"order_id"`
	BuyerID   primitive.ObjectID `bson:"buyerId" json:"buyer_id"`
	ListingID primitive.ObjectID `bson:"listingId" json:"listing_id"`
	Rating    int                `bson:"rating" json:"rating"`
	Comment   string             `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"created_at"`
}
