package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification kinds.
const (
	NotifyOrder      = "order"
	NotifyModeration = "moderation"
	NotifyAccount    = "account"
)

// Notification is an in-app message for exactly one recipient. Creation is
// append-only and Read only ever flips false to true.
type Notification struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RecipientID primitive.ObjectID `bson:"recipientId" json:"recipient_id"`
	Type        string             `bson:"type" json:"type"`
	Message     string             `bson:"message" json:"message"`
	OrderID     primitive.ObjectID `bson:"orderId,omitempty" json:"order_id,omitempty"`
	Read        bool               `bson:"read" json:"read"`
	CreatedAt   time.Time          `bson:"createdAt" json:"created_at"`
}
