package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order lifecycle states.
const (
	OrderPending   = "pending"
	OrderAccepted  = "accepted"
	OrderRejected  = "rejected"
	OrderCancelled = "cancelled"
	OrderDelivered = "delivered"
	OrderCompleted = "completed"
)

// orderTransitions is the full set of legal status moves. Anything absent is
// rejected.
var orderTransitions = map[string][]string{
	OrderPending:   {OrderAccepted, OrderRejected, OrderCancelled},
	OrderAccepted:  {OrderDelivered, OrderCompleted},
	OrderDelivered: {OrderCompleted},
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Payment states on an order.
const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
	PaymentFailed  = "failed"
)

// Delivery is where the order goes. Filled from the checkout override or the
// buyer's profile, field by field.
type Delivery struct {
	Hostel string `bson:"hostel" json:"hostel"`
	Room   string `bson:"room" json:"room"`
}

// PaymentInfo records the gateway handles attached to an order.
type PaymentInfo struct {
	GatewayOrderID string `bson:"gatewayOrderId,omitempty" json:"gateway_order_id,omitempty"`
	PaymentID      string `bson:"paymentId,omitempty" json:"payment_id,omitempty"`
	Signature      string `bson:"signature,omitempty" json:"-"`
	Status         string `bson:"status" json:"status"`
}

// Order is one purchased line: a single listing, quantity and price snapshot.
// A checkout of n cart lines produces n orders sharing one VerificationCode.
// The code serializes on buyer-facing responses; seller-facing paths blank it
// before responding, since the seller proves possession of it at handoff.
type Order struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BuyerID          primitive.ObjectID `bson:"buyerId" json:"buyer_id"`
	SellerID         primitive.ObjectID `bson:"sellerId" json:"seller_id"`
	ListingID        primitive.ObjectID `bson:"listingId" json:"listing_id"`
	ProductName      string             `bson:"productName" json:"product_name"`
	Quantity         int                `bson:"quantity" json:"quantity"`
	TotalPrice       float64            `bson:"totalPrice" json:"total_price"`
	Delivery         Delivery           `bson:"delivery" json:"delivery"`
	Payment          PaymentInfo        `bson:"payment" json:"payment"`
	Status           string             `bson:"status" json:"status"`
	VerificationCode string             `bson:"verificationCode,omitempty" json:"verification_code,omitempty"`
	IsVerified       bool               `bson:"isVerified" json:"is_verified"`
	CreatedAt        time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updated_at"`
}
