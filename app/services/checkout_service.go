package services

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"strconv"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/campuskart/app/jobs"
	"github.com/shashiranjanraj/campuskart/app/models"
	"github.com/shashiranjanraj/campuskart/app/repositories"
	"github.com/shashiranjanraj/campuskart/pkg/collection"
	"github.com/shashiranjanraj/campuskart/pkg/logger"
	"github.com/shashiranjanraj/campuskart/pkg/metrics"
	"github.com/shashiranjanraj/campuskart/pkg/payment"
	"github.com/shashiranjanraj/campuskart/pkg/queue"
)

// SignatureVerifier proves a gateway payment is genuine.
type SignatureVerifier interface {
	VerifySignature(gatewayOrderID, gatewayPaymentID, signature string) bool
}

// PaymentGateway creates gateway orders ahead of the client-side widget.
type PaymentGateway interface {
	SignatureVerifier
	CreateOrder(ctx context.Context, amount int64, currency string) (payment.GatewayOrder, error)
}

// Notifier is the slice of NotificationService checkout needs.
type Notifier interface {
	Notify(ctx context.Context, recipientID primitive.ObjectID, typ, message string, orderID primitive.ObjectID) (models.Notification, error)
}

// CheckoutService converts a paid cart into orders. This is the busiest path
// in the system: signature check, address resolution, one order per cart
// line, per-seller notifications, then the cart is gone.
type CheckoutService struct {
	carts    CartStore
	orders   OrderStore
	listings ListingStore
	users    UserStore
	gateway  PaymentGateway
	notifier Notifier
	dispatch func(queue.Job) error
}

func NewCheckoutService() *CheckoutService {
	return &CheckoutService{
		carts:    repositories.NewCartRepository(),
		orders:   repositories.NewOrderRepository(),
		listings: repositories.NewListingRepository(),
		users:    repositories.NewUserRepository(),
		gateway:  payment.NewClient(),
		notifier: NewNotificationService(),
		dispatch: queue.Dispatch,
	}
}

// CreatePaymentOrder registers the cart total with the gateway and returns
// the opaque handle the payment widget needs. Amount is taken from the cart,
// never from the client.
func (s *CheckoutService) CreatePaymentOrder(ctx context.Context, userID primitive.ObjectID) (payment.GatewayOrder, error) {
	cart, err := s.carts.FindByUser(ctx, userID)
	if err != nil {
		return payment.GatewayOrder{}, err
	}
	if len(cart.Items) == 0 {
		return payment.GatewayOrder{}, E(ErrValidation, "cart is empty")
	}

	// Gateway amounts are minor units (paise). Rounded, not truncated:
	// 19.99 in float64 sits just under 1999/100 and must not charge 1998.
	amount := int64(math.Round(cart.TotalPrice * 100))
	return s.gateway.CreateOrder(ctx, amount, "INR")
}

// VerifyPayment checks a gateway signature without side effects.
func (s *CheckoutService) VerifyPayment(gatewayOrderID, paymentID, signature string) error {
	if !s.gateway.VerifySignature(gatewayOrderID, paymentID, signature) {
		return E(ErrPaymentVerification, "payment signature mismatch")
	}
	return nil
}

// CompleteInput carries the gateway handles and an optional delivery
// override.
type CompleteInput struct {
	GatewayOrderID string `json:"gateway_order_id" validate:"required"`
	PaymentID      string `json:"payment_id" validate:"required"`
	Signature      string `json:"signature" validate:"required"`
	Hostel         string `json:"hostel"`
	Room           string `json:"room"`
}

// Complete is the payment-reconciliation step. The signature is checked
// before anything else touches the database; a forgery leaves zero traces.
// After that the money is already captured, so per-line problems (a listing
// short on stock, a failed email) are logged and absorbed rather than
// failing the batch.
func (s *CheckoutService) Complete(ctx context.Context, buyer models.User, in CompleteInput) ([]models.Order, error) {
	if !s.gateway.VerifySignature(in.GatewayOrderID, in.PaymentID, in.Signature) {
		metrics.CheckoutBatches.WithLabelValues("signature_rejected").Inc()
		return nil, E(ErrPaymentVerification, "payment signature mismatch")
	}

	cart, err := s.carts.FindByUser(ctx, buyer.ID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, E(ErrValidation, "cart is empty")
	}

	delivery := resolveDelivery(in.Hostel, in.Room, buyer)

	// One shared handoff code for the whole batch; the buyer shows a single
	// number at pickup no matter how many sellers are involved.
	code := strconv.Itoa(rand.Intn(900000) + 100000)

	orders := make([]*models.Order, 0, len(cart.Items))
	for _, item := range cart.Items {
		sellerID := s.takeStock(ctx, item)

		orders = append(orders, &models.Order{
			BuyerID:     buyer.ID,
			SellerID:    sellerID,
			ListingID:   item.ListingID,
			ProductName: item.Name,
			Quantity:    item.Quantity,
			TotalPrice:  item.Price * float64(item.Quantity),
			Delivery:    delivery,
			Payment: models.PaymentInfo{
				GatewayOrderID: in.GatewayOrderID,
				PaymentID:      in.PaymentID,
				Signature:      in.Signature,
				Status:         models.PaymentPaid,
			},
			Status:           models.OrderPending,
			VerificationCode: code,
		})
	}

	if err := s.orders.CreateMany(ctx, orders); err != nil {
		metrics.CheckoutBatches.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.OrdersCreated.WithLabelValues("checkout").Add(float64(len(orders)))

	s.notifySellers(ctx, buyer, orders)

	if err := s.carts.DeleteByUser(ctx, buyer.ID); err != nil {
		logger.Error("checkout: clear cart failed", "buyer", buyer.ID.Hex(), "error", err)
	}

	metrics.CheckoutBatches.WithLabelValues("completed").Inc()

	result := make([]models.Order, len(orders))
	for i, o := range orders {
		result[i] = *o
	}
	return result, nil
}

// takeStock decrements the line's listing and returns its seller. Payment is
// captured by now, so a missing listing or a shortfall only logs; the order
// is created regardless and the seller sorts it out with the buyer.
func (s *CheckoutService) takeStock(ctx context.Context, item models.CartItem) primitive.ObjectID {
	listing, err := s.listings.FindByID(ctx, item.ListingID)
	if err != nil {
		logger.Error("checkout: listing lookup failed",
			"listing", item.ListingID.Hex(), "error", err)
		return primitive.NilObjectID
	}

	ok, err := s.listings.DecrementStock(ctx, item.ListingID, item.Quantity)
	if err != nil {
		logger.Error("checkout: stock decrement failed",
			"listing", item.ListingID.Hex(), "error", err)
	} else if !ok {
		metrics.StockConflicts.Inc()
		logger.Warn("checkout: stock short after payment",
			"listing", item.ListingID.Hex(), "wanted", item.Quantity, "have", listing.Stock)
	}
	return listing.SellerID
}

// notifySellers groups the batch by seller and sends exactly one in-app
// notification plus one email job per seller. Failures here never unwind the
// orders.
func (s *CheckoutService) notifySellers(ctx context.Context, buyer models.User, orders []*models.Order) {
	bySeller := collection.GroupBy(orders, func(o *models.Order) primitive.ObjectID {
		return o.SellerID
	})

	for sellerID, sellerOrders := range bySeller {
		if sellerID.IsZero() {
			continue
		}

		amount := collection.Reduce(sellerOrders, 0.0, func(sum float64, o *models.Order) float64 {
			return sum + o.TotalPrice
		})

		msg := fmt.Sprintf("%s placed %d order(s) totalling ₹%.2f",
			buyer.Name, len(sellerOrders), amount)
		if _, err := s.notifier.Notify(ctx, sellerID, models.NotifyOrder, msg, sellerOrders[0].ID); err != nil {
			logger.Error("checkout: seller notification failed",
				"seller", sellerID.Hex(), "error", err)
		}

		seller, err := s.users.FindByID(ctx, sellerID)
		if err != nil {
			logger.Error("checkout: seller lookup for email failed",
				"seller", sellerID.Hex(), "error", err)
			continue
		}

		job := jobs.SellerOrderEmail{
			SellerEmail: seller.Email,
			SellerName:  seller.Name,
			BuyerName:   buyer.Name,
			Amount:      amount,
			Lines: collection.Map(sellerOrders, func(o *models.Order) jobs.OrderLine {
				return jobs.OrderLine{
					ProductName: o.ProductName,
					Quantity:    o.Quantity,
					Total:       o.TotalPrice,
				}
			}),
		}
		if err := s.dispatch(job); err != nil {
			logger.Error("checkout: email job dispatch failed",
				"seller", sellerID.Hex(), "error", err)
		}
	}
}
