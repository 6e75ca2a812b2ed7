package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/campuskart/app/models"
	"github.com/shashiranjanraj/campuskart/app/repositories"
	"github.com/shashiranjanraj/campuskart/pkg/logger"
	"github.com/shashiranjanraj/campuskart/pkg/metrics"
)

// OrderStore is the slice of the orders repository the order service needs.
type OrderStore interface {
	Create(ctx context.Context, o *models.Order) error
	CreateMany(ctx context.Context, orders []*models.Order) error
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Order, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status string) error
	SetVerified(ctx context.Context, id primitive.ObjectID) error
	ListByBuyer(ctx context.Context, buyerID primitive.ObjectID, page, limit int64) ([]models.Order, error)
	ListBySeller(ctx context.Context, sellerID primitive.ObjectID, page, limit int64) ([]models.Order, error)
}

// OrderService covers direct placement, status moves and handoff
// verification. Checkout batches live in CheckoutService.
type OrderService struct {
	orders   OrderStore
	listings ListingStore
	products ProductStore
	users    UserStore
}

func NewOrderService() *OrderService {
	return &OrderService{
		orders:   repositories.NewOrderRepository(),
		listings: repositories.NewListingRepository(),
		products: repositories.NewProductRepository(),
		users:    repositories.NewUserRepository(),
	}
}

// PlaceInput is a direct single-listing order.
type PlaceInput struct {
	ListingID string `json:"listing_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gte=1"`
	Hostel    string `json:"hostel"`
	Room      string `json:"room"`
}

// Place creates one pending order. Stock is taken atomically up front, so a
// concurrent buyer racing for the last units gets a conflict, not a negative
// stock count.
func (s *OrderService) Place(ctx context.Context, buyer models.User, in PlaceInput) (models.Order, error) {
	listingID, err := primitive.ObjectIDFromHex(in.ListingID)
	if err != nil {
		return models.Order{}, E(ErrValidation, "invalid listing id")
	}

	listing, err := s.listings.FindByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Order{}, E(ErrNotFound, "listing not found")
		}
		return models.Order{}, err
	}

	// Name lookup happens before stock is taken so a lookup failure cannot
	// leak a decrement. Missing catalogue documents only cost the name.
	product, err := s.products.FindByID(ctx, listing.ProductID)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return models.Order{}, err
	}

	ok, err := s.listings.DecrementStock(ctx, listingID, in.Quantity)
	if err != nil {
		return models.Order{}, err
	}
	if !ok {
		metrics.StockConflicts.Inc()
		return models.Order{}, E(ErrConflict, "insufficient stock")
	}

	order := models.Order{
		BuyerID:     buyer.ID,
		SellerID:    listing.SellerID,
		ListingID:   listingID,
		ProductName: product.Name,
		Quantity:    in.Quantity,
		TotalPrice:  listing.Price * float64(in.Quantity),
		Delivery:    resolveDelivery(in.Hostel, in.Room, buyer),
		Payment:     models.PaymentInfo{Status: models.PaymentPending},
		Status:      models.OrderPending,
	}
	if err := s.orders.Create(ctx, &order); err != nil {
		// The decrement already landed; give the units back so a failed
		// insert cannot strand stock.
		if restoreErr := s.listings.IncrementStock(ctx, listingID, in.Quantity); restoreErr != nil {
			logger.Error("orders: stock restore after failed insert",
				"listing", listingID.Hex(), "qty", in.Quantity, "error", restoreErr)
		}
		return models.Order{}, err
	}

	metrics.OrdersCreated.WithLabelValues("single").Inc()
	return order, nil
}

// UpdateStatus moves an order along its lifecycle. Only the listing's seller
// may move it, and only along the allowed edges.
func (s *OrderService) UpdateStatus(ctx context.Context, sellerID, orderID primitive.ObjectID, newStatus string) (models.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Order{}, E(ErrNotFound, "order not found")
		}
		return models.Order{}, err
	}
	if order.SellerID != sellerID {
		return models.Order{}, E(ErrForbidden, "this order belongs to another seller")
	}

	if !models.CanTransition(order.Status, newStatus) {
		return models.Order{}, E(ErrValidation, "cannot move order from %q to %q", order.Status, newStatus)
	}

	if err := s.orders.SetStatus(ctx, orderID, newStatus); err != nil {
		return models.Order{}, err
	}
	order.Status = newStatus
	order.VerificationCode = ""
	return order, nil
}

// VerifyHandoff consumes the buyer's 6-digit code at delivery time. The
// seller reads the code off the buyer's screen; a match proves the right
// person is collecting.
func (s *OrderService) VerifyHandoff(ctx context.Context, sellerID, orderID primitive.ObjectID, code string) (models.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Order{}, E(ErrNotFound, "order not found")
		}
		return models.Order{}, err
	}
	if order.SellerID != sellerID {
		return models.Order{}, E(ErrForbidden, "this order belongs to another seller")
	}
	if order.IsVerified {
		return models.Order{}, E(ErrConflict, "order is already verified")
	}
	if order.VerificationCode == "" || order.VerificationCode != code {
		return models.Order{}, E(ErrValidation, "incorrect verification code")
	}

	if err := s.orders.SetVerified(ctx, orderID); err != nil {
		return models.Order{}, err
	}
	order.IsVerified = true
	order.VerificationCode = ""
	return order, nil
}

// MyOrders lists the caller's purchases.
func (s *OrderService) MyOrders(ctx context.Context, buyerID primitive.ObjectID, page, limit int64) ([]models.Order, error) {
	return s.orders.ListByBuyer(ctx, buyerID, page, limit)
}

// SellerOrders lists the caller's incoming orders. The handoff code is the
// buyer's secret; it never rides along on the seller's view.
func (s *OrderService) SellerOrders(ctx context.Context, sellerID primitive.ObjectID, page, limit int64) ([]models.Order, error) {
	orders, err := s.orders.ListBySeller(ctx, sellerID, page, limit)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].VerificationCode = ""
	}
	return orders, nil
}

// resolveDelivery fills the delivery address field by field: the explicit
// value wins, then the buyer's profile, then "Not provided". Hostel and room
// fall back independently.
func resolveDelivery(hostel, room string, buyer models.User) models.Delivery {
	d := models.Delivery{Hostel: hostel, Room: room}
	if d.Hostel == "" {
		d.Hostel = buyer.Hostel
	}
	if d.Room == "" {
		d.Room = buyer.Room
	}
	if d.Hostel == "" {
		d.Hostel = "Not provided"
	}
	if d.Room == "" {
		d.Room = "Not provided"
	}
	return d
}
