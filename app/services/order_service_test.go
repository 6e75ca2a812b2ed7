package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/campuskart/app/models"
)

func newOrderService(orders *fakeOrderStore, listings *fakeListingStore, products *fakeProductStore, users *fakeUserStore) *OrderService {
	if products == nil {
		products = newFakeProductStore()
	}
	if users == nil {
		users = newFakeUserStore()
	}
	return &OrderService{orders: orders, listings: listings, products: products, users: users}
}

func TestPlaceOrder(t *testing.T) {
	buyer := models.User{ID: primitive.NewObjectID(), Hostel: "Hostel B", Room: "202"}
	sellerID := primitive.NewObjectID()
	product := models.Product{ID: primitive.NewObjectID(), Name: "Veg Sandwich"}
	listing := models.Listing{
		ID: primitive.NewObjectID(), ProductID: product.ID, SellerID: sellerID,
		Price: 50, Stock: 10,
	}

	orders := newFakeOrderStore()
	listings := newFakeListingStore(listing)
	svc := newOrderService(orders, listings, newFakeProductStore(product), nil)

	order, err := svc.Place(context.Background(), buyer, PlaceInput{
		ListingID: listing.ID.Hex(),
		Quantity:  3,
	})
	require.NoError(t, err)

	assert.Equal(t, 150.0, order.TotalPrice)
	assert.Equal(t, "Veg Sandwich", order.ProductName)
	assert.Equal(t, sellerID, order.SellerID)
	assert.Equal(t, models.OrderPending, order.Status)
	assert.Equal(t, models.PaymentPending, order.Payment.Status)
	assert.Equal(t, "Hostel B", order.Delivery.Hostel)

	got, _ := listings.FindByID(context.Background(), listing.ID)
	assert.Equal(t, 7, got.Stock)
}

func TestPlaceOrderInsufficientStock(t *testing.T) {
	buyer := models.User{ID: primitive.NewObjectID()}
	listing := models.Listing{ID: primitive.NewObjectID(), SellerID: primitive.NewObjectID(), Price: 50, Stock: 2}

	orders := newFakeOrderStore()
	listings := newFakeListingStore(listing)
	svc := newOrderService(orders, listings, nil, nil)

	_, err := svc.Place(context.Background(), buyer, PlaceInput{
		ListingID: listing.ID.Hex(),
		Quantity:  3,
	})
	require.ErrorIs(t, err, ErrConflict)

	// No order, no decrement.
	assert.Empty(t, orders.orders)
	got, _ := listings.FindByID(context.Background(), listing.ID)
	assert.Equal(t, 2, got.Stock)
}

func TestPlaceOrderUnknownListing(t *testing.T) {
	svc := newOrderService(newFakeOrderStore(), newFakeListingStore(), nil, nil)

	_, err := svc.Place(context.Background(), models.User{ID: primitive.NewObjectID()}, PlaceInput{
		ListingID: primitive.NewObjectID().Hex(),
		Quantity:  1,
	})
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Place(context.Background(), models.User{}, PlaceInput{ListingID: "nonsense", Quantity: 1})
	require.ErrorIs(t, err, ErrValidation)
}

func TestPlaceOrderRestoresStockWhenInsertFails(t *testing.T) {
	buyer := models.User{ID: primitive.NewObjectID()}
	listing := models.Listing{ID: primitive.NewObjectID(), SellerID: primitive.NewObjectID(), Price: 50, Stock: 10}

	orders := newFakeOrderStore()
	orders.createErr = errors.New("insert failed")
	listings := newFakeListingStore(listing)
	svc := newOrderService(orders, listings, nil, nil)

	_, err := svc.Place(context.Background(), buyer, PlaceInput{
		ListingID: listing.ID.Hex(),
		Quantity:  3,
	})
	require.Error(t, err)

	// The decrement was compensated; no units are stranded.
	got, _ := listings.FindByID(context.Background(), listing.ID)
	assert.Equal(t, 10, got.Stock)
	assert.Empty(t, orders.orders)
}

func TestUpdateStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to string
		ok       bool
	}{
		{models.OrderPending, models.OrderAccepted, true},
		{models.OrderPending, models.OrderRejected, true},
		{models.OrderPending, models.OrderCancelled, true},
		{models.OrderPending, models.OrderDelivered, false},
		{models.OrderPending, models.OrderCompleted, false},
		{models.OrderAccepted, models.OrderDelivered, true},
		{models.OrderAccepted, models.OrderCompleted, true},
		{models.OrderAccepted, models.OrderPending, false},
		{models.OrderAccepted, models.OrderRejected, false},
		{models.OrderDelivered, models.OrderCompleted, true},
		{models.OrderDelivered, models.OrderCancelled, false},
		{models.OrderCompleted, models.OrderPending, false},
		{models.OrderRejected, models.OrderAccepted, false},
		{models.OrderCancelled, models.OrderAccepted, false},
	}

	for _, tc := range cases {
		sellerID := primitive.NewObjectID()
		order := &models.Order{SellerID: sellerID, Status: tc.from}
		orders := newFakeOrderStore(order)
		svc := newOrderService(orders, newFakeListingStore(), nil, nil)

		updated, err := svc.UpdateStatus(context.Background(), sellerID, order.ID, tc.to)
		if tc.ok {
			require.NoError(t, err, "%s -> %s should be allowed", tc.from, tc.to)
			assert.Equal(t, tc.to, updated.Status)
		} else {
			require.ErrorIs(t, err, ErrValidation, "%s -> %s should be rejected", tc.from, tc.to)
		}
	}
}

func TestUpdateStatusWrongSeller(t *testing.T) {
	order := &models.Order{SellerID: primitive.NewObjectID(), Status: models.OrderPending}
	svc := newOrderService(newFakeOrderStore(order), newFakeListingStore(), nil, nil)

	_, err := svc.UpdateStatus(context.Background(), primitive.NewObjectID(), order.ID, models.OrderAccepted)
	require.ErrorIs(t, err, ErrForbidden)
}

func TestVerifyHandoff(t *testing.T) {
	sellerID := primitive.NewObjectID()
	order := &models.Order{SellerID: sellerID, Status: models.OrderAccepted, VerificationCode: "123456"}
	orders := newFakeOrderStore(order)
	svc := newOrderService(orders, newFakeListingStore(), nil, nil)

	_, err := svc.VerifyHandoff(context.Background(), sellerID, order.ID, "000000")
	require.ErrorIs(t, err, ErrValidation)

	verified, err := svc.VerifyHandoff(context.Background(), sellerID, order.ID, "123456")
	require.NoError(t, err)
	assert.True(t, verified.IsVerified)
	assert.Empty(t, verified.VerificationCode, "a spent code never rides back to the seller")

	// A second verification attempt conflicts.
	_, err = svc.VerifyHandoff(context.Background(), sellerID, order.ID, "123456")
	require.ErrorIs(t, err, ErrConflict)
}

func TestVerifyHandoffWrongSeller(t *testing.T) {
	order := &models.Order{SellerID: primitive.NewObjectID(), VerificationCode: "123456"}
	svc := newOrderService(newFakeOrderStore(order), newFakeListingStore(), nil, nil)

	_, err := svc.VerifyHandoff(context.Background(), primitive.NewObjectID(), order.ID, "123456")
	require.ErrorIs(t, err, ErrForbidden)
}

func TestHandoffCodeVisibility(t *testing.T) {
	buyerID := primitive.NewObjectID()
	sellerID := primitive.NewObjectID()
	order := &models.Order{
		BuyerID: buyerID, SellerID: sellerID,
		Status: models.OrderPending, VerificationCode: "654321",
	}
	orders := newFakeOrderStore(order)
	svc := newOrderService(orders, newFakeListingStore(), nil, nil)

	// The buyer reads the code off their own order list.
	mine, err := svc.MyOrders(context.Background(), buyerID, 1, 20)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "654321", mine[0].VerificationCode)

	// The seller's views never carry it.
	incoming, err := svc.SellerOrders(context.Background(), sellerID, 1, 20)
	require.NoError(t, err)
	require.Len(t, incoming, 1)
	assert.Empty(t, incoming[0].VerificationCode)

	updated, err := svc.UpdateStatus(context.Background(), sellerID, order.ID, models.OrderAccepted)
	require.NoError(t, err)
	assert.Empty(t, updated.VerificationCode)

	// Blanking the responses must not blank the stored code; the handoff
	// still verifies against it.
	verified, err := svc.VerifyHandoff(context.Background(), sellerID, order.ID, "654321")
	require.NoError(t, err)
	assert.True(t, verified.IsVerified)
}

func TestResolveDelivery(t *testing.T) {
	buyer := models.User{Hostel: "Hostel C", Room: "303"}

	d := resolveDelivery("", "", buyer)
	assert.Equal(t, models.Delivery{Hostel: "Hostel C", Room: "303"}, d)

	d = resolveDelivery("Hostel D", "", buyer)
	assert.Equal(t, models.Delivery{Hostel: "Hostel D", Room: "303"}, d)

	d = resolveDelivery("", "404", models.User{})
	assert.Equal(t, models.Delivery{Hostel: "Not provided", Room: "404"}, d)
}
