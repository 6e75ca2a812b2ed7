package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/campuskart/app/models"
)

func newReviewFixture(orders ...*models.Order) (*ReviewService, *fakeReviewStore) {
	reviews := newFakeReviewStore()
	svc := &ReviewService{reviews: reviews, orders: newFakeOrderStore(orders...)}
	return svc, reviews
}

func TestReviewDeliveredOrder(t *testing.T) {
	buyerID := primitive.NewObjectID()
	listingID := primitive.NewObjectID()
	order := &models.Order{BuyerID: buyerID, ListingID: listingID, Status: models.OrderDelivered}
	svc, _ := newReviewFixture(order)

	review, err := svc.Create(context.Background(), buyerID, ReviewInput{
		OrderID: order.ID.Hex(),
		Rating:  5,
		Comment: "arrived hot",
	})
	require.NoError(t, err)
	assert.Equal(t, listingID, review.ListingID)
	assert.Equal(t, 5, review.Rating)

	got, err := svc.ForListing(context.Background(), listingID)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestReviewUndeliveredOrderConflicts(t *testing.T) {
	buyerID := primitive.NewObjectID()
	for _, status := range []string{models.OrderPending, models.OrderAccepted, models.OrderRejected, models.OrderCancelled} {
		order := &models.Order{BuyerID: buyerID, Status: status}
		svc, _ := newReviewFixture(order)

		_, err := svc.Create(context.Background(), buyerID, ReviewInput{OrderID: order.ID.Hex(), Rating: 4})
		require.ErrorIs(t, err, ErrConflict, "status %q must not be reviewable", status)
	}
}

func TestReviewCompletedOrderAllowed(t *testing.T) {
	buyerID := primitive.NewObjectID()
	order := &models.Order{BuyerID: buyerID, Status: models.OrderCompleted}
	svc, _ := newReviewFixture(order)

	_, err := svc.Create(context.Background(), buyerID, ReviewInput{OrderID: order.ID.Hex(), Rating: 3})
	require.NoError(t, err)
}

func TestReviewSomeoneElsesOrderForbidden(t *testing.T) {
	order := &models.Order{BuyerID: primitive.NewObjectID(), Status: models.OrderDelivered}
	svc, _ := newReviewFixture(order)

	_, err := svc.Create(context.Background(), primitive.NewObjectID(), ReviewInput{OrderID: order.ID.Hex(), Rating: 4})
	require.ErrorIs(t, err, ErrForbidden)
}

func TestReviewTwiceConflicts(t *testing.T) {
	buyerID := primitive.NewObjectID()
	order := &models.Order{BuyerID: buyerID, Status: models.OrderDelivered}
	svc, _ := newReviewFixture(order)

	_, err := svc.Create(context.Background(), buyerID, ReviewInput{OrderID: order.ID.Hex(), Rating: 4})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), buyerID, ReviewInput{OrderID: order.ID.Hex(), Rating: 2})
	require.ErrorIs(t, err, ErrConflict)
}

func TestReviewUnknownOrder(t *testing.T) {
	svc, _ := newReviewFixture()

	_, err := svc.Create(context.Background(), primitive.NewObjectID(), ReviewInput{
		OrderID: primitive.NewObjectID().Hex(),
		Rating:  4,
	})
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Create(context.Background(), primitive.NewObjectID(), ReviewInput{OrderID: "junk", Rating: 4})
	require.ErrorIs(t, err, ErrValidation)
}
