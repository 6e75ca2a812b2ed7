package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/campuskart/app/models"
)

func newCartFixture(products []models.Product, listings []models.Listing) (*CartService, *fakeCartStore) {
	carts := newFakeCartStore()
	svc := &CartService{
		carts:    carts,
		listings: newFakeListingStore(listings...),
		products: newFakeProductStore(products...),
	}
	return svc, carts
}

func TestCartAddSnapshotsAndTotals(t *testing.T) {
	userID := primitive.NewObjectID()
	product := models.Product{ID: primitive.NewObjectID(), Name: "Cold Coffee", Image: "coffee.png"}
	listing := models.Listing{ID: primitive.NewObjectID(), ProductID: product.ID, Price: 40, Stock: 10}

	svc, _ := newCartFixture([]models.Product{product}, []models.Listing{listing})

	cart, err := svc.Add(context.Background(), userID, AddInput{ListingID: listing.ID.Hex(), Quantity: 2})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)

	assert.Equal(t, "Cold Coffee", cart.Items[0].Name)
	assert.Equal(t, 40.0, cart.Items[0].Price)
	assert.Equal(t, "coffee.png", cart.Items[0].Image)
	assert.Equal(t, 80.0, cart.TotalPrice)

	// Adding the same listing again bumps the line, not the line count.
	cart, err = svc.Add(context.Background(), userID, AddInput{ListingID: listing.ID.Hex(), Quantity: 3})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.Equal(t, 200.0, cart.TotalPrice)
}

func TestCartTotalInvariant(t *testing.T) {
	userID := primitive.NewObjectID()
	p1 := models.Product{ID: primitive.NewObjectID(), Name: "Maggi"}
	p2 := models.Product{ID: primitive.NewObjectID(), Name: "Sandwich"}
	l1 := models.Listing{ID: primitive.NewObjectID(), ProductID: p1.ID, Price: 20, Stock: 10}
	l2 := models.Listing{ID: primitive.NewObjectID(), ProductID: p2.ID, Price: 50, Stock: 10}

	svc, _ := newCartFixture([]models.Product{p1, p2}, []models.Listing{l1, l2})

	check := func(cart models.Cart) {
		t.Helper()
		assert.Equal(t, cart.ComputeTotal(), cart.TotalPrice)
	}

	cart, err := svc.Add(context.Background(), userID, AddInput{ListingID: l1.ID.Hex(), Quantity: 2})
	require.NoError(t, err)
	check(cart)

	cart, err = svc.Add(context.Background(), userID, AddInput{ListingID: l2.ID.Hex(), Quantity: 1})
	require.NoError(t, err)
	check(cart)
	assert.Equal(t, 90.0, cart.TotalPrice)

	cart, err = svc.SetQuantity(context.Background(), userID, l1.ID, 5)
	require.NoError(t, err)
	check(cart)
	assert.Equal(t, 150.0, cart.TotalPrice)

	cart, err = svc.RemoveLine(context.Background(), userID, l2.ID)
	require.NoError(t, err)
	check(cart)
	assert.Equal(t, 100.0, cart.TotalPrice)
}

func TestCartSetQuantityZeroRemovesLine(t *testing.T) {
	userID := primitive.NewObjectID()
	product := models.Product{ID: primitive.NewObjectID(), Name: "Maggi"}
	listing := models.Listing{ID: primitive.NewObjectID(), ProductID: product.ID, Price: 20, Stock: 10}

	svc, _ := newCartFixture([]models.Product{product}, []models.Listing{listing})

	_, err := svc.Add(context.Background(), userID, AddInput{ListingID: listing.ID.Hex(), Quantity: 2})
	require.NoError(t, err)

	cart, err := svc.SetQuantity(context.Background(), userID, listing.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.TotalPrice)
}

func TestCartSetQuantityErrors(t *testing.T) {
	userID := primitive.NewObjectID()
	svc, _ := newCartFixture(nil, nil)

	_, err := svc.SetQuantity(context.Background(), userID, primitive.NewObjectID(), -1)
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.SetQuantity(context.Background(), userID, primitive.NewObjectID(), 2)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCartAddUnknownListing(t *testing.T) {
	svc, _ := newCartFixture(nil, nil)

	_, err := svc.Add(context.Background(), primitive.NewObjectID(), AddInput{
		ListingID: primitive.NewObjectID().Hex(),
		Quantity:  1,
	})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCartSnapshotSurvivesPriceChange(t *testing.T) {
	userID := primitive.NewObjectID()
	product := models.Product{ID: primitive.NewObjectID(), Name: "Sandwich"}
	listing := models.Listing{ID: primitive.NewObjectID(), ProductID: product.ID, Price: 50, Stock: 10}

	listings := newFakeListingStore(listing)
	svc := &CartService{
		carts:    newFakeCartStore(),
		listings: listings,
		products: newFakeProductStore(product),
	}

	cart, err := svc.Add(context.Background(), userID, AddInput{ListingID: listing.ID.Hex(), Quantity: 1})
	require.NoError(t, err)

	// Seller raises the price after the line was added.
	require.NoError(t, listings.SetFields(context.Background(), listing.ID, bson.M{"price": 80.0}))

	cart, err = svc.Get(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 50.0, cart.Items[0].Price, "cart keeps the add-time price")
	assert.Equal(t, 50.0, cart.TotalPrice)
}

func TestCartClear(t *testing.T) {
	userID := primitive.NewObjectID()
	product := models.Product{ID: primitive.NewObjectID(), Name: "Maggi"}
	listing := models.Listing{ID: primitive.NewObjectID(), ProductID: product.ID, Price: 20, Stock: 10}

	svc, carts := newCartFixture([]models.Product{product}, []models.Listing{listing})

	_, err := svc.Add(context.Background(), userID, AddInput{ListingID: listing.ID.Hex(), Quantity: 2})
	require.NoError(t, err)

	require.NoError(t, svc.Clear(context.Background(), userID))
	cart, _ := carts.FindByUser(context.Background(), userID)
	assert.Empty(t, cart.Items)
}
