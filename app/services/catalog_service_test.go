package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/campuskart/app/models"
)

func newCatalogFixture(products []models.Product, listings []models.Listing) (*CatalogService, *fakeListingStore) {
	ls := newFakeListingStore(listings...)
	svc := &CatalogService{products: newFakeProductStore(products...), listings: ls}
	return svc, ls
}

func TestCreateListing(t *testing.T) {
	sellerID := primitive.NewObjectID()
	product := models.Product{ID: primitive.NewObjectID(), Name: "Maggi", Hostel: "Hostel A"}
	svc, listings := newCatalogFixture([]models.Product{product}, nil)

	listing, err := svc.CreateListing(context.Background(), sellerID, CreateListingInput{
		ProductID: product.ID.Hex(),
		Price:     25,
		Stock:     12,
	})
	require.NoError(t, err)
	assert.Equal(t, sellerID, listing.SellerID)
	assert.Equal(t, "Hostel A", listing.Hostel, "hostel comes from the product")
	assert.Len(t, listings.listings, 1)
}

func TestCreateListingDuplicate(t *testing.T) {
	sellerID := primitive.NewObjectID()
	product := models.Product{ID: primitive.NewObjectID(), Name: "Maggi"}
	svc, _ := newCatalogFixture([]models.Product{product}, []models.Listing{
		{ID: primitive.NewObjectID(), ProductID: product.ID, SellerID: sellerID, Price: 20, Stock: 5},
	})

	_, err := svc.CreateListing(context.Background(), sellerID, CreateListingInput{
		ProductID: product.ID.Hex(),
		Price:     25,
	})
	require.ErrorIs(t, err, ErrConflict)
}

func TestCreateListingUnknownProduct(t *testing.T) {
	svc, _ := newCatalogFixture(nil, nil)

	_, err := svc.CreateListing(context.Background(), primitive.NewObjectID(), CreateListingInput{
		ProductID: primitive.NewObjectID().Hex(),
		Price:     25,
	})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAdjustListing(t *testing.T) {
	sellerID := primitive.NewObjectID()
	listing := models.Listing{ID: primitive.NewObjectID(), SellerID: sellerID, Price: 20, Stock: 5}
	svc, listings := newCatalogFixture(nil, []models.Listing{listing})

	price := 30.0
	updated, err := svc.AdjustListing(context.Background(), sellerID, listing.ID, AdjustListingInput{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, 30.0, updated.Price)
	assert.Equal(t, 5, updated.Stock, "stock untouched when nil")

	stock := 0
	updated, err = svc.AdjustListing(context.Background(), sellerID, listing.ID, AdjustListingInput{Stock: &stock})
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Stock)

	got, _ := listings.FindByID(context.Background(), listing.ID)
	assert.Equal(t, 30.0, got.Price)
	assert.Equal(t, 0, got.Stock)
}

func TestAdjustListingWrongSeller(t *testing.T) {
	listing := models.Listing{ID: primitive.NewObjectID(), SellerID: primitive.NewObjectID(), Price: 20}
	svc, _ := newCatalogFixture(nil, []models.Listing{listing})

	price := 30.0
	_, err := svc.AdjustListing(context.Background(), primitive.NewObjectID(), listing.ID, AdjustListingInput{Price: &price})
	require.ErrorIs(t, err, ErrForbidden)
}

func TestPublicCatalogSkipsOutOfStock(t *testing.T) {
	sellerID := primitive.NewObjectID()
	inStock := models.Listing{ID: primitive.NewObjectID(), SellerID: sellerID, Price: 20, Stock: 3, Hostel: "Hostel A"}
	soldOut := models.Listing{ID: primitive.NewObjectID(), SellerID: sellerID, Price: 20, Stock: 0, Hostel: "Hostel A"}
	svc, _ := newCatalogFixture(nil, []models.Listing{inStock, soldOut})

	views, err := svc.PublicCatalog(context.Background(), "Hostel A")
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, inStock.ID, views[0].ID)
}
