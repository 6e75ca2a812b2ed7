package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/campuskart/app/jobs"
	"github.com/shashiranjanraj/campuskart/app/models"
)

const testSecret = "test-gateway-secret"

type checkoutFixture struct {
	svc      *CheckoutService
	carts    *fakeCartStore
	orders   *fakeOrderStore
	listings *fakeListingStore
	users    *fakeUserStore
	gateway  *fakeGateway
	notifier *fakeNotifier
	recorder *jobRecorder
}

func newCheckoutFixture(buyer models.User, cart models.Cart, listings []models.Listing, sellers []models.User) *checkoutFixture {
	f := &checkoutFixture{
		carts:    newFakeCartStore(cart),
		orders:   newFakeOrderStore(),
		listings: newFakeListingStore(listings...),
		users:    newFakeUserStore(append(sellers, buyer)...),
		gateway:  newFakeGateway(testSecret),
		notifier: &fakeNotifier{},
		recorder: &jobRecorder{},
	}
	f.svc = &CheckoutService{
		carts:    f.carts,
		orders:   f.orders,
		listings: f.listings,
		users:    f.users,
		gateway:  f.gateway,
		notifier: f.notifier,
		dispatch: f.recorder.dispatch,
	}
	return f
}

func seller(name string) models.User {
	return models.User{
		ID:    primitive.NewObjectID(),
		Name:  name,
		Email: name + "@example.com",
		Role:  models.RoleSeller,
	}
}

func signedInput(gw *fakeGateway) CompleteInput {
	return CompleteInput{
		GatewayOrderID: "order_abc",
		PaymentID:      "pay_xyz",
		Signature:      gw.Sign("order_abc", "pay_xyz"),
	}
}

func TestCompleteCreatesOneOrderPerCartLine(t *testing.T) {
	buyer := models.User{ID: primitive.NewObjectID(), Name: "Asha", Hostel: "Hostel A", Room: "101"}
	s1, s2 := seller("ravi"), seller("meena")

	l1 := models.Listing{ID: primitive.NewObjectID(), SellerID: s1.ID, Price: 50, Stock: 10}
	l2 := models.Listing{ID: primitive.NewObjectID(), SellerID: s1.ID, Price: 20, Stock: 5}
	l3 := models.Listing{ID: primitive.NewObjectID(), SellerID: s2.ID, Price: 40, Stock: 8}

	cart := models.Cart{
		UserID: buyer.ID,
		Items: []models.CartItem{
			{ListingID: l1.ID, Name: "Sandwich", Price: 50, Quantity: 2},
			{ListingID: l2.ID, Name: "Maggi", Price: 20, Quantity: 1},
			{ListingID: l3.ID, Name: "Coffee", Price: 40, Quantity: 3},
		},
		TotalPrice: 240,
	}

	f := newCheckoutFixture(buyer, cart, []models.Listing{l1, l2, l3}, []models.User{s1, s2})

	orders, err := f.svc.Complete(context.Background(), buyer, signedInput(f.gateway))
	require.NoError(t, err)
	require.Len(t, orders, 3)

	code := orders[0].VerificationCode
	require.Len(t, code, 6)
	for _, o := range orders {
		assert.Equal(t, code, o.VerificationCode, "every order in the batch shares one code")
		assert.Equal(t, models.OrderPending, o.Status)
		assert.Equal(t, models.PaymentPaid, o.Payment.Status)
		assert.Equal(t, buyer.ID, o.BuyerID)
		assert.Equal(t, "Hostel A", o.Delivery.Hostel)
		assert.Equal(t, "101", o.Delivery.Room)
	}

	assert.Equal(t, 100.0, orders[0].TotalPrice)
	assert.Equal(t, 20.0, orders[1].TotalPrice)
	assert.Equal(t, 120.0, orders[2].TotalPrice)

	// Stock was taken per line.
	got, _ := f.listings.FindByID(context.Background(), l1.ID)
	assert.Equal(t, 8, got.Stock)
	got, _ = f.listings.FindByID(context.Background(), l3.ID)
	assert.Equal(t, 5, got.Stock)

	// Cart is gone.
	after, _ := f.carts.FindByUser(context.Background(), buyer.ID)
	assert.Empty(t, after.Items)
}

func TestCompleteResponseCarriesHandoffCode(t *testing.T) {
	buyer := models.User{ID: primitive.NewObjectID(), Name: "Asha", Hostel: "Hostel A"}
	s1 := seller("ravi")
	l1 := models.Listing{ID: primitive.NewObjectID(), SellerID: s1.ID, Price: 50, Stock: 10}
	cart := models.Cart{
		UserID:     buyer.ID,
		Items:      []models.CartItem{{ListingID: l1.ID, Name: "Sandwich", Price: 50, Quantity: 2}},
		TotalPrice: 100,
	}

	f := newCheckoutFixture(buyer, cart, []models.Listing{l1}, []models.User{s1})

	orders, err := f.svc.Complete(context.Background(), buyer, signedInput(f.gateway))
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Len(t, orders[0].VerificationCode, 6)

	// The checkout response is the buyer's only chance to learn the code, so
	// it must survive serialization.
	raw, err := json.Marshal(orders)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"verification_code":"`+orders[0].VerificationCode+`"`)
}

func TestCompleteNotifiesEachSellerOnce(t *testing.T) {
	buyer := models.User{ID: primitive.NewObjectID(), Name: "Asha", Hostel: "Hostel A"}
	s1, s2 := seller("ravi"), seller("meena")

	l1 := models.Listing{ID: primitive.NewObjectID(), SellerID: s1.ID, Price: 50, Stock: 10}
	l2 := models.Listing{ID: primitive.NewObjectID(), SellerID: s1.ID, Price: 20, Stock: 5}
	l3 := models.Listing{ID: primitive.NewObjectID(), SellerID: s2.ID, Price: 40, Stock: 8}

	cart := models.Cart{
		UserID: buyer.ID,
		Items: []models.CartItem{
			{ListingID: l1.ID, Name: "Sandwich", Price: 50, Quantity: 1},
			{ListingID: l2.ID, Name: "Maggi", Price: 20, Quantity: 2},
			{ListingID: l3.ID, Name: "Coffee", Price: 40, Quantity: 1},
		},
		TotalPrice: 130,
	}

	f := newCheckoutFixture(buyer, cart, []models.Listing{l1, l2, l3}, []models.User{s1, s2})

	_, err := f.svc.Complete(context.Background(), buyer, signedInput(f.gateway))
	require.NoError(t, err)

	// Two sellers, two notifications: s1's lines are aggregated into one.
	require.Len(t, f.notifier.sent, 2)
	recipients := map[primitive.ObjectID]bool{}
	for _, n := range f.notifier.sent {
		assert.Equal(t, models.NotifyOrder, n.Type)
		recipients[n.RecipientID] = true
	}
	assert.True(t, recipients[s1.ID])
	assert.True(t, recipients[s2.ID])

	// One email job per seller, with the aggregated amount.
	require.Len(t, f.recorder.jobs, 2)
	amounts := map[string]float64{}
	for _, j := range f.recorder.jobs {
		email := j.(jobs.SellerOrderEmail)
		amounts[email.SellerEmail] = email.Amount
	}
	assert.Equal(t, 90.0, amounts[s1.Email])
	assert.Equal(t, 40.0, amounts[s2.Email])
}

func TestCompleteRejectsForgedSignatureWithoutSideEffects(t *testing.T) {
	buyer := models.User{ID: primitive.NewObjectID(), Name: "Asha"}
	s1 := seller("ravi")
	l1 := models.Listing{ID: primitive.NewObjectID(), SellerID: s1.ID, Price: 50, Stock: 10}
	cart := models.Cart{
		UserID:     buyer.ID,
		Items:      []models.CartItem{{ListingID: l1.ID, Name: "Sandwich", Price: 50, Quantity: 2}},
		TotalPrice: 100,
	}

	f := newCheckoutFixture(buyer, cart, []models.Listing{l1}, []models.User{s1})

	in := signedInput(f.gateway)
	in.Signature = "deadbeef" + in.Signature[8:]

	_, err := f.svc.Complete(context.Background(), buyer, in)
	require.ErrorIs(t, err, ErrPaymentVerification)

	// Nothing moved: no orders, stock untouched, cart intact.
	assert.Empty(t, f.orders.orders)
	got, _ := f.listings.FindByID(context.Background(), l1.ID)
	assert.Equal(t, 10, got.Stock)
	after, _ := f.carts.FindByUser(context.Background(), buyer.ID)
	assert.Len(t, after.Items, 1)
	assert.Empty(t, f.notifier.sent)
}

func TestCompleteEmptyCartFails(t *testing.T) {
	buyer := models.User{ID: primitive.NewObjectID(), Name: "Asha"}
	f := newCheckoutFixture(buyer, models.Cart{UserID: buyer.ID}, nil, nil)

	_, err := f.svc.Complete(context.Background(), buyer, signedInput(f.gateway))
	require.ErrorIs(t, err, ErrValidation)
}

func TestCompleteAbsorbsStockShortfall(t *testing.T) {
	buyer := models.User{ID: primitive.NewObjectID(), Name: "Asha"}
	s1 := seller("ravi")
	// Only 1 unit left but the paid cart wants 3.
	l1 := models.Listing{ID: primitive.NewObjectID(), SellerID: s1.ID, Price: 50, Stock: 1}
	cart := models.Cart{
		UserID:     buyer.ID,
		Items:      []models.CartItem{{ListingID: l1.ID, Name: "Sandwich", Price: 50, Quantity: 3}},
		TotalPrice: 150,
	}

	f := newCheckoutFixture(buyer, cart, []models.Listing{l1}, []models.User{s1})

	orders, err := f.svc.Complete(context.Background(), buyer, signedInput(f.gateway))
	require.NoError(t, err, "payment is captured, the batch must not fail")
	require.Len(t, orders, 1)
	assert.Equal(t, s1.ID, orders[0].SellerID)

	// Stock never goes negative.
	got, _ := f.listings.FindByID(context.Background(), l1.ID)
	assert.Equal(t, 1, got.Stock)
}

func TestCreatePaymentOrderUsesCartTotal(t *testing.T) {
	buyer := models.User{ID: primitive.NewObjectID()}
	cart := models.Cart{
		UserID:     buyer.ID,
		Items:      []models.CartItem{{ListingID: primitive.NewObjectID(), Price: 62.5, Quantity: 2}},
		TotalPrice: 125,
	}
	f := newCheckoutFixture(buyer, cart, nil, nil)

	order, err := f.svc.CreatePaymentOrder(context.Background(), buyer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(12500), order.Amount, "amount is the cart total in paise")
	assert.Equal(t, "INR", order.Currency)
}

func TestCreatePaymentOrderRoundsPaise(t *testing.T) {
	// 19.99 * 100 lands at 1998.999... in float64; truncation would
	// undercharge by a paisa.
	buyer := models.User{ID: primitive.NewObjectID()}
	cart := models.Cart{
		UserID:     buyer.ID,
		Items:      []models.CartItem{{ListingID: primitive.NewObjectID(), Price: 19.99, Quantity: 1}},
		TotalPrice: 19.99,
	}
	f := newCheckoutFixture(buyer, cart, nil, nil)

	order, err := f.svc.CreatePaymentOrder(context.Background(), buyer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1999), order.Amount)
}

func TestCreatePaymentOrderEmptyCart(t *testing.T) {
	buyer := models.User{ID: primitive.NewObjectID()}
	f := newCheckoutFixture(buyer, models.Cart{UserID: buyer.ID}, nil, nil)

	_, err := f.svc.CreatePaymentOrder(context.Background(), buyer.ID)
	require.ErrorIs(t, err, ErrValidation)
}

func TestVerifyPayment(t *testing.T) {
	f := newCheckoutFixture(models.User{ID: primitive.NewObjectID()}, models.Cart{}, nil, nil)

	sig := f.gateway.Sign("order_1", "pay_1")
	require.NoError(t, f.svc.VerifyPayment("order_1", "pay_1", sig))
	require.ErrorIs(t, f.svc.VerifyPayment("order_1", "pay_1", "bogus"), ErrPaymentVerification)
	require.ErrorIs(t, f.svc.VerifyPayment("order_2", "pay_1", sig), ErrPaymentVerification)
}
