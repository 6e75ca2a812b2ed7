package services

// In-memory store fakes shared by the service tests. Each fake implements
// just the store interface its services consume; state lives in plain maps
// and slices so assertions can poke at it directly.

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/campuskart/app/models"
	"github.com/shashiranjanraj/campuskart/pkg/payment"
	"github.com/shashiranjanraj/campuskart/pkg/queue"
)

// ─── users ───────────────────────────────────────────────────────────────────

type fakeUserStore struct {
	users map[primitive.ObjectID]models.User
}

func newFakeUserStore(users ...models.User) *fakeUserStore {
	f := &fakeUserStore{users: make(map[primitive.ObjectID]models.User)}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, mongo.ErrNoDocuments
}

func (f *fakeUserStore) FindByID(_ context.Context, id primitive.ObjectID) (models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return models.User{}, mongo.ErrNoDocuments
	}
	return u, nil
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserStore) SetFields(_ context.Context, id primitive.ObjectID, fields bson.M) error {
	u, ok := f.users[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	if v, ok := fields["banned"]; ok {
		u.Banned = v.(bool)
	}
	if v, ok := fields["sellerStatus"]; ok {
		u.SellerStatus = v.(string)
	}
	f.users[id] = u
	return nil
}

// ─── products / listings ─────────────────────────────────────────────────────

type fakeProductStore struct {
	products map[primitive.ObjectID]models.Product
}

func newFakeProductStore(products ...models.Product) *fakeProductStore {
	f := &fakeProductStore{products: make(map[primitive.ObjectID]models.Product)}
	for _, p := range products {
		f.products[p.ID] = p
	}
	return f
}

func (f *fakeProductStore) FindByID(_ context.Context, id primitive.ObjectID) (models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return models.Product{}, mongo.ErrNoDocuments
	}
	return p, nil
}

func (f *fakeProductStore) FindByName(_ context.Context, name, hostel string) (models.Product, error) {
	for _, p := range f.products {
		if p.Name == name && p.Hostel == hostel {
			return p, nil
		}
	}
	return models.Product{}, mongo.ErrNoDocuments
}

func (f *fakeProductStore) Create(_ context.Context, p *models.Product) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	f.products[p.ID] = *p
	return nil
}

func (f *fakeProductStore) All(_ context.Context, hostel string) ([]models.Product, error) {
	var out []models.Product
	for _, p := range f.products {
		if hostel == "" || p.Hostel == hostel {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeListingStore struct {
	listings map[primitive.ObjectID]models.Listing
}

func newFakeListingStore(listings ...models.Listing) *fakeListingStore {
	f := &fakeListingStore{listings: make(map[primitive.ObjectID]models.Listing)}
	for _, l := range listings {
		f.listings[l.ID] = l
	}
	return f
}

func (f *fakeListingStore) FindByID(_ context.Context, id primitive.ObjectID) (models.Listing, error) {
	l, ok := f.listings[id]
	if !ok {
		return models.Listing{}, mongo.ErrNoDocuments
	}
	return l, nil
}

func (f *fakeListingStore) FindByProductAndSeller(_ context.Context, productID, sellerID primitive.ObjectID) (models.Listing, error) {
	for _, l := range f.listings {
		if l.ProductID == productID && l.SellerID == sellerID {
			return l, nil
		}
	}
	return models.Listing{}, mongo.ErrNoDocuments
}

func (f *fakeListingStore) Create(_ context.Context, l *models.Listing) error {
	if l.ID.IsZero() {
		l.ID = primitive.NewObjectID()
	}
	f.listings[l.ID] = *l
	return nil
}

func (f *fakeListingStore) SetFields(_ context.Context, id primitive.ObjectID, fields bson.M) error {
	l, ok := f.listings[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	if v, ok := fields["price"]; ok {
		l.Price = v.(float64)
	}
	if v, ok := fields["stock"]; ok {
		l.Stock = v.(int)
	}
	f.listings[id] = l
	return nil
}

// DecrementStock mirrors the conditional update: it only succeeds when
// enough stock remains.
func (f *fakeListingStore) DecrementStock(_ context.Context, id primitive.ObjectID, qty int) (bool, error) {
	l, ok := f.listings[id]
	if !ok || l.Stock < qty {
		return false, nil
	}
	l.Stock -= qty
	f.listings[id] = l
	return true, nil
}

func (f *fakeListingStore) IncrementStock(_ context.Context, id primitive.ObjectID, qty int) error {
	l, ok := f.listings[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	l.Stock += qty
	f.listings[id] = l
	return nil
}

func (f *fakeListingStore) ListBySeller(_ context.Context, sellerID primitive.ObjectID) ([]models.ListingView, error) {
	var out []models.ListingView
	for _, l := range f.listings {
		if l.SellerID == sellerID {
			out = append(out, models.ListingView{Listing: l})
		}
	}
	return out, nil
}

func (f *fakeListingStore) ListPublic(_ context.Context, hostel string) ([]models.ListingView, error) {
	var out []models.ListingView
	for _, l := range f.listings {
		if l.Stock > 0 && (hostel == "" || l.Hostel == hostel) {
			out = append(out, models.ListingView{Listing: l})
		}
	}
	return out, nil
}

// ─── carts ───────────────────────────────────────────────────────────────────

type fakeCartStore struct {
	carts map[primitive.ObjectID]models.Cart
}

func newFakeCartStore(carts ...models.Cart) *fakeCartStore {
	f := &fakeCartStore{carts: make(map[primitive.ObjectID]models.Cart)}
	for _, c := range carts {
		f.carts[c.UserID] = c
	}
	return f
}

func (f *fakeCartStore) FindByUser(_ context.Context, userID primitive.ObjectID) (models.Cart, error) {
	c, ok := f.carts[userID]
	if !ok {
		return models.Cart{UserID: userID, Items: []models.CartItem{}}, nil
	}
	return c, nil
}

func (f *fakeCartStore) Save(_ context.Context, cart *models.Cart) error {
	f.carts[cart.UserID] = *cart
	return nil
}

func (f *fakeCartStore) DeleteByUser(_ context.Context, userID primitive.ObjectID) error {
	delete(f.carts, userID)
	return nil
}

// ─── orders ──────────────────────────────────────────────────────────────────

type fakeOrderStore struct {
	orders    map[primitive.ObjectID]*models.Order
	createErr error
}

func newFakeOrderStore(orders ...*models.Order) *fakeOrderStore {
	f := &fakeOrderStore{orders: make(map[primitive.ObjectID]*models.Order)}
	for _, o := range orders {
		if o.ID.IsZero() {
			o.ID = primitive.NewObjectID()
		}
		f.orders[o.ID] = o
	}
	return f
}

func (f *fakeOrderStore) Create(_ context.Context, o *models.Order) error {
	if f.createErr != nil {
		return f.createErr
	}
	o.ID = primitive.NewObjectID()
	o.CreatedAt = time.Now()
	f.orders[o.ID] = o
	return nil
}

func (f *fakeOrderStore) CreateMany(ctx context.Context, orders []*models.Order) error {
	for _, o := range orders {
		if err := f.Create(ctx, o); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeOrderStore) FindByID(_ context.Context, id primitive.ObjectID) (models.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return models.Order{}, mongo.ErrNoDocuments
	}
	return *o, nil
}

func (f *fakeOrderStore) SetStatus(_ context.Context, id primitive.ObjectID, status string) error {
	o, ok := f.orders[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	o.Status = status
	return nil
}

func (f *fakeOrderStore) SetVerified(_ context.Context, id primitive.ObjectID) error {
	o, ok := f.orders[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	o.IsVerified = true
	return nil
}

func (f *fakeOrderStore) ListByBuyer(_ context.Context, buyerID primitive.ObjectID, _, _ int64) ([]models.Order, error) {
	var out []models.Order
	for _, o := range f.orders {
		if o.BuyerID == buyerID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrderStore) ListBySeller(_ context.Context, sellerID primitive.ObjectID, _, _ int64) ([]models.Order, error) {
	var out []models.Order
	for _, o := range f.orders {
		if o.SellerID == sellerID {
			out = append(out, *o)
		}
	}
	return out, nil
}

// ─── notifications ───────────────────────────────────────────────────────────

type fakeNotificationStore struct {
	notes map[primitive.ObjectID]*models.Notification
}

func newFakeNotificationStore(notes ...*models.Notification) *fakeNotificationStore {
	f := &fakeNotificationStore{notes: make(map[primitive.ObjectID]*models.Notification)}
	for _, n := range notes {
		if n.ID.IsZero() {
			n.ID = primitive.NewObjectID()
		}
		f.notes[n.ID] = n
	}
	return f
}

func (f *fakeNotificationStore) Create(_ context.Context, n *models.Notification) error {
	n.ID = primitive.NewObjectID()
	n.CreatedAt = time.Now()
	f.notes[n.ID] = n
	return nil
}

func (f *fakeNotificationStore) ListByRecipient(_ context.Context, recipientID primitive.ObjectID, _, _ int64) ([]models.Notification, error) {
	var out []models.Notification
	for _, n := range f.notes {
		if n.RecipientID == recipientID {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (f *fakeNotificationStore) CountUnread(_ context.Context, recipientID primitive.ObjectID) (int64, error) {
	var count int64
	for _, n := range f.notes {
		if n.RecipientID == recipientID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationStore) MarkRead(_ context.Context, id, recipientID primitive.ObjectID) error {
	n, ok := f.notes[id]
	if !ok || n.RecipientID != recipientID {
		return mongo.ErrNoDocuments
	}
	n.Read = true
	return nil
}

func (f *fakeNotificationStore) MarkAllRead(_ context.Context, recipientID primitive.ObjectID) error {
	for _, n := range f.notes {
		if n.RecipientID == recipientID {
			n.Read = true
		}
	}
	return nil
}

func (f *fakeNotificationStore) Delete(_ context.Context, id, recipientID primitive.ObjectID) error {
	n, ok := f.notes[id]
	if !ok || n.RecipientID != recipientID {
		return mongo.ErrNoDocuments
	}
	delete(f.notes, id)
	return nil
}

func (f *fakeNotificationStore) PurgeReadBefore(_ context.Context, cutoff time.Time) (int64, error) {
	var purged int64
	for id, n := range f.notes {
		if n.Read && n.CreatedAt.Before(cutoff) {
			delete(f.notes, id)
			purged++
		}
	}
	return purged, nil
}

// ─── product requests ────────────────────────────────────────────────────────

type fakeRequestStore struct {
	requests map[primitive.ObjectID]*models.ProductRequest
}

func newFakeRequestStore(requests ...*models.ProductRequest) *fakeRequestStore {
	f := &fakeRequestStore{requests: make(map[primitive.ObjectID]*models.ProductRequest)}
	for _, r := range requests {
		if r.ID.IsZero() {
			r.ID = primitive.NewObjectID()
		}
		f.requests[r.ID] = r
	}
	return f
}

func (f *fakeRequestStore) Create(_ context.Context, req *models.ProductRequest) error {
	req.ID = primitive.NewObjectID()
	f.requests[req.ID] = req
	return nil
}

func (f *fakeRequestStore) FindByID(_ context.Context, id primitive.ObjectID) (models.ProductRequest, error) {
	r, ok := f.requests[id]
	if !ok {
		return models.ProductRequest{}, mongo.ErrNoDocuments
	}
	return *r, nil
}

func (f *fakeRequestStore) ListBySeller(_ context.Context, sellerID primitive.ObjectID) ([]models.ProductRequest, error) {
	var out []models.ProductRequest
	for _, r := range f.requests {
		if r.SellerID == sellerID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRequestStore) ListByStatus(_ context.Context, status string) ([]models.ProductRequest, error) {
	var out []models.ProductRequest
	for _, r := range f.requests {
		if status == "" || r.Status == status {
			out = append(out, *r)
		}
	}
	return out, nil
}

// Resolve mirrors the conditional update: only a pending request flips.
func (f *fakeRequestStore) Resolve(_ context.Context, id primitive.ObjectID, status string) (bool, error) {
	r, ok := f.requests[id]
	if !ok || r.Status != models.RequestPending {
		return false, nil
	}
	r.Status = status
	return true, nil
}

// ─── reviews ─────────────────────────────────────────────────────────────────

type fakeReviewStore struct {
	reviews map[primitive.ObjectID]models.Review // keyed by order
}

func newFakeReviewStore() *fakeReviewStore {
	return &fakeReviewStore{reviews: make(map[primitive.ObjectID]models.Review)}
}

func (f *fakeReviewStore) Create(_ context.Context, review *models.Review) error {
	review.ID = primitive.NewObjectID()
	f.reviews[review.OrderID] = *review
	return nil
}

func (f *fakeReviewStore) FindByOrder(_ context.Context, orderID primitive.ObjectID) (models.Review, error) {
	r, ok := f.reviews[orderID]
	if !ok {
		return models.Review{}, mongo.ErrNoDocuments
	}
	return r, nil
}

func (f *fakeReviewStore) ListByListing(_ context.Context, listingID primitive.ObjectID) ([]models.Review, error) {
	var out []models.Review
	for _, r := range f.reviews {
		if r.ListingID == listingID {
			out = append(out, r)
		}
	}
	return out, nil
}

// ─── notifier / gateway / queue ──────────────────────────────────────────────

type fakeNotifier struct {
	sent []models.Notification
}

func (f *fakeNotifier) Notify(_ context.Context, recipientID primitive.ObjectID, typ, message string, orderID primitive.ObjectID) (models.Notification, error) {
	n := models.Notification{
		ID:          primitive.NewObjectID(),
		RecipientID: recipientID,
		Type:        typ,
		Message:     message,
		OrderID:     orderID,
	}
	f.sent = append(f.sent, n)
	return n, nil
}

// fakeGateway signs with a real HMAC client so tests exercise the same
// signature math as production, without any HTTP.
type fakeGateway struct {
	*payment.Client
	created []payment.GatewayOrder
}

func newFakeGateway(secret string) *fakeGateway {
	return &fakeGateway{Client: payment.NewClientWith("http://gateway.test", "key", secret)}
}

func (f *fakeGateway) CreateOrder(_ context.Context, amount int64, currency string) (payment.GatewayOrder, error) {
	order := payment.GatewayOrder{
		ID:       "order_" + primitive.NewObjectID().Hex(),
		Amount:   amount,
		Currency: currency,
		Status:   "created",
	}
	f.created = append(f.created, order)
	return order, nil
}

type jobRecorder struct {
	jobs []queue.Job
}

func (r *jobRecorder) dispatch(j queue.Job) error {
	r.jobs = append(r.jobs, j)
	return nil
}
