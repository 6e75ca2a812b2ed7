package services

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/campuskart/app/models"
	"github.com/shashiranjanraj/campuskart/app/notifications"
	"github.com/shashiranjanraj/campuskart/app/repositories"
	"github.com/shashiranjanraj/campuskart/pkg/logger"
	"github.com/shashiranjanraj/campuskart/pkg/notification"
)

// RequestStore is the slice of the product_requests repository moderation
// needs.
type RequestStore interface {
	Create(ctx context.Context, req *models.ProductRequest) error
	FindByID(ctx context.Context, id primitive.ObjectID) (models.ProductRequest, error)
	ListBySeller(ctx context.Context, sellerID primitive.ObjectID) ([]models.ProductRequest, error)
	ListByStatus(ctx context.Context, status string) ([]models.ProductRequest, error)
	Resolve(ctx context.Context, id primitive.ObjectID, status string) (bool, error)
}

// UserAdminStore extends the user lookups with field patches for ban and
// seller verification.
type UserAdminStore interface {
	UserStore
	SetFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error
}

// ModerationService covers the admin surface: product requests, bans and
// seller verification.
type ModerationService struct {
	requests RequestStore
	products ProductStore
	listings ListingStore
	users    UserAdminStore
	notifier Notifier
	mail     func(address string, n notification.Notification)
}

func NewModerationService() *ModerationService {
	return &ModerationService{
		requests: repositories.NewProductRequestRepository(),
		products: repositories.NewProductRepository(),
		listings: repositories.NewListingRepository(),
		users:    repositories.NewUserRepository(),
		notifier: NewNotificationService(),
		mail:     notification.SendAsync,
	}
}

// RequestInput is a seller's proposal for a new catalogue product.
type RequestInput struct {
	Name        string  `json:"name" validate:"required,min=2"`
	Category    string  `json:"category" validate:"required"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Hostel      string  `json:"hostel"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
}

// SubmitRequest files a pending product request for the seller.
func (s *ModerationService) SubmitRequest(ctx context.Context, sellerID primitive.ObjectID, in RequestInput) (models.ProductRequest, error) {
	req := models.ProductRequest{
		SellerID:    sellerID,
		Name:        in.Name,
		Category:    in.Category,
		Description: in.Description,
		Image:       in.Image,
		Hostel:      in.Hostel,
		Price:       in.Price,
		Stock:       in.Stock,
		Status:      models.RequestPending,
	}
	if err := s.requests.Create(ctx, &req); err != nil {
		return models.ProductRequest{}, err
	}
	return req, nil
}

// Requests lists product requests: admins see everything (optionally by
// status), sellers only their own.
func (s *ModerationService) Requests(ctx context.Context, viewerID primitive.ObjectID, role, status string) ([]models.ProductRequest, error) {
	if role == models.RoleAdmin {
		return s.requests.ListByStatus(ctx, status)
	}
	return s.requests.ListBySeller(ctx, viewerID)
}

// Approve turns a pending request into a Product plus the seller's initial
// Listing. The pending check is a conditional update, so two admins racing
// on the same request cannot both win.
func (s *ModerationService) Approve(ctx context.Context, requestID primitive.ObjectID) (models.Product, error) {
	req, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Product{}, E(ErrNotFound, "product request not found")
		}
		return models.Product{}, err
	}

	won, err := s.requests.Resolve(ctx, requestID, models.RequestApproved)
	if err != nil {
		return models.Product{}, err
	}
	if !won {
		return models.Product{}, E(ErrConflict, "request is no longer pending")
	}

	// Reuse the catalogue entry when another seller already sells this item
	// in the hostel.
	product, err := s.products.FindByName(ctx, req.Name, req.Hostel)
	if errors.Is(err, mongo.ErrNoDocuments) {
		product = models.Product{
			Name:        req.Name,
			Category:    req.Category,
			Description: req.Description,
			Image:       req.Image,
			Hostel:      req.Hostel,
		}
		if err := s.products.Create(ctx, &product); err != nil {
			return models.Product{}, err
		}
	} else if err != nil {
		return models.Product{}, err
	}

	listing := models.Listing{
		ProductID: product.ID,
		SellerID:  req.SellerID,
		Price:     req.Price,
		Stock:     req.Stock,
		Hostel:    req.Hostel,
	}
	if err := s.listings.Create(ctx, &listing); err != nil {
		return models.Product{}, err
	}

	s.notifySeller(ctx, req.SellerID, fmt.Sprintf("Your product request %q was approved", req.Name))
	return product, nil
}

// Reject marks a pending request rejected and tells the seller.
func (s *ModerationService) Reject(ctx context.Context, requestID primitive.ObjectID, reason string) error {
	req, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return E(ErrNotFound, "product request not found")
		}
		return err
	}

	won, err := s.requests.Resolve(ctx, requestID, models.RequestRejected)
	if err != nil {
		return err
	}
	if !won {
		return E(ErrConflict, "request is no longer pending")
	}

	msg := fmt.Sprintf("Your product request %q was rejected", req.Name)
	if reason != "" {
		msg += ": " + reason
	}
	s.notifySeller(ctx, req.SellerID, msg)
	return nil
}

// SetBanned flips a user's banned flag.
func (s *ModerationService) SetBanned(ctx context.Context, userID primitive.ObjectID, banned bool) error {
	if err := s.users.SetFields(ctx, userID, bson.M{"banned": banned}); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return E(ErrNotFound, "user not found")
		}
		return err
	}
	return nil
}

// VerifySeller marks a pending seller account as verified.
func (s *ModerationService) VerifySeller(ctx context.Context, userID primitive.ObjectID) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return E(ErrNotFound, "user not found")
		}
		return err
	}
	if user.Role != models.RoleSeller {
		return E(ErrValidation, "user is not a seller")
	}

	if err := s.users.SetFields(ctx, userID, bson.M{"sellerStatus": models.SellerVerified}); err != nil {
		return err
	}

	s.notifySeller(ctx, userID, "Your seller account has been verified")
	if s.mail != nil {
		s.mail(user.Email, &notifications.SellerVerified{Name: user.Name})
	}
	return nil
}

func (s *ModerationService) notifySeller(ctx context.Context, sellerID primitive.ObjectID, msg string) {
	if _, err := s.notifier.Notify(ctx, sellerID, models.NotifyModeration, msg, primitive.NilObjectID); err != nil {
		logger.Error("moderation: notify failed", "seller", sellerID.Hex(), "error", err)
	}
}
