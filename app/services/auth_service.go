package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/campuskart/app/models"
	"github.com/shashiranjanraj/campuskart/app/repositories"
	"github.com/shashiranjanraj/campuskart/pkg/auth"
	"github.com/shashiranjanraj/campuskart/pkg/event"
	"github.com/shashiranjanraj/campuskart/pkg/middleware"
)

// UserStore is the slice of the users repository the auth service needs.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (models.User, error)
	Create(ctx context.Context, user *models.User) error
}

// AuthService signs users up and in.
type AuthService struct {
	users UserStore
}

func NewAuthService() *AuthService {
	return &AuthService{users: repositories.NewUserRepository()}
}

// SignupInput is the payload for account creation.
type SignupInput struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"nullable,in=user,seller"`
	Hostel   string `json:"hostel"`
	Room     string `json:"room"`
}

// TokenPair is what login and signup hand back to the client.
type TokenPair struct {
	Token        string      `json:"token"`
	RefreshToken string      `json:"refresh_token"`
	User         models.User `json:"user"`
}

// Signup creates an account. Seller signups start unverified and wait for an
// admin. A "user.registered" event fires so the welcome email can go out
// without coupling auth to mail.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (TokenPair, error) {
	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return TokenPair{}, E(ErrConflict, "an account with this email already exists")
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return TokenPair{}, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return TokenPair{}, err
	}

	role := in.Role
	if role == "" {
		role = models.RoleUser
	}

	user := models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: hash,
		Role:     role,
		Hostel:   in.Hostel,
		Room:     in.Room,
	}
	if role == models.RoleSeller {
		user.SellerStatus = models.SellerPending
	}

	if err := s.users.Create(ctx, &user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return TokenPair{}, E(ErrConflict, "an account with this email already exists")
		}
		return TokenPair{}, err
	}

	event.FireAsync("user.registered", user)

	return s.issueTokens(user)
}

// Login authenticates by email and password.
func (s *AuthService) Login(ctx context.Context, email, password string) (TokenPair, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return TokenPair{}, E(ErrUnauthenticated, "invalid email or password")
		}
		return TokenPair{}, err
	}

	if !auth.CheckPassword(user.Password, password) {
		return TokenPair{}, E(ErrUnauthenticated, "invalid email or password")
	}
	if user.Banned {
		return TokenPair{}, E(ErrForbidden, "this account has been banned")
	}

	return s.issueTokens(user)
}

// Refresh exchanges a valid refresh token for a fresh pair. The account is
// re-checked, so a ban or deletion since issuance cuts the session short.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	claims, err := auth.ValidateToken(refreshToken)
	if err != nil {
		return TokenPair{}, E(ErrUnauthenticated, "invalid refresh token")
	}

	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return TokenPair{}, E(ErrUnauthenticated, "invalid refresh token")
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return TokenPair{}, E(ErrUnauthenticated, "account no longer exists")
	}
	if user.Banned {
		return TokenPair{}, E(ErrForbidden, "this account has been banned")
	}

	return s.issueTokens(user)
}

func (s *AuthService) issueTokens(user models.User) (TokenPair, error) {
	token, err := auth.GenerateToken(user.ID.Hex(), user.Role)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := auth.GenerateRefreshToken(user.ID.Hex(), user.Role)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{Token: token, RefreshToken: refresh, User: user}, nil
}

// ResolveIdentity backs the auth middleware: a valid JWT whose user has been
// deleted or banned since issuance is still rejected.
func (s *AuthService) ResolveIdentity(ctx context.Context, userID string) (middleware.Identity, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return middleware.Identity{}, E(ErrUnauthenticated, "invalid token subject")
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return middleware.Identity{}, E(ErrUnauthenticated, "account no longer exists")
	}
	if user.Banned {
		return middleware.Identity{}, E(ErrUnauthenticated, "this account has been banned")
	}

	return middleware.Identity{UserID: user.ID.Hex(), Role: user.Role}, nil
}

// Profile returns the caller's own account.
func (s *AuthService) Profile(ctx context.Context, userID primitive.ObjectID) (models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, E(ErrNotFound, "account not found")
		}
		return models.User{}, err
	}
	return user, nil
}
