package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/campuskart/app/models"
	"github.com/shashiranjanraj/campuskart/pkg/auth"
)

func TestSignupAndLogin(t *testing.T) {
	users := newFakeUserStore()
	svc := &AuthService{users: users}

	pair, err := svc.Signup(context.Background(), SignupInput{
		Name:     "Asha",
		Email:    "asha@example.com",
		Password: "secret-password",
		Hostel:   "Hostel A",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, pair.Token)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, models.RoleUser, pair.User.Role)
	assert.Empty(t, pair.User.SellerStatus)

	// The stored password is a hash, not the plaintext.
	stored, err := users.FindByEmail(context.Background(), "asha@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "secret-password", stored.Password)
	assert.True(t, auth.CheckPassword(stored.Password, "secret-password"))

	pair, err = svc.Login(context.Background(), "asha@example.com", "secret-password")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.Token)

	_, err = svc.Login(context.Background(), "asha@example.com", "wrong")
	require.ErrorIs(t, err, ErrUnauthenticated)

	_, err = svc.Login(context.Background(), "nobody@example.com", "whatever")
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestSignupSellerStartsPending(t *testing.T) {
	svc := &AuthService{users: newFakeUserStore()}

	pair, err := svc.Signup(context.Background(), SignupInput{
		Name:     "Ravi",
		Email:    "ravi@example.com",
		Password: "secret-password",
		Role:     models.RoleSeller,
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleSeller, pair.User.Role)
	assert.Equal(t, models.SellerPending, pair.User.SellerStatus)
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc := &AuthService{users: newFakeUserStore()}

	in := SignupInput{Name: "Asha", Email: "asha@example.com", Password: "secret-password"}
	_, err := svc.Signup(context.Background(), in)
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), in)
	require.ErrorIs(t, err, ErrConflict)
}

func TestLoginBannedAccount(t *testing.T) {
	users := newFakeUserStore()
	svc := &AuthService{users: users}

	_, err := svc.Signup(context.Background(), SignupInput{
		Name: "Asha", Email: "asha@example.com", Password: "secret-password",
	})
	require.NoError(t, err)

	stored, _ := users.FindByEmail(context.Background(), "asha@example.com")
	stored.Banned = true
	users.users[stored.ID] = stored

	_, err = svc.Login(context.Background(), "asha@example.com", "secret-password")
	require.ErrorIs(t, err, ErrForbidden)
}

func TestRefresh(t *testing.T) {
	users := newFakeUserStore()
	svc := &AuthService{users: users}

	pair, err := svc.Signup(context.Background(), SignupInput{
		Name: "Asha", Email: "asha@example.com", Password: "secret-password",
	})
	require.NoError(t, err)

	fresh, err := svc.Refresh(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, fresh.Token)
	assert.Equal(t, pair.User.ID, fresh.User.ID)

	_, err = svc.Refresh(context.Background(), "not-a-token")
	require.ErrorIs(t, err, ErrUnauthenticated)

	// A ban after issuance kills the refresh token too.
	banned := pair.User
	banned.Banned = true
	users.users[banned.ID] = banned
	_, err = svc.Refresh(context.Background(), pair.RefreshToken)
	require.ErrorIs(t, err, ErrForbidden)
}

func TestResolveIdentity(t *testing.T) {
	users := newFakeUserStore()
	svc := &AuthService{users: users}

	active := models.User{ID: primitive.NewObjectID(), Role: models.RoleUser}
	banned := models.User{ID: primitive.NewObjectID(), Role: models.RoleUser, Banned: true}
	users.users[active.ID] = active
	users.users[banned.ID] = banned

	ident, err := svc.ResolveIdentity(context.Background(), active.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, active.ID.Hex(), ident.UserID)

	_, err = svc.ResolveIdentity(context.Background(), banned.ID.Hex())
	require.ErrorIs(t, err, ErrUnauthenticated)

	_, err = svc.ResolveIdentity(context.Background(), primitive.NewObjectID().Hex())
	require.ErrorIs(t, err, ErrUnauthenticated)

	_, err = svc.ResolveIdentity(context.Background(), "not-an-object-id")
	require.ErrorIs(t, err, ErrUnauthenticated)
}
