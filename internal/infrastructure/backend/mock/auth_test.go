package mock

import (
	"context"
	"testing"

	"github.com/maxwelladwale/coltech/internal/domain/identity"
	"github.com/maxwelladwale/coltech/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func registration() identity.Registration {
	return identity.Registration{
		Email:    "Wanjiru@Example.com",
		Password: "s3cure-pass",
		FullName: "Wanjiru Kamau",
		Phone:    "+254700111222",
	}
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(bcrypt.MinCost)

	reg, err := svc.Register(ctx, registration())
	require.NoError(t, err)
	assert.Equal(t, "wanjiru@example.com", reg.User.Email)
	assert.Equal(t, "customer", reg.User.Role)
	assert.False(t, reg.User.IsEmailVerified())
	assert.Len(t, reg.Token, 64)

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Register(ctx, registration())
		assert.ErrorIs(t, err, identity.ErrEmailTaken)
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})

	t.Run("login with wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "wanjiru@example.com", "wrong-pass")
		assert.ErrorIs(t, err, identity.ErrInvalidCredentials)
	})

	t.Run("login with unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@example.com", "s3cure-pass")
		assert.ErrorIs(t, err, identity.ErrInvalidCredentials)
	})

	t.Run("login issues a fresh token", func(t *testing.T) {
		res, err := svc.Login(ctx, " WANJIRU@example.com ", "s3cure-pass")
		require.NoError(t, err)
		assert.NotEqual(t, reg.Token, res.Token)

		user, err := svc.GetCurrentUser(ctx, res.Token)
		require.NoError(t, err)
		assert.Equal(t, reg.User.ID, user.ID)
	})

	t.Run("weak password is rejected", func(t *testing.T) {
		r := registration()
		r.Email = "other@example.com"
		r.Password = "short"
		_, err := svc.Register(ctx, r)
		require.Error(t, err)
	})
}

func TestAuthService_LogoutAndVerification(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(bcrypt.MinCost)

	reg, err := svc.Register(ctx, registration())
	require.NoError(t, err)

	msg, err := svc.ResendVerification(ctx, reg.Token)
	require.NoError(t, err)
	assert.Contains(t, msg, "wanjiru@example.com")

	require.True(t, svc.VerifyEmail("wanjiru@example.com"))
	msg, err = svc.ResendVerification(ctx, reg.Token)
	require.NoError(t, err)
	assert.Equal(t, "Email already verified", msg)

	sent, err := svc.ResetPassword(ctx, "unknown@example.com")
	require.NoError(t, err)
	assert.True(t, sent)

	require.NoError(t, svc.Logout(ctx, reg.Token))
	_, err = svc.GetCurrentUser(ctx, reg.Token)
	assert.ErrorIs(t, err, shared.ErrUnauthorized)
	_, err = svc.ResendVerification(ctx, reg.Token)
	assert.ErrorIs(t, err, shared.ErrUnauthorized)
}
