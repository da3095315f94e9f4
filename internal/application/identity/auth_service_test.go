package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/maxwelladwale/coltech/internal/domain/identity"
	"github.com/maxwelladwale/coltech/internal/domain/shared"
	"github.com/maxwelladwale/coltech/internal/infrastructure/auth"
	"github.com/maxwelladwale/coltech/internal/infrastructure/cache"
	"github.com/maxwelladwale/coltech/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockBackendAuth is a mock implementation of identity.AuthService
type MockBackendAuth struct {
	mock.Mock
}

func (m *MockBackendAuth) Login(ctx context.Context, email, password string) (*identity.AuthResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.AuthResult), args.Error(1)
}

func (m *MockBackendAuth) Register(ctx context.Context, reg identity.Registration) (*identity.AuthResult, error) {
	args := m.Called(ctx, reg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.AuthResult), args.Error(1)
}

func (m *MockBackendAuth) Logout(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockBackendAuth) GetCurrentUser(ctx context.Context, token string) (*identity.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockBackendAuth) ResetPassword(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockBackendAuth) ResendVerification(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

var testUser = identity.User{
	ID:       "user-42",
	Email:    "njeri@example.com",
	Phone:    "+254712000000",
	FullName: "Njeri Mwangi",
	Role:     "customer",
}

func createAuthService(t *testing.T, backend *MockBackendAuth) (*AuthService, *auth.StoreTokenBlacklist) {
	t.Helper()
	mem := cache.NewMemoryStore(0)
	t.Cleanup(func() { _ = mem.Close() })

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-32-characters-long",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "coltech-test",
	})
	blacklist := auth.NewStoreTokenBlacklist(mem)
	svc := NewAuthService(backend, jwtService, blacklist, cache.NewSessionStore(mem, "auth", 7*24*time.Hour), zap.NewNop())
	return svc, blacklist
}

func login(t *testing.T, svc *AuthService, backend *MockBackendAuth) *LoginResult {
	t.Helper()
	backend.On("Login", mock.Anything, "njeri@example.com", "s3cretpass").
		Return(&identity.AuthResult{User: testUser, Token: "backend-token-1"}, nil).Once()
	result, err := svc.Login(context.Background(), LoginInput{Email: " Njeri@Example.com ", Password: "s3cretpass"})
	require.NoError(t, err)
	return result
}

func TestAuthService_Login(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		backend := new(MockBackendAuth)
		svc, _ := createAuthService(t, backend)

		result := login(t, svc, backend)
		assert.NotEmpty(t, result.AccessToken)
		assert.NotEmpty(t, result.RefreshToken)
		assert.Equal(t, "Bearer", result.TokenType)
		assert.Equal(t, "user-42", result.User.ID)
		assert.False(t, result.User.EmailVerified)

		claims, err := svc.Authenticate(context.Background(), result.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "user-42", claims.UserID)
		assert.Equal(t, "Njeri Mwangi", claims.FullName)

		token, err := svc.BackendToken(context.Background(), claims.SessionID)
		require.NoError(t, err)
		assert.Equal(t, "backend-token-1", token)
		backend.AssertExpectations(t)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		backend := new(MockBackendAuth)
		svc, _ := createAuthService(t, backend)
		backend.On("Login", mock.Anything, "njeri@example.com", "wrong").Return(nil, identity.ErrInvalidCredentials)

		_, err := svc.Login(context.Background(), LoginInput{Email: "njeri@example.com", Password: "wrong"})
		assert.ErrorIs(t, err, identity.ErrInvalidCredentials)
	})
}

func TestAuthService_Register(t *testing.T) {
	backend := new(MockBackendAuth)
	svc, _ := createAuthService(t, backend)

	_, err := svc.Register(context.Background(), RegisterInput{Email: "a@b.co", Password: "short", FullName: "A", Phone: "1"})
	require.Error(t, err)
	backend.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)

	backend.On("Register", mock.Anything, mock.MatchedBy(func(r identity.Registration) bool {
		return r.Email == "njeri@example.com" && r.FullName == "Njeri Mwangi"
	})).Return(&identity.AuthResult{User: testUser, Token: "backend-token-2"}, nil)

	result, err := svc.Register(context.Background(), RegisterInput{
		Email:    "njeri@example.com",
		Password: "s3cretpass",
		FullName: "Njeri Mwangi",
		Phone:    "+254712000000",
	})
	require.NoError(t, err)
	assert.Equal(t, "njeri@example.com", result.User.Email)
}

func TestAuthService_Authenticate(t *testing.T) {
	backend := new(MockBackendAuth)
	svc, _ := createAuthService(t, backend)
	result := login(t, svc, backend)

	_, err := svc.Authenticate(context.Background(), "garbage")
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "TOKEN_INVALID", domainErr.Code)

	_, err = svc.Authenticate(context.Background(), result.RefreshToken)
	require.Error(t, err)
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctx := context.Background()
	backend := new(MockBackendAuth)
	svc, _ := createAuthService(t, backend)
	result := login(t, svc, backend)

	refreshed, err := svc.RefreshToken(ctx, RefreshTokenInput{RefreshToken: result.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	claims, err := svc.Authenticate(ctx, refreshed.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-42", claims.UserID)

	_, err = svc.RefreshToken(ctx, RefreshTokenInput{RefreshToken: result.RefreshToken})
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "TOKEN_REVOKED", domainErr.Code)
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()

	t.Run("revokes tokens and calls backend", func(t *testing.T) {
		backend := new(MockBackendAuth)
		svc, blacklist := createAuthService(t, backend)
		result := login(t, svc, backend)
		claims, err := svc.Authenticate(ctx, result.AccessToken)
		require.NoError(t, err)
		backend.On("Logout", mock.Anything, "backend-token-1").Return(nil).Once()

		err = svc.Logout(ctx, LogoutInput{
			UserID:    claims.UserID,
			SessionID: claims.SessionID,
			TokenJTI:  claims.ID,
			TokenTTL:  claims.RemainingTTL(),
		})
		require.NoError(t, err)
		backend.AssertExpectations(t)

		revoked, err := blacklist.IsBlacklisted(ctx, claims.ID)
		require.NoError(t, err)
		assert.True(t, revoked)

		_, err = svc.Authenticate(ctx, result.AccessToken)
		assert.Error(t, err)
		_, err = svc.RefreshToken(ctx, RefreshTokenInput{RefreshToken: result.RefreshToken})
		assert.Error(t, err)
		_, err = svc.BackendToken(ctx, claims.SessionID)
		assert.Error(t, err)
	})

	t.Run("backend failure still logs out", func(t *testing.T) {
		backend := new(MockBackendAuth)
		svc, _ := createAuthService(t, backend)
		result := login(t, svc, backend)
		claims, err := svc.Authenticate(ctx, result.AccessToken)
		require.NoError(t, err)
		backend.On("Logout", mock.Anything, "backend-token-1").Return(shared.ErrBackendUnavailable)

		err = svc.Logout(ctx, LogoutInput{UserID: claims.UserID, SessionID: claims.SessionID, TokenJTI: claims.ID, TokenTTL: time.Minute})
		require.NoError(t, err)
		_, err = svc.Authenticate(ctx, result.AccessToken)
		assert.Error(t, err)
	})
}

func TestAuthService_GetCurrentUser(t *testing.T) {
	ctx := context.Background()
	backend := new(MockBackendAuth)
	svc, _ := createAuthService(t, backend)
	result := login(t, svc, backend)
	claims, err := svc.Authenticate(ctx, result.AccessToken)
	require.NoError(t, err)

	verified := time.Now()
	user := testUser
	user.EmailVerifiedAt = &verified
	backend.On("GetCurrentUser", mock.MatchedBy(func(c context.Context) bool {
		return identity.BackendToken(c) == "backend-token-1"
	}), "backend-token-1").Return(&user, nil)

	info, err := svc.GetCurrentUser(ctx, claims.SessionID)
	require.NoError(t, err)
	assert.True(t, info.EmailVerified)

	_, err = svc.GetCurrentUser(ctx, "unknown-session")
	assert.Error(t, err)
}

func TestAuthService_ForgotPassword(t *testing.T) {
	backend := new(MockBackendAuth)
	svc, _ := createAuthService(t, backend)

	backend.On("ResetPassword", mock.Anything, "ghost@example.com").Return(false, shared.ErrNotFound).Once()
	res, err := svc.ForgotPassword(context.Background(), ForgotPasswordInput{Email: "Ghost@example.com"})
	require.NoError(t, err)
	assert.Contains(t, res.Message, "ghost@example.com")

	backend.On("ResetPassword", mock.Anything, "down@example.com").Return(false, shared.ErrBackendUnavailable).Once()
	_, err = svc.ForgotPassword(context.Background(), ForgotPasswordInput{Email: "down@example.com"})
	assert.ErrorIs(t, err, shared.ErrBackendUnavailable)
}

func TestAuthService_ResendVerification(t *testing.T) {
	ctx := context.Background()
	backend := new(MockBackendAuth)
	svc, _ := createAuthService(t, backend)
	result := login(t, svc, backend)
	claims, err := svc.Authenticate(ctx, result.AccessToken)
	require.NoError(t, err)

	backend.On("ResendVerification", mock.Anything, "backend-token-1").Return("Verification link sent to njeri@example.com", nil)
	res, err := svc.ResendVerification(ctx, claims.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "Verification link sent to njeri@example.com", res.Message)
}
