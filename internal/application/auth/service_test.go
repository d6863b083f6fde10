package auth

import (
	"context"
	"testing"
	"time"

	"secondmarket-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAuthTest(t *testing.T) *Service {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	return &Service{DB: db, Secret: []byte("test-secret"), TokenTTL: 30 * time.Minute}
}

func TestRegisterLoginAuthenticateRoundtrip(t *testing.T) {
	svc := setupAuthTest(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Alice", "alice@example.com", "password123")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEqual(t, "password123", user.PasswordHash)

	token, err := svc.Login(ctx, "alice@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "bearer", token.TokenType)
	assert.NotEmpty(t, token.AccessToken)

	resolved, err := svc.Authenticate(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)
	assert.Equal(t, "alice@example.com", resolved.Email)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := setupAuthTest(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Alice", "alice@example.com", "password123")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Other Alice", "alice@example.com", "different456")
	assert.ErrorIs(t, err, ErrEmailTaken)

	var count int64
	svc.DB.Model(&models.User{}).Where("email = ?", "alice@example.com").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestRegisterValidation(t *testing.T) {
	svc := setupAuthTest(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Alice", "not-an-email", "password123")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Register(ctx, "Alice", "alice@example.com", "short")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Register(ctx, "", "alice@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := setupAuthTest(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Alice", "alice@example.com", "password123")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "alice@example.com", "wrongpassword")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginInactiveUser(t *testing.T) {
	svc := setupAuthTest(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Alice", "alice@example.com", "password123")
	require.NoError(t, err)
	require.NoError(t, svc.DB.Model(user).Update("is_active", false).Error)

	_, err = svc.Login(ctx, "alice@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateExpiredToken(t *testing.T) {
	svc := setupAuthTest(t)
	svc.TokenTTL = -time.Minute
	ctx := context.Background()

	_, err := svc.Register(ctx, "Alice", "alice@example.com", "password123")
	require.NoError(t, err)
	token, err := svc.Login(ctx, "alice@example.com", "password123")
	require.NoError(t, err)

	_, err = svc.Authenticate(token.AccessToken)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestAuthenticateGarbageToken(t *testing.T) {
	svc := setupAuthTest(t)

	_, err := svc.Authenticate("not.a.token")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = svc.Authenticate("")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestAuthenticateDeletedUser(t *testing.T) {
	svc := setupAuthTest(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Alice", "alice@example.com", "password123")
	require.NoError(t, err)
	token, err := svc.Login(ctx, "alice@example.com", "password123")
	require.NoError(t, err)

	require.NoError(t, svc.DB.Delete(user).Error)
	_, err = svc.Authenticate(token.AccessToken)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}
