package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/feastly/backend/internal/types"
)

func registerRequest(username, email string) *types.RegisterRequest {
	return &types.RegisterRequest{
		Email:     email,
		Username:  username,
		FirstName: "Test",
		LastName:  "User",
		Password:  "password123",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, "test-secret")

	user, err := svc.Register(context.Background(), registerRequest("alice", "alice@example.com"))
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, "password123", user.PasswordHash)

	token, err := svc.Login(context.Background(), "alice@example.com", "password123")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestRegisterRejectsReservedAndTakenNames(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, "test-secret")

	_, err := svc.Register(context.Background(), registerRequest("alice", "alice@example.com"))
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), registerRequest("me", "me@example.com"))
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Problems, "username cannot be \"me\"")

	_, err = svc.Register(context.Background(), registerRequest("alice", "alice@example.com"))
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Problems, "username already taken")
	assert.Contains(t, verr.Problems, "email already registered")
}

func TestRegisterRejectsBadUsername(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, "test-secret")

	_, err := svc.Register(context.Background(), registerRequest("no spaces", "a@example.com"))
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Problems, "invalid username format")
}

func TestLoginWrongPassword(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, "test-secret")

	_, err := svc.Register(context.Background(), registerRequest("alice", "alice@example.com"))
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSetPassword(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, "test-secret")

	user, err := svc.Register(context.Background(), registerRequest("alice", "alice@example.com"))
	require.NoError(t, err)

	err = svc.SetPassword(context.Background(), user.ID, "wrong", "newpassword")
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))

	require.NoError(t, svc.SetPassword(context.Background(), user.ID, "password123", "newpassword"))

	_, err = svc.Login(context.Background(), "alice@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(context.Background(), "alice@example.com", "newpassword")
	assert.NoError(t, err)
}

func TestValidateTokenRejectsForgedToken(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, "test-secret")
	other := NewAuthService(db, "other-secret")

	user, err := svc.Register(context.Background(), registerRequest("alice", "alice@example.com"))
	require.NoError(t, err)

	forged, err := other.GenerateToken(user.ID, user.Username)
	require.NoError(t, err)

	_, err = svc.ValidateToken(forged)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSetAvatar(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, "test-secret")

	user, err := svc.Register(context.Background(), registerRequest("alice", "alice@example.com"))
	require.NoError(t, err)

	require.NoError(t, svc.SetAvatar(context.Background(), user.ID, "https://cdn.example.com/a.png"))

	fetched, err := svc.GetUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/a.png", fetched.AvatarURL)

	require.NoError(t, svc.SetAvatar(context.Background(), user.ID, ""))
	fetched, err = svc.GetUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, fetched.AvatarURL)
}
