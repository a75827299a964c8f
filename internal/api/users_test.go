package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/feastly/backend/internal/types"
)

func TestRegisterAndLoginEndpoints(t *testing.T) {
	env := setupTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/users", "", map[string]string{
		"email":      "alice@example.com",
		"username":   "alice",
		"first_name": "Alice",
		"last_name":  "Doe",
		"password":   "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.request(t, http.MethodPost, "/api/auth/token/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var login struct {
		AuthToken string `json:"auth_token"`
	}
	decodeJSON(t, w, &login)
	require.NotEmpty(t, login.AuthToken)

	w = env.request(t, http.MethodGet, "/api/users/me", login.AuthToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var me types.UserView
	decodeJSON(t, w, &me)
	assert.Equal(t, "alice", me.Username)
}

func TestLoginBadCredentials(t *testing.T) {
	env := setupTestEnv(t)
	env.registerUser(t, "alice")

	w := env.request(t, http.MethodPost, "/api/auth/token/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	env := setupTestEnv(t)
	env.registerUser(t, "alice")

	w := env.request(t, http.MethodPost, "/api/users", "", map[string]string{
		"email":      "other@example.com",
		"username":   "alice",
		"first_name": "Other",
		"last_name":  "Doe",
		"password":   "password123",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	var body struct {
		Errors []string `json:"errors"`
	}
	decodeJSON(t, w, &body)
	assert.Contains(t, body.Errors, "username already taken")
}

func TestSubscribeEndpoints(t *testing.T) {
	env := setupTestEnv(t)
	alice, aliceToken := env.registerUser(t, "alice")
	bob, bobToken := env.registerUser(t, "bob")

	w := env.request(t, http.MethodPost, fmt.Sprintf("/api/users/%s/subscribe", bob.ID), aliceToken, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var view types.UserView
	decodeJSON(t, w, &view)
	assert.Equal(t, "bob", view.Username)
	assert.True(t, view.IsSubscribed)

	// A second subscribe conflicts.
	w = env.request(t, http.MethodPost, fmt.Sprintf("/api/users/%s/subscribe", bob.ID), aliceToken, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Self-subscribe is a validation failure.
	w = env.request(t, http.MethodPost, fmt.Sprintf("/api/users/%s/subscribe", alice.ID), aliceToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.request(t, http.MethodGet, "/api/users/subscriptions", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var subs struct {
		Subscriptions []types.SubscriptionView `json:"subscriptions"`
	}
	decodeJSON(t, w, &subs)
	require.Len(t, subs.Subscriptions, 1)
	assert.Equal(t, "bob", subs.Subscriptions[0].Username)

	// Bob never followed anyone.
	w = env.request(t, http.MethodGet, "/api/users/subscriptions", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &subs)
	assert.Empty(t, subs.Subscriptions)

	w = env.request(t, http.MethodDelete, fmt.Sprintf("/api/users/%s/subscribe", bob.ID), aliceToken, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = env.request(t, http.MethodDelete, fmt.Sprintf("/api/users/%s/subscribe", bob.ID), aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSetPasswordEndpoint(t *testing.T) {
	env := setupTestEnv(t)
	_, token := env.registerUser(t, "alice")

	w := env.request(t, http.MethodPost, "/api/users/set_password", token, map[string]string{
		"current_password": "password123",
		"new_password":     "newpassword",
	})
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = env.request(t, http.MethodPost, "/api/auth/token/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "newpassword",
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetUserAsAnonymous(t *testing.T) {
	env := setupTestEnv(t)
	alice, _ := env.registerUser(t, "alice")

	w := env.request(t, http.MethodGet, "/api/users/"+alice.ID.String(), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var view types.UserView
	decodeJSON(t, w, &view)
	assert.Equal(t, "alice", view.Username)
	assert.False(t, view.IsSubscribed)
}

func TestAvatarEndpoints(t *testing.T) {
	env := setupTestEnv(t)
	_, token := env.registerUser(t, "alice")

	w := env.request(t, http.MethodPut, "/api/users/me/avatar", token, map[string]string{
		"avatar": "https://cdn.example.com/a.png",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodGet, "/api/users/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var me types.UserView
	decodeJSON(t, w, &me)
	assert.Equal(t, "https://cdn.example.com/a.png", me.Avatar)

	w = env.request(t, http.MethodDelete, "/api/users/me/avatar", token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}
