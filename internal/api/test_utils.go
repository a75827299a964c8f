package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pageza/feastly/backend/internal/database"
	"github.com/pageza/feastly/backend/internal/models"
	"github.com/pageza/feastly/backend/internal/service"
	"github.com/pageza/feastly/backend/internal/types"
)

// testEnv wires the full handler stack over an in-memory database.
type testEnv struct {
	router *gin.Engine
	db     *gorm.DB
	auth   *service.AuthService
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	auth := service.NewAuthService(db, "test-secret")
	recipes := service.NewRecipeService(db)
	memberships := service.NewMembershipService(db)
	shoppingList := service.NewShoppingListService(db)
	follows := service.NewFollowService(db)
	shortLinks := service.NewShortLinkService(db, nil)
	views := service.NewViewService(db)

	router := gin.New()
	v1 := router.Group("/api")
	NewUserHandler(auth, follows, views, nil).RegisterRoutes(v1)
	NewRecipeHandler(recipes, memberships, shoppingList, shortLinks, views, nil, auth, "localhost:8080").RegisterRoutes(v1)
	NewTagHandler(service.NewCatalogService(db)).RegisterRoutes(v1)
	NewIngredientHandler(service.NewCatalogService(db)).RegisterRoutes(v1)
	NewShortLinkHandler(shortLinks).RegisterRoutes(router)

	return &testEnv{router: router, db: db, auth: auth}
}

// registerUser creates an account directly and returns the user with a
// valid bearer token.
func (e *testEnv) registerUser(t *testing.T, username string) (*models.User, string) {
	t.Helper()
	user, err := e.auth.Register(context.Background(), &types.RegisterRequest{
		Email:     username + "@example.com",
		Username:  username,
		FirstName: "Test",
		LastName:  "User",
		Password:  "password123",
	})
	require.NoError(t, err)
	token, err := e.auth.GenerateToken(user.ID, user.Username)
	require.NoError(t, err)
	return user, token
}

func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func (e *testEnv) createTag(t *testing.T, name, slug string) *models.Tag {
	t.Helper()
	tag := &models.Tag{Name: name, Slug: slug}
	require.NoError(t, e.db.Create(tag).Error)
	return tag
}

func (e *testEnv) createIngredient(t *testing.T, name, unit string) *models.Ingredient {
	t.Helper()
	ingredient := &models.Ingredient{Name: name, MeasurementUnit: unit}
	require.NoError(t, e.db.Create(ingredient).Error)
	return ingredient
}
