package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/feastly/backend/internal/middleware"
	"github.com/pageza/feastly/backend/internal/service"
	"github.com/pageza/feastly/backend/internal/types"
)

type RecipeHandler struct {
	recipes      *service.RecipeService
	memberships  *service.MembershipService
	shoppingList *service.ShoppingListService
	shortLinks   *service.ShortLinkService
	views        *service.ViewService
	images       *service.ImageService
	auth         service.IAuthService
	publicHost   string
}

func NewRecipeHandler(
	recipes *service.RecipeService,
	memberships *service.MembershipService,
	shoppingList *service.ShoppingListService,
	shortLinks *service.ShortLinkService,
	views *service.ViewService,
	images *service.ImageService,
	auth service.IAuthService,
	publicHost string,
) *RecipeHandler {
	return &RecipeHandler{
		recipes:      recipes,
		memberships:  memberships,
		shoppingList: shoppingList,
		shortLinks:   shortLinks,
		views:        views,
		images:       images,
		auth:         auth,
		publicHost:   publicHost,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", middleware.OptionalAuthMiddleware(h.auth), h.ListRecipes)
		recipes.GET("/:id", middleware.OptionalAuthMiddleware(h.auth), h.GetRecipe)
		recipes.GET("/:id/get-link", h.GetShortLink)
		recipes.POST("", middleware.AuthMiddleware(h.auth), h.CreateRecipe)
		recipes.PATCH("/:id", middleware.AuthMiddleware(h.auth), h.UpdateRecipe)
		recipes.DELETE("/:id", middleware.AuthMiddleware(h.auth), h.DeleteRecipe)
		recipes.POST("/:id/favorite", middleware.AuthMiddleware(h.auth), h.AddFavorite)
		recipes.DELETE("/:id/favorite", middleware.AuthMiddleware(h.auth), h.RemoveFavorite)
		recipes.POST("/:id/shopping_cart", middleware.AuthMiddleware(h.auth), h.AddToCart)
		recipes.DELETE("/:id/shopping_cart", middleware.AuthMiddleware(h.auth), h.RemoveFromCart)
		recipes.GET("/download_shopping_cart", middleware.AuthMiddleware(h.auth), h.DownloadShoppingCart)
	}
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	viewerID := middleware.UserID(c)
	page, limit := pagination(c)

	filter := types.RecipeFilter{
		TagSlugs: c.QueryArray("tags"),
		Page:     page,
		Limit:    limit,
	}
	if author := c.Query("author"); author != "" {
		if id, err := uuid.Parse(author); err == nil {
			filter.AuthorID = id
		}
	}
	// Membership filters only make sense for an authenticated viewer.
	if viewerID != uuid.Nil {
		if c.Query("is_favorited") == "1" {
			filter.FavoritedBy = viewerID
		}
		if c.Query("is_in_shopping_cart") == "1" {
			filter.InShoppingCartOf = viewerID
		}
	}

	recipes, err := h.recipes.ListRecipes(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	views, err := h.views.RecipeViews(c.Request.Context(), recipes, viewerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": views})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	recipe, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	view, err := h.views.RecipeView(c.Request.Context(), recipe, middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req types.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID := middleware.UserID(c)

	if err := h.storeImage(c, &req.Image); err != nil {
		respondError(c, err)
		return
	}

	recipe, err := h.recipes.CreateRecipe(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	view, err := h.views.RecipeView(c.Request.Context(), recipe, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	var req types.UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID := middleware.UserID(c)

	if req.Image != nil {
		if err := h.storeImage(c, req.Image); err != nil {
			respondError(c, err)
			return
		}
	}

	recipe, err := h.recipes.UpdateRecipe(c.Request.Context(), id, userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	view, err := h.views.RecipeView(c.Request.Context(), recipe, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if err := h.recipes.DeleteRecipe(c.Request.Context(), id, middleware.UserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) AddFavorite(c *gin.Context) {
	h.addMembership(c, service.KindFavorite)
}

func (h *RecipeHandler) RemoveFavorite(c *gin.Context) {
	h.removeMembership(c, service.KindFavorite)
}

func (h *RecipeHandler) AddToCart(c *gin.Context) {
	h.addMembership(c, service.KindShoppingCart)
}

func (h *RecipeHandler) RemoveFromCart(c *gin.Context) {
	h.removeMembership(c, service.KindShoppingCart)
}

func (h *RecipeHandler) addMembership(c *gin.Context, kind service.MembershipKind) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	userID := middleware.UserID(c)
	if err := h.memberships.Add(c.Request.Context(), kind, userID, id); err != nil {
		respondError(c, err)
		return
	}
	recipe, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, types.RecipeSummary{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Image:       recipe.ImageURL,
		CookingTime: recipe.CookingTime,
	})
}

func (h *RecipeHandler) removeMembership(c *gin.Context, kind service.MembershipKind) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if err := h.memberships.Remove(c.Request.Context(), kind, middleware.UserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) DownloadShoppingCart(c *gin.Context) {
	items, err := h.shoppingList.Aggregate(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	content := h.shoppingList.Render(items)
	c.Header("Content-Disposition", `attachment; filename="cart.txt"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(content))
}

func (h *RecipeHandler) GetShortLink(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	token, err := h.shortLinks.GetOrCreate(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"short-link": fmt.Sprintf("%s/s/%s", h.publicHost, token)})
}

// storeImage uploads a base64 image payload and swaps the opaque storage
// URL into place. Payloads that are already URLs pass through untouched.
func (h *RecipeHandler) storeImage(c *gin.Context, image *string) error {
	if h.images == nil || image == nil || *image == "" || !strings.HasPrefix(*image, "data:") {
		return nil
	}
	url, err := h.images.UploadBase64(c.Request.Context(), *image, "recipe-images")
	if err != nil {
		return err
	}
	*image = url
	return nil
}
