package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/feastly/backend/internal/service"
)

// ShortLinkHandler serves the public redirect endpoint for compact
// recipe links.
type ShortLinkHandler struct {
	shortLinks *service.ShortLinkService
}

func NewShortLinkHandler(shortLinks *service.ShortLinkService) *ShortLinkHandler {
	return &ShortLinkHandler{shortLinks: shortLinks}
}

func (h *ShortLinkHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/s/:token", h.Resolve)
}

func (h *ShortLinkHandler) Resolve(c *gin.Context) {
	recipeID, err := h.shortLinks.Resolve(c.Request.Context(), c.Param("token"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Redirect(http.StatusFound, fmt.Sprintf("/recipes/%s/", recipeID))
}
