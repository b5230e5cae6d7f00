package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ecoruta/internal/middleware"
	"ecoruta/internal/nav"
	"ecoruta/internal/service"
)

// NavHandler handles HTTP requests for screen navigation.
type NavHandler struct {
	navService *service.NavigationService
}

// NewNavHandler creates a new NavHandler.
func NewNavHandler(navService *service.NavigationService) *NavHandler {
	return &NavHandler{navService: navService}
}

// NavigateRequest is the HTTP request body for a screen change.
type NavigateRequest struct {
	Screen string `json:"screen"`
}

// ScreenResponse reports the screen that is current after a request.
type ScreenResponse struct {
	Screen string `json:"screen"`
}

// Current handles GET /v1/navigation/current
func (h *NavHandler) Current(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	screen, err := h.navService.Current(c.Request.Context(), userID, true)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, ScreenResponse{Screen: string(screen)})
}

// Navigate handles POST /v1/navigation/navigate
func (h *NavHandler) Navigate(c *gin.Context) {
	var req NavigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	userID := c.GetString(middleware.ContextUserID)

	screen, err := h.navService.Navigate(c.Request.Context(), userID, nav.Screen(req.Screen), true)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, ScreenResponse{Screen: string(screen)})
}
