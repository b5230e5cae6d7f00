package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ecoruta/internal/middleware"
	"ecoruta/internal/service"
)

// HistoryHandler handles HTTP requests for trip and route history.
type HistoryHandler struct {
	historyService *service.HistoryService
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(historyService *service.HistoryService) *HistoryHandler {
	return &HistoryHandler{historyService: historyService}
}

// HistoryEntryResponse is a finished trip in the local history log.
type HistoryEntryResponse struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Destination string `json:"destination"`
	Price       int64  `json:"price"`
	Status      string `json:"status"`
	Method      string `json:"method"`
}

// List handles GET /v1/history
func (h *HistoryHandler) List(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	entries := h.historyService.Local(userID)
	resp := make([]HistoryEntryResponse, 0, len(entries))
	for _, entry := range entries {
		resp = append(resp, HistoryEntryResponse{
			ID:          entry.ID,
			Date:        entry.Date.UTC().Format("2006-01-02T15:04:05Z07:00"),
			Destination: entry.Destination,
			Price:       entry.Price,
			Status:      string(entry.Status),
			Method:      entry.Method,
		})
	}
	respondJSON(c, http.StatusOK, gin.H{"trips": resp})
}

// RouteResponse is a persisted route row.
type RouteResponse struct {
	ID          string `json:"id"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Date        string `json:"date"`
	Time        string `json:"time"`
}

// Routes handles GET /v1/history/routes
func (h *HistoryHandler) Routes(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	routes := h.historyService.Routes(c.Request.Context(), userID)
	resp := make([]RouteResponse, 0, len(routes))
	for _, route := range routes {
		resp = append(resp, RouteResponse{
			ID:          route.ID,
			Origin:      route.Origin,
			Destination: route.Destination,
			Date:        route.Date,
			Time:        route.Time,
		})
	}
	respondJSON(c, http.StatusOK, gin.H{"routes": resp})
}
