package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ecoruta/internal/domain"
	"ecoruta/internal/service"
)

// PlaceHandler handles HTTP requests for destination suggestions and
// reverse geocoding.
type PlaceHandler struct {
	locationService *service.LocationService
}

// NewPlaceHandler creates a new PlaceHandler.
func NewPlaceHandler(locationService *service.LocationService) *PlaceHandler {
	return &PlaceHandler{locationService: locationService}
}

// PlaceResponse is a suggested destination.
type PlaceResponse struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
}

// Suggestions handles GET /v1/places/suggestions?q=..
func (h *PlaceHandler) Suggestions(c *gin.Context) {
	query := c.Query("q")

	places, err := h.locationService.Suggestions(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]PlaceResponse, 0, len(places))
	for _, place := range places {
		resp = append(resp, PlaceResponse{
			ID:          place.ID,
			Description: place.Description,
			Lat:         place.Coords.Lat,
			Lng:         place.Coords.Lng,
		})
	}
	respondJSON(c, http.StatusOK, gin.H{"places": resp})
}

// ReverseGeocode handles GET /v1/places/reverse?lat=..&lng=..
func (h *PlaceHandler) ReverseGeocode(c *gin.Context) {
	var query struct {
		Lat float64 `form:"lat"`
		Lng float64 `form:"lng"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid query parameters"})
		return
	}

	coords := h.locationService.CurrentCoordinates(&domain.Coordinates{Lat: query.Lat, Lng: query.Lng})
	address := h.locationService.ReverseGeocode(c.Request.Context(), coords)
	respondJSON(c, http.StatusOK, gin.H{
		"lat":     coords.Lat,
		"lng":     coords.Lng,
		"address": address,
	})
}
