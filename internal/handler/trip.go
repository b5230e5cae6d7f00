package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ecoruta/internal/domain"
	"ecoruta/internal/middleware"
	"ecoruta/internal/service"
)

// TripHandler handles HTTP requests for the trip lifecycle.
type TripHandler struct {
	tripService *service.TripService
	fareService *service.FareService
}

// NewTripHandler creates a new TripHandler.
func NewTripHandler(tripService *service.TripService, fareService *service.FareService) *TripHandler {
	return &TripHandler{
		tripService: tripService,
		fareService: fareService,
	}
}

// PaymentDetailsRequest carries the payment form of a confirmation request.
type PaymentDetailsRequest struct {
	Method     string `json:"method,omitempty"` // cash, nequi, pse
	Phone      string `json:"phone,omitempty"`
	DynamicKey string `json:"dynamic_key,omitempty"`
	Bank       string `json:"bank,omitempty"`
	ClientType string `json:"client_type,omitempty"`
	Email      string `json:"email,omitempty"`
}

// ConfirmTripRequest is the HTTP request body for confirming a trip.
type ConfirmTripRequest struct {
	DestinationLat     float64               `json:"destination_lat"`
	DestinationLng     float64               `json:"destination_lng"`
	DestinationAddress string                `json:"destination_address,omitempty"`
	FareID             int                   `json:"fare_id"`
	Payment            PaymentDetailsRequest `json:"payment"`
}

// TripResponse is the HTTP representation of a trip.
type TripResponse struct {
	ID                 string  `json:"id"`
	Phase              string  `json:"phase"`
	DestinationLat     float64 `json:"destination_lat"`
	DestinationLng     float64 `json:"destination_lng"`
	DestinationAddress string  `json:"destination_address,omitempty"`
	FareName           string  `json:"fare_name"`
	FarePrice          int64   `json:"fare_price"`
	PaymentMethod      string  `json:"payment_method"`
	ConfirmedAt        string  `json:"confirmed_at"`
}

// TripStatusResponse is the HTTP response for the trip status.
type TripStatusResponse struct {
	Phase string        `json:"phase"`
	Trip  *TripResponse `json:"trip,omitempty"`
}

func toTripResponse(phase domain.TripPhase, trip *domain.TripRequest) *TripResponse {
	return &TripResponse{
		ID:                 trip.ID,
		Phase:              string(phase),
		DestinationLat:     trip.Destination.Lat,
		DestinationLng:     trip.Destination.Lng,
		DestinationAddress: trip.DestinationAddress,
		FareName:           trip.Fare.Name,
		FarePrice:          trip.Fare.Price,
		PaymentMethod:      string(trip.PaymentMethod),
		ConfirmedAt:        trip.ConfirmedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

// Confirm handles POST /v1/trips/confirm
func (h *TripHandler) Confirm(c *gin.Context) {
	var req ConfirmTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	userID := c.GetString(middleware.ContextUserID)

	fare, err := h.fareService.Option(req.FareID)
	if err != nil {
		respondError(c, err)
		return
	}

	method, err := service.ParsePaymentMethod(req.Payment.Method)
	if err != nil {
		respondError(c, err)
		return
	}

	details := domain.PaymentDetails{
		Method:     method,
		Phone:      req.Payment.Phone,
		DynamicKey: req.Payment.DynamicKey,
		Bank:       req.Payment.Bank,
		ClientType: req.Payment.ClientType,
		Email:      req.Payment.Email,
	}
	if v := service.ValidatePaymentDetails(details); !v.Valid {
		c.JSON(http.StatusBadRequest, PaymentValidationResponse{
			Valid:   false,
			Field:   v.Field,
			Message: v.Message,
		})
		return
	}

	trip, err := h.tripService.Confirm(c.Request.Context(), service.ConfirmTripRequest{
		UserID:             userID,
		Destination:        domain.Coordinates{Lat: req.DestinationLat, Lng: req.DestinationLng},
		DestinationAddress: req.DestinationAddress,
		Fare:               fare,
		Payment:            details,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toTripResponse(domain.TripPhaseSearching, trip))
}

// Status handles GET /v1/trips/status
func (h *TripHandler) Status(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	phase, trip := h.tripService.Status(userID)
	resp := TripStatusResponse{Phase: string(phase)}
	if trip != nil {
		resp.Trip = toTripResponse(phase, trip)
	}
	respondJSON(c, http.StatusOK, resp)
}

// Cancel handles POST /v1/trips/cancel
func (h *TripHandler) Cancel(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	if err := h.tripService.Cancel(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, gin.H{"phase": string(domain.TripPhaseIdle)})
}

// EmergencyCancel handles POST /v1/trips/emergency-cancel
func (h *TripHandler) EmergencyCancel(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	if err := h.tripService.EmergencyCancel(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, gin.H{"phase": string(domain.TripPhaseIdle)})
}

// FareQuoteResponse is a single fare option in a quote.
type FareQuoteResponse struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	WaitMinutes int    `json:"wait_minutes"`
	Comfort     string `json:"comfort"`
}

// Quote handles GET /v1/fares/quote?lat=..&lng=..
func (h *TripHandler) Quote(c *gin.Context) {
	var query struct {
		Lat float64 `form:"lat"`
		Lng float64 `form:"lng"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid query parameters"})
		return
	}

	options, err := h.fareService.Quote(domain.Coordinates{Lat: query.Lat, Lng: query.Lng})
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]FareQuoteResponse, 0, len(options))
	for _, opt := range options {
		resp = append(resp, FareQuoteResponse{
			ID:          opt.ID,
			Name:        opt.Name,
			Price:       opt.Price,
			WaitMinutes: int(opt.WaitTime.Minutes()),
			Comfort:     opt.Comfort,
		})
	}
	respondJSON(c, http.StatusOK, gin.H{"options": resp})
}
