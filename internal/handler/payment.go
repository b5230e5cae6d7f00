package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ecoruta/internal/domain"
	"ecoruta/internal/middleware"
	"ecoruta/internal/service"
)

// PaymentHandler handles HTTP requests for payment method validation and
// the payment history.
type PaymentHandler struct {
	historyService *service.HistoryService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(historyService *service.HistoryService) *PaymentHandler {
	return &PaymentHandler{historyService: historyService}
}

// PaymentValidationResponse is the outcome of validating a payment form.
type PaymentValidationResponse struct {
	Valid   bool   `json:"valid"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message,omitempty"`
}

// Validate handles POST /v1/payments/validate
func (h *PaymentHandler) Validate(c *gin.Context) {
	var req PaymentDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	method, err := service.ParsePaymentMethod(req.Method)
	if err != nil {
		respondError(c, err)
		return
	}

	v := service.ValidatePaymentDetails(domain.PaymentDetails{
		Method:     method,
		Phone:      req.Phone,
		DynamicKey: req.DynamicKey,
		Bank:       req.Bank,
		ClientType: req.ClientType,
		Email:      req.Email,
	})
	respondJSON(c, http.StatusOK, PaymentValidationResponse{
		Valid:   v.Valid,
		Field:   v.Field,
		Message: v.Message,
	})
}

// Banks handles GET /v1/payments/banks
func (h *PaymentHandler) Banks(c *gin.Context) {
	respondJSON(c, http.StatusOK, gin.H{"banks": domain.ColombianBanks})
}

// PaymentRecordResponse is a persisted payment history row.
type PaymentRecordResponse struct {
	ID        string `json:"id"`
	Method    string `json:"method"`
	Reference string `json:"reference"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at,omitempty"`
}

// List handles GET /v1/payments
func (h *PaymentHandler) List(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	records := h.historyService.Payments(c.Request.Context(), userID)
	resp := make([]PaymentRecordResponse, 0, len(records))
	for _, rec := range records {
		resp = append(resp, PaymentRecordResponse{
			ID:        rec.ID,
			Method:    rec.Method,
			Reference: rec.Reference,
			Status:    rec.Status,
			CreatedAt: rec.CreatedAt,
		})
	}
	respondJSON(c, http.StatusOK, gin.H{"payments": resp})
}

// LastMethod handles GET /v1/payments/last-method
func (h *PaymentHandler) LastMethod(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	method := h.historyService.LastPaymentMethod(c.Request.Context(), userID)
	respondJSON(c, http.StatusOK, gin.H{"method": method})
}
