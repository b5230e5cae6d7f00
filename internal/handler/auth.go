package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ecoruta/internal/domain"
	"ecoruta/internal/middleware"
	"ecoruta/internal/service"
	"ecoruta/internal/validate"
)

// AuthHandler handles HTTP requests for registration, sign-in and profiles.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// SignUpRequest is the HTTP request body for registration.
type SignUpRequest struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Username        string `json:"username"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// SignInRequest is the HTTP request body for signing in.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileResponse is the HTTP representation of a profile.
type ProfileResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// SessionResponse is the HTTP representation of an opened session.
type SessionResponse struct {
	Token     string           `json:"token"`
	ExpiresAt string           `json:"expires_at"`
	Profile   *ProfileResponse `json:"profile,omitempty"`
}

// FieldErrorResponse reports which registration field failed and why.
type FieldErrorResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func toProfileResponse(p *domain.Profile) *ProfileResponse {
	return &ProfileResponse{
		ID:        p.ID,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Username:  p.Username,
		Email:     p.Email,
		Phone:     p.Phone,
	}
}

// SignUp handles POST /v1/auth/signup
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.authService.SignUp(c.Request.Context(), validate.RegistrationForm{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Username:        req.Username,
		Email:           req.Email,
		Phone:           req.Phone,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		c.JSON(mapErrorToHTTPStatus(err), ErrorResponse{Error: service.TranslateAuthError(err)})
		return
	}
	if result.FieldError != nil {
		c.JSON(http.StatusBadRequest, FieldErrorResponse{
			Field:   result.FieldError.Field,
			Message: result.FieldError.Message,
		})
		return
	}

	respondJSON(c, http.StatusCreated, toProfileResponse(result.Profile))
}

// SignIn handles POST /v1/auth/signin
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	session, profile, err := h.authService.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(mapErrorToHTTPStatus(err), ErrorResponse{Error: service.TranslateAuthError(err)})
		return
	}

	respondJSON(c, http.StatusOK, SessionResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		Profile:   toProfileResponse(profile),
	})
}

// SignOut handles POST /v1/auth/signout
func (h *AuthHandler) SignOut(c *gin.Context) {
	token := c.GetString(middleware.ContextSessionToken)

	if err := h.authService.SignOut(c.Request.Context(), token); err != nil {
		c.JSON(mapErrorToHTTPStatus(err), ErrorResponse{Error: service.TranslateAuthError(err)})
		return
	}
	respondJSON(c, http.StatusOK, gin.H{"signed_out": true})
}

// Profile handles GET /v1/profile
func (h *AuthHandler) Profile(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	profile, err := h.authService.Profile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toProfileResponse(profile))
}

// UpdateProfileRequest is the HTTP request body for editing a profile.
type UpdateProfileRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
	Phone     string `json:"phone"`
}

// UpdateProfile handles PUT /v1/profile
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	userID := c.GetString(middleware.ContextUserID)

	profile, err := h.authService.UpdateProfile(c.Request.Context(), service.UpdateProfileRequest{
		UserID:    userID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
		Phone:     req.Phone,
	})
	if err != nil {
		if code := mapErrorToHTTPStatus(err); code != http.StatusInternalServerError {
			c.JSON(code, ErrorResponse{Error: err.Error()})
			return
		}
		// Field validation failures arrive as plain errors.
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	respondJSON(c, http.StatusOK, toProfileResponse(profile))
}
