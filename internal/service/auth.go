package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"ecoruta/internal/config"
	"ecoruta/internal/domain"
	internalredis "ecoruta/internal/redis"
	"ecoruta/internal/repository"
	"ecoruta/internal/validate"
)

// AuthService handles registration, sign-in and session management.
type AuthService struct {
	cfg         config.AuthConfig
	profileRepo repository.ProfileRepository
	sessions    internalredis.SessionStoreInterface
	trips       *TripService
	voice       *VoiceService
	logger      *zap.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	cfg config.AuthConfig,
	profileRepo repository.ProfileRepository,
	sessions internalredis.SessionStoreInterface,
	trips *TripService,
	voice *VoiceService,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		cfg:         cfg,
		profileRepo: profileRepo,
		sessions:    sessions,
		trips:       trips,
		voice:       voice,
		logger:      logger,
	}
}

// SignUpResult contains the outcome of a registration.
type SignUpResult struct {
	Profile    *domain.Profile
	FieldError *validate.FieldError
}

// SignUp validates the registration form in order and creates the profile.
// A field validation failure is reported in the result, not as an error.
func (s *AuthService) SignUp(ctx context.Context, form validate.RegistrationForm) (*SignUpResult, error) {
	if ok, fieldErr := validate.Registration(form); !ok {
		return &SignUpResult{FieldError: fieldErr}, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	profile := &domain.Profile{
		ID:           uuid.New().String(),
		FirstName:    form.FirstName,
		LastName:     form.LastName,
		Username:     form.Username,
		Email:        form.Email,
		Phone:        form.Phone,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	if err := s.profileRepo.Create(ctx, profile); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			if existing, lookupErr := s.profileRepo.GetByEmail(ctx, form.Email); lookupErr == nil && existing != nil {
				return nil, ErrEmailTaken
			}
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	s.logger.Info("profile registered", zap.String("user_id", profile.ID), zap.String("username", profile.Username))
	return &SignUpResult{Profile: profile}, nil
}

// SignIn verifies credentials and opens a session.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*domain.Session, *domain.Profile, error) {
	profile, err := s.profileRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(password)) != nil {
		return nil, nil, ErrInvalidCredentials
	}

	session, err := s.openSession(ctx, profile.ID)
	if err != nil {
		return nil, nil, err
	}

	s.voice.Announce(ctx, guidanceLoginOK)
	s.logger.Info("signed in", zap.String("user_id", profile.ID))
	return session, profile, nil
}

func (s *AuthService) openSession(ctx context.Context, userID string) (*domain.Session, error) {
	expiresAt := time.Now().Add(s.cfg.SessionTTL)

	claims := jwt.MapClaims{
		"sub": userID,
		"exp": expiresAt.Unix(),
		"iat": time.Now().Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, err
	}

	cached := &internalredis.CachedSession{UserID: userID, ExpiresAt: expiresAt}
	if err := s.sessions.Put(ctx, token, cached, s.cfg.SessionTTL); err != nil {
		return nil, err
	}

	return &domain.Session{Token: token, UserID: userID, ExpiresAt: expiresAt}, nil
}

// SignOut revokes the session, drops any in-flight trip and its timers.
func (s *AuthService) SignOut(ctx context.Context, token string) error {
	session, err := s.CurrentSession(ctx, token)
	if err != nil {
		return err
	}

	s.trips.Reset(session.UserID)

	if err := s.sessions.Delete(ctx, token); err != nil {
		return err
	}

	s.voice.Announce(ctx, guidanceLogout)
	s.logger.Info("signed out", zap.String("user_id", session.UserID))
	return nil
}

// CurrentSession resolves a token to its session, verifying both the JWT
// signature and the server-side session record so revoked tokens die early.
func (s *AuthService) CurrentSession(ctx context.Context, token string) (*domain.Session, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrSessionExpired
	}

	cached, err := s.sessions.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if cached == nil || time.Now().After(cached.ExpiresAt) {
		return nil, ErrSessionExpired
	}

	return &domain.Session{Token: token, UserID: cached.UserID, ExpiresAt: cached.ExpiresAt}, nil
}

// Profile retrieves the profile for a user ID.
func (s *AuthService) Profile(ctx context.Context, userID string) (*domain.Profile, error) {
	return s.profileRepo.GetByID(ctx, userID)
}

// UpdateProfileRequest contains the editable profile fields.
type UpdateProfileRequest struct {
	UserID    string
	FirstName string
	LastName  string
	Username  string
	Phone     string
}

// UpdateProfile validates and applies profile edits.
func (s *AuthService) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*domain.Profile, error) {
	if req.UserID == "" {
		return nil, ErrInvalidUserID
	}

	profile, err := s.profileRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	if res := validate.Required(req.FirstName, "Nombre"); !res.Valid {
		return nil, errors.New(res.Error)
	}
	if res := validate.Required(req.LastName, "Apellido"); !res.Valid {
		return nil, errors.New(res.Error)
	}
	if res := validate.Username(req.Username); !res.Valid {
		return nil, errors.New(res.Error)
	}
	if res := validate.Phone(req.Phone); !res.Valid {
		return nil, errors.New(res.Error)
	}

	profile.FirstName = req.FirstName
	profile.LastName = req.LastName
	profile.Username = req.Username
	profile.Phone = req.Phone

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}

// TranslateAuthError maps auth errors to the Spanish user-facing message.
func TranslateAuthError(err error) string {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return "Credenciales incorrectas. Verifica tu email y contraseña."
	case errors.Is(err, ErrEmailTaken):
		return "Este correo electrónico ya está registrado."
	case errors.Is(err, ErrUsernameTaken):
		return "Este nombre de usuario ya está en uso."
	case errors.Is(err, ErrSessionExpired):
		return "Sesión expirada. Por favor inicia sesión nuevamente."
	case errors.Is(err, repository.ErrNotFound):
		return "No se encontró el usuario."
	default:
		return "Ocurrió un error al procesar tu solicitud. Por favor intenta de nuevo."
	}
}
