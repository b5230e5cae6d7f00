package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"ecoruta/internal/config"
	"ecoruta/internal/domain"
	"ecoruta/internal/service"
	"ecoruta/internal/validate"
)

type authFixture struct {
	auth     *service.AuthService
	trips    *service.TripService
	profiles *MockProfileRepository
	sessions *MockSessionStore
	sink     *RecordingSink
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	profiles := NewMockProfileRepository()
	sessions := NewMockSessionStore()
	sink := NewRecordingSink()
	logger := zap.NewNop()

	voice := service.NewVoiceService(sink, logger)
	history := service.NewHistoryService(NewMockRouteRepository(), NewMockPaymentRecordRepository(), logger)
	trips := service.NewTripService(fastDelays(), nil, history, voice, logger)

	auth := service.NewAuthService(config.AuthConfig{
		JWTSecret:  "test-secret",
		SessionTTL: time.Hour,
	}, profiles, sessions, trips, voice, logger)

	return &authFixture{
		auth:     auth,
		trips:    trips,
		profiles: profiles,
		sessions: sessions,
		sink:     sink,
	}
}

func validForm() validate.RegistrationForm {
	return validate.RegistrationForm{
		FirstName:       "Laura",
		LastName:        "Gómez",
		Username:        "laurag",
		Email:           "laura@example.com",
		Phone:           "3001234567",
		Password:        "segura123",
		ConfirmPassword: "segura123",
	}
}

func signUp(t *testing.T, f *authFixture) *domain.Profile {
	t.Helper()

	result, err := f.auth.SignUp(context.Background(), validForm())
	if err != nil {
		t.Fatalf("unexpected signup error: %v", err)
	}
	if result.FieldError != nil {
		t.Fatalf("unexpected field error: %+v", result.FieldError)
	}
	return result.Profile
}

func TestAuth_SignUpAndSignIn(t *testing.T) {
	t.Parallel()

	f := newAuthFixture(t)
	profile := signUp(t, f)

	if profile.PasswordHash == "segura123" {
		t.Fatal("password must not be stored in the clear")
	}

	session, signed, err := f.auth.SignIn(context.Background(), "laura@example.com", "segura123")
	if err != nil {
		t.Fatalf("unexpected signin error: %v", err)
	}
	if signed.ID != profile.ID {
		t.Errorf("expected profile %s, got %s", profile.ID, signed.ID)
	}
	if session.Token == "" {
		t.Fatal("expected a session token")
	}
	if f.sessions.CountSessions() != 1 {
		t.Errorf("expected 1 stored session, got %d", f.sessions.CountSessions())
	}
}

func TestAuth_SignInRejectsWrongPassword(t *testing.T) {
	t.Parallel()

	f := newAuthFixture(t)
	signUp(t, f)

	if _, _, err := f.auth.SignIn(context.Background(), "laura@example.com", "otra"); !errors.Is(err, service.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := f.auth.SignIn(context.Background(), "nadie@example.com", "segura123"); !errors.Is(err, service.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestAuth_SignUpFieldOrder(t *testing.T) {
	t.Parallel()

	f := newAuthFixture(t)

	// Several fields invalid at once; only the first in order is reported.
	form := validForm()
	form.FirstName = ""
	form.Email = "mal"
	form.Password = "123"

	result, err := f.auth.SignUp(context.Background(), form)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.FieldError == nil {
		t.Fatal("expected a field error")
	}
	if result.FieldError.Field != "nombre" {
		t.Errorf("expected first failing field nombre, got %s", result.FieldError.Field)
	}
	if creates := f.profiles.CreateCallCount; creates != 0 {
		t.Errorf("invalid form must not reach the repository, got %d creates", creates)
	}
}

func TestAuth_SignUpRejectsDuplicateEmail(t *testing.T) {
	t.Parallel()

	f := newAuthFixture(t)
	signUp(t, f)

	form := validForm()
	form.Username = "otrousuario"
	_, err := f.auth.SignUp(context.Background(), form)
	if !errors.Is(err, service.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuth_SignOutRevokesSessionAndDropsTrip(t *testing.T) {
	t.Parallel()

	f := newAuthFixture(t)
	profile := signUp(t, f)

	session, _, err := f.auth.SignIn(context.Background(), "laura@example.com", "segura123")
	if err != nil {
		t.Fatalf("unexpected signin error: %v", err)
	}

	// Leave a trip searching; sign-out must drop it and its timers.
	if _, err := f.trips.Confirm(context.Background(), service.ConfirmTripRequest{
		UserID:      profile.ID,
		Destination: domain.Coordinates{Lat: 4.6, Lng: -74.1},
		Fare:        domain.FareOption{ID: 1, Name: "Uber", Price: 15000},
		Payment:     domain.PaymentDetails{Method: domain.PaymentMethodCash},
	}); err != nil {
		t.Fatalf("unexpected confirm error: %v", err)
	}

	if err := f.auth.SignOut(context.Background(), session.Token); err != nil {
		t.Fatalf("unexpected signout error: %v", err)
	}

	if f.sessions.CountSessions() != 0 {
		t.Errorf("expected session revoked, %d remain", f.sessions.CountSessions())
	}
	if _, err := f.auth.CurrentSession(context.Background(), session.Token); !errors.Is(err, service.ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired after signout, got %v", err)
	}

	phase, _ := f.trips.Status(profile.ID)
	if phase != domain.TripPhaseIdle {
		t.Errorf("expected trip dropped on signout, got %s", phase)
	}
}

func TestAuth_CurrentSessionRejectsForgedToken(t *testing.T) {
	t.Parallel()

	f := newAuthFixture(t)

	if _, err := f.auth.CurrentSession(context.Background(), "no-es-un-jwt"); !errors.Is(err, service.ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired for garbage token, got %v", err)
	}
}

func TestAuth_UpdateProfile(t *testing.T) {
	t.Parallel()

	f := newAuthFixture(t)
	profile := signUp(t, f)

	updated, err := f.auth.UpdateProfile(context.Background(), service.UpdateProfileRequest{
		UserID:    profile.ID,
		FirstName: "Laura María",
		LastName:  "Gómez",
		Username:  "laurag",
		Phone:     "3017654321",
	})
	if err != nil {
		t.Fatalf("unexpected update error: %v", err)
	}
	if updated.FirstName != "Laura María" || updated.Phone != "3017654321" {
		t.Errorf("update not applied: %+v", updated)
	}

	// Invalid username is rejected before touching the repository.
	creates := f.profiles.UpdateCallCount
	if _, err := f.auth.UpdateProfile(context.Background(), service.UpdateProfileRequest{
		UserID:    profile.ID,
		FirstName: "Laura",
		LastName:  "Gómez",
		Username:  "l!",
		Phone:     "3017654321",
	}); err == nil {
		t.Fatal("expected validation error for bad username")
	}
	if f.profiles.UpdateCallCount != creates {
		t.Error("invalid update must not reach the repository")
	}
}
