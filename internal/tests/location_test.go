package tests

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"ecoruta/internal/domain"
	"ecoruta/internal/nav"
	"ecoruta/internal/service"
)

func testPlaces() []*domain.Place {
	return []*domain.Place{
		{ID: "p1", Description: "Centro Comercial Andino", Coords: domain.Coordinates{Lat: 4.6670, Lng: -74.0525}},
		{ID: "p2", Description: "Aeropuerto El Dorado", Coords: domain.Coordinates{Lat: 4.7016, Lng: -74.1469}},
		{ID: "p3", Description: "Parque de la 93", Coords: domain.Coordinates{Lat: 4.6763, Lng: -74.0481}},
	}
}

func newLocationService(t *testing.T) (*service.LocationService, *MockPlaceIndex) {
	t.Helper()

	index := NewMockPlaceIndex()
	svc := service.NewLocationService(NewMockPlaceRepository(testPlaces()...), index, zap.NewNop())
	if err := svc.SeedIndex(context.Background()); err != nil {
		t.Fatalf("unexpected seed error: %v", err)
	}
	return svc, index
}

func TestLocation_SeedIndexLoadsEveryPlace(t *testing.T) {
	t.Parallel()

	_, index := newLocationService(t)
	if index.CountIndexed() != 3 {
		t.Fatalf("expected 3 indexed places, got %d", index.CountIndexed())
	}
}

func TestLocation_CurrentCoordinatesFallsBack(t *testing.T) {
	t.Parallel()

	svc, _ := newLocationService(t)

	reported := domain.Coordinates{Lat: 4.60, Lng: -74.08}
	if got := svc.CurrentCoordinates(&reported); got != reported {
		t.Errorf("expected reported position, got %+v", got)
	}

	fallback := svc.CurrentCoordinates(nil)
	if fallback.Lat != 4.6865 || fallback.Lng != -74.0537 {
		t.Errorf("unexpected fallback position %+v", fallback)
	}

	invalid := domain.Coordinates{Lat: 120, Lng: 0}
	if got := svc.CurrentCoordinates(&invalid); got != fallback {
		t.Errorf("invalid position must fall back, got %+v", got)
	}
}

func TestLocation_ReverseGeocode(t *testing.T) {
	t.Parallel()

	svc, index := newLocationService(t)
	ctx := context.Background()

	// Right on top of a known place.
	if got := svc.ReverseGeocode(ctx, domain.Coordinates{Lat: 4.6670, Lng: -74.0525}); got != "Centro Comercial Andino" {
		t.Errorf("expected known place description, got %q", got)
	}

	// Middle of nowhere.
	if got := svc.ReverseGeocode(ctx, domain.Coordinates{Lat: 5.5, Lng: -75.5}); got != "Ubicación en mapa" {
		t.Errorf("expected generic map label, got %q", got)
	}

	// Index failure degrades, never errors.
	index.FindError = errors.New("connection refused")
	if got := svc.ReverseGeocode(ctx, domain.Coordinates{Lat: 4.6670, Lng: -74.0525}); got != "Ubicación seleccionada en mapa" {
		t.Errorf("expected degraded label on index failure, got %q", got)
	}
}

func TestLocation_Suggestions(t *testing.T) {
	t.Parallel()

	svc, _ := newLocationService(t)
	ctx := context.Background()

	all, err := svc.Suggestions(ctx, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("empty query must return every place, got %d", len(all))
	}

	matches, err := svc.Suggestions(ctx, "parque")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 1 || matches[0].ID != "p3" {
		t.Errorf("expected only Parque de la 93, got %+v", matches)
	}
}

func TestNavigation_PersistsScreenPerUser(t *testing.T) {
	t.Parallel()

	screens := NewMockScreenStore()
	svc := service.NewNavigationService(screens, zap.NewNop())
	ctx := context.Background()

	// Fresh authenticated user lands on the map.
	current, err := svc.Current(ctx, "user-1", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if current != nav.ScreenMain {
		t.Errorf("expected main for a fresh session, got %s", current)
	}

	landed, err := svc.Navigate(ctx, "user-1", nav.ScreenPayments, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if landed != nav.ScreenPayments {
		t.Errorf("expected payments, got %s", landed)
	}

	// The screen survives a new lookup.
	current, err = svc.Current(ctx, "user-1", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if current != nav.ScreenPayments {
		t.Errorf("expected persisted screen payments, got %s", current)
	}

	// An authenticated user asking for the register screen is bounced home.
	landed, err = svc.Navigate(ctx, "user-1", nav.ScreenRegister, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if landed == nav.ScreenRegister {
		t.Error("authenticated user must not land on register")
	}

	// Unknown screens are rejected outright.
	if _, err := svc.Navigate(ctx, "user-1", nav.Screen("dashboard"), true); !errors.Is(err, service.ErrInvalidScreen) {
		t.Fatalf("expected ErrInvalidScreen, got %v", err)
	}
}
