package service

import (
	"context"

	"go.uber.org/zap"

	"ecoruta/internal/domain"
	internalredis "ecoruta/internal/redis"
	"ecoruta/internal/repository"
)

// defaultCoordinates is the fallback when no device position is available.
var defaultCoordinates = domain.Coordinates{Lat: 4.6865, Lng: -74.0537}

const reverseGeocodeRadiusKm = 1.0

// LocationService resolves coordinates to addresses and suggests known
// destinations near a point.
type LocationService struct {
	placeRepo  repository.PlaceRepository
	placeIndex internalredis.PlaceIndexInterface
	logger     *zap.Logger
}

// NewLocationService creates a new LocationService.
func NewLocationService(
	placeRepo repository.PlaceRepository,
	placeIndex internalredis.PlaceIndexInterface,
	logger *zap.Logger,
) *LocationService {
	return &LocationService{
		placeRepo:  placeRepo,
		placeIndex: placeIndex,
		logger:     logger,
	}
}

// SeedIndex loads every known place into the geo index. Called at startup;
// GEOADD is idempotent per member so reseeding is safe.
func (s *LocationService) SeedIndex(ctx context.Context) error {
	places, err := s.placeRepo.GetAll(ctx)
	if err != nil {
		return err
	}

	for _, place := range places {
		if err := s.placeIndex.Add(ctx, place.ID, place.Coords.Lat, place.Coords.Lng); err != nil {
			return err
		}
	}

	s.logger.Info("place index seeded", zap.Int("places", len(places)))
	return nil
}

// CurrentCoordinates returns the device position, falling back to the default
// when none was reported.
func (s *LocationService) CurrentCoordinates(reported *domain.Coordinates) domain.Coordinates {
	if reported != nil && validCoordinates(*reported) {
		return *reported
	}
	return defaultCoordinates
}

// ReverseGeocode resolves coordinates to the nearest known place description.
// Unknown locations resolve to the generic map label; lookup failures degrade
// the same way rather than erroring.
func (s *LocationService) ReverseGeocode(ctx context.Context, coords domain.Coordinates) string {
	nearby, err := s.placeIndex.FindNearby(ctx, coords.Lat, coords.Lng, reverseGeocodeRadiusKm)
	if err != nil {
		s.logger.Warn("reverse geocode failed", zap.Error(err))
		return "Ubicación seleccionada en mapa"
	}
	if len(nearby) == 0 {
		return "Ubicación en mapa"
	}

	places, err := s.placeRepo.GetAll(ctx)
	if err != nil {
		s.logger.Warn("place lookup failed", zap.Error(err))
		return "Ubicación en mapa"
	}

	for _, place := range places {
		if place.ID == nearby[0].ID {
			return place.Description
		}
	}
	return "Ubicación en mapa"
}

// Suggestions returns places matching a free-text query, or every place when
// the query is empty.
func (s *LocationService) Suggestions(ctx context.Context, query string) ([]*domain.Place, error) {
	if query == "" {
		return s.placeRepo.GetAll(ctx)
	}
	return s.placeRepo.Search(ctx, query)
}
