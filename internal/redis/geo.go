package redis

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const placeGeoKey = "places:geo"

// NearbyPlace is a place returned by a geo search, with its distance from the
// query point.
type NearbyPlace struct {
	ID         string
	Lat        float64
	Lng        float64
	DistanceKm float64
}

// PlaceIndex keeps the suggested places in a Redis geo set for nearby lookups
// and reverse geocoding.
type PlaceIndex struct {
	client *redis.Client
}

// NewPlaceIndex creates a new PlaceIndex.
func NewPlaceIndex(client *redis.Client) *PlaceIndex {
	return &PlaceIndex{client: client}
}

// Add indexes a place using GEOADD.
func (s *PlaceIndex) Add(ctx context.Context, placeID string, lat, lng float64) error {
	return s.client.GeoAdd(ctx, placeGeoKey, &redis.GeoLocation{
		Name:      placeID,
		Longitude: lng,
		Latitude:  lat,
	}).Err()
}

// FindNearby returns place IDs within the given radius, closest first.
func (s *PlaceIndex) FindNearby(ctx context.Context, lat, lng, radiusKm float64) ([]NearbyPlace, error) {
	results, err := s.client.GeoRadius(ctx, placeGeoKey, lng, lat, &redis.GeoRadiusQuery{
		Radius:    radiusKm,
		Unit:      "km",
		WithCoord: true,
		WithDist:  true,
		Sort:      "ASC",
	}).Result()
	if err != nil {
		return nil, err
	}

	places := make([]NearbyPlace, 0, len(results))
	for _, r := range results {
		places = append(places, NearbyPlace{
			ID:         r.Name,
			Lat:        r.Latitude,
			Lng:        r.Longitude,
			DistanceKm: r.Dist,
		})
	}

	return places, nil
}

// Remove drops a place from the geo index.
func (s *PlaceIndex) Remove(ctx context.Context, placeID string) error {
	return s.client.ZRem(ctx, placeGeoKey, placeID).Err()
}
