package service

import (
	"time"

	"ecoruta/internal/domain"
)

// FareService quotes the fare options offered for a destination.
type FareService struct{}

// NewFareService creates a new FareService.
func NewFareService() *FareService {
	return &FareService{}
}

// fareOptions are the fixed transport tiers. Prices in COP.
var fareOptions = []domain.FareOption{
	{ID: 1, Name: "Uber", Price: 15000, WaitTime: 4 * time.Minute, Comfort: "Confort"},
	{ID: 2, Name: "DiDi", Price: 13000, WaitTime: 6 * time.Minute, Comfort: "Rápido"},
	{ID: 3, Name: "Taxi", Price: 11000, WaitTime: 8 * time.Minute, Comfort: "Básico"},
}

// Quote returns the fare options for a destination.
func (s *FareService) Quote(dest domain.Coordinates) ([]domain.FareOption, error) {
	if !validCoordinates(dest) {
		return nil, ErrInvalidDestination
	}

	options := make([]domain.FareOption, len(fareOptions))
	copy(options, fareOptions)
	return options, nil
}

// Option returns the fare option with the given ID.
func (s *FareService) Option(id int) (domain.FareOption, error) {
	for _, opt := range fareOptions {
		if opt.ID == id {
			return opt, nil
		}
	}
	return domain.FareOption{}, ErrInvalidFareOption
}

func validCoordinates(c domain.Coordinates) bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}
