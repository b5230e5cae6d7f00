package domain

import "time"

// TripPhase represents the current phase of the active trip.
type TripPhase string

const (
	TripPhaseIdle          TripPhase = "IDLE"
	TripPhaseSearching     TripPhase = "SEARCHING"
	TripPhaseDriverFound   TripPhase = "DRIVER_FOUND"
	TripPhaseDriverArrived TripPhase = "DRIVER_ARRIVED"
	TripPhaseRiding        TripPhase = "RIDING"
	TripPhaseCompleted     TripPhase = "COMPLETED"
	TripPhaseCancelled     TripPhase = "CANCELLED"
)

// Terminal reports whether the phase ends the trip.
func (p TripPhase) Terminal() bool {
	return p == TripPhaseCompleted || p == TripPhaseCancelled
}

// Coordinates is a WGS84 latitude/longitude pair.
type Coordinates struct {
	Lat float64
	Lng float64
}

// FareOption is a selectable transport tier with a fixed price and wait estimate.
type FareOption struct {
	ID       int
	Name     string
	Price    int64 // COP
	WaitTime time.Duration
	Comfort  string
}

// TripRequest is a confirmed ride request. It exists from confirmation until the
// trip reaches a terminal phase, at which point it is cleared.
type TripRequest struct {
	ID                 string
	UserID             string
	Destination        Coordinates
	DestinationAddress string
	Fare               FareOption
	PaymentMethod      PaymentMethod
	ConfirmedAt        time.Time
}
