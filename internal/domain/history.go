package domain

import "time"

// HistoryStatus is the outcome recorded for a finished trip.
type HistoryStatus string

const (
	HistoryStatusCompleted HistoryStatus = "Completado"
	HistoryStatusCancelled HistoryStatus = "Cancelado"
)

// TripHistoryEntry is an immutable record of a finished trip, appended to the
// user's local history log when a trip completes.
type TripHistoryEntry struct {
	ID          string
	Date        time.Time
	Destination string
	Price       int64
	Status      HistoryStatus
	Method      string // Spanish payment label
}

// RouteRecord is a persisted route row (rutas table).
type RouteRecord struct {
	ID          string
	UserID      string
	Origin      string
	Destination string
	Date        string // YYYY-MM-DD
	Time        string // HH:MM:SS
}
