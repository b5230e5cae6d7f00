package domain

// Place is a known destination offered as a suggestion (lugares table).
type Place struct {
	ID          string
	Description string
	Coords      Coordinates
}
