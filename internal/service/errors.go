package service

import "errors"

var (
	// ErrInvalidUserID is returned when the user ID is empty.
	ErrInvalidUserID = errors.New("invalid user id")

	// ErrInvalidDestination is returned when destination coordinates are invalid.
	ErrInvalidDestination = errors.New("invalid destination")

	// ErrInvalidFareOption is returned when the selected fare option is unknown.
	ErrInvalidFareOption = errors.New("invalid fare option")

	// ErrInvalidPaymentMethod is returned when the payment method is unknown.
	ErrInvalidPaymentMethod = errors.New("invalid payment method")

	// ErrTripInProgress is returned when confirming a trip while one is live.
	ErrTripInProgress = errors.New("a trip is already in progress")

	// ErrNoActiveTrip is returned when cancelling with no live trip.
	ErrNoActiveTrip = errors.New("no active trip")

	// ErrCancelWhileRiding is returned when the normal cancel path is used
	// during the riding phase; only the emergency path may cancel then.
	ErrCancelWhileRiding = errors.New("cannot cancel while riding")

	// ErrConfirmLocked is returned when a concurrent confirmation for the
	// same user holds the confirm lock.
	ErrConfirmLocked = errors.New("trip confirmation already in progress")

	// ErrInvalidCredentials is returned on a failed sign-in.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailTaken is returned when registering an email that exists.
	ErrEmailTaken = errors.New("email already registered")

	// ErrUsernameTaken is returned when registering a username that exists.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrSessionExpired is returned when a session token is unknown or expired.
	ErrSessionExpired = errors.New("session expired")

	// ErrInvalidScreen is returned when a navigation target is not a known screen.
	ErrInvalidScreen = errors.New("invalid screen")
)
