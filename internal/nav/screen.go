// Package nav owns the application's screen state: a closed set of screen
// identifiers, a permissive transition function, and the two authentication
// gates that override any requested navigation.
package nav

// Screen identifies one application screen.
type Screen string

const (
	ScreenLogin       Screen = "login"
	ScreenRegister    Screen = "register"
	ScreenTerms       Screen = "terms"
	ScreenPrivacy     Screen = "privacy"
	ScreenSuccess     Screen = "success"
	ScreenHome        Screen = "home"
	ScreenProfile     Screen = "profile"
	ScreenHistory     Screen = "history"
	ScreenPayments    Screen = "payments"
	ScreenMain        Screen = "main"
	ScreenTripDetails Screen = "trip_details"
	ScreenPayment     Screen = "payment"
	ScreenSearching   Screen = "searching"
	ScreenTripStatus  Screen = "trip_status"
)

var allScreens = map[Screen]bool{
	ScreenLogin:       true,
	ScreenRegister:    true,
	ScreenTerms:       true,
	ScreenPrivacy:     true,
	ScreenSuccess:     true,
	ScreenHome:        true,
	ScreenProfile:     true,
	ScreenHistory:     true,
	ScreenPayments:    true,
	ScreenMain:        true,
	ScreenTripDetails: true,
	ScreenPayment:     true,
	ScreenSearching:   true,
	ScreenTripStatus:  true,
}

// Valid reports whether s names a known screen.
func (s Screen) Valid() bool {
	return allScreens[s]
}

// authScreens are reachable without a session.
var authScreens = map[Screen]bool{
	ScreenLogin:    true,
	ScreenRegister: true,
	ScreenTerms:    true,
	ScreenPrivacy:  true,
}

// preAuthOnly are screens an authenticated user is bounced out of.
var preAuthOnly = map[Screen]bool{
	ScreenLogin:    true,
	ScreenRegister: true,
	ScreenSuccess:  true,
}

// Navigate returns the screen that becomes current when `requested` is asked
// for while `current` is showing. Any screen may request any other; the only
// overrides are the two auth gates, applied after the request:
//
//   - without a session, anything outside the auth flow lands on login
//   - with a session, the pre-auth screens land on main
func Navigate(current, requested Screen, authenticated bool) Screen {
	next := requested
	if !next.Valid() {
		next = current
	}

	if !authenticated && !authScreens[next] {
		return ScreenLogin
	}

	if authenticated && preAuthOnly[next] {
		return ScreenMain
	}

	return next
}

// Enforce applies the auth gates to a screen without a navigation request,
// used when the session state changes underneath the current screen.
func Enforce(current Screen, authenticated bool) Screen {
	return Navigate(current, current, authenticated)
}
