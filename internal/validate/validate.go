// Package validate provides the pure field validators shared by registration,
// profile and payment forms. Every validator is stateless: the same input
// always yields the same result.
package validate

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	emailRegex    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRegex    = regexp.MustCompile(`^[\d\s\-\(\)]{7,15}$`)
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)
	digitsRegex   = regexp.MustCompile(`^\d+$`)
)

// Result is the outcome of a single field validation.
type Result struct {
	Valid bool
	Error string
}

func ok() Result {
	return Result{Valid: true}
}

func fail(msg string) Result {
	return Result{Valid: false, Error: msg}
}

// Required validates that a value is non-empty after trimming.
func Required(value, fieldName string) Result {
	if strings.TrimSpace(value) == "" {
		return fail(fieldName + " es obligatorio")
	}
	return ok()
}

// Email validates email format.
func Email(email string) Result {
	if !emailRegex.MatchString(email) {
		return fail("Formato de correo inválido")
	}
	return ok()
}

// Phone validates a phone number: digits, spaces, hyphens and parentheses,
// 7 to 15 characters.
func Phone(phone string) Result {
	if !phoneRegex.MatchString(phone) {
		return fail("Formato de teléfono inválido")
	}
	return ok()
}

// Digits validates that a value contains only decimal digits.
func Digits(value string) Result {
	if !digitsRegex.MatchString(value) {
		return fail("Solo debe contener números")
	}
	return ok()
}

// PasswordStrength reports which character classes a password contains. The
// flags are informational; only minimum length is enforced.
type PasswordStrength struct {
	HasUpperCase bool
	HasLowerCase bool
	HasNumber    bool
}

// Password validates minimum password length and computes strength flags.
func Password(password string, minLength int) (Result, PasswordStrength) {
	if len(password) < minLength {
		return fail(fmt.Sprintf("La contraseña debe tener al menos %d caracteres", minLength)), PasswordStrength{}
	}

	strength := PasswordStrength{}
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			strength.HasUpperCase = true
		case r >= 'a' && r <= 'z':
			strength.HasLowerCase = true
		case r >= '0' && r <= '9':
			strength.HasNumber = true
		}
	}

	return ok(), strength
}

// PasswordMatch validates that a password and its confirmation are identical.
func PasswordMatch(password, confirm string) Result {
	if password != confirm {
		return fail("Las contraseñas no coinciden")
	}
	return ok()
}

// Username validates a username: 3-20 characters, letters, digits, underscore.
func Username(username string) Result {
	if !usernameRegex.MatchString(username) {
		return fail("Usuario debe tener 3-20 caracteres (solo letras, números y guión bajo)")
	}
	return ok()
}

// MinLength validates a minimum trimmed length.
func MinLength(value string, minLength int, fieldName string) Result {
	if len(strings.TrimSpace(value)) < minLength {
		return fail(fmt.Sprintf("%s debe tener al menos %d caracteres", fieldName, minLength))
	}
	return ok()
}

// MaxLength validates a maximum trimmed length. Empty values pass.
func MaxLength(value string, maxLength int, fieldName string) Result {
	if len(strings.TrimSpace(value)) > maxLength {
		return fail(fmt.Sprintf("%s no puede tener más de %d caracteres", fieldName, maxLength))
	}
	return ok()
}
