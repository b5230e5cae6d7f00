package validate

// RegistrationForm carries the raw registration fields.
type RegistrationForm struct {
	FirstName       string
	LastName        string
	Username        string
	Email           string
	Phone           string
	Password        string
	ConfirmPassword string
}

// FieldError identifies the first invalid field of a form.
type FieldError struct {
	Field   string
	Message string
}

// Registration validates a registration form in the fixed field order (first
// name, last name, username, email, phone, password, confirmation) and stops
// at the first failure, so exactly one error surfaces at a time.
func Registration(form RegistrationForm) (bool, *FieldError) {
	checks := []struct {
		field  string
		result Result
	}{
		{"nombre", Required(form.FirstName, "Nombre")},
		{"apellido", Required(form.LastName, "Apellido")},
		{"usuario", Username(form.Username)},
		{"correo", Email(form.Email)},
		{"telefono", Phone(form.Phone)},
	}

	for _, c := range checks {
		if !c.result.Valid {
			return false, &FieldError{Field: c.field, Message: c.result.Error}
		}
	}

	if res, _ := Password(form.Password, 6); !res.Valid {
		return false, &FieldError{Field: "password", Message: res.Error}
	}

	if res := PasswordMatch(form.Password, form.ConfirmPassword); !res.Valid {
		return false, &FieldError{Field: "confirmacion", Message: res.Error}
	}

	return true, nil
}
