package service

import (
	"strings"

	"ecoruta/internal/domain"
	"ecoruta/internal/validate"
)

// PaymentValidation is the outcome of validating a payment form. A valid
// result carries no field or message.
type PaymentValidation struct {
	Valid   bool
	Field   string
	Message string
}

func paymentInvalid(field, message string) PaymentValidation {
	return PaymentValidation{Valid: false, Field: field, Message: message}
}

// ValidatePaymentDetails checks the structural validity of a payment form.
// It dispatches on the method tag and stops at the first failing check:
// presence of every required field first, then formats. It has no side
// effects and may be called any number of times.
func ValidatePaymentDetails(details domain.PaymentDetails) PaymentValidation {
	switch details.Method {
	case domain.PaymentMethodCash:
		return PaymentValidation{Valid: true}
	case domain.PaymentMethodNequi:
		return validateNequi(details)
	case domain.PaymentMethodPSE:
		return validatePSE(details)
	default:
		return paymentInvalid("method", "Selecciona un método de pago")
	}
}

func validateNequi(details domain.PaymentDetails) PaymentValidation {
	if res := validate.Required(details.Phone, "Celular"); !res.Valid {
		return paymentInvalid("phone", "Todos los campos de Nequi son obligatorios")
	}
	if res := validate.Required(details.DynamicKey, "Clave dinámica"); !res.Valid {
		return paymentInvalid("dynamic_key", "Todos los campos de Nequi son obligatorios")
	}
	if res := validate.Required(details.Email, "Correo"); !res.Valid {
		return paymentInvalid("email", "Todos los campos de Nequi son obligatorios")
	}
	if res := validate.Digits(details.Phone); !res.Valid {
		return paymentInvalid("phone", "El celular solo debe contener números")
	}
	if res := validate.Digits(details.DynamicKey); !res.Valid {
		return paymentInvalid("dynamic_key", "La clave solo debe contener números")
	}
	if res := validate.Email(details.Email); !res.Valid {
		return paymentInvalid("email", "Formato de correo inválido")
	}
	return PaymentValidation{Valid: true}
}

func validatePSE(details domain.PaymentDetails) PaymentValidation {
	if res := validate.Required(details.Bank, "Banco"); !res.Valid {
		return paymentInvalid("bank", "Todos los campos de PSE son obligatorios")
	}
	if res := validate.Required(details.ClientType, "Tipo de cliente"); !res.Valid {
		return paymentInvalid("client_type", "Todos los campos de PSE son obligatorios")
	}
	if res := validate.Required(details.Email, "Correo"); !res.Valid {
		return paymentInvalid("email", "Todos los campos de PSE son obligatorios")
	}
	if !knownBank(details.Bank) {
		return paymentInvalid("bank", "Selecciona un banco de la lista")
	}
	if details.ClientType != domain.PSEClientNatural && details.ClientType != domain.PSEClientJuridica {
		return paymentInvalid("client_type", "Tipo de cliente inválido")
	}
	if res := validate.Email(details.Email); !res.Valid {
		return paymentInvalid("email", "Formato de correo inválido")
	}
	return PaymentValidation{Valid: true}
}

func knownBank(bank string) bool {
	for _, b := range domain.ColombianBanks {
		if strings.EqualFold(b, bank) {
			return true
		}
	}
	return false
}

// ParsePaymentMethod validates a payment method string, defaulting to cash
// when empty.
func ParsePaymentMethod(method string) (domain.PaymentMethod, error) {
	switch domain.PaymentMethod(method) {
	case domain.PaymentMethodCash, domain.PaymentMethodNequi, domain.PaymentMethodPSE:
		return domain.PaymentMethod(method), nil
	case "":
		return domain.PaymentMethodCash, nil
	default:
		return "", ErrInvalidPaymentMethod
	}
}
