package tests

import (
	"errors"
	"testing"

	"ecoruta/internal/domain"
	"ecoruta/internal/service"
)

func TestPaymentValidation_CashNeedsNoFields(t *testing.T) {
	t.Parallel()

	v := service.ValidatePaymentDetails(domain.PaymentDetails{Method: domain.PaymentMethodCash})
	if !v.Valid {
		t.Fatalf("cash must validate with no fields, got %s: %s", v.Field, v.Message)
	}
}

func TestPaymentValidation_Nequi(t *testing.T) {
	t.Parallel()

	valid := domain.PaymentDetails{
		Method:     domain.PaymentMethodNequi,
		Phone:      "3001234567",
		DynamicKey: "123456",
		Email:      "rider@example.com",
	}

	cases := []struct {
		name      string
		mutate    func(*domain.PaymentDetails)
		wantValid bool
		wantField string
	}{
		{"complete form", func(d *domain.PaymentDetails) {}, true, ""},
		{"missing phone", func(d *domain.PaymentDetails) { d.Phone = "" }, false, "phone"},
		{"missing key", func(d *domain.PaymentDetails) { d.DynamicKey = "" }, false, "dynamic_key"},
		{"missing email", func(d *domain.PaymentDetails) { d.Email = "" }, false, "email"},
		{"phone not numeric", func(d *domain.PaymentDetails) { d.Phone = "abc" }, false, "phone"},
		{"key not numeric", func(d *domain.PaymentDetails) { d.DynamicKey = "12a4" }, false, "dynamic_key"},
		{"bad email", func(d *domain.PaymentDetails) { d.Email = "rider@" }, false, "email"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			details := valid
			tc.mutate(&details)
			v := service.ValidatePaymentDetails(details)
			if v.Valid != tc.wantValid {
				t.Fatalf("expected valid=%v, got %v (%s: %s)", tc.wantValid, v.Valid, v.Field, v.Message)
			}
			if !tc.wantValid && v.Field != tc.wantField {
				t.Errorf("expected field %q, got %q", tc.wantField, v.Field)
			}
		})
	}
}

// Presence of every field is checked before any format, so a bad phone with a
// missing key reports the key first.
func TestPaymentValidation_PresenceBeforeFormat(t *testing.T) {
	t.Parallel()

	v := service.ValidatePaymentDetails(domain.PaymentDetails{
		Method: domain.PaymentMethodNequi,
		Phone:  "abc",
		Email:  "rider@example.com",
	})
	if v.Valid {
		t.Fatal("expected invalid result")
	}
	if v.Field != "dynamic_key" {
		t.Fatalf("expected missing key reported before phone format, got %q", v.Field)
	}
}

func TestPaymentValidation_PSE(t *testing.T) {
	t.Parallel()

	valid := domain.PaymentDetails{
		Method:     domain.PaymentMethodPSE,
		Bank:       "Bancolombia",
		ClientType: domain.PSEClientNatural,
		Email:      "rider@example.com",
	}

	cases := []struct {
		name      string
		mutate    func(*domain.PaymentDetails)
		wantValid bool
		wantField string
	}{
		{"complete form", func(d *domain.PaymentDetails) {}, true, ""},
		{"juridica client", func(d *domain.PaymentDetails) { d.ClientType = domain.PSEClientJuridica }, true, ""},
		{"missing bank", func(d *domain.PaymentDetails) { d.Bank = "" }, false, "bank"},
		{"missing client type", func(d *domain.PaymentDetails) { d.ClientType = "" }, false, "client_type"},
		{"missing email", func(d *domain.PaymentDetails) { d.Email = "" }, false, "email"},
		{"unknown bank", func(d *domain.PaymentDetails) { d.Bank = "Banco Inventado" }, false, "bank"},
		{"bad client type", func(d *domain.PaymentDetails) { d.ClientType = "Empresa" }, false, "client_type"},
		{"bad email", func(d *domain.PaymentDetails) { d.Email = "sin-arroba" }, false, "email"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			details := valid
			tc.mutate(&details)
			v := service.ValidatePaymentDetails(details)
			if v.Valid != tc.wantValid {
				t.Fatalf("expected valid=%v, got %v (%s: %s)", tc.wantValid, v.Valid, v.Field, v.Message)
			}
			if !tc.wantValid && v.Field != tc.wantField {
				t.Errorf("expected field %q, got %q", tc.wantField, v.Field)
			}
		})
	}
}

func TestPaymentValidation_BankMatchIgnoresCase(t *testing.T) {
	t.Parallel()

	v := service.ValidatePaymentDetails(domain.PaymentDetails{
		Method:     domain.PaymentMethodPSE,
		Bank:       "bancolombia",
		ClientType: domain.PSEClientNatural,
		Email:      "rider@example.com",
	})
	if !v.Valid {
		t.Fatalf("bank match must ignore case, got %s: %s", v.Field, v.Message)
	}
}

func TestPaymentValidation_IsPure(t *testing.T) {
	t.Parallel()

	details := domain.PaymentDetails{
		Method:     domain.PaymentMethodNequi,
		Phone:      "3001234567",
		DynamicKey: "123456",
		Email:      "rider@example.com",
	}
	first := service.ValidatePaymentDetails(details)
	for i := 0; i < 10; i++ {
		if v := service.ValidatePaymentDetails(details); v != first {
			t.Fatalf("validation result changed on repeat call: %+v vs %+v", v, first)
		}
	}
}

func TestParsePaymentMethod(t *testing.T) {
	t.Parallel()

	if m, err := service.ParsePaymentMethod(""); err != nil || m != domain.PaymentMethodCash {
		t.Errorf("empty method must default to cash, got %s, %v", m, err)
	}
	if m, err := service.ParsePaymentMethod("nequi"); err != nil || m != domain.PaymentMethodNequi {
		t.Errorf("expected nequi, got %s, %v", m, err)
	}
	if _, err := service.ParsePaymentMethod("tarjeta"); !errors.Is(err, service.ErrInvalidPaymentMethod) {
		t.Errorf("expected ErrInvalidPaymentMethod, got %v", err)
	}
}

func TestPaymentMethodLabels(t *testing.T) {
	t.Parallel()

	cases := map[domain.PaymentMethod]string{
		domain.PaymentMethodCash:  "Efectivo",
		domain.PaymentMethodNequi: "Nequi",
		domain.PaymentMethodPSE:   "PSE",
	}
	for method, want := range cases {
		if got := method.Label(); got != want {
			t.Errorf("label for %s: expected %s, got %s", method, want, got)
		}
	}
}
