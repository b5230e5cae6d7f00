package domain

// PaymentMethod represents the payment method selected for a trip.
type PaymentMethod string

const (
	PaymentMethodCash  PaymentMethod = "cash"
	PaymentMethodNequi PaymentMethod = "nequi"
	PaymentMethodPSE   PaymentMethod = "pse"
)

// Label returns the user-facing Spanish name of the method, as stored in
// history records.
func (m PaymentMethod) Label() string {
	switch m {
	case PaymentMethodNequi:
		return "Nequi"
	case PaymentMethodPSE:
		return "PSE"
	default:
		return "Efectivo"
	}
}

// PSE client types.
const (
	PSEClientNatural  = "Persona Natural"
	PSEClientJuridica = "Persona Jurídica"
)

// ColombianBanks is the bank list offered for PSE payments.
var ColombianBanks = []string{
	"Bancolombia", "Banco de Bogotá", "Davivienda", "BBVA Colombia", "Banco de Occidente",
	"Banco Popular", "Scotiabank Colpatria", "Banco Caja Social", "AV Villas", "Nequi (PSE)", "Daviplata (PSE)",
}

// PaymentDetails is the tagged form submitted for a payment method. Only the
// fields belonging to the selected method are meaningful; cash carries none.
type PaymentDetails struct {
	Method PaymentMethod

	// Nequi fields.
	Phone      string
	DynamicKey string

	// PSE fields.
	Bank       string
	ClientType string

	// Shared by nequi and pse.
	Email string
}

// PaymentRecord is a persisted payment history row.
type PaymentRecord struct {
	ID        string
	UserID    string
	Method    string // Spanish label: Efectivo, Nequi, PSE
	Reference string
	Status    string // completado, cancelado
	CreatedAt string
}

// Payment record statuses.
const (
	PaymentRecordCompleted = "completado"
	PaymentRecordCancelled = "cancelado"
)
