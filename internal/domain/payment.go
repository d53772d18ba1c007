package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	PaymentTypeEMI     = "EMI"
	PaymentTypeLumpSum = "LUMP_SUM"
)

// ValidPaymentType reports whether t is one of the recognized payment types.
// The distinction is informational only; both types reduce the outstanding
// balance equally.
func ValidPaymentType(t string) bool {
	return t == PaymentTypeEMI || t == PaymentTypeLumpSum
}

// Payment is a single recorded transfer against a loan. Payments are
// immutable once created; the payment date is assigned by the server and
// orders ledger transactions.
type Payment struct {
	PaymentID   string          `json:"payment_id" db:"payment_id"`
	LoanID      string          `json:"loan_id" db:"loan_id"`
	Amount      decimal.Decimal `json:"amount" db:"amount"`
	PaymentType string          `json:"payment_type" db:"payment_type"`
	PaymentDate time.Time       `json:"payment_date" db:"payment_date"`
}

type RecordPaymentRequest struct {
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	PaymentType string  `json:"payment_type" validate:"required,oneof=EMI LUMP_SUM"`
}

type RecordPaymentResponse struct {
	PaymentID        string          `json:"payment_id"`
	LoanID           string          `json:"loan_id"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	EMIsLeft         int64           `json:"emis_left"`
}

// Transaction is a payment as presented in a ledger view.
type Transaction struct {
	TransactionID string          `json:"transaction_id"`
	Date          time.Time       `json:"date"`
	Amount        decimal.Decimal `json:"amount"`
	Type          string          `json:"type"`
}
