package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	LoanStatusActive  = "ACTIVE"
	LoanStatusPaidOff = "PAID_OFF"
)

// Loan represents one lending agreement. TotalAmount and MonthlyEMI are
// computed once at origination (simple, non-compounding interest) and stored
// unrounded; all balance figures are derived from payments at read time.
type Loan struct {
	LoanID          string          `json:"loan_id" db:"loan_id"`
	CustomerID      string          `json:"customer_id" db:"customer_id"`
	PrincipalAmount decimal.Decimal `json:"principal_amount" db:"principal_amount"`
	TotalAmount     decimal.Decimal `json:"total_amount" db:"total_amount"`
	InterestRate    decimal.Decimal `json:"interest_rate" db:"interest_rate"`
	LoanPeriodYears decimal.Decimal `json:"loan_period_years" db:"loan_period_years"`
	MonthlyEMI      decimal.Decimal `json:"monthly_emi" db:"monthly_emi"`
	Status          string          `json:"status" db:"status"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
}

// DTOs for requests and responses

type CreateLoanRequest struct {
	CustomerID         string  `json:"customer_id" validate:"required"`
	LoanAmount         float64 `json:"loan_amount" validate:"required,gt=0"`
	LoanPeriodYears    float64 `json:"loan_period_years" validate:"required,gt=0"`
	InterestRateYearly float64 `json:"interest_rate_yearly" validate:"gte=0"`
}

type CreateLoanResponse struct {
	LoanID             string          `json:"loan_id"`
	CustomerID         string          `json:"customer_id"`
	TotalAmountPayable decimal.Decimal `json:"total_amount_payable"`
	MonthlyEMI         decimal.Decimal `json:"monthly_emi"`
}

// LedgerResponse is the per-loan ledger view: identity, amortization terms,
// derived balances, and all transactions newest first.
type LedgerResponse struct {
	LoanID        string          `json:"loan_id"`
	CustomerID    string          `json:"customer_id"`
	Principal     decimal.Decimal `json:"principal"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	MonthlyEMI    decimal.Decimal `json:"monthly_emi"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	BalanceAmount decimal.Decimal `json:"balance_amount"`
	EMIsLeft      int64           `json:"emis_left"`
	Transactions  []*Transaction  `json:"transactions"`
}

// LoanSummary is one loan's entry in a customer account overview.
type LoanSummary struct {
	LoanID        string          `json:"loan_id"`
	Principal     decimal.Decimal `json:"principal"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	TotalInterest decimal.Decimal `json:"total_interest"`
	EMIAmount     decimal.Decimal `json:"emi_amount"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	EMIsLeft      int64           `json:"emis_left"`
}
