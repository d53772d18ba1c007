package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/hartono/lending-engine/internal/domain"
)

// CustomerRepository defines the interface for customer data operations
type CustomerRepository interface {
	// Upsert creates a customer record if none exists for the id.
	// Existing records are left untouched.
	Upsert(ctx context.Context, customer *domain.Customer) error
}

// LoanRepository defines the interface for loan data operations
type LoanRepository interface {
	// Create persists a new loan
	Create(ctx context.Context, loan *domain.Loan) error

	// GetByLoanID retrieves a loan by its loan ID
	GetByLoanID(ctx context.Context, loanID string) (*domain.Loan, error)

	// GetByLoanIDForUpdate retrieves a loan inside tx, locking its row
	// until the transaction ends
	GetByLoanIDForUpdate(ctx context.Context, tx *sqlx.Tx, loanID string) (*domain.Loan, error)

	// ListByCustomerID retrieves all loans owned by a customer, in
	// insertion order
	ListByCustomerID(ctx context.Context, customerID string) ([]*domain.Loan, error)

	// ListByStatus retrieves all loans with the given lifecycle status
	ListByStatus(ctx context.Context, status string) ([]*domain.Loan, error)

	// UpdateStatus sets a loan's lifecycle status
	UpdateStatus(ctx context.Context, loanID string, status string) error

	// UpdateStatusTx sets a loan's lifecycle status inside tx
	UpdateStatusTx(ctx context.Context, tx *sqlx.Tx, loanID string, status string) error
}

// PaymentRepository defines the interface for payment data operations
type PaymentRepository interface {
	// CreateTx persists a new payment record inside tx
	CreateTx(ctx context.Context, tx *sqlx.Tx, payment *domain.Payment) error

	// ListByLoanID retrieves all payments for a loan, most recent first
	ListByLoanID(ctx context.Context, loanID string) ([]*domain.Payment, error)

	// GetTotalPaid sums all payment amounts for a loan, zero if none
	GetTotalPaid(ctx context.Context, loanID string) (decimal.Decimal, error)

	// GetTotalPaidTx sums all payment amounts for a loan inside tx
	GetTotalPaidTx(ctx context.Context, tx *sqlx.Tx, loanID string) (decimal.Decimal, error)
}

// TxFunc is the body of a database transaction.
type TxFunc func(ctx context.Context, tx *sqlx.Tx) error

// TxRunner runs a function inside a single database transaction,
// committing on success and rolling back on error.
type TxRunner interface {
	RunInTx(ctx context.Context, fn TxFunc) error
}
