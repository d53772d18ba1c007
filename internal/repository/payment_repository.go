package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/hartono/lending-engine/internal/domain"
)

type paymentRepository struct {
	db *sqlx.DB
}

func NewPaymentRepository(db *sqlx.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) CreateTx(ctx context.Context, tx *sqlx.Tx, payment *domain.Payment) error {
	query := `
		INSERT INTO payments (payment_id, loan_id, amount, payment_type, payment_date)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := tx.ExecContext(ctx, query,
		payment.PaymentID,
		payment.LoanID,
		payment.Amount,
		payment.PaymentType,
		payment.PaymentDate,
	)

	return err
}

// ListByLoanID returns payments newest first. The descending order is part
// of the ledger contract, not a presentation choice.
func (r *paymentRepository) ListByLoanID(ctx context.Context, loanID string) ([]*domain.Payment, error) {
	query := `
		SELECT payment_id, loan_id, amount, payment_type, payment_date
		FROM payments
		WHERE loan_id = $1
		ORDER BY payment_date DESC
	`

	var payments []*domain.Payment
	err := r.db.SelectContext(ctx, &payments, query, loanID)
	if err != nil {
		return nil, err
	}

	return payments, nil
}

func (r *paymentRepository) GetTotalPaid(ctx context.Context, loanID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM payments
		WHERE loan_id = $1
	`

	var total decimal.Decimal
	err := r.db.GetContext(ctx, &total, query, loanID)
	if err != nil {
		return decimal.Zero, err
	}

	return total, nil
}

func (r *paymentRepository) GetTotalPaidTx(ctx context.Context, tx *sqlx.Tx, loanID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM payments
		WHERE loan_id = $1
	`

	var total decimal.Decimal
	err := tx.GetContext(ctx, &total, query, loanID)
	if err != nil {
		return decimal.Zero, err
	}

	return total, nil
}
