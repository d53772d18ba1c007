package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/hartono/lending-engine/internal/domain"
)

const loanColumns = `loan_id, customer_id, principal_amount, total_amount, interest_rate, loan_period_years, monthly_emi, status, created_at`

type loanRepository struct {
	db *sqlx.DB
}

func NewLoanRepository(db *sqlx.DB) LoanRepository {
	return &loanRepository{db: db}
}

func (r *loanRepository) Create(ctx context.Context, loan *domain.Loan) error {
	query := `
		INSERT INTO loans (` + loanColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, query,
		loan.LoanID,
		loan.CustomerID,
		loan.PrincipalAmount,
		loan.TotalAmount,
		loan.InterestRate,
		loan.LoanPeriodYears,
		loan.MonthlyEMI,
		loan.Status,
		loan.CreatedAt,
	)

	return err
}

func (r *loanRepository) GetByLoanID(ctx context.Context, loanID string) (*domain.Loan, error) {
	query := `
		SELECT ` + loanColumns + `
		FROM loans
		WHERE loan_id = $1
	`

	var loan domain.Loan
	err := r.db.GetContext(ctx, &loan, query, loanID)
	if err != nil {
		return nil, err
	}

	return &loan, nil
}

// GetByLoanIDForUpdate locks the loan row so the payment insert, balance
// recompute and status flip of one payment are serialized per loan.
func (r *loanRepository) GetByLoanIDForUpdate(ctx context.Context, tx *sqlx.Tx, loanID string) (*domain.Loan, error) {
	query := `
		SELECT ` + loanColumns + `
		FROM loans
		WHERE loan_id = $1
		FOR UPDATE
	`

	var loan domain.Loan
	err := tx.GetContext(ctx, &loan, query, loanID)
	if err != nil {
		return nil, err
	}

	return &loan, nil
}

func (r *loanRepository) ListByCustomerID(ctx context.Context, customerID string) ([]*domain.Loan, error) {
	query := `
		SELECT ` + loanColumns + `
		FROM loans
		WHERE customer_id = $1
	`

	var loans []*domain.Loan
	err := r.db.SelectContext(ctx, &loans, query, customerID)
	if err != nil {
		return nil, err
	}

	return loans, nil
}

func (r *loanRepository) ListByStatus(ctx context.Context, status string) ([]*domain.Loan, error) {
	query := `
		SELECT ` + loanColumns + `
		FROM loans
		WHERE status = $1
	`

	var loans []*domain.Loan
	err := r.db.SelectContext(ctx, &loans, query, status)
	if err != nil {
		return nil, err
	}

	return loans, nil
}

func (r *loanRepository) UpdateStatus(ctx context.Context, loanID string, status string) error {
	query := `
		UPDATE loans
		SET status = $2
		WHERE loan_id = $1
	`

	_, err := r.db.ExecContext(ctx, query, loanID, status)
	return err
}

func (r *loanRepository) UpdateStatusTx(ctx context.Context, tx *sqlx.Tx, loanID string, status string) error {
	query := `
		UPDATE loans
		SET status = $2
		WHERE loan_id = $1
	`

	_, err := tx.ExecContext(ctx, query, loanID, status)
	return err
}
