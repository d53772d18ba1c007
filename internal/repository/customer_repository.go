package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/hartono/lending-engine/internal/domain"
)

type customerRepository struct {
	db *sqlx.DB
}

func NewCustomerRepository(db *sqlx.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Upsert(ctx context.Context, customer *domain.Customer) error {
	query := `
		INSERT INTO customers (customer_id, name, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (customer_id) DO NOTHING
	`

	_, err := r.db.ExecContext(ctx, query,
		customer.CustomerID,
		customer.Name,
		customer.CreatedAt,
	)

	return err
}
