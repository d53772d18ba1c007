package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// Schema is applied at startup. Tables are created idempotently so a fresh
// database bootstraps itself without a separate migration step.
const schema = `
CREATE TABLE IF NOT EXISTS customers (
	customer_id TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS loans (
	loan_id           TEXT PRIMARY KEY,
	customer_id       TEXT NOT NULL REFERENCES customers (customer_id),
	principal_amount  NUMERIC NOT NULL,
	total_amount      NUMERIC NOT NULL,
	interest_rate     NUMERIC NOT NULL,
	loan_period_years NUMERIC NOT NULL,
	monthly_emi       NUMERIC NOT NULL,
	status            TEXT NOT NULL DEFAULT 'ACTIVE',
	created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS payments (
	payment_id   TEXT PRIMARY KEY,
	loan_id      TEXT NOT NULL REFERENCES loans (loan_id),
	amount       NUMERIC NOT NULL,
	payment_type TEXT NOT NULL CHECK (payment_type IN ('EMI', 'LUMP_SUM')),
	payment_date TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_loans_customer_id ON loans (customer_id);
CREATE INDEX IF NOT EXISTS idx_payments_loan_id ON payments (loan_id);
`

// Migrate creates the schema if it does not exist yet.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}
