package domain

import "time"

// Customer is identity only. A minimal record is created the first time a
// loan references an unknown customer id; customers are never deleted.
type Customer struct {
	CustomerID string    `json:"customer_id" db:"customer_id"`
	Name       string    `json:"name" db:"name"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

type AccountOverviewResponse struct {
	CustomerID string         `json:"customer_id"`
	TotalLoans int            `json:"total_loans"`
	Loans      []*LoanSummary `json:"loans"`
}
