package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBusinessErrorUnwrap(t *testing.T) {
	err := WrapLoanNotFound("LOAN-1")

	assert.True(t, errors.Is(err, ErrLoanNotFound))
	assert.Contains(t, err.Error(), ErrCodeLoanNotFound)
	assert.Contains(t, err.Message, "LOAN-1")
}

func TestClassification(t *testing.T) {
	tests := []struct {
		name            string
		err             error
		notFound        bool
		invalidArgument bool
	}{
		{"loan not found", WrapLoanNotFound("L1"), true, false},
		{"customer not found", WrapCustomerNotFound("C1"), true, false},
		{"invalid loan terms", WrapInvalidLoanTerms("bad"), false, true},
		{"invalid payment amount", WrapInvalidPaymentAmount("-5"), false, true},
		{"invalid payment type", WrapInvalidPaymentType("REFUND"), false, true},
		{"database error", WrapDatabaseError(errors.New("boom")), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.notFound, IsNotFound(tt.err))
			assert.Equal(t, tt.invalidArgument, IsInvalidArgument(tt.err))
		})
	}
}
