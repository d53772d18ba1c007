package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrLoanNotFound       = errors.New("loan not found")
	ErrCustomerNotFound   = errors.New("no loans found for customer")
	ErrInvalidLoanTerms   = errors.New("invalid loan terms")
	ErrInvalidPayment     = errors.New("invalid payment")
	ErrInvalidPaymentType = errors.New("invalid payment type")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeLoanNotFound       = "LOAN_NOT_FOUND"
	ErrCodeCustomerNotFound   = "CUSTOMER_NOT_FOUND"
	ErrCodeInvalidLoanTerms   = "INVALID_LOAN_TERMS"
	ErrCodeInvalidPayment     = "INVALID_PAYMENT_AMOUNT"
	ErrCodeInvalidPaymentType = "INVALID_PAYMENT_TYPE"
	ErrCodeDatabaseError      = "DATABASE_ERROR"
	ErrCodeCacheError         = "CACHE_ERROR"
)

// Wrap common errors with business context

func WrapLoanNotFound(loanID string) *BusinessError {
	return NewBusinessError(
		ErrCodeLoanNotFound,
		fmt.Sprintf("Loan with ID %s not found", loanID),
		ErrLoanNotFound,
	)
}

func WrapCustomerNotFound(customerID string) *BusinessError {
	return NewBusinessError(
		ErrCodeCustomerNotFound,
		fmt.Sprintf("No loans found for customer %s", customerID),
		ErrCustomerNotFound,
	)
}

func WrapInvalidLoanTerms(reason string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidLoanTerms,
		reason,
		ErrInvalidLoanTerms,
	)
}

func WrapInvalidPaymentAmount(amount string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidPayment,
		fmt.Sprintf("Invalid payment amount: %s", amount),
		ErrInvalidPayment,
	)
}

func WrapInvalidPaymentType(paymentType string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidPaymentType,
		fmt.Sprintf("Unrecognized payment type: %s", paymentType),
		ErrInvalidPaymentType,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"cache operation failed",
		err,
	)
}

// IsNotFound reports whether err is an unknown-entity error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrLoanNotFound) || errors.Is(err, ErrCustomerNotFound)
}

// IsInvalidArgument reports whether err is a bad-input error.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidLoanTerms) ||
		errors.Is(err, ErrInvalidPayment) ||
		errors.Is(err, ErrInvalidPaymentType)
}
