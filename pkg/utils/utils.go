package utils

import "github.com/shopspring/decimal"

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
)

// CalculateTotalPayable computes the total amount owed over the full term
// using simple (non-compounding) interest.
// Formula: Principal + Principal * Years * (Rate / 100)
func CalculateTotalPayable(principal, yearlyRate, periodYears decimal.Decimal) decimal.Decimal {
	totalInterest := principal.Mul(periodYears).Mul(yearlyRate.Div(hundred))
	return principal.Add(totalInterest)
}

// CalculateMonthlyEMI computes the fixed monthly installment: the total
// payable spread over the term in months. The result is stored unrounded;
// rounding for display is a boundary concern.
func CalculateMonthlyEMI(totalPayable, periodYears decimal.Decimal) decimal.Decimal {
	months := periodYears.Mul(twelve)
	return totalPayable.Div(months)
}

// InstallmentsLeft computes how many installments of size emi are still
// needed to cover outstanding, floored at zero once the balance is cleared.
func InstallmentsLeft(outstanding, emi decimal.Decimal) int64 {
	if outstanding.Sign() <= 0 {
		return 0
	}
	left := outstanding.Div(emi).Ceil().IntPart()
	if left < 0 {
		return 0
	}
	return left
}
