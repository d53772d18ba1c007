package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/hartono/lending-engine/internal/config"
	"github.com/hartono/lending-engine/internal/domain"
	"github.com/hartono/lending-engine/internal/repository"
	customError "github.com/hartono/lending-engine/pkg/errors"
	"github.com/hartono/lending-engine/pkg/utils"
)

// LendingService owns the loan accounting logic: amortization at
// origination, payment-to-balance reconciliation, and the ACTIVE ->
// PAID_OFF lifecycle. It holds no transport or storage mechanics; the
// repositories are the store contract and the cache is read-side only.
type LendingService struct {
	customerRepo repository.CustomerRepository
	loanRepo     repository.LoanRepository
	paymentRepo  repository.PaymentRepository
	tx           repository.TxRunner
	cache        *redis.Client
	config       *config.Config
}

func NewLendingService(
	customerRepo repository.CustomerRepository,
	loanRepo repository.LoanRepository,
	paymentRepo repository.PaymentRepository,
	tx repository.TxRunner,
	cache *redis.Client,
	config *config.Config,
) *LendingService {
	return &LendingService{
		customerRepo: customerRepo,
		loanRepo:     loanRepo,
		paymentRepo:  paymentRepo,
		tx:           tx,
		cache:        cache,
		config:       config,
	}
}

// CreateLoan originates a loan: validates the financial terms, ensures the
// customer record exists, computes total payable and fixed monthly
// installment with simple interest, and persists the loan as ACTIVE.
//
// Creating the customer on first reference is intentional: the lending API
// has no separate customer signup, a loan is the first thing a customer does.
func (s *LendingService) CreateLoan(ctx context.Context, request *domain.CreateLoanRequest) (*domain.Loan, error) {
	if request.CustomerID == "" {
		return nil, customError.WrapInvalidLoanTerms("customer_id is required")
	}

	principal := decimal.NewFromFloat(request.LoanAmount)
	periodYears := decimal.NewFromFloat(request.LoanPeriodYears)
	yearlyRate := decimal.NewFromFloat(request.InterestRateYearly)

	if !principal.IsPositive() {
		return nil, customError.WrapInvalidLoanTerms("loan_amount must be greater than zero")
	}
	if !periodYears.IsPositive() {
		return nil, customError.WrapInvalidLoanTerms("loan_period_years must be greater than zero")
	}
	if yearlyRate.IsNegative() {
		return nil, customError.WrapInvalidLoanTerms("interest_rate_yearly must not be negative")
	}

	totalPayable := utils.CalculateTotalPayable(principal, yearlyRate, periodYears)
	monthlyEMI := utils.CalculateMonthlyEMI(totalPayable, periodYears)

	// Degenerate terms would make the installments-left division undefined.
	if !monthlyEMI.IsPositive() {
		return nil, customError.WrapInvalidLoanTerms("loan terms yield a non-positive installment")
	}

	customer := &domain.Customer{
		CustomerID: request.CustomerID,
		Name:       fmt.Sprintf("Customer %s", request.CustomerID),
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.customerRepo.Upsert(ctx, customer); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	loan := &domain.Loan{
		LoanID:          uuid.NewString(),
		CustomerID:      request.CustomerID,
		PrincipalAmount: principal,
		TotalAmount:     totalPayable,
		InterestRate:    yearlyRate,
		LoanPeriodYears: periodYears,
		MonthlyEMI:      monthlyEMI,
		Status:          domain.LoanStatusActive,
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.loanRepo.Create(ctx, loan); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return loan, nil
}

// RecordPayment records a payment against a loan and settles the loan's
// balance. The payment insert, the balance recompute and the conditional
// PAID_OFF flip run in one transaction with the loan row locked, so two
// concurrent payments cannot both read a stale paid-to-date sum.
//
// EMI and LUMP_SUM payments reduce the balance identically; the type is
// recorded for the ledger only. Overpayments are accepted and simply leave
// a non-positive balance.
func (s *LendingService) RecordPayment(ctx context.Context, loanID string, request *domain.RecordPaymentRequest) (*domain.RecordPaymentResponse, error) {
	amount := decimal.NewFromFloat(request.Amount)
	if !amount.IsPositive() {
		return nil, customError.WrapInvalidPaymentAmount(amount.String())
	}
	if !domain.ValidPaymentType(request.PaymentType) {
		return nil, customError.WrapInvalidPaymentType(request.PaymentType)
	}

	var result *domain.RecordPaymentResponse

	err := s.tx.RunInTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		loan, err := s.loanRepo.GetByLoanIDForUpdate(ctx, tx, loanID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return customError.WrapLoanNotFound(loanID)
			}
			return customError.WrapDatabaseError(err)
		}

		payment := &domain.Payment{
			PaymentID:   uuid.NewString(),
			LoanID:      loan.LoanID,
			Amount:      amount,
			PaymentType: request.PaymentType,
			PaymentDate: time.Now().UTC(),
		}
		if err := s.paymentRepo.CreateTx(ctx, tx, payment); err != nil {
			return customError.WrapDatabaseError(err)
		}

		totalPaid, err := s.paymentRepo.GetTotalPaidTx(ctx, tx, loan.LoanID)
		if err != nil {
			return customError.WrapDatabaseError(err)
		}

		outstanding := loan.TotalAmount.Sub(totalPaid)
		emisLeft := utils.InstallmentsLeft(outstanding, loan.MonthlyEMI)

		// PAID_OFF is terminal; re-evaluating a settled loan is a no-op.
		if outstanding.Sign() <= 0 && loan.Status == domain.LoanStatusActive {
			if err := s.loanRepo.UpdateStatusTx(ctx, tx, loan.LoanID, domain.LoanStatusPaidOff); err != nil {
				return customError.WrapDatabaseError(err)
			}
		}

		result = &domain.RecordPaymentResponse{
			PaymentID:        payment.PaymentID,
			LoanID:           loan.LoanID,
			RemainingBalance: outstanding,
			EMIsLeft:         emisLeft,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateLedger(ctx, loanID)

	return result, nil
}

// GetLedger returns the full ledger view for a loan: amortization terms,
// derived balances and every transaction, most recent first. Views are
// cached; a recorded payment invalidates the loan's entry.
func (s *LendingService) GetLedger(ctx context.Context, loanID string) (*domain.LedgerResponse, error) {
	if cached := s.cachedLedger(ctx, loanID); cached != nil {
		return cached, nil
	}

	loan, err := s.loanRepo.GetByLoanID(ctx, loanID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapLoanNotFound(loanID)
		}
		return nil, customError.WrapDatabaseError(err)
	}

	payments, err := s.paymentRepo.ListByLoanID(ctx, loanID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	totalPaid, err := s.paymentRepo.GetTotalPaid(ctx, loanID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	outstanding := loan.TotalAmount.Sub(totalPaid)

	transactions := make([]*domain.Transaction, 0, len(payments))
	for _, payment := range payments {
		transactions = append(transactions, &domain.Transaction{
			TransactionID: payment.PaymentID,
			Date:          payment.PaymentDate,
			Amount:        payment.Amount,
			Type:          payment.PaymentType,
		})
	}

	ledger := &domain.LedgerResponse{
		LoanID:        loan.LoanID,
		CustomerID:    loan.CustomerID,
		Principal:     loan.PrincipalAmount,
		TotalAmount:   loan.TotalAmount,
		MonthlyEMI:    loan.MonthlyEMI,
		AmountPaid:    totalPaid,
		BalanceAmount: outstanding,
		EMIsLeft:      utils.InstallmentsLeft(outstanding, loan.MonthlyEMI),
		Transactions:  transactions,
	}

	s.cacheLedger(ctx, ledger)

	return ledger, nil
}

// GetAccountOverview composes the per-loan ledger figures for every loan a
// customer owns. A customer without loans is indistinguishable from an
// unknown customer; both are reported as not found. Loan ordering follows
// the store's insertion order and is not a guarantee.
func (s *LendingService) GetAccountOverview(ctx context.Context, customerID string) (*domain.AccountOverviewResponse, error) {
	loans, err := s.loanRepo.ListByCustomerID(ctx, customerID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	if len(loans) == 0 {
		return nil, customError.WrapCustomerNotFound(customerID)
	}

	summaries := make([]*domain.LoanSummary, 0, len(loans))
	for _, loan := range loans {
		totalPaid, err := s.paymentRepo.GetTotalPaid(ctx, loan.LoanID)
		if err != nil {
			return nil, customError.WrapDatabaseError(err)
		}

		outstanding := loan.TotalAmount.Sub(totalPaid)

		summaries = append(summaries, &domain.LoanSummary{
			LoanID:        loan.LoanID,
			Principal:     loan.PrincipalAmount,
			TotalAmount:   loan.TotalAmount,
			TotalInterest: loan.TotalAmount.Sub(loan.PrincipalAmount),
			EMIAmount:     loan.MonthlyEMI,
			AmountPaid:    totalPaid,
			EMIsLeft:      utils.InstallmentsLeft(outstanding, loan.MonthlyEMI),
		})
	}

	return &domain.AccountOverviewResponse{
		CustomerID: customerID,
		TotalLoans: len(summaries),
		Loans:      summaries,
	}, nil
}

// ReconcilePaidOff sweeps ACTIVE loans whose balance already reached zero
// and flips them to PAID_OFF. Run periodically by the scheduler as a safety
// net for status drift; returns how many loans were settled.
func (s *LendingService) ReconcilePaidOff(ctx context.Context) (int, error) {
	loans, err := s.loanRepo.ListByStatus(ctx, domain.LoanStatusActive)
	if err != nil {
		return 0, customError.WrapDatabaseError(err)
	}

	settled := 0
	for _, loan := range loans {
		totalPaid, err := s.paymentRepo.GetTotalPaid(ctx, loan.LoanID)
		if err != nil {
			return settled, customError.WrapDatabaseError(err)
		}

		if loan.TotalAmount.Sub(totalPaid).Sign() > 0 {
			continue
		}

		if err := s.loanRepo.UpdateStatus(ctx, loan.LoanID, domain.LoanStatusPaidOff); err != nil {
			return settled, customError.WrapDatabaseError(err)
		}
		s.invalidateLedger(ctx, loan.LoanID)
		settled++
	}

	return settled, nil
}

func ledgerCacheKey(loanID string) string {
	return "ledger:" + loanID
}

func (s *LendingService) cachedLedger(ctx context.Context, loanID string) *domain.LedgerResponse {
	if s.cache == nil {
		return nil
	}

	raw, err := s.cache.Get(ctx, ledgerCacheKey(loanID)).Result()
	if err != nil {
		return nil
	}

	var ledger domain.LedgerResponse
	if err := json.Unmarshal([]byte(raw), &ledger); err != nil {
		return nil
	}

	return &ledger
}

func (s *LendingService) cacheLedger(ctx context.Context, ledger *domain.LedgerResponse) {
	if s.cache == nil {
		return
	}

	raw, err := json.Marshal(ledger)
	if err != nil {
		return
	}

	// Cache failures never fail a read.
	_ = s.cache.Set(ctx, ledgerCacheKey(ledger.LoanID), raw, s.config.Redis.LedgerTTL).Err()
}

func (s *LendingService) invalidateLedger(ctx context.Context, loanID string) {
	if s.cache == nil {
		return
	}

	_ = s.cache.Del(ctx, ledgerCacheKey(loanID)).Err()
}
