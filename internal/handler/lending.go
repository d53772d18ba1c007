package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/hartono/lending-engine/internal/domain"
	customError "github.com/hartono/lending-engine/pkg/errors"
	"github.com/hartono/lending-engine/pkg/response"
)

// LendingService is the accounting core consumed by the HTTP dispatcher.
type LendingService interface {
	CreateLoan(ctx context.Context, request *domain.CreateLoanRequest) (*domain.Loan, error)
	RecordPayment(ctx context.Context, loanID string, request *domain.RecordPaymentRequest) (*domain.RecordPaymentResponse, error)
	GetLedger(ctx context.Context, loanID string) (*domain.LedgerResponse, error)
	GetAccountOverview(ctx context.Context, customerID string) (*domain.AccountOverviewResponse, error)
}

type LendingHandler struct {
	service   LendingService
	validator *validator.Validate
}

func NewLendingHandler(service LendingService) *LendingHandler {
	return &LendingHandler{
		service:   service,
		validator: validator.New(),
	}
}

// CreateLoan handles POST /api/v1/loans
func (h *LendingHandler) CreateLoan(w http.ResponseWriter, r *http.Request) {
	var request domain.CreateLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Missing or invalid required fields", err)
		return
	}

	loan, err := h.service.CreateLoan(r.Context(), &request)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Created(w, domain.CreateLoanResponse{
		LoanID:             loan.LoanID,
		CustomerID:         loan.CustomerID,
		TotalAmountPayable: loan.TotalAmount,
		MonthlyEMI:         loan.MonthlyEMI,
	})
}

// RecordPayment handles POST /api/v1/loans/{loanId}/payments
func (h *LendingHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	loanID := mux.Vars(r)["loanId"]

	var request domain.RecordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Missing or invalid required fields", err)
		return
	}

	result, err := h.service.RecordPayment(r.Context(), loanID, &request)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, result)
}

// GetLedger handles GET /api/v1/loans/{loanId}/ledger
func (h *LendingHandler) GetLedger(w http.ResponseWriter, r *http.Request) {
	loanID := mux.Vars(r)["loanId"]

	ledger, err := h.service.GetLedger(r.Context(), loanID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, ledger)
}

// GetAccountOverview handles GET /api/v1/customers/{customerId}/overview
func (h *LendingHandler) GetAccountOverview(w http.ResponseWriter, r *http.Request) {
	customerID := mux.Vars(r)["customerId"]

	overview, err := h.service.GetAccountOverview(r.Context(), customerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, overview)
}

// writeServiceError maps core error kinds to transport status codes:
// bad input to 400, unknown entity to 404, everything else to 500.
func writeServiceError(w http.ResponseWriter, err error) {
	message := "request failed"
	var businessErr *customError.BusinessError
	if errors.As(err, &businessErr) {
		message = businessErr.Message
	}

	switch {
	case customError.IsNotFound(err):
		response.NotFound(w, message)
	case customError.IsInvalidArgument(err):
		response.BadRequest(w, message, err)
	default:
		response.InternalServerError(w, message, err)
	}
}
