package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/hartono/lending-engine/internal/domain"
	customError "github.com/hartono/lending-engine/pkg/errors"
)

type MockLendingService struct {
	mock.Mock
}

func (m *MockLendingService) CreateLoan(ctx context.Context, request *domain.CreateLoanRequest) (*domain.Loan, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockLendingService) RecordPayment(ctx context.Context, loanID string, request *domain.RecordPaymentRequest) (*domain.RecordPaymentResponse, error) {
	args := m.Called(ctx, loanID, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecordPaymentResponse), args.Error(1)
}

func (m *MockLendingService) GetLedger(ctx context.Context, loanID string) (*domain.LedgerResponse, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerResponse), args.Error(1)
}

func (m *MockLendingService) GetAccountOverview(ctx context.Context, customerID string) (*domain.AccountOverviewResponse, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountOverviewResponse), args.Error(1)
}

func newTestRouter(service LendingService) *mux.Router {
	h := NewLendingHandler(service)

	router := mux.NewRouter()
	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/loans", h.CreateLoan).Methods("POST")
	api.HandleFunc("/loans/{loanId}/payments", h.RecordPayment).Methods("POST")
	api.HandleFunc("/loans/{loanId}/ledger", h.GetLedger).Methods("GET")
	api.HandleFunc("/customers/{customerId}/overview", h.GetAccountOverview).Methods("GET")

	return router
}

func TestCreateLoan_Handler(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		setupMock      func(*MockLendingService)
		expectedStatus int
		checkResponse  func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name: "successful loan creation",
			requestBody: domain.CreateLoanRequest{
				CustomerID:         "C1",
				LoanAmount:         100000,
				LoanPeriodYears:    2,
				InterestRateYearly: 10,
			},
			setupMock: func(service *MockLendingService) {
				loan := &domain.Loan{
					LoanID:      "LOAN-1",
					CustomerID:  "C1",
					TotalAmount: decimal.NewFromInt(120000),
					MonthlyEMI:  decimal.NewFromInt(5000),
					Status:      domain.LoanStatusActive,
				}
				service.On("CreateLoan", mock.Anything, mock.MatchedBy(func(req *domain.CreateLoanRequest) bool {
					return req.CustomerID == "C1" && req.LoanAmount == 100000
				})).Return(loan, nil).Once()
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				var wrapper struct {
					Success bool                      `json:"success"`
					Data    domain.CreateLoanResponse `json:"data"`
				}
				assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &wrapper))
				assert.True(t, wrapper.Success)
				assert.Equal(t, "LOAN-1", wrapper.Data.LoanID)
				assert.True(t, wrapper.Data.TotalAmountPayable.Equal(decimal.NewFromInt(120000)))
				assert.True(t, wrapper.Data.MonthlyEMI.Equal(decimal.NewFromInt(5000)))
			},
		},
		{
			name: "missing required fields",
			requestBody: map[string]interface{}{
				"customer_id": "C1",
			},
			setupMock:      func(service *MockLendingService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed body",
			requestBody:    "{not json",
			setupMock:      func(service *MockLendingService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "core rejects terms",
			requestBody: domain.CreateLoanRequest{
				CustomerID:         "C1",
				LoanAmount:         1000,
				LoanPeriodYears:    1,
				InterestRateYearly: 5,
			},
			setupMock: func(service *MockLendingService) {
				service.On("CreateLoan", mock.Anything, mock.Anything).
					Return(nil, customError.WrapInvalidLoanTerms("loan terms yield a non-positive installment")).Once()
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &MockLendingService{}
			tt.setupMock(service)
			router := newTestRouter(service)

			var body bytes.Buffer
			switch v := tt.requestBody.(type) {
			case string:
				body.WriteString(v)
			default:
				assert.NoError(t, json.NewEncoder(&body).Encode(v))
			}

			req := httptest.NewRequest(http.MethodPost, "/api/v1/loans", &body)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.checkResponse != nil {
				tt.checkResponse(t, w)
			}
			service.AssertExpectations(t)
		})
	}
}

func TestRecordPayment_Handler(t *testing.T) {
	t.Run("successful payment", func(t *testing.T) {
		service := &MockLendingService{}
		service.On("RecordPayment", mock.Anything, "LOAN-1", mock.MatchedBy(func(req *domain.RecordPaymentRequest) bool {
			return req.Amount == 5000 && req.PaymentType == domain.PaymentTypeEMI
		})).Return(&domain.RecordPaymentResponse{
			PaymentID:        "P1",
			LoanID:           "LOAN-1",
			RemainingBalance: decimal.NewFromInt(115000),
			EMIsLeft:         23,
		}, nil).Once()

		router := newTestRouter(service)
		body := bytes.NewBufferString(`{"amount": 5000, "payment_type": "EMI"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/loans/LOAN-1/payments", body)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var wrapper struct {
			Data domain.RecordPaymentResponse `json:"data"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &wrapper))
		assert.Equal(t, "P1", wrapper.Data.PaymentID)
		assert.Equal(t, int64(23), wrapper.Data.EMIsLeft)
		service.AssertExpectations(t)
	})

	t.Run("unknown loan maps to 404", func(t *testing.T) {
		service := &MockLendingService{}
		service.On("RecordPayment", mock.Anything, "missing", mock.Anything).
			Return(nil, customError.WrapLoanNotFound("missing")).Once()

		router := newTestRouter(service)
		body := bytes.NewBufferString(`{"amount": 5000, "payment_type": "EMI"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/loans/missing/payments", body)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		service.AssertExpectations(t)
	})

	t.Run("unrecognized payment type rejected at the boundary", func(t *testing.T) {
		service := &MockLendingService{}
		router := newTestRouter(service)

		body := bytes.NewBufferString(`{"amount": 5000, "payment_type": "REFUND"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/loans/LOAN-1/payments", body)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		service.AssertNotCalled(t, "RecordPayment", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestGetLedger_Handler(t *testing.T) {
	t.Run("returns ledger view", func(t *testing.T) {
		service := &MockLendingService{}
		service.On("GetLedger", mock.Anything, "LOAN-1").Return(&domain.LedgerResponse{
			LoanID:        "LOAN-1",
			CustomerID:    "C1",
			Principal:     decimal.NewFromInt(100000),
			TotalAmount:   decimal.NewFromInt(120000),
			MonthlyEMI:    decimal.NewFromInt(5000),
			AmountPaid:    decimal.NewFromInt(5000),
			BalanceAmount: decimal.NewFromInt(115000),
			EMIsLeft:      23,
			Transactions: []*domain.Transaction{
				{TransactionID: "P1", Amount: decimal.NewFromInt(5000), Type: domain.PaymentTypeEMI},
			},
		}, nil).Once()

		router := newTestRouter(service)
		req := httptest.NewRequest(http.MethodGet, "/api/v1/loans/LOAN-1/ledger", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var wrapper struct {
			Data domain.LedgerResponse `json:"data"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &wrapper))
		assert.Equal(t, "LOAN-1", wrapper.Data.LoanID)
		assert.Len(t, wrapper.Data.Transactions, 1)
		service.AssertExpectations(t)
	})

	t.Run("unknown loan maps to 404", func(t *testing.T) {
		service := &MockLendingService{}
		service.On("GetLedger", mock.Anything, "missing").
			Return(nil, customError.WrapLoanNotFound("missing")).Once()

		router := newTestRouter(service)
		req := httptest.NewRequest(http.MethodGet, "/api/v1/loans/missing/ledger", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		service.AssertExpectations(t)
	})
}

func TestGetAccountOverview_Handler(t *testing.T) {
	t.Run("returns overview", func(t *testing.T) {
		service := &MockLendingService{}
		service.On("GetAccountOverview", mock.Anything, "C1").Return(&domain.AccountOverviewResponse{
			CustomerID: "C1",
			TotalLoans: 2,
			Loans: []*domain.LoanSummary{
				{LoanID: "LOAN-1"},
				{LoanID: "LOAN-2"},
			},
		}, nil).Once()

		router := newTestRouter(service)
		req := httptest.NewRequest(http.MethodGet, "/api/v1/customers/C1/overview", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var wrapper struct {
			Data domain.AccountOverviewResponse `json:"data"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &wrapper))
		assert.Equal(t, 2, wrapper.Data.TotalLoans)
		service.AssertExpectations(t)
	})

	t.Run("customer without loans maps to 404", func(t *testing.T) {
		service := &MockLendingService{}
		service.On("GetAccountOverview", mock.Anything, "unknown").
			Return(nil, customError.WrapCustomerNotFound("unknown")).Once()

		router := newTestRouter(service)
		req := httptest.NewRequest(http.MethodGet, "/api/v1/customers/unknown/overview", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		service.AssertExpectations(t)
	})
}
