package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ledgerline/bookkeeping_app/internal/apperrors"
	"github.com/ledgerline/bookkeeping_app/internal/core/domain"
	portssvc "github.com/ledgerline/bookkeeping_app/internal/core/ports/services"
	"github.com/ledgerline/bookkeeping_app/internal/dto"
	"github.com/ledgerline/bookkeeping_app/internal/handlers"
	"github.com/ledgerline/bookkeeping_app/internal/platform/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) DeleteTransaction(ctx context.Context, transactionID string) error {
	args := m.Called(ctx, transactionID)
	return args.Error(0)
}

func (m *MockTransactionService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*domain.TransactionPage, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionPage), args.Error(1)
}

func (m *MockTransactionService) SetFilters(upd domain.FilterUpdate) domain.FilterState {
	args := m.Called(upd)
	return args.Get(0).(domain.FilterState)
}

func (m *MockTransactionService) SetPage(page int) {
	m.Called(page)
}

func (m *MockTransactionService) SetPageSize(pageSize int) {
	m.Called(pageSize)
}

func (m *MockTransactionService) RefreshPage(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTransactionService) RefreshFull(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTransactionService) View() domain.ViewState {
	args := m.Called()
	return args.Get(0).(domain.ViewState)
}

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) Totals(ctx context.Context, filter domain.TransactionFilter) (domain.Totals, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(domain.Totals), args.Error(1)
}

func (m *MockReportingService) MonthlySummary(ctx context.Context, filter domain.TransactionFilter) ([]domain.MonthlySummary, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthlySummary), args.Error(1)
}

// --- Test Suite Setup ---

type TransactionHandlerTestSuite struct {
	suite.Suite
	router           *gin.Engine
	mockTxnService   *MockTransactionService
	mockRptService   *MockReportingService
	serviceContainer *portssvc.ServiceContainer
}

func (suite *TransactionHandlerTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	suite.Require().NoError(handlers.RegisterCustomValidators())
}

func (suite *TransactionHandlerTestSuite) SetupTest() {
	suite.mockTxnService = new(MockTransactionService)
	suite.mockRptService = new(MockReportingService)
	suite.serviceContainer = &portssvc.ServiceContainer{
		Transaction: suite.mockTxnService,
		Reporting:   suite.mockRptService,
	}

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, &config.Config{IsProduction: true}, suite.serviceContainer)
}

func (suite *TransactionHandlerTestSuite) request(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_Success() {
	req := dto.CreateTransactionRequest{
		Date:     "2024-06-15",
		Type:     "Expense",
		Category: "Food",
		Amount:   "42.50",
	}
	stored := &domain.Transaction{
		TransactionID: uuid.NewString(),
		Date:          req.Date,
		Type:          domain.Expense,
		Category:      req.Category,
		Amount:        decimal.NewFromFloat(42.50),
	}
	suite.mockTxnService.On("CreateTransaction", mock.Anything, req).Return(stored, nil).Once()

	w := suite.request(http.MethodPost, "/api/v1/transactions", req)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.TransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(stored.TransactionID, resp.TransactionID)
	suite.mockTxnService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_BindingRejectsBadDate() {
	body := map[string]string{
		"date":     "15-06-2024",
		"type":     "Expense",
		"category": "Food",
		"amount":   "10",
	}

	w := suite.request(http.MethodPost, "/api/v1/transactions", body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockTxnService.AssertNotCalled(suite.T(), "CreateTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_BindingRejectsBadAmount() {
	body := map[string]string{
		"date":     "2024-06-15",
		"type":     "Expense",
		"category": "Food",
		"amount":   "1.2.3",
	}

	w := suite.request(http.MethodPost, "/api/v1/transactions", body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockTxnService.AssertNotCalled(suite.T(), "CreateTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_NetworkErrorMapsToBadGateway() {
	req := dto.CreateTransactionRequest{
		Date:     "2024-06-15",
		Type:     "Income",
		Category: "Salary",
		Amount:   "5000",
	}
	suite.mockTxnService.On("CreateTransaction", mock.Anything, req).
		Return(nil, fmt.Errorf("create transaction: %w", apperrors.ErrNetwork)).Once()

	w := suite.request(http.MethodPost, "/api/v1/transactions", req)

	suite.Equal(http.StatusBadGateway, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestListTransactions() {
	page := &domain.TransactionPage{
		Items: []domain.Transaction{
			{TransactionID: "a", Date: "2024-03-01", Type: domain.Expense, Amount: decimal.NewFromInt(80)},
		},
		Total: 11,
	}
	suite.mockTxnService.On("ListTransactions", mock.Anything, mock.AnythingOfType("dto.ListTransactionsParams")).
		Return(page, nil).Once()

	w := suite.request(http.MethodGet, "/api/v1/transactions?page=2&pageSize=5&type=Expense", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListTransactionsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(11, resp.Total)
	suite.Equal(2, resp.Page)
	suite.Equal(5, resp.PageSize)
	suite.Require().Len(resp.Transactions, 1)
	suite.Equal("a", resp.Transactions[0].TransactionID)
}

func (suite *TransactionHandlerTestSuite) TestUpdateTransaction_NotFound() {
	id := uuid.NewString()
	suite.mockTxnService.On("UpdateTransaction", mock.Anything, id, mock.AnythingOfType("dto.UpdateTransactionRequest")).
		Return(nil, fmt.Errorf("transaction %s: %w", id, apperrors.ErrNotFound)).Once()

	w := suite.request(http.MethodPut, "/api/v1/transactions/"+id, map[string]string{"category": "Rent"})

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestDeleteTransaction() {
	id := uuid.NewString()
	suite.mockTxnService.On("DeleteTransaction", mock.Anything, id).Return(nil).Once()

	w := suite.request(http.MethodDelete, "/api/v1/transactions/"+id, nil)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockTxnService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestGetView() {
	view := domain.ViewState{
		Filters:   domain.DefaultFilterState(),
		Page:      1,
		PageSize:  10,
		PageItems: []domain.Transaction{},
		Totals:    domain.ZeroTotals(),
	}
	suite.mockTxnService.On("View").Return(view).Once()

	w := suite.request(http.MethodGet, "/api/v1/view", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ViewResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(1, resp.Page)
	suite.Equal(10, resp.PageSize)
}

func (suite *TransactionHandlerTestSuite) TestUpdateFilters_RefreshesAndReturnsSnapshot() {
	newState := domain.FilterState{
		Mode:   domain.FilterModeMonth,
		Month:  "2024-02",
		Filter: domain.TransactionFilter{From: "2024-02-01", To: "2024-02-29"},
	}
	suite.mockTxnService.On("SetFilters", mock.AnythingOfType("domain.FilterUpdate")).Return(newState).Once()
	suite.mockTxnService.On("RefreshPage", mock.Anything).Return(nil).Once()
	suite.mockTxnService.On("RefreshFull", mock.Anything).Return(nil).Once()
	suite.mockTxnService.On("View").Return(domain.ViewState{
		Filters:   newState,
		Page:      1,
		PageSize:  10,
		PageItems: []domain.Transaction{},
		Totals:    domain.ZeroTotals(),
	}).Once()

	w := suite.request(http.MethodPut, "/api/v1/view/filters", map[string]string{"mode": "month", "month": "2024-02"})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ViewResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.FilterModeMonth, resp.Filters.Mode)
	suite.mockTxnService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestUpdateViewPage() {
	suite.mockTxnService.On("SetPageSize", 25).Return().Once()
	suite.mockTxnService.On("SetPage", 3).Return().Once()
	suite.mockTxnService.On("RefreshPage", mock.Anything).Return(nil).Once()
	suite.mockTxnService.On("View").Return(domain.ViewState{
		Filters:   domain.DefaultFilterState(),
		Page:      3,
		PageSize:  25,
		PageItems: []domain.Transaction{},
		Totals:    domain.ZeroTotals(),
	}).Once()

	w := suite.request(http.MethodPut, "/api/v1/view/page", map[string]int{"page": 3, "pageSize": 25})

	suite.Equal(http.StatusOK, w.Code)
	suite.mockTxnService.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestGetTotalsReport() {
	totals := domain.Totals{
		Income:  decimal.NewFromInt(10000),
		Expense: decimal.NewFromInt(1780),
		Net:     decimal.NewFromInt(8220),
	}
	suite.mockRptService.On("Totals", mock.Anything, mock.AnythingOfType("domain.TransactionFilter")).
		Return(totals, nil).Once()

	w := suite.request(http.MethodGet, "/api/v1/reports/totals?from=2024-01-01&to=2024-12-31", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.TotalsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("2024-01-01", resp.From)
	suite.True(resp.Net.Equal(decimal.NewFromInt(8220)))
}

func (suite *TransactionHandlerTestSuite) TestGetMonthlyReport() {
	rows := []domain.MonthlySummary{
		{Month: "2024-01", Income: decimal.NewFromInt(5000), Expense: decimal.NewFromInt(200)},
	}
	suite.mockRptService.On("MonthlySummary", mock.Anything, mock.AnythingOfType("domain.TransactionFilter")).
		Return(rows, nil).Once()

	w := suite.request(http.MethodGet, "/api/v1/reports/monthly", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.MonthlySummaryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Months, 1)
	suite.Equal("2024-01", resp.Months[0].Month)
}

func TestTransactionHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionHandlerTestSuite))
}
