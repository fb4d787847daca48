package dto

import (
	"github.com/ledgerline/bookkeeping_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to record a transaction.
// Amount arrives as the free-text form field and is checked by the
// amountstr validator before the service parses it.
type CreateTransactionRequest struct {
	Date     string `json:"date" binding:"required,txdate"`
	Type     string `json:"type" binding:"required,oneof=Income Expense"`
	Category string `json:"category" binding:"required"`
	Amount   string `json:"amount" binding:"required,amountstr"`
	Notes    string `json:"notes"`
}

// UpdateTransactionRequest defines the partial patch for a transaction.
// Pointers distinguish omitted fields from explicit zero values; the
// transaction id is taken from the path and never patched.
type UpdateTransactionRequest struct {
	Date     *string `json:"date" binding:"omitempty,txdate"`
	Type     *string `json:"type" binding:"omitempty,oneof=Income Expense"`
	Category *string `json:"category"`
	Amount   *string `json:"amount" binding:"omitempty,amountstr"`
	Notes    *string `json:"notes"`
}

// ListTransactionsParams defines query parameters for the paginated list.
type ListTransactionsParams struct {
	Page     int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize int    `form:"pageSize,default=10" binding:"omitempty,min=1,max=100"`
	From     string `form:"from" binding:"omitempty,txdate"`
	To       string `form:"to" binding:"omitempty,txdate"`
	Type     string `form:"type" binding:"omitempty,oneof=Income Expense"`
	Category string `form:"category"`
}

// Filter converts the query parameters into the canonical filter record.
func (p ListTransactionsParams) Filter() domain.TransactionFilter {
	return domain.TransactionFilter{
		From:     p.From,
		To:       p.To,
		Type:     domain.TransactionType(p.Type),
		Category: p.Category,
	}
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID string          `json:"transactionID"`
	Date          string          `json:"date"`
	Type          string          `json:"type"`
	Category      string          `json:"category"`
	Amount        decimal.Decimal `json:"amount"`
	Notes         string          `json:"notes,omitempty"`
}

// ListTransactionsResponse wraps one page of transactions. Total counts all
// matching records, not just the page.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Total        int                   `json:"total"`
	Page         int                   `json:"page"`
	PageSize     int                   `json:"pageSize"`
}

// ToTransactionResponse converts a domain.Transaction to a TransactionResponse DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: txn.TransactionID,
		Date:          txn.Date,
		Type:          string(txn.Type),
		Category:      txn.Category,
		Amount:        txn.Amount,
		Notes:         txn.Notes,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction to DTOs.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		responses[i] = ToTransactionResponse(&txn)
	}
	return responses
}

// ToListTransactionsResponse converts a domain page plus its paging inputs
// into the list response DTO.
func ToListTransactionsResponse(page *domain.TransactionPage, pageNum, pageSize int) ListTransactionsResponse {
	return ListTransactionsResponse{
		Transactions: ToTransactionResponses(page.Items),
		Total:        page.Total,
		Page:         pageNum,
		PageSize:     pageSize,
	}
}
