package dto

import (
	"github.com/ledgerline/bookkeeping_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TotalsResponse represents the aggregate totals report response.
type TotalsResponse struct {
	From    string          `json:"from,omitempty"`
	To      string          `json:"to,omitempty"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

// MonthlySummaryRowResponse represents one month's sums in the monthly report.
type MonthlySummaryRowResponse struct {
	Month   string          `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// MonthlySummaryResponse represents the monthly breakdown report response,
// ordered by ascending month key.
type MonthlySummaryResponse struct {
	Months []MonthlySummaryRowResponse `json:"months"`
}

// ToTotalsResponse converts domain totals plus the applied date bounds into
// a DTO response.
func ToTotalsResponse(totals domain.Totals, filter domain.TransactionFilter) TotalsResponse {
	return TotalsResponse{
		From:    filter.From,
		To:      filter.To,
		Income:  totals.Income,
		Expense: totals.Expense,
		Net:     totals.Net,
	}
}

// ToMonthlySummaryResponse converts domain monthly rows to a DTO response.
func ToMonthlySummaryResponse(rows []domain.MonthlySummary) MonthlySummaryResponse {
	response := MonthlySummaryResponse{
		Months: make([]MonthlySummaryRowResponse, len(rows)),
	}
	for i, row := range rows {
		response.Months[i] = MonthlySummaryRowResponse{
			Month:   row.Month,
			Income:  row.Income,
			Expense: row.Expense,
		}
	}
	return response
}
