package domain

import (
	"github.com/shopspring/decimal"
)

// Totals holds the aggregate sums over a record set. Derived, never stored:
// recomputed on every full-list fetch.
type Totals struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"` // income - expense
}

// ZeroTotals returns an all-zero Totals value.
func ZeroTotals() Totals {
	return Totals{Income: decimal.Zero, Expense: decimal.Zero, Net: decimal.Zero}
}

// MonthlySummary is one row of the dashboard chart: income and expense
// summed over a single YYYY-MM group.
type MonthlySummary struct {
	Month   string          `json:"month"` // YYYY-MM
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// ViewState is a snapshot of the single bookkeeping view session: the
// paginated table on one side, the dashboard aggregates on the other.
type ViewState struct {
	Filters     FilterState      `json:"filters"`
	Page        int              `json:"page"`
	PageSize    int              `json:"pageSize"`
	PageItems   []Transaction    `json:"pageItems"`
	TotalCount  int              `json:"totalCount"`
	Totals      Totals           `json:"totals"`
	Monthly     []MonthlySummary `json:"monthly"`
	LoadingPage bool             `json:"loadingPage"`
	LoadingFull bool             `json:"loadingFull"`
	ErrorPage   string           `json:"errorPage,omitempty"`
	ErrorFull   string           `json:"errorFull,omitempty"`
}
