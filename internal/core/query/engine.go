// Package query implements the pure filtering, sorting, pagination and
// aggregation logic over an in-memory transaction collection. The store
// adapters delegate to it so that both storage drivers agree on semantics.
package query

import (
	"sort"
	"strings"

	"github.com/ledgerline/bookkeeping_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Matches reports whether a transaction satisfies every present filter
// field (filtering is conjunctive). Date bounds are inclusive on both ends
// and rely on YYYY-MM-DD strings comparing lexicographically; the category
// restriction is a case-insensitive substring match.
func Matches(t domain.Transaction, f domain.TransactionFilter) bool {
	if f.From != "" && t.Date < f.From {
		return false
	}
	if f.To != "" && t.Date > f.To {
		return false
	}
	if f.Type != "" && t.Type != f.Type {
		return false
	}
	if f.Category != "" && !strings.Contains(strings.ToLower(t.Category), strings.ToLower(f.Category)) {
		return false
	}
	return true
}

// Apply filters items and returns them sorted by date descending (newest
// first). The sort is stable, so records sharing a date keep their relative
// insertion order.
func Apply(items []domain.Transaction, f domain.TransactionFilter) []domain.Transaction {
	out := make([]domain.Transaction, 0, len(items))
	for _, t := range items {
		if Matches(t, f) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date > out[j].Date
	})
	return out
}

// Page slices the 1-based page out of an already filtered and sorted result
// set. Out-of-range pages return an empty slice, never an error.
func Page(items []domain.Transaction, page, pageSize int) []domain.Transaction {
	if page < 1 || pageSize < 1 {
		return []domain.Transaction{}
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		return []domain.Transaction{}
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// ComputeTotals sums amounts by type. An empty (or nil) list yields all-zero
// totals.
func ComputeTotals(items []domain.Transaction) domain.Totals {
	totals := domain.ZeroTotals()
	for _, t := range items {
		switch t.Type {
		case domain.Income:
			totals.Income = totals.Income.Add(t.Amount)
		case domain.Expense:
			totals.Expense = totals.Expense.Add(t.Amount)
		}
	}
	totals.Net = totals.Income.Sub(totals.Expense)
	return totals
}

// MonthlyBreakdown groups records by their YYYY-MM key, summing income and
// expense separately per group. Rows come back ordered by ascending month.
func MonthlyBreakdown(items []domain.Transaction) []domain.MonthlySummary {
	byMonth := make(map[string]*domain.MonthlySummary)
	for _, t := range items {
		key := t.MonthKey()
		row, ok := byMonth[key]
		if !ok {
			row = &domain.MonthlySummary{Month: key, Income: decimal.Zero, Expense: decimal.Zero}
			byMonth[key] = row
		}
		switch t.Type {
		case domain.Income:
			row.Income = row.Income.Add(t.Amount)
		case domain.Expense:
			row.Expense = row.Expense.Add(t.Amount)
		}
	}

	keys := make([]string, 0, len(byMonth))
	for k := range byMonth {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]domain.MonthlySummary, 0, len(keys))
	for _, k := range keys {
		out = append(out, *byMonth[k])
	}
	return out
}
