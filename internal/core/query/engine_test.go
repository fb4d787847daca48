package query_test

import (
	"testing"

	"github.com/ledgerline/bookkeeping_app/internal/core/domain"
	"github.com/ledgerline/bookkeeping_app/internal/core/query"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func txn(id, date string, typ domain.TransactionType, category string, amount int64) domain.Transaction {
	return domain.Transaction{
		TransactionID: id,
		Date:          date,
		Type:          typ,
		Category:      category,
		Amount:        decimal.NewFromInt(amount),
	}
}

func sampleSet() []domain.Transaction {
	return []domain.Transaction{
		txn("a", "2024-01-15", domain.Income, "Salary", 5000),
		txn("b", "2024-01-20", domain.Expense, "Food", 200),
		txn("c", "2024-02-15", domain.Income, "Salary", 5000),
		txn("d", "2024-02-18", domain.Expense, "Rent", 1500),
		txn("e", "2024-03-01", domain.Expense, "food delivery", 80),
	}
}

func TestMatches(t *testing.T) {
	tests := []struct {
		name   string
		filter domain.TransactionFilter
		txn    domain.Transaction
		want   bool
	}{
		{"empty filter matches everything", domain.TransactionFilter{}, txn("x", "2024-01-01", domain.Income, "", 1), true},
		{"from bound inclusive", domain.TransactionFilter{From: "2024-01-15"}, txn("x", "2024-01-15", domain.Income, "", 1), true},
		{"before from bound", domain.TransactionFilter{From: "2024-01-15"}, txn("x", "2024-01-14", domain.Income, "", 1), false},
		{"to bound inclusive", domain.TransactionFilter{To: "2024-01-15"}, txn("x", "2024-01-15", domain.Income, "", 1), true},
		{"after to bound", domain.TransactionFilter{To: "2024-01-15"}, txn("x", "2024-01-16", domain.Income, "", 1), false},
		{"type mismatch", domain.TransactionFilter{Type: domain.Income}, txn("x", "2024-01-01", domain.Expense, "", 1), false},
		{"category substring case-insensitive", domain.TransactionFilter{Category: "FOOD"}, txn("x", "2024-01-01", domain.Expense, "food delivery", 1), true},
		{"category no match", domain.TransactionFilter{Category: "rent"}, txn("x", "2024-01-01", domain.Expense, "Food", 1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, query.Matches(tt.txn, tt.filter))
		})
	}
}

func TestApply_SortsNewestFirstAndStable(t *testing.T) {
	items := []domain.Transaction{
		txn("first", "2024-01-15", domain.Income, "", 1),
		txn("second", "2024-01-15", domain.Expense, "", 2),
		txn("newer", "2024-02-01", domain.Income, "", 3),
	}

	got := query.Apply(items, domain.TransactionFilter{})

	require.Len(t, got, 3)
	assert.Equal(t, "newer", got[0].TransactionID)
	// Same-date records keep insertion order.
	assert.Equal(t, "first", got[1].TransactionID)
	assert.Equal(t, "second", got[2].TransactionID)
}

func TestApply_ConjunctiveFilters(t *testing.T) {
	got := query.Apply(sampleSet(), domain.TransactionFilter{
		From: "2024-01-01",
		To:   "2024-02-28",
		Type: domain.Expense,
	})

	require.Len(t, got, 2)
	assert.Equal(t, "d", got[0].TransactionID)
	assert.Equal(t, "b", got[1].TransactionID)
}

func TestPage(t *testing.T) {
	sorted := query.Apply(sampleSet(), domain.TransactionFilter{})

	tests := []struct {
		name     string
		page     int
		pageSize int
		wantIDs  []string
	}{
		{"first page", 1, 2, []string{"e", "d"}},
		{"middle page", 2, 2, []string{"c", "b"}},
		{"short last page", 3, 2, []string{"a"}},
		{"out of range page", 4, 2, []string{}},
		{"zero page", 0, 2, []string{}},
		{"zero page size", 1, 0, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := query.Page(sorted, tt.page, tt.pageSize)
			ids := make([]string, 0, len(got))
			for _, item := range got {
				ids = append(ids, item.TransactionID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestPage_PagesArePartition(t *testing.T) {
	sorted := query.Apply(sampleSet(), domain.TransactionFilter{})

	seen := map[string]bool{}
	total := 0
	for page := 1; ; page++ {
		items := query.Page(sorted, page, 2)
		if len(items) == 0 {
			break
		}
		for _, item := range items {
			assert.False(t, seen[item.TransactionID], "item %s appears on two pages", item.TransactionID)
			seen[item.TransactionID] = true
		}
		total += len(items)
	}
	assert.Equal(t, len(sorted), total, "page sizes must sum to the full count")
}

func TestComputeTotals(t *testing.T) {
	totals := query.ComputeTotals(sampleSet())

	assert.True(t, totals.Income.Equal(decimal.NewFromInt(10000)))
	assert.True(t, totals.Expense.Equal(decimal.NewFromInt(1780)))
	assert.True(t, totals.Net.Equal(totals.Income.Sub(totals.Expense)))
}

func TestComputeTotals_EmptyYieldsZeros(t *testing.T) {
	totals := query.ComputeTotals(nil)

	assert.True(t, totals.Income.IsZero())
	assert.True(t, totals.Expense.IsZero())
	assert.True(t, totals.Net.IsZero())
}

func TestMonthlyBreakdown(t *testing.T) {
	rows := query.MonthlyBreakdown(sampleSet())

	require.Len(t, rows, 3)
	assert.Equal(t, "2024-01", rows[0].Month)
	assert.Equal(t, "2024-02", rows[1].Month)
	assert.Equal(t, "2024-03", rows[2].Month)

	assert.True(t, rows[0].Income.Equal(decimal.NewFromInt(5000)))
	assert.True(t, rows[0].Expense.Equal(decimal.NewFromInt(200)))
	assert.True(t, rows[1].Expense.Equal(decimal.NewFromInt(1500)))
	assert.True(t, rows[2].Income.IsZero())
}
