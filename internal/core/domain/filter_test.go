package domain_test

import (
	"testing"

	"github.com/ledgerline/bookkeeping_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func modePtr(m domain.FilterMode) *domain.FilterMode { return &m }

func typePtr(t domain.TransactionType) *domain.TransactionType { return &t }

func TestNormalizeFilter_MonthMode(t *testing.T) {
	tests := []struct {
		name     string
		month    string
		wantFrom string
		wantTo   string
	}{
		{"thirty one day month", "2024-03", "2024-03-01", "2024-03-31"},
		{"thirty day month", "2024-04", "2024-04-01", "2024-04-30"},
		{"february leap year", "2024-02", "2024-02-01", "2024-02-29"},
		{"february non leap year", "2025-02", "2025-02-01", "2025-02-28"},
		{"december", "2025-12", "2025-12-01", "2025-12-31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.NormalizeFilter(domain.DefaultFilterState(), domain.FilterUpdate{
				Mode:  modePtr(domain.FilterModeMonth),
				Month: strPtr(tt.month),
			})

			assert.Equal(t, domain.FilterModeMonth, got.Mode)
			assert.Equal(t, tt.month, got.Month)
			assert.Equal(t, tt.wantFrom, got.Filter.From)
			assert.Equal(t, tt.wantTo, got.Filter.To)
		})
	}
}

func TestNormalizeFilter_YearMode(t *testing.T) {
	got := domain.NormalizeFilter(domain.DefaultFilterState(), domain.FilterUpdate{
		Mode: modePtr(domain.FilterModeYear),
		Year: strPtr("2024"),
	})

	assert.Equal(t, "2024-01-01", got.Filter.From)
	assert.Equal(t, "2024-12-31", got.Filter.To)
}

func TestNormalizeFilter_MalformedInputsLeaveBoundsUntouched(t *testing.T) {
	current := domain.FilterState{
		Mode:   domain.FilterModeMonth,
		Month:  "2024-05",
		Filter: domain.TransactionFilter{From: "2024-05-01", To: "2024-05-31"},
	}

	tests := []struct {
		name string
		upd  domain.FilterUpdate
	}{
		{"garbage month", domain.FilterUpdate{Month: strPtr("not-a-month")}},
		{"month without zero padding", domain.FilterUpdate{Month: strPtr("2024-5")}},
		{"impossible month", domain.FilterUpdate{Month: strPtr("2024-13")}},
		{"garbage year", domain.FilterUpdate{Mode: modePtr(domain.FilterModeYear), Year: strPtr("20x4")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.NormalizeFilter(current, tt.upd)
			assert.Equal(t, "2024-05-01", got.Filter.From)
			assert.Equal(t, "2024-05-31", got.Filter.To)
		})
	}
}

func TestNormalizeFilter_CustomModeEmptyBoundClears(t *testing.T) {
	current := domain.FilterState{
		Mode:   domain.FilterModeCustom,
		Filter: domain.TransactionFilter{From: "2024-01-01", To: "2024-06-30"},
	}

	got := domain.NormalizeFilter(current, domain.FilterUpdate{From: strPtr("")})

	assert.Empty(t, got.Filter.From, "explicit empty bound should clear it")
	assert.Equal(t, "2024-06-30", got.Filter.To, "unspecified bound stays")
}

func TestNormalizeFilter_CustomModeAbsentBoundsKept(t *testing.T) {
	current := domain.FilterState{
		Mode:   domain.FilterModeCustom,
		Filter: domain.TransactionFilter{From: "2024-01-01", To: "2024-06-30"},
	}

	got := domain.NormalizeFilter(current, domain.FilterUpdate{Category: strPtr("food")})

	assert.Equal(t, "2024-01-01", got.Filter.From)
	assert.Equal(t, "2024-06-30", got.Filter.To)
	assert.Equal(t, "food", got.Filter.Category)
}

func TestNormalizeFilter_TypeAndCategoryPreservedAcrossModeChange(t *testing.T) {
	current := domain.FilterState{
		Mode:   domain.FilterModeCustom,
		Filter: domain.TransactionFilter{Type: domain.Expense, Category: "Food"},
	}

	got := domain.NormalizeFilter(current, domain.FilterUpdate{
		Mode:  modePtr(domain.FilterModeMonth),
		Month: strPtr("2024-01"),
	})

	assert.Equal(t, domain.Expense, got.Filter.Type)
	assert.Equal(t, "Food", got.Filter.Category)
	assert.Equal(t, "2024-01-01", got.Filter.From)
}

func TestNormalizeFilter_EmptyTypeClearsRestriction(t *testing.T) {
	current := domain.FilterState{
		Mode:   domain.FilterModeCustom,
		Filter: domain.TransactionFilter{Type: domain.Income},
	}

	got := domain.NormalizeFilter(current, domain.FilterUpdate{Type: typePtr("")})

	assert.Empty(t, got.Filter.Type)
}

func TestNormalizeFilter_SwitchingStoredModeReusesStoredInputs(t *testing.T) {
	// Month and year survive in the state, so flipping back to month mode
	// without resending the month re-derives the same bounds.
	current := domain.FilterState{
		Mode:   domain.FilterModeYear,
		Month:  "2024-02",
		Year:   "2025",
		Filter: domain.TransactionFilter{From: "2025-01-01", To: "2025-12-31"},
	}

	got := domain.NormalizeFilter(current, domain.FilterUpdate{Mode: modePtr(domain.FilterModeMonth)})

	assert.Equal(t, "2024-02-01", got.Filter.From)
	assert.Equal(t, "2024-02-29", got.Filter.To)
}
