package domain_test

import (
	"testing"

	"github.com/ledgerline/bookkeeping_app/internal/apperrors"
	"github.com/ledgerline/bookkeeping_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionValidate(t *testing.T) {
	valid := domain.Transaction{
		Date:     "2024-06-15",
		Type:     domain.Expense,
		Category: "Food",
		Amount:   decimal.NewFromFloat(42.50),
	}

	tests := []struct {
		name    string
		mutate  func(*domain.Transaction)
		wantErr bool
	}{
		{"valid record", func(*domain.Transaction) {}, false},
		{"zero amount is fine", func(tx *domain.Transaction) { tx.Amount = decimal.Zero }, false},
		{"empty date", func(tx *domain.Transaction) { tx.Date = "" }, true},
		{"impossible date", func(tx *domain.Transaction) { tx.Date = "2024-02-30" }, true},
		{"wrong date layout", func(tx *domain.Transaction) { tx.Date = "15-06-2024" }, true},
		{"unknown type", func(tx *domain.Transaction) { tx.Type = "Transfer" }, true},
		{"negative amount", func(tx *domain.Transaction) { tx.Amount = decimal.NewFromInt(-1) }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := valid
			tt.mutate(&tx)
			err := tx.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, apperrors.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestApplyPatch(t *testing.T) {
	original := domain.Transaction{
		TransactionID: "txn-1",
		Date:          "2024-06-15",
		Type:          domain.Expense,
		Category:      "Food",
		Amount:        decimal.NewFromInt(200),
		Notes:         "groceries",
	}

	newDate := "2024-07-01"
	newAmount := decimal.NewFromInt(300)
	emptyNotes := ""

	patched := original.ApplyPatch(domain.TransactionPatch{
		Date:   &newDate,
		Amount: &newAmount,
		Notes:  &emptyNotes,
	})

	assert.Equal(t, "txn-1", patched.TransactionID, "id is immutable")
	assert.Equal(t, newDate, patched.Date)
	assert.True(t, patched.Amount.Equal(newAmount))
	assert.Empty(t, patched.Notes, "explicit empty value overwrites")
	assert.Equal(t, domain.Expense, patched.Type, "absent fields untouched")
	assert.Equal(t, "Food", patched.Category)

	// The receiver itself must not change.
	assert.Equal(t, "2024-06-15", original.Date)
}

func TestMonthKey(t *testing.T) {
	tx := domain.Transaction{Date: "2024-06-15"}
	assert.Equal(t, "2024-06", tx.MonthKey())
}
