package domain

import (
	"fmt"
	"time"

	"github.com/ledgerline/bookkeeping_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a transaction is Income or an Expense.
type TransactionType string

const (
	Income  TransactionType = "Income"
	Expense TransactionType = "Expense"
)

// DateFormat is the calendar-date layout used everywhere in the app.
// Dates are kept as strings in this format so they compare lexicographically.
const DateFormat = "2006-01-02"

// Transaction represents a single bookkeeping record.
type Transaction struct {
	TransactionID string          `json:"transactionID"` // Assigned by the store on create, immutable
	Date          string          `json:"date"`          // YYYY-MM-DD (Not Null)
	Type          TransactionType `json:"type"`          // Income or Expense (Not Null)
	Category      string          `json:"category"`      // Free-text label (e.g. Food, Salary)
	Amount        decimal.Decimal `json:"amount"`        // Non-negative; two-decimal display precision
	Notes         string          `json:"notes"`         // Optional
}

// TransactionPatch carries a partial update for an existing transaction.
// Pointer fields distinguish "not provided" from "set to zero value".
// The transaction ID is never part of a patch.
type TransactionPatch struct {
	Date     *string
	Type     *TransactionType
	Category *string
	Amount   *decimal.Decimal
	Notes    *string
}

// TransactionPage is one slice of a filtered, sorted result set.
// Total counts every matching record, not just the page.
type TransactionPage struct {
	Items []Transaction
	Total int
}

// ValidDate reports whether s is a well-formed YYYY-MM-DD calendar date.
func ValidDate(s string) bool {
	if len(s) != len(DateFormat) {
		return false
	}
	_, err := time.Parse(DateFormat, s)
	return err == nil
}

// Validate checks the record-level invariants: date present and well formed,
// type recognized, amount finite and non-negative.
func (t Transaction) Validate() error {
	if !ValidDate(t.Date) {
		return fmt.Errorf("%w: date must be a YYYY-MM-DD calendar date", apperrors.ErrValidation)
	}
	if t.Type != Income && t.Type != Expense {
		return fmt.Errorf("%w: type must be Income or Expense", apperrors.ErrValidation)
	}
	if t.Amount.IsNegative() {
		return fmt.Errorf("%w: amount must not be negative", apperrors.ErrValidation)
	}
	return nil
}

// ApplyPatch returns a copy of t with every provided patch field merged over
// it. The transaction ID is preserved.
func (t Transaction) ApplyPatch(patch TransactionPatch) Transaction {
	if patch.Date != nil {
		t.Date = *patch.Date
	}
	if patch.Type != nil {
		t.Type = *patch.Type
	}
	if patch.Category != nil {
		t.Category = *patch.Category
	}
	if patch.Amount != nil {
		t.Amount = *patch.Amount
	}
	if patch.Notes != nil {
		t.Notes = *patch.Notes
	}
	return t
}

// MonthKey returns the YYYY-MM prefix of the transaction date, used for
// monthly grouping on the dashboard.
func (t Transaction) MonthKey() string {
	if len(t.Date) < 7 {
		return t.Date
	}
	return t.Date[:7]
}
