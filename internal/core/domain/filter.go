package domain

import (
	"regexp"
	"time"
)

// FilterMode is the UI selection mode a filter change originates from.
type FilterMode string

const (
	FilterModeMonth  FilterMode = "month"
	FilterModeYear   FilterMode = "year"
	FilterModeCustom FilterMode = "custom"
)

// TransactionFilter is the canonical filter record consumed by the query
// engine, independent of which UI mode produced it. Empty string means
// "no restriction" for every field; From/To are inclusive bounds.
type TransactionFilter struct {
	From     string          `json:"from"`
	To       string          `json:"to"`
	Type     TransactionType `json:"type"`
	Category string          `json:"category"` // substring match, case-insensitive
}

// FilterState is the stored filter selection: the canonical filter plus the
// mode inputs that produced it, so partial updates can re-derive bounds.
type FilterState struct {
	Mode   FilterMode        `json:"mode"`
	Month  string            `json:"month"` // YYYY-MM, meaningful in month mode
	Year   string            `json:"year"`  // YYYY, meaningful in year mode
	Filter TransactionFilter `json:"filter"`
}

// DefaultFilterState returns the initial selection: custom mode with no
// bounds and no type/category restriction.
func DefaultFilterState() FilterState {
	return FilterState{Mode: FilterModeCustom}
}

// FilterUpdate is a partial filter change. Pointer fields distinguish
// "absent" (keep the stored value) from "set to empty" (clear it).
type FilterUpdate struct {
	Mode     *FilterMode
	Month    *string
	Year     *string
	From     *string
	To       *string
	Type     *TransactionType
	Category *string
}

var (
	monthRe = regexp.MustCompile(`^\d{4}-\d{2}$`)
	yearRe  = regexp.MustCompile(`^\d{4}$`)
)

// NormalizeFilter merges a partial update over the current filter state and
// recomputes the canonical date bounds from the effective mode.
//
// Month mode derives from = YYYY-MM-01 and to = the real last day of that
// month (leap years included); year mode derives YYYY-01-01..YYYY-12-31.
// Custom mode applies explicitly supplied bounds verbatim, where an empty
// value clears that bound rather than defaulting it. Malformed month/year
// strings are ignored and leave the bounds untouched. Type and category are
// only overwritten when present in the update; an empty value clears them.
//
// The function never fetches and never fails; callers decide when to refetch.
func NormalizeFilter(current FilterState, upd FilterUpdate) FilterState {
	next := current

	if upd.Mode != nil {
		next.Mode = *upd.Mode
	}
	if upd.Month != nil {
		next.Month = *upd.Month
	}
	if upd.Year != nil {
		next.Year = *upd.Year
	}

	switch next.Mode {
	case FilterModeMonth:
		if monthRe.MatchString(next.Month) {
			if from, to, ok := monthBounds(next.Month); ok {
				next.Filter.From = from
				next.Filter.To = to
			}
		}
	case FilterModeYear:
		if yearRe.MatchString(next.Year) {
			next.Filter.From = next.Year + "-01-01"
			next.Filter.To = next.Year + "-12-31"
		}
	default:
		// Custom: only touch bounds the caller supplied; empty clears.
		if upd.From != nil {
			next.Filter.From = *upd.From
		}
		if upd.To != nil {
			next.Filter.To = *upd.To
		}
	}

	if upd.Type != nil {
		next.Filter.Type = *upd.Type
	}
	if upd.Category != nil {
		next.Filter.Category = *upd.Category
	}

	return next
}

// monthBounds expands a YYYY-MM key into the first and last calendar day of
// that month. Returns ok=false when the key does not name a real month.
func monthBounds(month string) (from, to string, ok bool) {
	first, err := time.Parse("2006-01", month)
	if err != nil {
		return "", "", false
	}
	last := first.AddDate(0, 1, -1)
	return first.Format(DateFormat), last.Format(DateFormat), true
}
