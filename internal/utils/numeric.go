package utils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ledgerline/bookkeeping_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// numericRe accepts an optionally-signed decimal number: optional leading
// minus, digits, optional single dot followed by digits. No scientific
// notation, no trailing garbage.
var numericRe = regexp.MustCompile(`^-?\d+(\.\d+)?$`)

// IsNumeric reports whether the trimmed input parses as a single decimal
// number. Empty strings, multiple decimal points and exponent forms are all
// rejected. No side effects.
func IsNumeric(input string) bool {
	return numericRe.MatchString(strings.TrimSpace(input))
}

// ParseAmount converts a free-text amount field into a decimal. Amounts are
// monetary and must be non-negative; failures wrap apperrors.ErrValidation
// so handlers can map them to a client error.
func ParseAmount(input string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(input)
	if !IsNumeric(trimmed) {
		return decimal.Zero, fmt.Errorf("%w: amount %q is not numeric", apperrors.ErrValidation, input)
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: amount %q is not numeric", apperrors.ErrValidation, input)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: amount must not be negative", apperrors.ErrValidation)
	}
	return d, nil
}
