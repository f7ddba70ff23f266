// Package core provides money parsing and handling utilities.
//
// This file contains the amount parser used by the entry form.
package core

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts the amount field to a positive number.
//
// Both dot (12.34) and comma (12,34) decimal separators are accepted.
// Zero, negative and non-numeric values are rejected with ErrInvalidAmount,
// as are values that do not survive conversion to a finite positive float64.
//
// Examples:
//
//	ParseAmount("300")    -> 300, nil
//	ParseAmount("12,50")  -> 12.5, nil
//	ParseAmount("-1")     -> 0, ErrInvalidAmount
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	// Normalize decimal comma to dot
	if !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if !d.IsPositive() {
		return 0, ErrInvalidAmount
	}
	f := d.InexactFloat64()
	if math.IsInf(f, 0) || math.IsNaN(f) || f <= 0 {
		return 0, ErrInvalidAmount
	}
	return f, nil
}
