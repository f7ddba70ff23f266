package format

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"splitter/internal/core"
)

func TestDate(t *testing.T) {
	tests := []struct {
		name string
		in   core.Date
		want string
	}{
		{"scenario", core.NewDate(2024, 1, 10), "10 Jan 2024"},
		{"single digit day", core.NewDate(2023, 12, 5), "5 Dec 2023"},
		{"leap day", core.NewDate(2024, 2, 29), "29 Feb 2024"},
		{"zero", core.Date{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Date(tt.in))
		})
	}
}

func TestCurrency(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{300, "₹300.00"},
		{100, "₹100.00"},
		{0, "₹0.00"},
		{12.5, "₹12.50"},
		{1000.0 / 3, "₹333.33"},
		{200.0 / 3, "₹66.67"},
		{1234567.891, "₹1234567.89"},
		{0.125, "₹0.13"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Currency(tt.in), "amount %v", tt.in)
	}
}
