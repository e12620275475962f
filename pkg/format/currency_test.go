package format

import "testing"

func TestCurrency(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected string
	}{
		{"Thousands", 1234.5, "$1,234.50"},
		{"Millions", 2500000, "$2,500,000.00"},
		{"Negative", -42.1, "-$42.10"},
		{"Rounds half away from zero", 1.005, "$1.01"},
		{"Tiny negative rounds to zero", -0.004, "$0.00"},
		{"Zero", 0, "$0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Currency(tt.input); got != tt.expected {
				t.Errorf("Currency(%v) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNumericCurrency(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{1234.5, "1234.50"},
		{-3, "-3.00"},
		{0.125, "0.13"},
	}

	for _, tt := range tests {
		if got := NumericCurrency(tt.input); got != tt.expected {
			t.Errorf("NumericCurrency(%v) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestQuantity(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{12500, "12,500"},
		{0.125, "0.125"},
		{3.14159, "3.142"},
		{20, "20"},
	}

	for _, tt := range tests {
		if got := Quantity(tt.input); got != tt.expected {
			t.Errorf("Quantity(%v) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestNumericQuantity(t *testing.T) {
	if got := NumericQuantity(2.5000); got != "2.5" {
		t.Errorf("NumericQuantity(2.5) = %q", got)
	}
	if got := NumericQuantity(12500); got != "12500" {
		t.Errorf("NumericQuantity(12500) = %q", got)
	}
}
