package engine

import (
	"reflect"
	"testing"
)

func TestParseNumbers(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty input", "", []string{}},
		{"whitespace only", "   \t  ", []string{}},
		{"single number", "+15550100", []string{"+15550100"}},
		{"two numbers with space", "+1234567890, +1987654321", []string{"+1234567890", "+1987654321"}},
		{"messy commas and whitespace", ",a,, b ,c,,", []string{"a", "b", "c"}},
		{"commas only", ",,,", []string{}},
		{"duplicates preserved", "+15550100,+15550100", []string{"+15550100", "+15550100"}},
		{"order preserved", "c, a, b", []string{"c", "a", "b"}},
		{"tabs and newlines trimmed", "\t+15550100\n,\n+15550101\t", []string{"+15550100", "+15550101"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseNumbers(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseNumbers(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseNumbers_NoEmptyEntries(t *testing.T) {
	inputs := []string{"", ",", " , ", "a,,b", ", ,a, ,", "  ,\t,\n"}

	for _, raw := range inputs {
		for i, n := range ParseNumbers(raw) {
			if n == "" {
				t.Errorf("ParseNumbers(%q)[%d] is empty string", raw, i)
			}
		}
	}
}
