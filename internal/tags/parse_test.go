package tags

import "testing"

func TestParseYear(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{"2003", 2003},
		{"2003-04-01", 2003},
		{"01/02/1987", 1987},
		{"released 1999", 1999},
		{"", 0},
		{"unknown", 0},
		{"184", 0},
	}
	for _, tc := range tests {
		if got := parseYear(tc.input); got != tc.expected {
			t.Errorf("parseYear(%q) = %d, want %d", tc.input, got, tc.expected)
		}
	}
}

func TestParseBPM(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{"128", 128},
		{"120.0", 120},
		{"97.6", 98},
		{" 140 ", 140},
		{"", 0},
		{"fast", 0},
		{"-3", 0},
	}
	for _, tc := range tests {
		if got := parseBPM(tc.input); got != tc.expected {
			t.Errorf("parseBPM(%q) = %d, want %d", tc.input, got, tc.expected)
		}
	}
}
