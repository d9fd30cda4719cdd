package core

import "testing"

func TestManufacturerFromModel(t *testing.T) {
	tests := []struct {
		name  string
		model string
		want  string
	}{
		// Known prefixes
		{"achx frame", "ACHX-B 90S", "Dunham Bush"},
		{"avx frame", "AVX 120", "Dunham Bush"},
		{"york screw", "YVAA0350", "York"},
		{"york literal", "YORK123", "York"},
		{"mcquay long", "MCH 123", "McQuay"},
		{"mcquay short", "MC-50", "McQuay"},
		{"trane long", "TRA200", "Trane"},
		{"trane short", "RT 140", "Trane"},
		{"carrier", "CH30", "Carrier"},

		// Case and padding
		{"lowercase", "achx-b 90s", "Dunham Bush"},
		{"padded", "  yvaa0350  ", "York"},

		// No match
		{"unknown prefix", "CGAM 52", ""},
		{"numeric model", "90 TON UNIT", ""},
		{"empty", "", ""},
		{"whitespace", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ManufacturerFromModel(tt.model); got != tt.want {
				t.Errorf("ManufacturerFromModel(%q) = %q, want %q", tt.model, got, tt.want)
			}
		})
	}
}

func TestModelPrefix(t *testing.T) {
	tests := []struct {
		name  string
		model string
		want  string
	}{
		// First token carries the frame
		{"frame with size", "ACHX-B 90S", "ACHX-B"},
		{"single token", "YVAA0350", "YVAA0350"},
		{"short frame", "MCH 123", "MCH"},

		// Numeric first token
		{"tonnage first", "90 TON UNIT", "90"},
		{"all numeric", "120", "120"},

		// Degenerate input
		{"empty", "", ""},
		{"whitespace", "   ", ""},
		{"padded", "  ACHX-B 90S  ", "ACHX-B"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ModelPrefix(tt.model); got != tt.want {
				t.Errorf("ModelPrefix(%q) = %q, want %q", tt.model, got, tt.want)
			}
		})
	}
}
