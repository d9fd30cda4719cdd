package core

// model.go holds the model-name heuristics: manufacturer detection from
// well-known model prefixes and frame-prefix extraction for grouping.

import (
	"regexp"
	"strings"
	"unicode"
)

// manufacturerPrefixes maps well-known model prefixes to manufacturers.
// Matched in order against the uppercased model name, longest variants
// first so "MCH" is tried before "MC".
var manufacturerPrefixes = []struct {
	prefix string
	name   string
}{
	{"ACHX", "Dunham Bush"},
	{"AVX", "Dunham Bush"},
	{"YORK", "York"},
	{"YV", "York"},
	{"MCH", "McQuay"},
	{"MC", "McQuay"},
	{"TRA", "Trane"},
	{"RT", "Trane"},
	{"CH", "Carrier"},
}

var leadingLetters = regexp.MustCompile(`^[A-Za-z-]+`)

// ManufacturerFromModel guesses the manufacturer from the model name.
// Returns "" when no known prefix matches.
func ManufacturerFromModel(model string) string {
	upper := strings.ToUpper(strings.TrimSpace(model))
	if upper == "" {
		return ""
	}
	for _, mp := range manufacturerPrefixes {
		if strings.HasPrefix(upper, mp.prefix) {
			return mp.name
		}
	}
	return ""
}

// ModelPrefix extracts the frame prefix from a full model name, e.g.
// "ACHX-B 90S" yields "ACHX-B". Used to group catalog rows by product
// line in statistics.
func ModelPrefix(model string) string {
	model = strings.TrimSpace(model)
	if model == "" {
		return ""
	}

	first := strings.Fields(model)[0]
	for _, r := range first {
		if unicode.IsLetter(r) || r == '-' {
			return first
		}
	}

	// Purely numeric first token: take the letters the name starts with.
	if m := leadingLetters.FindString(model); m != "" {
		return m
	}
	return first
}
