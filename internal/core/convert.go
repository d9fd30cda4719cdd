package core

// convert.go provides field parsers for raw catalog text.
//
// Manufacturer exports are messy: blank cells and "N/A" placeholders,
// thousands separators, compound cells ("3.4/7.7" pressure drops,
// "152.0 L 89.0 W 89.0 H (in)" dimensions), Excel formula prefixes (="value"),
// and the occasional BOM. Parsers treat absent values as nil rather than
// failing the row; only a present but unparseable value is a row error, and
// malformed compound cells degrade to nil sub-fields instead of rejecting
// the row.

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// numericRegex validates that a string is a valid numeric format after
// cleanup. Matches integers, decimals, and scientific notation.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// dimensionsRegex matches the "L W H" catalog notation with an optional
// trailing parenthesized unit, e.g. "152.0 L 89.0 W 89.0 H (in)".
var dimensionsRegex = regexp.MustCompile(`([0-9.]+)\s*[Ll]\s*([0-9.]+)\s*[Ww]\s*([0-9.]+)\s*[Hh](?:\s*\(([^)]+)\))?`)

// eerToKWTon is the conversion constant between EER (BTU/h per watt) and
// kW/ton: kW/ton = 3.51685 / EER.
const eerToKWTon = 3.51685

// CleanCell removes common spreadsheet artifacts from a cell value:
//   - Trims whitespace and UTF-8 BOM
//   - Removes Excel formula prefix (="...")
//   - Removes surrounding quotes
func CleanCell(s string) string {
	s = strings.TrimPrefix(s, "\uFEFF")
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	s = strings.Trim(s, `"'`)

	return strings.TrimSpace(s)
}

// emptyCell reports whether a cleaned cell carries no value.
func emptyCell(s string) bool {
	switch strings.ToLower(s) {
	case "", "n/a", "na", "-", "--":
		return true
	}
	return false
}

// ParseFloat parses a numeric cell. Empty and placeholder cells return
// (nil, nil); a present but non-numeric value returns an error naming the
// offending text.
func ParseFloat(s string) (*float64, error) {
	s = CleanCell(s)
	if emptyCell(s) {
		return nil, nil
	}

	// Thousands separators are common in capacity and flow columns.
	cleaned := strings.ReplaceAll(s, ",", "")

	if !numericRegex.MatchString(cleaned) {
		return nil, fmt.Errorf("not a number: %q", s)
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil, fmt.Errorf("not a number: %q", s)
	}
	return &v, nil
}

// ParsePressureDrop splits the compound "PSI/Ft.W.G" cell, e.g. "3.4/7.7",
// into its two values. Anything that does not fit the X/Y shape yields
// (nil, nil); the row is kept.
func ParsePressureDrop(s string) (psi, ftwg *float64) {
	s = CleanCell(s)
	if emptyCell(s) {
		return nil, nil
	}

	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		return nil, nil
	}

	p, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	f, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err1 != nil || err2 != nil {
		return nil, nil
	}
	return &p, &f
}

// ParseDimensions splits the compound dimensions cell, e.g.
// "152.0 L 89.0 W 89.0 H (in)", into length, width, height, and the unit
// tag. A cell that does not fit the grammar yields all nils; the row is
// kept.
func ParseDimensions(s string) (length, width, height *float64, unit string) {
	s = CleanCell(s)
	if emptyCell(s) {
		return nil, nil, nil, ""
	}

	m := dimensionsRegex.FindStringSubmatch(s)
	if m == nil {
		return nil, nil, nil, ""
	}

	l, err1 := strconv.ParseFloat(m[1], 64)
	w, err2 := strconv.ParseFloat(m[2], 64)
	h, err3 := strconv.ParseFloat(m[3], 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return nil, nil, nil, ""
	}
	return &l, &w, &h, strings.TrimSpace(m[4])
}

// KWPerTonFromEER converts an EER rating to kW/ton.
func KWPerTonFromEER(eer float64) float64 {
	return eerToKWTon / eer
}

// DetectDelimiter inspects the first few non-empty lines of raw catalog
// text and picks the field delimiter: tab or comma, whichever appears more.
// Tabs win ties because tab-separated pastes from spreadsheets routinely
// contain commas inside cells.
func DetectDelimiter(text string) rune {
	var tabs, commas int
	seen := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		tabs += strings.Count(line, "\t")
		commas += strings.Count(line, ",")
		seen++
		if seen == 3 {
			break
		}
	}
	if commas > tabs {
		return ','
	}
	return '\t'
}
