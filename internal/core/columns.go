package core

// columns.go defines the recognized catalog columns and header matching.
//
// Catalog exports disagree about header spelling and casing ("Tons",
// "Energy Efficiency (kW/Ton)", "PSI/Ft.W.G", "EER"), so matching runs on a
// normalized form: lowercase, parenthesized units stripped, whitespace
// collapsed. Unrecognized columns are ignored rather than rejected.

import (
	"regexp"
	"strings"
)

// Canonical column keys. Compound columns (pressure drop, dimensions) split
// into several row fields during parsing.
const (
	ColModel        = "model"
	ColManufacturer = "manufacturer"
	ColCapacity     = "capacity_tons"
	ColEfficiency   = "efficiency_kw_per_ton"
	ColEER          = "eer"
	ColIPLV         = "iplv_kw_per_ton"
	ColWaterflow    = "waterflow_usgpm"
	ColUnitKW       = "unit_kw"
	ColCompressorKW = "compressor_kw"
	ColFanKW        = "fan_kw"
	ColPressureDrop = "pressure_drop"
	ColMCA          = "mca_amps"
	ColDimensions   = "dimensions"
)

// columnAliases maps normalized header spellings to canonical keys.
// Keys here must already be in normalized form.
var columnAliases = map[string]string{
	"model": ColModel,

	"manufacturer": ColManufacturer,
	"make":         ColManufacturer,

	"tons":          ColCapacity,
	"capacity":      ColCapacity,
	"capacity tons": ColCapacity,

	"energy efficiency": ColEfficiency,
	"efficiency":        ColEfficiency,
	"kw/ton":            ColEfficiency,

	// EER converts to kW/ton on import.
	"eer": ColEER,

	"iplv": ColIPLV,

	"usgpm":      ColWaterflow,
	"gpm":        ColWaterflow,
	"waterflow":  ColWaterflow,
	"water flow": ColWaterflow,

	"u. kw":   ColUnitKW,
	"unit kw": ColUnitKW,

	"c. kw":         ColCompressorKW,
	"compressor kw": ColCompressorKW,

	"f. kw":  ColFanKW,
	"fan kw": ColFanKW,

	"psi/ft.w.g":    ColPressureDrop,
	"pressure drop": ColPressureDrop,

	"mca": ColMCA,

	"dimensions": ColDimensions,
	"dims":       ColDimensions,
}

// requiredColumns must all be present for a batch to parse at all.
var requiredColumns = []string{ColModel, ColCapacity, ColEfficiency}

var (
	headerParens = regexp.MustCompile(`\([^)]*\)`)
	headerSpaces = regexp.MustCompile(`\s+`)
)

// NormalizeHeader lowers a header, strips parenthesized unit tags, and
// collapses whitespace, so "Energy Efficiency (kW/Ton)" and
// "energy efficiency" match the same column.
func NormalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = headerParens.ReplaceAllString(h, "")
	h = headerSpaces.ReplaceAllString(h, " ")
	return strings.TrimSpace(h)
}

// ColumnMap locates each recognized column in a header row by canonical key.
type ColumnMap map[string]int

// MapColumns matches a header row against the recognized column set. It
// returns the position of each recognized column plus the canonical keys
// found, in input order. A duplicated header keeps its first position.
func MapColumns(header []string) (ColumnMap, []string) {
	cm := make(ColumnMap, len(header))
	found := make([]string, 0, len(header))
	for i, h := range header {
		key, ok := columnAliases[NormalizeHeader(CleanCell(h))]
		if !ok {
			continue
		}
		if _, dup := cm[key]; dup {
			continue
		}
		cm[key] = i
		found = append(found, key)
	}
	return cm, found
}

// MissingRequired reports required columns absent from the map, in canonical
// order. An EER column satisfies the efficiency requirement.
func (cm ColumnMap) MissingRequired() []string {
	var missing []string
	for _, key := range requiredColumns {
		if _, ok := cm[key]; ok {
			continue
		}
		if key == ColEfficiency {
			if _, ok := cm[ColEER]; ok {
				continue
			}
		}
		missing = append(missing, key)
	}
	return missing
}

// cell returns the cleaned value of a recognized column in a data row, or
// "" when the column is absent or the row is short.
func (cm ColumnMap) cell(row []string, key string) string {
	pos, ok := cm[key]
	if !ok || pos >= len(row) {
		return ""
	}
	return CleanCell(row[pos])
}
