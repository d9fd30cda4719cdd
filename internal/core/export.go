package core

// export.go writes search results as a CSV comparison report.

import (
	"encoding/csv"
	"io"
	"strconv"
)

// exportHeader matches the column layout engineers expect in comparison
// reports pulled into spreadsheets.
var exportHeader = []string{
	"Model",
	"Manufacturer",
	"Capacity (tons)",
	"Efficiency (kW/ton)",
	"Waterflow (USgpm)",
	"Ambient (°F)",
	"EWT (°C)",
	"LWT (°C)",
	"Unit kW",
	"Compressor kW",
	"Fan kW",
	"IPLV (kW/ton)",
	"MCA (Amps)",
	"Pressure Drop (psi)",
	"Pressure Drop (ft.w.g)",
	"Length (in)",
	"Width (in)",
	"Height (in)",
}

// WriteResultsCSV writes rows as a CSV comparison report. Missing optional
// values export as empty cells.
func WriteResultsCSV(w io.Writer, rows []CatalogRow) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(exportHeader); err != nil {
		return err
	}

	for _, r := range rows {
		rec := []string{
			r.Model,
			r.Manufacturer,
			formatFloat(r.CapacityTons),
			formatFloat(r.Efficiency),
			formatFloatPtr(r.Waterflow),
			formatFloat(r.AmbientF),
			formatFloat(r.EWTC),
			formatFloat(r.LWTC),
			formatFloatPtr(r.UnitKW),
			formatFloatPtr(r.CompressorKW),
			formatFloatPtr(r.FanKW),
			formatFloatPtr(r.IPLV),
			formatFloatPtr(r.MCA),
			formatFloatPtr(r.PressureDropPSI),
			formatFloatPtr(r.PressureDropFtWG),
			formatFloatPtr(r.Length),
			formatFloatPtr(r.Width),
			formatFloatPtr(r.Height),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatFloatPtr(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}
