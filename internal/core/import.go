package core

// import.go parses raw delimited catalog text into validated rows.
//
// The importer is forgiving about shape: tab or comma delimiters, any
// column order, extra columns, ragged rows. It is strict about content: a
// data row with an unreadable required value is recorded as a failure and
// excluded, never silently patched.

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// ParseBatch parses raw delimited catalog text into an ImportBatch. The
// shared conditions are applied to every row; the catalog stores the
// operating condition per row because the same model is imported repeatedly
// under different conditions.
//
// Fatal problems (empty input, unreadable text, missing required columns)
// return an error and no batch. Row-level problems never abort the batch:
// they are collected in Failed with the 1-based line number from the
// original input.
func ParseBatch(text string, cond Conditions) (*ImportBatch, error) {
	text = strings.TrimPrefix(text, "\uFEFF")
	// Pasted text can carry broken encodings; stores require valid UTF-8.
	text = strings.ToValidUTF8(text, string(utf8.RuneError))
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}

	delim := DetectDelimiter(text)

	r := csv.NewReader(strings.NewReader(text))
	r.Comma = delim
	r.FieldsPerRecord = -1 // ragged rows are a row-level concern, not fatal
	r.LazyQuotes = true
	// TrimLeadingSpace stays off: with a tab delimiter it would swallow
	// empty fields, since tab itself counts as leading white space.
	// CleanCell trims each cell instead.

	var (
		records [][]string
		lines   []int
	)
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading delimited text: %w", err)
		}
		line, _ := r.FieldPos(0)
		records = append(records, rec)
		lines = append(lines, line)
	}

	// The header is the first non-empty record.
	headerIdx := -1
	for i, rec := range records {
		if !isEmptyRow(rec) {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return nil, ErrEmptyInput
	}

	cm, found := MapColumns(records[headerIdx])
	if missing := cm.MissingRequired(); len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}

	batch := &ImportBatch{
		Columns:    found,
		Delimiter:  delim,
		Conditions: cond,
	}

	for i := headerIdx + 1; i < len(records); i++ {
		rec := records[i]
		if isEmptyRow(rec) {
			continue
		}
		batch.TotalRows++

		row, err := buildRow(rec, cm, cond)
		if err != nil {
			batch.Failed = append(batch.Failed, FailedRow{
				LineNumber: lines[i],
				Reason:     err.Error(),
				Data:       rec,
			})
			continue
		}
		batch.Rows = append(batch.Rows, row)
	}

	return batch, nil
}

// buildRow parses and validates one data record.
func buildRow(rec []string, cm ColumnMap, cond Conditions) (CatalogRow, error) {
	row := CatalogRow{
		AmbientF: cond.AmbientF,
		EWTC:     cond.EWTC,
		LWTC:     cond.LWTC,
	}

	row.Model = cm.cell(rec, ColModel)
	if row.Model == "" {
		return row, fmt.Errorf("empty required field %q", ColModel)
	}

	row.Manufacturer = cm.cell(rec, ColManufacturer)
	if row.Manufacturer == "" {
		row.Manufacturer = ManufacturerFromModel(row.Model)
	}

	capTons, err := requirePositive(rec, cm, ColCapacity)
	if err != nil {
		return row, err
	}
	row.CapacityTons = capTons

	// Efficiency arrives either as kW/ton or as an EER rating. An explicit
	// kW/ton value wins; EER converts.
	eff, err := floatCell(rec, cm, ColEfficiency)
	if err != nil {
		return row, err
	}
	if eff == nil {
		eer, err := floatCell(rec, cm, ColEER)
		if err != nil {
			return row, err
		}
		if eer != nil {
			if *eer <= 0 {
				return row, fmt.Errorf("%s must be positive, got %v", ColEER, *eer)
			}
			v := KWPerTonFromEER(*eer)
			eff = &v
		}
	}
	if eff == nil {
		return row, fmt.Errorf("empty required field %q", ColEfficiency)
	}
	if *eff <= 0 {
		return row, fmt.Errorf("%s must be positive, got %v", ColEfficiency, *eff)
	}
	row.Efficiency = *eff

	if row.IPLV, err = floatCell(rec, cm, ColIPLV); err != nil {
		return row, err
	}
	if row.Waterflow, err = floatCell(rec, cm, ColWaterflow); err != nil {
		return row, err
	}
	if row.Waterflow != nil && *row.Waterflow <= 0 {
		return row, fmt.Errorf("%s must be positive, got %v", ColWaterflow, *row.Waterflow)
	}
	if row.UnitKW, err = floatCell(rec, cm, ColUnitKW); err != nil {
		return row, err
	}
	if row.CompressorKW, err = floatCell(rec, cm, ColCompressorKW); err != nil {
		return row, err
	}
	if row.FanKW, err = floatCell(rec, cm, ColFanKW); err != nil {
		return row, err
	}
	if row.MCA, err = floatCell(rec, cm, ColMCA); err != nil {
		return row, err
	}

	// Compound cells degrade to nil sub-fields when malformed.
	row.PressureDropPSI, row.PressureDropFtWG = ParsePressureDrop(cm.cell(rec, ColPressureDrop))
	row.Length, row.Width, row.Height, row.DimUnit = ParseDimensions(cm.cell(rec, ColDimensions))

	return row, nil
}

// floatCell parses an optional numeric column. An absent column or empty
// cell is (nil, nil); a present but unreadable value is an error.
func floatCell(rec []string, cm ColumnMap, key string) (*float64, error) {
	s := cm.cell(rec, key)
	v, err := ParseFloat(s)
	if err != nil {
		return nil, fmt.Errorf("invalid number for %q: %q", key, s)
	}
	return v, nil
}

// requirePositive parses a column that must carry a positive number.
func requirePositive(rec []string, cm ColumnMap, key string) (float64, error) {
	v, err := floatCell(rec, cm, key)
	if err != nil {
		return 0, err
	}
	if v == nil {
		return 0, fmt.Errorf("empty required field %q", key)
	}
	if *v <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %v", key, *v)
	}
	return *v, nil
}

// isEmptyRow reports whether every cell in the row is blank.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
