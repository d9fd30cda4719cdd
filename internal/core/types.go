package core

import "time"

// CatalogRow is one chiller at one operating condition. A model may appear
// multiple times in the catalog when it was imported under different
// ambient/water conditions.
//
// Capacity, efficiency, and the operating condition are always present on a
// stored row; the remaining performance and electrical fields are nil when the
// source data did not carry them.
type CatalogRow struct {
	Model        string `json:"model" yaml:"model"`
	Manufacturer string `json:"manufacturer,omitempty" yaml:"manufacturer,omitempty"`

	// CapacityTons is the nominal cooling capacity in tons (> 0).
	CapacityTons float64 `json:"capacityTons" yaml:"capacity_tons"`

	// Operating condition the row was rated at.
	AmbientF float64 `json:"ambientF" yaml:"ambient_f"`
	EWTC     float64 `json:"ewtC" yaml:"ewt_c"`
	LWTC     float64 `json:"lwtC" yaml:"lwt_c"`

	// Efficiency is full-load power per ton in kW/ton (> 0, lower is better).
	Efficiency float64 `json:"efficiency" yaml:"efficiency"`

	// IPLV is the part-load efficiency in kW/ton.
	IPLV *float64 `json:"iplv,omitempty" yaml:"iplv,omitempty"`

	// Waterflow is the evaporator water flow in USgpm (> 0 when present).
	Waterflow *float64 `json:"waterflow,omitempty" yaml:"waterflow,omitempty"`

	// Power breakdown, kW.
	UnitKW       *float64 `json:"unitKW,omitempty" yaml:"unit_kw,omitempty"`
	CompressorKW *float64 `json:"compressorKW,omitempty" yaml:"compressor_kw,omitempty"`
	FanKW        *float64 `json:"fanKW,omitempty" yaml:"fan_kw,omitempty"`

	// Evaporator pressure drop, split from the "X/Y" catalog notation.
	PressureDropPSI  *float64 `json:"pressureDropPSI,omitempty" yaml:"pressure_drop_psi,omitempty"`
	PressureDropFtWG *float64 `json:"pressureDropFtWG,omitempty" yaml:"pressure_drop_ftwg,omitempty"`

	// MCA is the minimum circuit amps electrical rating.
	MCA *float64 `json:"mca,omitempty" yaml:"mca,omitempty"`

	// Physical dimensions, split from the "L x W x H (unit)" notation.
	Length  *float64 `json:"length,omitempty" yaml:"length,omitempty"`
	Width   *float64 `json:"width,omitempty" yaml:"width,omitempty"`
	Height  *float64 `json:"height,omitempty" yaml:"height,omitempty"`
	DimUnit string   `json:"dimUnit,omitempty" yaml:"dim_unit,omitempty"`

	// ImportID links the row to the import batch that created it.
	ImportID string `json:"importId,omitempty" yaml:"import_id,omitempty"`

	// CreatedAt is set by the store on insert.
	CreatedAt time.Time `json:"createdAt,omitempty" yaml:"created_at,omitempty"`
}

// Conditions is the shared operating condition applied to every row of an
// import batch. The recognized column set carries no per-row condition
// columns, so these always come from the caller.
type Conditions struct {
	AmbientF float64 `json:"ambientF" yaml:"ambient_f"`
	EWTC     float64 `json:"ewtC" yaml:"ewt_c"`
	LWTC     float64 `json:"lwtC" yaml:"lwt_c"`
}

// Query is a selection request. All four values are required.
type Query struct {
	TargetTons float64 `json:"targetTons"`
	AmbientF   float64 `json:"ambientF"`
	EWTC       float64 `json:"ewtC"`
	LWTC       float64 `json:"lwtC"`
}

// Conditions returns the operating-condition part of the query.
func (q Query) Conditions() Conditions {
	return Conditions{AmbientF: q.AmbientF, EWTC: q.EWTC, LWTC: q.LWTC}
}

// FailedRow records a data row that was rejected during parsing.
// LineNumber is the 1-based line in the original input (header included),
// so reported numbers match what the user sees in their editor.
type FailedRow struct {
	LineNumber int      `json:"lineNumber"`
	Reason     string   `json:"reason"`
	Data       []string `json:"data,omitempty"`
}

// ImportBatch is the outcome of parsing one block of catalog text.
// Valid rows and failures are returned together so callers can preview
// before committing anything to storage.
type ImportBatch struct {
	Rows    []CatalogRow // validated rows, input order preserved
	Failed  []FailedRow  // rejected rows with reasons
	Columns []string     // recognized columns found, input order
	// TotalRows is the number of data rows seen (valid + failed).
	TotalRows  int
	Delimiter  rune // detected field delimiter: '\t' or ','
	Conditions Conditions
}

// ImportRequest describes one import operation.
type ImportRequest struct {
	// Text is the raw delimited catalog text (pasted or file contents).
	Text string
	// Source names where the text came from: a file path, "paste", "stdin".
	Source string
	// Label is an optional user-facing name for the batch.
	Label      string
	Conditions Conditions
	// Preview parses and validates without touching the store.
	Preview bool
}

// ImportResult is the outcome of an import operation.
type ImportResult struct {
	ImportID   string        `json:"importId,omitempty"` // empty for previews
	Source     string        `json:"source,omitempty"`
	Label      string        `json:"label,omitempty"`
	Conditions Conditions    `json:"conditions"`
	TotalRows  int           `json:"totalRows"`
	Inserted   int           `json:"inserted"` // 0 for previews
	Rows       []CatalogRow  `json:"rows,omitempty"`
	Failed     []FailedRow   `json:"failed,omitempty"`
	Preview    bool          `json:"preview"`
	Duration   time.Duration `json:"-"`
}

// ImportRecord is the stored history entry for one committed import batch.
type ImportRecord struct {
	ID         string     `json:"id" yaml:"id"`
	Label      string     `json:"label,omitempty" yaml:"label,omitempty"`
	Source     string     `json:"source,omitempty" yaml:"source,omitempty"`
	RowCount   int        `json:"rowCount" yaml:"row_count"`
	Conditions Conditions `json:"conditions" yaml:"conditions"`
	Status     string     `json:"status" yaml:"status"`
	CreatedAt  time.Time  `json:"createdAt" yaml:"created_at"`
}

// Import record status values.
const (
	ImportStatusActive     = "active"
	ImportStatusRolledBack = "rolled_back"
)

// RollbackResult reports the outcome of undoing one import batch.
type RollbackResult struct {
	ImportID    string `json:"importId"`
	RowsDeleted int    `json:"rowsDeleted"`
}

// SearchOutcome classifies a search result. No-match outcomes are results,
// not errors: callers are expected to render them.
type SearchOutcome string

const (
	// OutcomeMatched means at least one row fell inside the tolerance band.
	OutcomeMatched SearchOutcome = "matched"
	// OutcomeNoAmbientMatch means no catalog row has the requested ambient.
	// AvailableAmbients lists the ambients that do exist.
	OutcomeNoAmbientMatch SearchOutcome = "no_ambient_match"
	// OutcomeNoCapacityMatch means rows exist at the ambient but none fall
	// within the widest tolerance band. Summary reports the final band.
	OutcomeNoCapacityMatch SearchOutcome = "no_capacity_match"
)

// SearchSummary reports what a search looked for and what it found.
type SearchSummary struct {
	TargetTons float64 `json:"targetTons"`
	// Tolerance is the band fraction actually used (0.10 or 0.20).
	Tolerance  float64 `json:"tolerance"`
	BandLow    float64 `json:"bandLow"`
	BandHigh   float64 `json:"bandHigh"`
	AmbientF   float64 `json:"ambientF"`
	EWTC       float64 `json:"ewtC"`
	LWTC       float64 `json:"lwtC"`
	MatchCount int     `json:"matchCount"`
}

// RankedResults is the full outcome of a catalog search.
type RankedResults struct {
	Outcome SearchOutcome `json:"outcome"`

	// Best is the top-ranked match, nil unless Outcome is OutcomeMatched.
	Best *CatalogRow `json:"best,omitempty"`

	// Above and Below are capacity-adjacent alternates: the in-band rows
	// closest to the target strictly above and strictly below it, always
	// distinct from Best. Either may be nil.
	Above *CatalogRow `json:"above,omitempty"`
	Below *CatalogRow `json:"below,omitempty"`

	// Matches is the full ranked list for the accepted band.
	Matches []CatalogRow `json:"matches,omitempty"`

	// AvailableAmbients lists distinct catalog ambients, ascending.
	// Populated only when Outcome is OutcomeNoAmbientMatch.
	AvailableAmbients []float64 `json:"availableAmbients,omitempty"`

	Summary SearchSummary `json:"summary"`
}

// AmbientSuggestion reports how many rows would match the same capacity
// target at a different ambient. Offered when the requested ambient has no
// rows at all.
type AmbientSuggestion struct {
	AmbientF   float64 `json:"ambientF"`
	MatchCount int     `json:"matchCount"`
	Tolerance  float64 `json:"tolerance"`
}

// SearchResponse is what the service returns for a search: the ranked
// results plus fallback suggestions when the ambient had no rows.
type SearchResponse struct {
	Results     *RankedResults      `json:"results"`
	Suggestions []AmbientSuggestion `json:"suggestions,omitempty"`
}

// GroupCount is a name with a row count, used in catalog statistics.
type GroupCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// AmbientCount is an ambient temperature with a row count.
type AmbientCount struct {
	AmbientF float64 `json:"ambientF"`
	Count    int     `json:"count"`
}

// CatalogStats summarizes the catalog contents: totals plus row counts
// grouped by manufacturer, model prefix, operating condition, and ambient.
type CatalogStats struct {
	TotalRows      int            `json:"totalRows"`
	DistinctModels int            `json:"distinctModels"`
	Manufacturers  []GroupCount   `json:"manufacturers,omitempty"`
	ModelPrefixes  []GroupCount   `json:"modelPrefixes,omitempty"`
	Conditions     []GroupCount   `json:"conditions,omitempty"`
	Ambients       []AmbientCount `json:"ambients,omitempty"`
}
