package core

import (
	"math"
	"testing"
)

// ----------------------------------------------------------------------------
// ParseFloat Tests
// ----------------------------------------------------------------------------

func TestParseFloat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantNil bool
		wantErr bool
	}{
		// Valid: plain numbers
		{
			name:  "integer",
			input: "123",
			want:  123,
		},
		{
			name:  "decimal",
			input: "89.4",
			want:  89.4,
		},
		{
			name:  "padded decimal",
			input: "  1.256  ",
			want:  1.256,
		},
		{
			name:  "scientific notation",
			input: "1.5e2",
			want:  150,
		},

		// Valid: spreadsheet artifacts
		{
			name:  "thousands separator",
			input: "1,234.5",
			want:  1234.5,
		},
		{
			name:  "excel formula prefix",
			input: `="214.5"`,
			want:  214.5,
		},
		{
			name:  "leading BOM",
			input: "\uFEFF50",
			want:  50,
		},

		// Absent values
		{
			name:    "empty cell",
			input:   "",
			wantNil: true,
		},
		{
			name:    "whitespace only",
			input:   "   ",
			wantNil: true,
		},
		{
			name:    "uppercase N/A",
			input:   "N/A",
			wantNil: true,
		},
		{
			name:    "lowercase n/a",
			input:   "n/a",
			wantNil: true,
		},
		{
			name:    "single dash",
			input:   "-",
			wantNil: true,
		},
		{
			name:    "double dash",
			input:   "--",
			wantNil: true,
		},

		// Invalid: present but unreadable
		{
			name:    "letters",
			input:   "abc",
			wantErr: true,
		},
		{
			name:    "two decimal points",
			input:   "12.3.4",
			wantErr: true,
		},
		{
			name:    "number with unit suffix",
			input:   "89.4 tons",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFloat(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseFloat(%q) error = nil, want error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFloat(%q) unexpected error: %v", tt.input, err)
			}
			if tt.wantNil {
				if got != nil {
					t.Fatalf("ParseFloat(%q) = %v, want nil", tt.input, *got)
				}
				return
			}
			if got == nil {
				t.Fatalf("ParseFloat(%q) = nil, want %v", tt.input, tt.want)
			}
			if *got != tt.want {
				t.Errorf("ParseFloat(%q) = %v, want %v", tt.input, *got, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// Compound Cell Tests
// ----------------------------------------------------------------------------

func TestParsePressureDrop(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantPSI  float64
		wantFtWG float64
		wantNil  bool
	}{
		{
			name:     "standard pair",
			input:    "3.4/7.7",
			wantPSI:  3.4,
			wantFtWG: 7.7,
		},
		{
			name:     "spaces around slash",
			input:    " 3.4 / 7.7 ",
			wantPSI:  3.4,
			wantFtWG: 7.7,
		},
		{
			name:    "single value",
			input:   "3.4",
			wantNil: true,
		},
		{
			name:    "three parts",
			input:   "3.4/7.7/9.1",
			wantNil: true,
		},
		{
			name:    "non-numeric parts",
			input:   "low/high",
			wantNil: true,
		},
		{
			name:    "empty",
			input:   "",
			wantNil: true,
		},
		{
			name:    "placeholder",
			input:   "N/A",
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			psi, ftwg := ParsePressureDrop(tt.input)
			if tt.wantNil {
				if psi != nil || ftwg != nil {
					t.Fatalf("ParsePressureDrop(%q) = (%v, %v), want (nil, nil)", tt.input, psi, ftwg)
				}
				return
			}
			if psi == nil || ftwg == nil {
				t.Fatalf("ParsePressureDrop(%q) returned nil, want (%v, %v)", tt.input, tt.wantPSI, tt.wantFtWG)
			}
			if *psi != tt.wantPSI || *ftwg != tt.wantFtWG {
				t.Errorf("ParsePressureDrop(%q) = (%v, %v), want (%v, %v)", tt.input, *psi, *ftwg, tt.wantPSI, tt.wantFtWG)
			}
		})
	}
}

func TestParseDimensions(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantL    float64
		wantW    float64
		wantH    float64
		wantUnit string
		wantNil  bool
	}{
		{
			name:     "with unit tag",
			input:    "152.0 L 89.0 W 89.0 H (in)",
			wantL:    152,
			wantW:    89,
			wantH:    89,
			wantUnit: "in",
		},
		{
			name:  "without unit tag",
			input: "152 L 89 W 89 H",
			wantL: 152,
			wantW: 89,
			wantH: 89,
		},
		{
			name:     "no spaces before markers",
			input:    "152.0L 89.0W 89.0H (mm)",
			wantL:    152,
			wantW:    89,
			wantH:    89,
			wantUnit: "mm",
		},
		{
			name:  "lowercase markers",
			input: "152.0 l 89.0 w 89.0 h",
			wantL: 152,
			wantW: 89,
			wantH: 89,
		},
		{
			name:    "x-separated form not recognized",
			input:   "152x89x89",
			wantNil: true,
		},
		{
			name:    "empty",
			input:   "",
			wantNil: true,
		},
		{
			name:    "placeholder",
			input:   "N/A",
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, w, h, unit := ParseDimensions(tt.input)
			if tt.wantNil {
				if l != nil || w != nil || h != nil || unit != "" {
					t.Fatalf("ParseDimensions(%q) = (%v, %v, %v, %q), want all nil", tt.input, l, w, h, unit)
				}
				return
			}
			if l == nil || w == nil || h == nil {
				t.Fatalf("ParseDimensions(%q) returned nil dimension", tt.input)
			}
			if *l != tt.wantL || *w != tt.wantW || *h != tt.wantH {
				t.Errorf("ParseDimensions(%q) = (%v, %v, %v), want (%v, %v, %v)", tt.input, *l, *w, *h, tt.wantL, tt.wantW, tt.wantH)
			}
			if unit != tt.wantUnit {
				t.Errorf("ParseDimensions(%q) unit = %q, want %q", tt.input, unit, tt.wantUnit)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// EER Conversion Tests
// ----------------------------------------------------------------------------

func TestKWPerTonFromEER(t *testing.T) {
	tests := []struct {
		eer  float64
		want float64
	}{
		{eer: 10, want: 0.351685},
		{eer: 12, want: 0.2930708333333333},
		{eer: 3.51685, want: 1},
	}

	for _, tt := range tests {
		got := KWPerTonFromEER(tt.eer)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("KWPerTonFromEER(%v) = %v, want %v", tt.eer, got, tt.want)
		}
	}
}

// ----------------------------------------------------------------------------
// CleanCell Tests
// ----------------------------------------------------------------------------

func TestCleanCell(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "trims whitespace",
			input: "  ACHX-B 90S  ",
			want:  "ACHX-B 90S",
		},
		{
			name:  "strips excel formula quotes",
			input: `="ACHX-B 90S"`,
			want:  "ACHX-B 90S",
		},
		{
			name:  "strips bare equals prefix",
			input: "=89.4",
			want:  "89.4",
		},
		{
			name:  "strips surrounding quotes",
			input: `"quoted"`,
			want:  "quoted",
		},
		{
			name:  "strips single quotes",
			input: "'quoted'",
			want:  "quoted",
		},
		{
			name:  "strips BOM",
			input: "\uFEFFModel",
			want:  "Model",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanCell(tt.input); got != tt.want {
				t.Errorf("CleanCell(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// Delimiter Detection Tests
// ----------------------------------------------------------------------------

func TestDetectDelimiter(t *testing.T) {
	tests := []struct {
		name string
		text string
		want rune
	}{
		{
			name: "tab separated",
			text: "Model\tTons\nACHX-B 90S\t89.4\n",
			want: '\t',
		},
		{
			name: "comma separated",
			text: "Model,Tons\nACHX-B 90S,89.4\n",
			want: ',',
		},
		{
			name: "tabs win ties",
			text: "Dunham Bush, Inc\tACHX\n",
			want: '\t',
		},
		{
			name: "commas inside tab-separated cells",
			text: "Model\tManufacturer\tTons\nACHX-B 90S\tDunham Bush, Inc.\t89.4\n",
			want: '\t',
		},
		{
			name: "leading blank lines skipped",
			text: "\n\nModel,Tons\nA,1\n",
			want: ',',
		},
		{
			name: "only first three non-empty lines counted",
			text: "a\tb\nc\td\ne\tf\ng,h,i,j,k,l,m,n,o,p\n",
			want: '\t',
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectDelimiter(tt.text); got != tt.want {
				t.Errorf("DetectDelimiter(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
