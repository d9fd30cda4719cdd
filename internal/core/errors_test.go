package core

import (
	"errors"
	"strings"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    string
		wantMessage string
	}{
		{
			name:        "nil error returns empty",
			err:         nil,
			wantCode:    "",
			wantMessage: "",
		},
		{
			name:        "empty input maps to IMP001",
			err:         ErrEmptyInput,
			wantCode:    "IMP001",
			wantMessage: "No catalog data was provided",
		},
		{
			name:        "missing columns maps to IMP002",
			err:         &MissingColumnsError{Columns: []string{ColModel, ColCapacity}},
			wantCode:    "IMP002",
			wantMessage: "The header is missing required columns",
		},
		{
			name:        "csv parse error maps to IMP003",
			err:         errors.New(`record on line 3; parse error on line 3, column 7: bare " in non-quoted-field`),
			wantCode:    "IMP003",
			wantMessage: "The input could not be read as delimited text",
		},
		{
			name:        "no valid rows maps to IMP004",
			err:         ErrNoValidRows,
			wantCode:    "IMP004",
			wantMessage: "Every row failed validation",
		},
		{
			name:        "unknown import maps to IMP005",
			err:         ErrImportNotFound,
			wantCode:    "IMP005",
			wantMessage: "That import batch does not exist",
		},
		{
			name:        "already rolled back maps to IMP006",
			err:         ErrAlreadyRolledBack,
			wantCode:    "IMP006",
			wantMessage: "That import batch was already rolled back",
		},
		{
			name:        "duplicate key maps to DB001",
			err:         errors.New("ERROR: duplicate key value violates unique constraint"),
			wantCode:    "DB001",
			wantMessage: "A record with this ID already exists",
		},
		{
			name:        "connection refused maps to DB002",
			err:         errors.New("dial tcp 127.0.0.1:5432: connection refused"),
			wantCode:    "DB002",
			wantMessage: "Unable to connect to the database",
		},
		{
			name:        "missing file maps to FILE002",
			err:         errors.New("open catalog.tsv: no such file or directory"),
			wantCode:    "FILE002",
			wantMessage: "The file could not be found",
		},
		{
			name:        "cancelled request maps to REQ001",
			err:         errors.New("context canceled"),
			wantCode:    "REQ001",
			wantMessage: "The request was cancelled",
		},
		{
			name:        "unknown error returns default",
			err:         errors.New("some random internal error"),
			wantCode:    "ERR000",
			wantMessage: "An unexpected error occurred",
		},
		{
			name:        "case insensitive matching",
			err:         errors.New("DUPLICATE KEY value violates"),
			wantCode:    "DB001",
			wantMessage: "A record with this ID already exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError() code = %q, want %q", got.Code, tt.wantCode)
			}
			if got.Message != tt.wantMessage {
				t.Errorf("MapError() message = %q, want %q", got.Message, tt.wantMessage)
			}
		})
	}
}

func TestMissingColumnsError_Error(t *testing.T) {
	err := &MissingColumnsError{Columns: []string{ColModel, ColCapacity, ColEfficiency}}
	want := "missing required columns: model, capacity_tons, efficiency_kw_per_ton"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestFormatUserError(t *testing.T) {
	result := FormatUserError(ErrEmptyInput)

	expected := "No catalog data was provided (Code: IMP001). Paste the catalog table or point at a non-empty file"
	if result != expected {
		t.Errorf("FormatUserError() = %q, want %q", result, expected)
	}

	if FormatUserError(nil) != "" {
		t.Errorf("FormatUserError(nil) = %q, want empty", FormatUserError(nil))
	}
}

func TestIsUserFacing(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "nil error is not user facing",
			err:  nil,
			want: false,
		},
		{
			name: "known error is user facing",
			err:  ErrImportNotFound,
			want: true,
		},
		{
			name: "unknown error is not user facing",
			err:  errors.New("random internal error xyz"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsUserFacing(tt.err)
			if got != tt.want {
				t.Errorf("IsUserFacing() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewUserError(t *testing.T) {
	t.Run("nil error returns nil", func(t *testing.T) {
		if got := NewUserError(nil); got != nil {
			t.Errorf("NewUserError(nil) = %v, want nil", got)
		}
	})

	t.Run("wraps technical error with user message", func(t *testing.T) {
		techErr := errors.New("ERROR: duplicate key value")
		userErr := NewUserError(techErr)

		if userErr.Error() != "A record with this ID already exists" {
			t.Errorf("Error() = %q, want user message", userErr.Error())
		}

		if !errors.Is(userErr, techErr) {
			t.Error("Unwrap() should return original error")
		}
	})

	t.Run("wrapped sentinel stays matchable", func(t *testing.T) {
		wrapped := NewUserError(ErrEmptyInput)
		if !errors.Is(wrapped, ErrEmptyInput) {
			t.Error("errors.Is should see through UserError")
		}
		if !strings.Contains(wrapped.User.Action, "non-empty") {
			t.Errorf("unexpected action: %q", wrapped.User.Action)
		}
	})
}
