package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hvactools/chillerselect/internal/core"
	"github.com/hvactools/chillerselect/internal/logging"
)

// handleIndex serves the embedded single-page UI.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

// handleHealthz probes the store and reports service health.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if err := s.service.Ping(r.Context()); err != nil {
		s.respondError(w, r, err, http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, map[string]string{"status": "ok"})
}

// ---- Search ----

// searchQuery builds a core.Query from URL parameters. tons and ambient are
// required; ewt and lwt fall back to the configured defaults.
func (s *Server) searchQuery(r *http.Request) (core.Query, error) {
	q := core.Query{
		EWTC: s.cfg.Catalog.DefaultEWT,
		LWTC: s.cfg.Catalog.DefaultLWT,
	}

	params := r.URL.Query()
	for _, p := range []struct {
		name     string
		dst      *float64
		required bool
	}{
		{"tons", &q.TargetTons, true},
		{"ambient", &q.AmbientF, true},
		{"ewt", &q.EWTC, false},
		{"lwt", &q.LWTC, false},
	} {
		raw := params.Get(p.name)
		if raw == "" {
			if p.required {
				return q, fmt.Errorf("missing required parameter %q", p.name)
			}
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return q, fmt.Errorf("invalid value for %q: %q", p.name, raw)
		}
		*p.dst = v
	}
	return q, nil
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q, err := s.searchQuery(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	resp, err := s.service.Search(r.Context(), q)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, resp)
}

// handleSearchExport runs the same search and returns the ranked matches as
// a CSV download.
func (s *Server) handleSearchExport(w http.ResponseWriter, r *http.Request) {
	q, err := s.searchQuery(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	resp, err := s.service.Search(r.Context(), q)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="chiller-comparison.csv"`)
	if err := core.WriteResultsCSV(w, resp.Results.Matches); err != nil {
		// Headers are already sent; all we can do is log.
		logging.FromContext(r.Context()).Error("csv export failed", "error", err)
	}
}

// ---- Import ----

// importRequest is the JSON body for POST /api/import.
type importRequest struct {
	Text    string  `json:"text"`
	Label   string  `json:"label"`
	Ambient float64 `json:"ambient"`
	EWT     float64 `json:"ewt"`
	LWT     float64 `json:"lwt"`
	Preview bool    `json:"preview"`
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	if err := s.limiter.Acquire(r.Context()); err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	defer s.limiter.Release()

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Catalog.MaxImportSize)

	var req importRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.respondError(w, r, fmt.Errorf("file too large: import body exceeds %d bytes", tooLarge.Limit), http.StatusRequestEntityTooLarge)
			return
		}
		s.respondError(w, r, fmt.Errorf("invalid JSON body: %w", err), http.StatusBadRequest)
		return
	}

	if req.Ambient <= 0 {
		s.respondError(w, r, fmt.Errorf("ambient temperature is required and must be positive, got %v", req.Ambient), http.StatusBadRequest)
		return
	}
	if req.EWT == 0 {
		req.EWT = s.cfg.Catalog.DefaultEWT
	}
	if req.LWT == 0 {
		req.LWT = s.cfg.Catalog.DefaultLWT
	}

	logging.WithFields(r.Context(),
		"source", "web",
		"preview", req.Preview,
	).Info("import received", "bytes", len(req.Text))

	result, err := s.service.Import(r.Context(), core.ImportRequest{
		Text:   req.Text,
		Source: "web",
		Label:  req.Label,
		Conditions: core.Conditions{
			AmbientF: req.Ambient,
			EWTC:     req.EWT,
			LWTC:     req.LWT,
		},
		Preview: req.Preview,
	})
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, result)
}

// ---- Catalog info ----

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.service.Stats(r.Context())
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, stats)
}

func (s *Server) handleAmbients(w http.ResponseWriter, r *http.Request) {
	ambients, err := s.service.Ambients(r.Context())
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, map[string][]float64{"ambients": ambients})
}

// ---- Import history ----

func (s *Server) handleListImports(w http.ResponseWriter, r *http.Request) {
	records, err := s.service.Imports(r.Context())
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, map[string][]core.ImportRecord{"imports": records})
}

func (s *Server) handleRollback(w http.ResponseWriter, r *http.Request) {
	importID := chi.URLParam(r, "importID")
	if importID == "" {
		s.respondError(w, r, errors.New("missing import ID"), http.StatusBadRequest)
		return
	}

	result, err := s.service.Rollback(r.Context(), importID)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, result)
}
