package core

// search.go implements catalog search: exact ambient filter, progressive
// capacity tolerance, ranking, and neighbor selection.

import (
	"math"
	"sort"
)

// toleranceLadder is the progressive capacity tolerance: ±10% first, then
// ±20% when the tight band is empty. Never widened further.
var toleranceLadder = []float64{0.10, 0.20}

// Search runs a selection against a catalog snapshot. It is a pure function
// over its inputs: no I/O, no shared state, and deterministic for a given
// input order (ties at every rank key resolve first-seen).
func Search(catalog []CatalogRow, q Query) *RankedResults {
	res := &RankedResults{
		Summary: SearchSummary{
			TargetTons: q.TargetTons,
			AmbientF:   q.AmbientF,
			EWTC:       q.EWTC,
			LWTC:       q.LWTC,
		},
	}

	// Ambient filter first. Zero rows at this ambient short-circuits:
	// capacity tolerance never reaches across ambients.
	atAmbient := filterAmbient(catalog, q.AmbientF)
	if len(atAmbient) == 0 {
		res.Outcome = OutcomeNoAmbientMatch
		res.AvailableAmbients = DistinctAmbients(catalog)
		res.Summary.Tolerance = toleranceLadder[len(toleranceLadder)-1]
		res.Summary.BandLow, res.Summary.BandHigh = band(q.TargetTons, res.Summary.Tolerance)
		return res
	}

	matches, tol := filterCapacity(atAmbient, q.TargetTons)
	res.Summary.Tolerance = tol
	res.Summary.BandLow, res.Summary.BandHigh = band(q.TargetTons, tol)
	res.Summary.MatchCount = len(matches)

	if len(matches) == 0 {
		res.Outcome = OutcomeNoCapacityMatch
		return res
	}

	rankMatches(matches, q)
	res.Outcome = OutcomeMatched
	res.Matches = matches
	res.Best = &matches[0]
	res.Above, res.Below = pickNeighbors(matches, q.TargetTons)
	return res
}

// ProbeAmbients reruns the capacity filter at every ambient present in the
// catalog and reports those that would match. Used for fallback suggestions
// when the requested ambient has no rows at all.
func ProbeAmbients(catalog []CatalogRow, targetTons float64) []AmbientSuggestion {
	var out []AmbientSuggestion
	for _, amb := range DistinctAmbients(catalog) {
		matches, tol := filterCapacity(filterAmbient(catalog, amb), targetTons)
		if len(matches) == 0 {
			continue
		}
		out = append(out, AmbientSuggestion{
			AmbientF:   amb,
			MatchCount: len(matches),
			Tolerance:  tol,
		})
	}
	return out
}

// DistinctAmbients returns the distinct ambient temperatures present in the
// catalog, ascending.
func DistinctAmbients(catalog []CatalogRow) []float64 {
	seen := make(map[float64]struct{})
	out := make([]float64, 0, 8)
	for _, r := range catalog {
		if _, ok := seen[r.AmbientF]; ok {
			continue
		}
		seen[r.AmbientF] = struct{}{}
		out = append(out, r.AmbientF)
	}
	sort.Float64s(out)
	return out
}

func band(target, tol float64) (lo, hi float64) {
	return target * (1 - tol), target * (1 + tol)
}

// filterAmbient keeps rows rated at exactly the requested ambient. Rows at
// other ambients describe different operating points and never mix.
func filterAmbient(catalog []CatalogRow, ambientF float64) []CatalogRow {
	var out []CatalogRow
	for _, r := range catalog {
		if r.AmbientF == ambientF {
			out = append(out, r)
		}
	}
	return out
}

// filterCapacity walks the tolerance ladder until a band contains rows.
// Returns the matching rows and the tolerance that produced them; an empty
// result reports the widest tolerance tried.
func filterCapacity(rows []CatalogRow, target float64) ([]CatalogRow, float64) {
	for _, tol := range toleranceLadder {
		lo, hi := band(target, tol)
		var out []CatalogRow
		for _, r := range rows {
			if r.CapacityTons >= lo && r.CapacityTons <= hi {
				out = append(out, r)
			}
		}
		if len(out) > 0 {
			return out, tol
		}
	}
	return nil, toleranceLadder[len(toleranceLadder)-1]
}

// rankMatches sorts in place by the selection keys: capacity delta from
// target, combined water-temperature deviation, efficiency (all ascending),
// then water flow descending with missing flow sorted last. The sort is
// stable so ties keep input order.
func rankMatches(rows []CatalogRow, q Query) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]

		ad := math.Abs(a.CapacityTons - q.TargetTons)
		bd := math.Abs(b.CapacityTons - q.TargetTons)
		if ad != bd {
			return ad < bd
		}

		at, bt := tempScore(a, q), tempScore(b, q)
		if at != bt {
			return at < bt
		}

		if a.Efficiency != b.Efficiency {
			return a.Efficiency < b.Efficiency
		}

		return flowOrZero(a) > flowOrZero(b)
	})
}

// tempScore is the combined absolute deviation of the row's water
// temperatures from the requested ones.
func tempScore(r CatalogRow, q Query) float64 {
	return math.Abs(r.EWTC-q.EWTC) + math.Abs(r.LWTC-q.LWTC)
}

func flowOrZero(r CatalogRow) float64 {
	if r.Waterflow == nil {
		return 0
	}
	return *r.Waterflow
}

// pickNeighbors returns the in-band rows closest in capacity to the target,
// one strictly above and one strictly below, chosen independently of full
// rank. The top-ranked row is excluded so alternates are always distinct
// from the best pick; capacity ties resolve to the earlier-ranked row.
func pickNeighbors(ranked []CatalogRow, target float64) (above, below *CatalogRow) {
	for i := 1; i < len(ranked); i++ {
		r := &ranked[i]
		switch {
		case r.CapacityTons > target:
			if above == nil || r.CapacityTons-target < above.CapacityTons-target {
				above = r
			}
		case r.CapacityTons < target:
			if below == nil || target-r.CapacityTons < target-below.CapacityTons {
				below = r
			}
		}
	}
	return above, below
}
