package core

// stats.go computes catalog statistics and the condition labels used to
// group rows imported under the same operating point.

import (
	"fmt"
	"sort"
	"strconv"
)

// ConditionLabel formats an operating condition the way catalogs file them,
// e.g. "95°F 12°C/7°C". Trailing zeros are dropped so 12.0 reads as 12.
func ConditionLabel(c Conditions) string {
	return fmt.Sprintf("%s°F %s°C/%s°C",
		formatTemp(c.AmbientF), formatTemp(c.EWTC), formatTemp(c.LWTC))
}

func formatTemp(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ComputeStats summarizes a catalog snapshot. Group lists are ordered by
// count descending, then name ascending, so output is stable for display.
func ComputeStats(catalog []CatalogRow) CatalogStats {
	stats := CatalogStats{TotalRows: len(catalog)}

	models := make(map[string]struct{})
	manufacturers := make(map[string]int)
	prefixes := make(map[string]int)
	conditions := make(map[string]int)
	ambients := make(map[float64]int)

	for _, r := range catalog {
		models[r.Model] = struct{}{}
		if r.Manufacturer != "" {
			manufacturers[r.Manufacturer]++
		}
		if p := ModelPrefix(r.Model); p != "" {
			prefixes[p]++
		}
		conditions[ConditionLabel(Conditions{AmbientF: r.AmbientF, EWTC: r.EWTC, LWTC: r.LWTC})]++
		ambients[r.AmbientF]++
	}

	stats.DistinctModels = len(models)
	stats.Manufacturers = sortedGroups(manufacturers)
	stats.ModelPrefixes = sortedGroups(prefixes)
	stats.Conditions = sortedGroups(conditions)

	for amb, n := range ambients {
		stats.Ambients = append(stats.Ambients, AmbientCount{AmbientF: amb, Count: n})
	}
	sort.Slice(stats.Ambients, func(i, j int) bool {
		return stats.Ambients[i].AmbientF < stats.Ambients[j].AmbientF
	})

	return stats
}

func sortedGroups(counts map[string]int) []GroupCount {
	if len(counts) == 0 {
		return nil
	}
	out := make([]GroupCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, GroupCount{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}
