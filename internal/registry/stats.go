package registry

import (
	"sort"
	"strings"
)

const unknownMunicipality = "Não informado"

type NameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Overview aggregates the merged collection for the dashboard: total
// size, how many arrived through a referral, the most-cited referrer
// names and the busiest municipalities.
type Overview struct {
	Total             int         `json:"total"`
	Indicated         int         `json:"indicated"`
	TopIndicators     []NameCount `json:"topIndicators"`
	TopMunicipalities []NameCount `json:"topMunicipalities"`
}

func BuildOverview(records []Record) Overview {
	indicatorCounts := map[string]int{}
	indicatorNames := map[string]string{}
	municipalityCounts := map[string]int{}
	indicated := 0

	for _, r := range records {
		if r.HasIndicator() {
			indicated++
			key := normalizeIndicator(r.IndicatedBy)
			indicatorCounts[key]++
			if _, ok := indicatorNames[key]; !ok {
				indicatorNames[key] = strings.TrimSpace(r.IndicatedBy)
			}
		}

		municipality := strings.TrimSpace(r.MunicipalityName)
		if municipality == "" {
			municipality = unknownMunicipality
		}
		municipalityCounts[municipality]++
	}

	topIndicators := make([]NameCount, 0, len(indicatorCounts))
	for key, count := range indicatorCounts {
		topIndicators = append(topIndicators, NameCount{Name: indicatorNames[key], Count: count})
	}
	sortCounts(topIndicators)
	if len(topIndicators) > 4 {
		topIndicators = topIndicators[:4]
	}

	topMunicipalities := make([]NameCount, 0, len(municipalityCounts))
	for name, count := range municipalityCounts {
		topMunicipalities = append(topMunicipalities, NameCount{Name: name, Count: count})
	}
	sortCounts(topMunicipalities)
	if len(topMunicipalities) > 5 {
		topMunicipalities = topMunicipalities[:5]
	}

	return Overview{
		Total:             len(records),
		Indicated:         indicated,
		TopIndicators:     topIndicators,
		TopMunicipalities: topMunicipalities,
	}
}

func sortCounts(counts []NameCount) {
	sort.SliceStable(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Name < counts[j].Name
	})
}

func normalizeIndicator(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
