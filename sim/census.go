package sim

import (
	"fmt"
	"io"
	"sort"
)

// PatientsByZipArea counts patients per zip area (zip code without its letters).
func PatientsByZipArea(patients []*Patient) map[string]int {
	counts := make(map[string]int)
	for _, p := range patients {
		counts[p.ZipArea()]++
	}
	return counts
}

// ZipAreasWithHighestSymptomShare finds, for every symptom, the zip area in which
// the largest share of registered patients reported it.
// Ties go to the lexicographically smallest area; symptoms nobody reported are omitted.
func ZipAreasWithHighestSymptomShare(patients []*Patient) map[Symptom]string {
	perArea := PatientsByZipArea(patients)
	withSymptom := make(map[Symptom]map[string]int)
	for _, p := range patients {
		for _, s := range Symptoms() {
			if !p.HasSymptom(s) {
				continue
			}
			if withSymptom[s] == nil {
				withSymptom[s] = make(map[string]int)
			}
			withSymptom[s][p.ZipArea()]++
		}
	}

	result := make(map[Symptom]string, len(withSymptom))
	for s, areas := range withSymptom {
		bestArea, bestShare := "", -1.0
		for _, area := range sortedKeys(areas) {
			share := float64(areas[area]) / float64(perArea[area])
			if share > bestShare {
				bestArea, bestShare = area, share
			}
		}
		result[s] = bestArea
	}
	return result
}

// PrintCensus displays patient counts per zip area and the area most affected by each symptom.
func PrintCensus(w io.Writer, patients []*Patient) {
	counts := PatientsByZipArea(patients)
	fmt.Fprintln(w, "Patient counts by zip area:")
	for _, area := range sortedKeys(counts) {
		fmt.Fprintf(w, "  %s: %d\n", area, counts[area])
	}

	fmt.Fprintln(w, "Zip area with highest patient percentage per complaint:")
	highest := ZipAreasWithHighestSymptomShare(patients)
	for _, s := range Symptoms() {
		if area, ok := highest[s]; ok {
			fmt.Fprintf(w, "  %s: %s\n", s, area)
		}
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
