// Package analysis assembles per-row combinatoriality results into the
// records consumed by the persistence and export layers.
package analysis

import (
	"sort"
	"strings"

	"rowcore/pkg/combinat"
	"rowcore/pkg/row"
)

// Record is one fully analyzed tone row: the prime row rendered as
// space-separated pitch classes plus the lexically sorted label strings for
// the three partition granularities.
type Record struct {
	PrimeRow     string `json:"prime_row"`
	Hexachordal  string `json:"hexachordal_combinatorials"`
	Tetrachordal string `json:"tetrachordal_combinatorials"`
	Trichordal   string `json:"trichordal_combinatorials"`
}

// Analyze runs the detector at all three granularities and assembles the
// record for the tone row.
func Analyze(tr *row.ToneRow) Record {
	return Record{
		PrimeRow:     tr.Prime().String(),
		Hexachordal:  labelString(combinat.Detect(tr, combinat.Hexachord)),
		Tetrachordal: labelString(combinat.Detect(tr, combinat.Tetrachord)),
		Trichordal:   labelString(combinat.Detect(tr, combinat.Trichord)),
	}
}

// labelString renders labels space-separated in lexical order, the ordering
// the storage schema commits to.
func labelString(ts []combinat.Transformation) string {
	labels := make([]string, len(ts))
	for i, t := range ts {
		labels[i] = t.String()
	}
	sort.Strings(labels)
	return strings.Join(labels, " ")
}
