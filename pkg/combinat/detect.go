package combinat

import "rowcore/pkg/row"

// Detect scans all 48 transformation forms of the tone row and reports the
// ones combinatorial with the reference row at the given granularity.
// Labels are emitted in scan order: P forms over matrix rows 0..11, then R
// (reversed rows), I (columns), and RI (reversed columns).
//
// The two historical asymmetries of the analysis are preserved on purpose:
//
//   - Hexachords use the classical complementation test (the candidate's
//     first hexachord must be disjoint from the reference's first
//     hexachord), while tetrachords and trichords demand that the candidate
//     re-partitions into exactly the reference's collection of segments.
//   - Level 0 is excluded for every kind at hexachord granularity and for P
//     and R at the smaller granularities, but I0 and RI0 remain eligible
//     for tetrachords and trichords.
func Detect(tr *row.ToneRow, size Segment) []Transformation {
	var out []Transformation
	for _, kind := range Kinds {
		out = append(out, detectKind(tr, size, kind)...)
	}
	return out
}

// DetectKind restricts the scan to the 12 forms of a single operation kind.
func DetectKind(tr *row.ToneRow, size Segment, kind Kind) []Transformation {
	return detectKind(tr, size, kind)
}

func detectKind(tr *row.ToneRow, size Segment, kind Kind) []Transformation {
	reference := Partition(tr.Prime(), size)
	refFirstNote := referenceForm(tr, kind)[0]
	excludeIdentity := size == Hexachord || kind == KindPrime || kind == KindRetrograde

	var out []Transformation
	for idx := 0; idx < row.Classes; idx++ {
		form := candidateForm(tr, kind, idx)
		segments := Partition(form, size)
		if size == Hexachord {
			if !segments[0].Disjoint(reference[0]) {
				continue
			}
		} else if !matchesAsMultiset(segments, reference) {
			continue
		}
		level := int(row.Norm(int(form[0]) - int(refFirstNote)))
		if level == 0 && excludeIdentity {
			continue
		}
		out = append(out, Transformation{Kind: kind, Level: level})
	}
	return out
}

// candidateForm materializes the idx-th form of the operation kind: matrix
// rows for P, reversed rows for R, columns for I, reversed columns for RI.
func candidateForm(tr *row.ToneRow, kind Kind, idx int) row.Row {
	switch kind {
	case KindRetrograde:
		return tr.MatrixRow(idx).Reversed()
	case KindInversion:
		return tr.MatrixColumn(idx)
	case KindRetrogradeInversion:
		return tr.MatrixColumn(idx).Reversed()
	default:
		return tr.MatrixRow(idx)
	}
}

// referenceForm is the level-0 form the candidate's level is measured from.
func referenceForm(tr *row.ToneRow, kind Kind) row.Row {
	switch kind {
	case KindRetrograde:
		return tr.Retrograde()
	case KindInversion:
		return tr.Inversion()
	case KindRetrogradeInversion:
		return tr.RetrogradeInversion()
	default:
		return tr.Prime()
	}
}
