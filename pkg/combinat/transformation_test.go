package combinat

import (
	"errors"
	"testing"

	"rowcore/pkg/row"
)

func TestTransformationString(t *testing.T) {
	cases := []struct {
		tf   Transformation
		want string
	}{
		{Transformation{KindPrime, 6}, "P6"},
		{Transformation{KindRetrograde, 0}, "R0"},
		{Transformation{KindInversion, 11}, "I11"},
		{Transformation{KindRetrogradeInversion, 5}, "RI5"},
	}
	for _, c := range cases {
		if got := c.tf.String(); got != c.want {
			t.Fatalf("%v.String() = %q, want %q", c.tf, got, c.want)
		}
	}
}

func TestParseRoundTrip(t *testing.T) {
	for _, kind := range Kinds {
		for level := 0; level < row.Classes; level++ {
			want := Transformation{Kind: kind, Level: level}
			got, err := Parse(want.String())
			if err != nil {
				t.Fatalf("parse %q: %v", want.String(), err)
			}
			if got != want {
				t.Fatalf("parse %q = %v, want %v", want.String(), got, want)
			}
		}
	}
}

func TestParseRejectsMalformedLabels(t *testing.T) {
	for _, label := range []string{"", "X3", "P", "RI", "P12", "P-1", "I 3", "3P", "P03"} {
		if _, err := Parse(label); !errors.Is(err, ErrBadLabel) {
			t.Fatalf("label %q: expected ErrBadLabel, got %v", label, err)
		}
	}
}

func TestApplyIdentityRowForms(t *testing.T) {
	tr, err := row.NewFromPitches([]int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11})
	if err != nil {
		t.Fatalf("construct: %v", err)
	}

	p6 := Transformation{KindPrime, 6}.Apply(tr)
	if p6 != mustTranspose(t, tr.Prime(), 6) {
		t.Fatalf("P6 must be the prime transposed by 6")
	}
	i11 := Transformation{KindInversion, 11}.Apply(tr)
	if i11 != mustTranspose(t, tr.Inversion(), 11) {
		t.Fatalf("I11 must be the inversion transposed by 11")
	}
	r0 := Transformation{KindRetrograde, 0}.Apply(tr)
	if r0 != tr.Retrograde() {
		t.Fatalf("R0 must be the retrograde itself")
	}
	ri5 := Transformation{KindRetrogradeInversion, 5}.Apply(tr)
	if ri5 != mustTranspose(t, tr.RetrogradeInversion(), 5) {
		t.Fatalf("RI5 must be the retrograde inversion transposed by 5")
	}
}

// TestDetectedLabelsRoundTrip checks that every label the detector emits
// parses back into a transformation whose applied form still satisfies the
// detection predicate against the reference row.
func TestDetectedLabelsRoundTrip(t *testing.T) {
	tr, err := row.NewFromPitches([]int{0, 11, 7, 8, 3, 1, 2, 10, 6, 5, 4, 9})
	if err != nil {
		t.Fatalf("construct: %v", err)
	}
	for _, size := range []Segment{Hexachord, Tetrachord, Trichord} {
		reference := Partition(tr.Prime(), size)
		for _, detected := range Detect(tr, size) {
			parsed, err := Parse(detected.String())
			if err != nil {
				t.Fatalf("%s: parse %q: %v", size, detected, err)
			}
			if parsed != detected {
				t.Fatalf("%s: round trip changed %v into %v", size, detected, parsed)
			}
			form := parsed.Apply(tr)
			segments := Partition(form, size)
			if size == Hexachord {
				if !segments[0].Disjoint(reference[0]) {
					t.Fatalf("%s: applied %q lost first-hexachord disjointness", size, detected)
				}
			} else if !matchesAsMultiset(segments, reference) {
				t.Fatalf("%s: applied %q lost the segment multiset match", size, detected)
			}
		}
	}
}

func mustTranspose(t *testing.T, r row.Row, interval int) row.Row {
	t.Helper()
	out, err := row.Transpose(r, interval)
	if err != nil {
		t.Fatalf("transpose: %v", err)
	}
	return out
}
