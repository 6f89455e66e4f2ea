package combinat

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"rowcore/pkg/row"
)

// Kind identifies one of the four standard row operations.
type Kind string

// The four operation kinds, in the order the detector scans them.
const (
	KindPrime               Kind = "P"
	KindRetrograde          Kind = "R"
	KindInversion           Kind = "I"
	KindRetrogradeInversion Kind = "RI"
)

// Kinds lists the operation kinds in canonical scan order.
var Kinds = []Kind{KindPrime, KindRetrograde, KindInversion, KindRetrogradeInversion}

// Transformation is a tagged transformation label: an operation kind plus
// the transposition level (0-11) that places the form's defining reference
// note that many semitones above the corresponding reference-row note.
type Transformation struct {
	Kind  Kind
	Level int
}

// String renders the canonical label, e.g. "P6", "RI11". Levels carry no
// leading zero and no separator.
func (t Transformation) String() string {
	return string(t.Kind) + strconv.Itoa(t.Level)
}

// ErrBadLabel reports a transformation label that cannot be parsed.
var ErrBadLabel = errors.New("malformed transformation label")

// Parse decodes a label produced by String back into its kind and level.
func Parse(label string) (Transformation, error) {
	kind := KindPrime
	switch {
	case strings.HasPrefix(label, string(KindRetrogradeInversion)):
		kind = KindRetrogradeInversion
	case strings.HasPrefix(label, string(KindRetrograde)):
		kind = KindRetrograde
	case strings.HasPrefix(label, string(KindInversion)):
		kind = KindInversion
	case strings.HasPrefix(label, string(KindPrime)):
		kind = KindPrime
	default:
		return Transformation{}, fmt.Errorf("%w: %q", ErrBadLabel, label)
	}
	digits := label[len(kind):]
	if len(digits) > 1 && digits[0] == '0' {
		return Transformation{}, fmt.Errorf("%w: %q", ErrBadLabel, label)
	}
	level, err := strconv.Atoi(digits)
	if err != nil || level < 0 || level >= row.Classes {
		return Transformation{}, fmt.Errorf("%w: %q", ErrBadLabel, label)
	}
	return Transformation{Kind: kind, Level: level}, nil
}

// Apply realizes the labeled form of the given tone row: the base form for
// the kind (P0 or I0, reversed for R and RI) transposed by the level.
func (t Transformation) Apply(tr *row.ToneRow) row.Row {
	var base row.Row
	switch t.Kind {
	case KindPrime:
		base = tr.Prime()
	case KindRetrograde:
		base = tr.Retrograde()
	case KindInversion:
		base = tr.Inversion()
	case KindRetrogradeInversion:
		base = tr.RetrogradeInversion()
	}
	var out row.Row
	for i, p := range base {
		out[i] = p.Add(t.Level)
	}
	return out
}
