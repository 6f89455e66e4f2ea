// Package row defines the twelve-tone pitch-class model: validated tone
// rows, the derived 12x12 transformation matrix, transposition, and the
// exhaustive enumerator over rows beginning on pitch class 0.
package row

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Classes is the number of equal-tempered pitch classes.
const Classes = 12

// PitchClass is one of the twelve pitch classes, always in [0,11].
type PitchClass int

// Norm reduces an arbitrary integer to its non-negative mod-12 residue.
func Norm(v int) PitchClass {
	return PitchClass(((v % Classes) + Classes) % Classes)
}

// Invert returns the pitch-class inversion (12 - p) mod 12.
func (p PitchClass) Invert() PitchClass {
	return Norm(-int(p))
}

// Add transposes the pitch class upward by interval semitones mod 12.
func (p PitchClass) Add(interval int) PitchClass {
	return Norm(int(p) + interval)
}

// Row is an ordered sequence of twelve pitch classes. A Row is only a
// valid tone row when it contains each pitch class exactly once; use
// Validate or construct through FromPitches to enforce that.
type Row [Classes]PitchClass

// Sentinel errors surfaced by row construction and transposition.
var (
	// ErrInvalidRow reports a sequence that is not a permutation of the
	// twelve pitch classes.
	ErrInvalidRow = errors.New("invalid tone row")
	// ErrIntervalRange reports a transposition interval outside [-11,11].
	ErrIntervalRange = errors.New("transposition interval out of range")
)

// FromPitches converts a raw integer sequence into a validated Row.
func FromPitches(pitches []int) (Row, error) {
	if len(pitches) != Classes {
		return Row{}, fmt.Errorf("%w: expected %d pitch classes, got %d", ErrInvalidRow, Classes, len(pitches))
	}
	var r Row
	for i, p := range pitches {
		if p < 0 || p >= Classes {
			return Row{}, fmt.Errorf("%w: pitch class %d at position %d outside [0,11]", ErrInvalidRow, p, i)
		}
		r[i] = PitchClass(p)
	}
	if err := r.Validate(); err != nil {
		return Row{}, err
	}
	return r, nil
}

// Validate checks the aggregate invariant: every pitch class 0..11 occurs
// exactly once.
func (r Row) Validate() error {
	var seen uint16
	for i, p := range r {
		if p < 0 || p >= Classes {
			return fmt.Errorf("%w: pitch class %d at position %d outside [0,11]", ErrInvalidRow, p, i)
		}
		bit := uint16(1) << uint(p)
		if seen&bit != 0 {
			return fmt.Errorf("%w: duplicate pitch class %d at position %d", ErrInvalidRow, p, i)
		}
		seen |= bit
	}
	return nil
}

// Reversed returns the row read back to front.
func (r Row) Reversed() Row {
	var out Row
	for i, p := range r {
		out[Classes-1-i] = p
	}
	return out
}

// Inverted returns the element-wise pitch-class inversion of the row.
func (r Row) Inverted() Row {
	var out Row
	for i, p := range r {
		out[i] = p.Invert()
	}
	return out
}

// String renders the row as space-separated pitch classes, e.g.
// "0 1 2 3 4 5 6 7 8 9 10 11".
func (r Row) String() string {
	var b strings.Builder
	for i, p := range r {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.Itoa(int(p)))
	}
	return b.String()
}

// Transpose shifts every pitch class of a valid row upward by interval
// semitones mod 12. The interval must lie in [-11,11]; +-12 and beyond are
// rejected with ErrIntervalRange even though they would be harmless mod 12.
func Transpose(r Row, interval int) (Row, error) {
	if err := r.Validate(); err != nil {
		return Row{}, err
	}
	if interval < -(Classes-1) || interval > Classes-1 {
		return Row{}, fmt.Errorf("%w: %d not in [-11,11]", ErrIntervalRange, interval)
	}
	var out Row
	for i, p := range r {
		out[i] = p.Add(interval)
	}
	return out, nil
}
