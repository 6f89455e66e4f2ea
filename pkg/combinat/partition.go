// Package combinat detects which of the 48 standard transformations of a
// twelve-tone row (12 levels x {P, R, I, RI}) are combinatorial with the
// reference row at hexachord, tetrachord, and trichord granularity.
package combinat

import (
	"fmt"

	"rowcore/pkg/row"
)

// PitchSet is an unordered set of pitch classes packed into a bitmask.
// Two sets are equal exactly when the values are equal.
type PitchSet uint16

// Add returns the set with p included.
func (s PitchSet) Add(p row.PitchClass) PitchSet {
	return s | 1<<uint(p)
}

// Contains reports whether p is a member of the set.
func (s PitchSet) Contains(p row.PitchClass) bool {
	return s&(1<<uint(p)) != 0
}

// Disjoint reports whether the two sets share no pitch class.
func (s PitchSet) Disjoint(o PitchSet) bool {
	return s&o == 0
}

// Segment selects the partition granularity of a combinatoriality scan.
type Segment int

// The three segment sizes that divide a twelve-tone row evenly into
// musically meaningful chunks.
const (
	Trichord   Segment = 3
	Tetrachord Segment = 4
	Hexachord  Segment = 6
)

func (s Segment) String() string {
	switch s {
	case Trichord:
		return "trichord"
	case Tetrachord:
		return "tetrachord"
	case Hexachord:
		return "hexachord"
	}
	return fmt.Sprintf("segment(%d)", int(s))
}

// Partition slices a row into consecutive, non-overlapping segments of the
// given size and discards order within each segment. Segment positions are
// retained: the first set covers positions [0,size), and so on.
func Partition(r row.Row, size Segment) []PitchSet {
	n := row.Classes / int(size)
	out := make([]PitchSet, n)
	for i := 0; i < n; i++ {
		var s PitchSet
		for j := 0; j < int(size); j++ {
			s = s.Add(r[i*int(size)+j])
		}
		out[i] = s
	}
	return out
}

// matchesAsMultiset reports whether candidate and reference hold exactly the
// same collection of sets, ignoring segment order. Reference segments are
// consumed front to back, each removing one equal candidate segment; the
// greedy removal is sound because matching is plain set equality, so equal
// reference segments simply claim distinct equal candidates.
func matchesAsMultiset(candidate, reference []PitchSet) bool {
	if len(candidate) != len(reference) {
		return false
	}
	remaining := make([]PitchSet, len(candidate))
	copy(remaining, candidate)
	for _, ref := range reference {
		found := false
		for i, c := range remaining {
			if c == ref {
				remaining[i] = remaining[len(remaining)-1]
				remaining = remaining[:len(remaining)-1]
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
