package row

// TotalRows is the number of distinct tone rows beginning on pitch class 0:
// 11! permutations of the remaining eleven pitch classes.
const TotalRows = 39916800

// Enumerator lazily produces every valid tone row whose first note is pitch
// class 0, in lexicographic order of the trailing eleven positions. The
// first row yielded is the identity row 0 1 2 ... 11. State is a single
// permutation, so memory stays O(1) per step; restart by constructing a new
// Enumerator.
type Enumerator struct {
	tail    [Classes - 1]PitchClass
	started bool
	done    bool
}

// NewEnumerator positions the sequence at the identity row.
func NewEnumerator() *Enumerator {
	e := &Enumerator{}
	for i := range e.tail {
		e.tail[i] = PitchClass(i + 1)
	}
	return e
}

// Next yields the next row in the sequence, or false once all 11! rows have
// been produced. Every yielded row is valid by construction.
func (e *Enumerator) Next() (Row, bool) {
	if e.done {
		return Row{}, false
	}
	if !e.started {
		e.started = true
		return e.current(), true
	}
	if !nextPermutation(&e.tail) {
		e.done = true
		return Row{}, false
	}
	return e.current(), true
}

func (e *Enumerator) current() Row {
	var r Row
	copy(r[1:], e.tail[:])
	return r
}

// nextPermutation advances p to its lexicographic successor in place,
// returning false when p is already the final (descending) permutation.
func nextPermutation(p *[Classes - 1]PitchClass) bool {
	i := len(p) - 2
	for i >= 0 && p[i] >= p[i+1] {
		i--
	}
	if i < 0 {
		return false
	}
	j := len(p) - 1
	for p[j] <= p[i] {
		j--
	}
	p[i], p[j] = p[j], p[i]
	for l, r := i+1, len(p)-1; l < r; l, r = l+1, r-1 {
		p[l], p[r] = p[r], p[l]
	}
	return true
}
