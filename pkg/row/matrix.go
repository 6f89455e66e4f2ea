package row

// Matrix is the 12x12 transformation table derived from a prime row. Row 0
// is the prime row itself and column 0 is its inversion; every row is a
// transposition of the prime and every column a transposition of the
// inversion. Matrix is a value type, so accessors hand out copies and the
// cached table inside ToneRow stays immutable.
type Matrix [Classes][Classes]PitchClass

// ToneRow is a validated twelve-tone row together with its cached
// transformation matrix. Construct with New or NewFromPitches; the value is
// read-only afterwards.
type ToneRow struct {
	matrix Matrix
}

// New validates r and builds its transformation matrix.
func New(r Row) (*ToneRow, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &ToneRow{matrix: buildMatrix(r)}, nil
}

// NewFromPitches validates a raw integer sequence and builds the tone row.
func NewFromPitches(pitches []int) (*ToneRow, error) {
	r, err := FromPitches(pitches)
	if err != nil {
		return nil, err
	}
	return &ToneRow{matrix: buildMatrix(r)}, nil
}

// buildMatrix derives the standard twelve-tone matrix. Row 0 carries the
// prime row verbatim; row i is the prime transposed so that its first note
// equals the i-th note of the prime's inversion. That alignment makes
// column 0 the inversion read top to bottom.
func buildMatrix(prime Row) Matrix {
	var m Matrix
	m[0] = prime
	inversion := prime.Inverted()
	for i := 1; i < Classes; i++ {
		interval := int(inversion[i]) - int(inversion[0])
		for j := 0; j < Classes; j++ {
			m[i][j] = prime[j].Add(interval)
		}
	}
	return m
}

// Prime returns P0, the reference ordering (matrix row 0).
func (t *ToneRow) Prime() Row {
	return t.matrix[0]
}

// Inversion returns I0, the prime inversion (matrix column 0).
func (t *ToneRow) Inversion() Row {
	return t.MatrixColumn(0)
}

// Retrograde returns R0, the prime row read backwards.
func (t *ToneRow) Retrograde() Row {
	return Row(t.matrix[0]).Reversed()
}

// RetrogradeInversion returns RI0, the inversion read backwards.
func (t *ToneRow) RetrogradeInversion() Row {
	return t.MatrixColumn(0).Reversed()
}

// Matrix returns a copy of the full transformation table.
func (t *ToneRow) Matrix() Matrix {
	return t.matrix
}

// MatrixRow returns matrix row i, the prime form whose transposition level
// is determined by the inversion's i-th note. i must be in [0,11].
func (t *ToneRow) MatrixRow(i int) Row {
	return t.matrix[i]
}

// MatrixColumn returns matrix column j read top to bottom, an inversion
// form. j must be in [0,11].
func (t *ToneRow) MatrixColumn(j int) Row {
	var out Row
	for i := 0; i < Classes; i++ {
		out[i] = t.matrix[i][j]
	}
	return out
}
