package row

import "testing"

// webernPitches is the row of Webern's Symphony op. 21, a convenient
// non-trivial fixture.
func webernPitches() []int {
	return []int{0, 11, 7, 8, 3, 1, 2, 10, 6, 5, 4, 9}
}

func TestMatrixRowZeroIsPrime(t *testing.T) {
	tr, err := NewFromPitches(webernPitches())
	if err != nil {
		t.Fatalf("construct: %v", err)
	}
	prime := tr.Prime()
	for i, want := range webernPitches() {
		if prime[i] != PitchClass(want) {
			t.Fatalf("prime[%d] = %d, want %d", i, prime[i], want)
		}
	}
}

func TestMatrixColumnZeroIsInversion(t *testing.T) {
	tr, _ := NewFromPitches(webernPitches())
	col := tr.MatrixColumn(0)
	inv := tr.Prime().Inverted()
	if col != inv {
		t.Fatalf("column 0 %v != inversion %v", col, inv)
	}
	if tr.Inversion() != col {
		t.Fatalf("Inversion() disagrees with column 0")
	}
}

func TestMatrixRowsAndColumnsArePermutations(t *testing.T) {
	tr, _ := NewFromPitches(webernPitches())
	for i := 0; i < Classes; i++ {
		if err := tr.MatrixRow(i).Validate(); err != nil {
			t.Fatalf("matrix row %d invalid: %v", i, err)
		}
		if err := tr.MatrixColumn(i).Validate(); err != nil {
			t.Fatalf("matrix column %d invalid: %v", i, err)
		}
	}
}

func TestDerivedForms(t *testing.T) {
	tr, _ := NewFromPitches(webernPitches())
	if tr.Retrograde() != tr.Prime().Reversed() {
		t.Fatalf("retrograde is not the reversed prime")
	}
	if tr.RetrogradeInversion() != tr.Inversion().Reversed() {
		t.Fatalf("retrograde inversion is not the reversed inversion")
	}
	if tr.Prime()[0] != tr.Inversion()[0] {
		t.Fatalf("prime and inversion must share their first note")
	}
}

func TestMatrixIsACopy(t *testing.T) {
	tr, _ := NewFromPitches(webernPitches())
	m := tr.Matrix()
	m[0][0] = 5
	if tr.Prime()[0] == 5 {
		t.Fatalf("mutating the returned matrix must not affect the tone row")
	}
}

func TestMatrixRowAlignment(t *testing.T) {
	tr, _ := NewFromPitches(webernPitches())
	inv := tr.Inversion()
	for i := 0; i < Classes; i++ {
		if got := tr.MatrixRow(i)[0]; got != inv[i] {
			t.Fatalf("row %d must start on inversion note %d, got %d", i, inv[i], got)
		}
	}
}

func TestNewRejectsInvalidRow(t *testing.T) {
	var r Row
	if _, err := New(r); err == nil {
		t.Fatalf("expected construction failure for duplicate row")
	}
}
