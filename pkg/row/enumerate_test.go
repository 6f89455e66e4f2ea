package row

import "testing"

func TestEnumeratorFirstRows(t *testing.T) {
	e := NewEnumerator()
	first, ok := e.Next()
	if !ok {
		t.Fatalf("expected first row")
	}
	if got := first.String(); got != "0 1 2 3 4 5 6 7 8 9 10 11" {
		t.Fatalf("first row %q, want identity", got)
	}
	second, ok := e.Next()
	if !ok {
		t.Fatalf("expected second row")
	}
	if got := second.String(); got != "0 1 2 3 4 5 6 7 8 9 11 10" {
		t.Fatalf("second row %q, want lexicographic successor", got)
	}
}

func TestEnumeratorYieldsValidDistinctRows(t *testing.T) {
	const sample = 5040 // 7! — full cycle of the trailing seven positions
	e := NewEnumerator()
	seen := make(map[Row]struct{}, sample)
	for i := 0; i < sample; i++ {
		r, ok := e.Next()
		if !ok {
			t.Fatalf("sequence ended early at %d", i)
		}
		if r[0] != 0 {
			t.Fatalf("row %d does not start on pitch class 0: %s", i, r)
		}
		if err := r.Validate(); err != nil {
			t.Fatalf("row %d invalid: %v", i, err)
		}
		if _, dup := seen[r]; dup {
			t.Fatalf("row %d duplicated: %s", i, r)
		}
		seen[r] = struct{}{}
	}
}

func TestEnumeratorRestarts(t *testing.T) {
	a, _ := NewEnumerator().Next()
	b, _ := NewEnumerator().Next()
	if a != b {
		t.Fatalf("fresh enumerators must restart at the identity row")
	}
}

func TestEnumeratorTotalCount(t *testing.T) {
	if testing.Short() {
		t.Skip("full 11! enumeration skipped in short mode")
	}
	e := NewEnumerator()
	var count int64
	var last Row
	for {
		r, ok := e.Next()
		if !ok {
			break
		}
		last = r
		count++
	}
	if count != TotalRows {
		t.Fatalf("enumerated %d rows, want %d", count, TotalRows)
	}
	if got := last.String(); got != "0 11 10 9 8 7 6 5 4 3 2 1" {
		t.Fatalf("final row %q, want fully descending tail", got)
	}
	if _, ok := e.Next(); ok {
		t.Fatalf("exhausted enumerator must keep returning false")
	}
}
