package analysis

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"rowcore/internal/blob"
)

// csvHeader matches the relational column layout.
var csvHeader = []string{
	"prime_row",
	"hexachordal_combinatorials",
	"tetrachordal_combinatorials",
	"trichordal_combinatorials",
}

// WriteCSV renders records as CSV with a header row.
func WriteCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, rec := range records {
		fields := []string{rec.PrimeRow, rec.Hexachordal, rec.Tetrachordal, rec.Trichordal}
		if err := cw.Write(fields); err != nil {
			return fmt.Errorf("write record %q: %w", rec.PrimeRow, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportCSV renders the records and stores them as a single blob under key.
func ExportCSV(ctx context.Context, store blob.Store, key string, records []Record) (blob.Info, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, records); err != nil {
		return blob.Info{}, err
	}
	return store.Put(ctx, key, &buf, blob.PutOptions{ContentType: "text/csv"})
}
