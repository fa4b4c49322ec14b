// Package fetcher downloads and parses data from the HTTP, CSV, and ZIP
// sources feeding the atlas pipeline.
package fetcher

import (
	"context"
	"encoding/csv"
	"io"
	"strings"

	"github.com/rotisserie/eris"
)

// CSVOptions configures the CSV row reader.
type CSVOptions struct {
	Delimiter  rune // default ','
	Comment    rune // comment character (0 = none)
	LazyQuotes bool
	TrimSpace  bool
}

// ErrStop may be returned from a ForEachRow callback to stop iteration
// without reporting an error.
var ErrStop = eris.New("csv: stop iteration")

// ForEachRow reads a CSV stream and invokes fn once per data row.
// The first row is treated as the header and passed to every invocation.
// Rows may have variable field counts; fn receives them as-is.
func ForEachRow(ctx context.Context, r io.Reader, opts CSVOptions, fn func(header, record []string) error) error {
	reader := csv.NewReader(r)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	if opts.Comment != 0 {
		reader.Comment = opts.Comment
	}
	reader.LazyQuotes = opts.LazyQuotes
	reader.FieldsPerRecord = -1 // allow variable fields

	var header []string
	for {
		if err := ctx.Err(); err != nil {
			return eris.Wrap(err, "csv: context cancelled")
		}

		record, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return eris.Wrap(err, "csv: read row")
		}

		if opts.TrimSpace {
			for i, field := range record {
				record[i] = strings.TrimSpace(field)
			}
		}

		if header == nil {
			header = record
			continue
		}

		if err := fn(header, record); err != nil {
			if eris.Is(err, ErrStop) {
				return nil
			}
			return err
		}
	}
}

// HeaderIndex builds a case-insensitive column name to index map.
func HeaderIndex(header []string) map[string]int {
	m := make(map[string]int, len(header))
	for i, col := range header {
		m[strings.ToLower(strings.TrimSpace(col))] = i
	}
	return m
}

// Column gets a column value by name from a CSV record, returning
// the empty string if the column is absent or the record is short.
func Column(record []string, idx map[string]int, name string) string {
	i, ok := idx[strings.ToLower(name)]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}
