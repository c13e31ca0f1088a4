package importer

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jask/tally/internal/ledger"
)

// Table is a fully tokenized CSV file.
type Table struct {
	Headers []string
	Rows    []ledger.RawRow
	Lines   []int // 1-based file line each row starts on
}

// line reports where row i starts, assuming one line per record when the
// table was built without positions.
func (t Table) line(i int) int {
	if i < len(t.Lines) {
		return t.Lines[i]
	}
	return i + 2
}

// Tokenize reads the whole file. A row shorter than the header simply lacks
// map entries for the trailing headers.
func Tokenize(ctx context.Context, r io.Reader) (Table, error) {
	csvr := csv.NewReader(bufio.NewReader(r))
	csvr.FieldsPerRecord = -1
	csvr.LazyQuotes = true

	headers, err := csvr.Read()
	if errors.Is(err, io.EOF) {
		return Table{}, ErrNoData
	}
	if err != nil {
		return Table{}, fmt.Errorf("read csv header: %w", err)
	}
	for i, h := range headers {
		headers[i] = strings.TrimPrefix(h, "\ufeff")
	}

	var (
		rows  []ledger.RawRow
		lines []int
	)
	for {
		if err := ctx.Err(); err != nil {
			return Table{}, err
		}
		rec, err := csvr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Table{}, fmt.Errorf("read csv: %w", err)
		}
		row := make(ledger.RawRow, len(headers))
		for i, h := range headers {
			if i < len(rec) {
				row[h] = rec[i]
			}
		}
		line, _ := csvr.FieldPos(0)
		rows = append(rows, row)
		lines = append(lines, line)
	}
	if len(rows) == 0 {
		return Table{}, ErrNoData
	}
	return Table{Headers: headers, Rows: rows, Lines: lines}, nil
}
