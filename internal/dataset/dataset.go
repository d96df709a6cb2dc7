// Package dataset persists slicing records as a single-sheet spreadsheet.
//
// Every update is a full read-modify-write of the workbook: the existing
// rows are loaded (an unreadable or missing file counts as empty), the new
// record is appended, and the whole workbook is written back. The write is
// not atomic; an interrupted save can leave a truncated file that the next
// load silently treats as empty.
//
// Writers are not coordinated. Two processes appending at the same time can
// lose one of the rows.
package dataset

import (
	"slices"

	"github.com/hupe1980/slicelog/internal/record"
)

// DefaultSheet is the sheet name used for newly created workbooks.
const DefaultSheet = "Sheet1"

// Dataset is an ordered set of rows sharing one header.
type Dataset struct {
	// Sheet is the worksheet the rows were read from and will be written to.
	Sheet string
	// Columns is the header row.
	Columns []string
	// Rows holds the data rows, each padded to len(Columns).
	Rows [][]string
}

// Empty returns a dataset with the record schema and no rows.
func Empty() *Dataset {
	return &Dataset{
		Sheet:   DefaultSheet,
		Columns: record.Columns(),
	}
}

// Len returns the number of data rows.
func (d *Dataset) Len() int {
	return len(d.Rows)
}

// Append adds r as the last row. Record columns missing from the header are
// appended to it; columns the record does not know about are left empty.
func (d *Dataset) Append(r record.Record) {
	for _, col := range record.Columns() {
		if !slices.Contains(d.Columns, col) {
			d.Columns = append(d.Columns, col)
		}
	}

	for i := range d.Rows {
		d.Rows[i] = pad(d.Rows[i], len(d.Columns))
	}

	row := make([]string, len(d.Columns))
	filled := make(map[string]bool, 4)

	for i, col := range d.Columns {
		if filled[col] {
			continue
		}

		if v, ok := r.Get(col); ok {
			row[i] = v
			filled[col] = true
		}
	}

	d.Rows = append(d.Rows, row)
}

// Records maps every row back onto record fields by column name.
func (d *Dataset) Records() []record.Record {
	idx := make(map[string]int, len(d.Columns))
	for i := len(d.Columns) - 1; i >= 0; i-- {
		idx[d.Columns[i]] = i
	}

	cell := func(row []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(row) {
			return ""
		}

		return row[i]
	}

	out := make([]record.Record, 0, len(d.Rows))
	for _, row := range d.Rows {
		out = append(out, record.Record{
			FileName:      cell(row, record.ColumnFileName),
			FilamentColor: cell(row, record.ColumnFilamentColor),
			FilamentMM:    cell(row, record.ColumnFilamentMM),
			PrintTime:     cell(row, record.ColumnPrintTime),
		})
	}

	return out
}

func pad(row []string, n int) []string {
	if len(row) >= n {
		return row
	}

	out := make([]string, n)
	copy(out, row)

	return out
}
