// Package record defines the row written to the slicing dataset for every
// processed print file.
package record

import (
	"fmt"
	"strings"
)

// NotAvailable is stored in place of a field the slicer output did not contain.
const NotAvailable = "N/A"

// Column headers of the persisted dataset, in order.
const (
	ColumnFileName      = "File Name"
	ColumnFilamentColor = "Filament Color"
	ColumnFilamentMM    = "Filament Amount (mm)"
	ColumnPrintTime     = "Estimated Print Time"
)

// Columns returns the fixed column schema of the dataset.
func Columns() []string {
	return []string{ColumnFileName, ColumnFilamentColor, ColumnFilamentMM, ColumnPrintTime}
}

// Record is one row of slicing metadata. All values are kept as the text
// produced by the slicer.
type Record struct {
	FileName      string `json:"fileName" yaml:"fileName"`
	FilamentColor string `json:"filamentColor" yaml:"filamentColor"`
	FilamentMM    string `json:"filamentAmountMM" yaml:"filamentAmountMM"`
	PrintTime     string `json:"estimatedPrintTime" yaml:"estimatedPrintTime"`
}

// New returns a record for fileName with every data field set to NotAvailable.
func New(fileName string) Record {
	return Record{
		FileName:      fileName,
		FilamentColor: NotAvailable,
		FilamentMM:    NotAvailable,
		PrintTime:     NotAvailable,
	}
}

// Values returns the record's cells in Columns order.
func (r Record) Values() []string {
	return []string{r.FileName, r.FilamentColor, r.FilamentMM, r.PrintTime}
}

// Get returns the value stored under the given column header.
func (r Record) Get(column string) (string, bool) {
	switch column {
	case ColumnFileName:
		return r.FileName, true
	case ColumnFilamentColor:
		return r.FilamentColor, true
	case ColumnFilamentMM:
		return r.FilamentMM, true
	case ColumnPrintTime:
		return r.PrintTime, true
	default:
		return "", false
	}
}

// String renders the record as a header-keyed map literal, for status lines.
func (r Record) String() string {
	cols := Columns()
	vals := r.Values()

	parts := make([]string, len(cols))
	for i := range cols {
		parts[i] = fmt.Sprintf("%q: %q", cols[i], vals[i])
	}

	return "{" + strings.Join(parts, ", ") + "}"
}
