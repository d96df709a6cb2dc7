package dataset

import (
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Read loads the first worksheet of the workbook at path. Row 1 is the
// header; an empty sheet yields the record schema with no rows.
func Read(path string) (*Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}

	sheet := sheets[0]

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}

	ds := Empty()
	ds.Sheet = sheet

	if len(rows) == 0 {
		return ds, nil
	}

	ds.Columns = rows[0]
	for _, row := range rows[1:] {
		ds.Rows = append(ds.Rows, pad(row, len(ds.Columns)))
	}

	return ds, nil
}

// Write serializes ds to a new workbook at path, replacing any existing file.
func Write(path string, ds *Dataset) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := ds.Sheet
	if sheet == "" {
		sheet = DefaultSheet
	}

	if sheet != DefaultSheet {
		if err := f.SetSheetName(DefaultSheet, sheet); err != nil {
			return fmt.Errorf("naming sheet %q: %w", sheet, err)
		}
	}

	if err := writeRow(f, sheet, 1, ds.Columns); err != nil {
		return err
	}

	for i, row := range ds.Rows {
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook %s: %w", path, err)
	}

	return nil
}

func writeRow(f *excelize.File, sheet string, rowNum int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}

	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}

	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("writing row %d: %w", rowNum, err)
	}

	return nil
}
