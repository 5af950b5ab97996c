package report

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// ExportXLSX renders the same report as ExportCSV into a workbook with
// one sheet per section. Money and count columns are written as numbers.
func ExportXLSX(in ExportInput) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sections := buildSections(in)
	for i, s := range sections {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), s.sheet); err != nil {
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(s.sheet); err != nil {
			return nil, fmt.Errorf("create sheet %s: %w", s.sheet, err)
		}

		row := 1
		if len(s.header) > 0 {
			if err := setRow(f, s.sheet, row, toCells(s.header, nil)); err != nil {
				return nil, err
			}
			row++
		}
		for _, r := range s.rows {
			if err := setRow(f, s.sheet, row, toCells(r, s.numeric)); err != nil {
				return nil, err
			}
			row++
		}
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, sheet string, row int, cells []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func toCells(values []string, numeric []int) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	for _, col := range numeric {
		if col >= len(values) {
			continue
		}
		if n, err := strconv.ParseFloat(values[col], 64); err == nil {
			cells[col] = n
		}
	}
	return cells
}
