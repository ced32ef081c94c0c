package core

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// XLSXSheetName is the name of the single worksheet written by WriteXLSX.
const XLSXSheetName = "Teams"

// WriteXLSX writes the header and rows as a single-sheet workbook.
// Cells hold the same sanitized text as the TSV payload.
func WriteXLSX(w io.Writer, header []string, rows []FlatRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", XLSXSheetName); err != nil {
		return fmt.Errorf("xlsx: rename sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(XLSXSheetName)
	if err != nil {
		return fmt.Errorf("xlsx: stream writer: %w", err)
	}

	if err := writeXLSXRow(sw, 1, header); err != nil {
		return err
	}
	for i, row := range rows {
		if err := writeXLSXRow(sw, i+2, sanitizeRow(row)); err != nil {
			return err
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("xlsx: flush: %w", err)
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx: write: %w", err)
	}
	return nil
}

func writeXLSXRow(sw *excelize.StreamWriter, rowNum int, fields []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("xlsx: cell name: %w", err)
	}
	values := make([]interface{}, len(fields))
	for i, v := range fields {
		values[i] = v
	}
	if err := sw.SetRow(cell, values); err != nil {
		return fmt.Errorf("xlsx: row %d: %w", rowNum, err)
	}
	return nil
}

func sanitizeRow(row FlatRow) []string {
	out := make([]string, len(row))
	for i, field := range row {
		out[i] = SanitizeField(field)
	}
	return out
}
