package output

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"trackconv/worklog"
)

// ExcelWriter writes the import columns as text cells into the first sheet.
type ExcelWriter struct{}

func (w *ExcelWriter) Write(out io.Writer, entries []worklog.Entry) error {
	file := excelize.NewFile()
	defer file.Close()

	sheet := file.GetSheetName(0)

	for col, header := range worklog.Header {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := file.SetCellStr(sheet, cell, header); err != nil {
			return fmt.Errorf("set excel header %s: %w", cell, err)
		}
	}

	for i, entry := range entries {
		row := i + 2
		for col, value := range entry.Row() {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := file.SetCellStr(sheet, cell, value); err != nil {
				return fmt.Errorf("set excel value %s: %w", cell, err)
			}
		}
	}

	if _, err := file.WriteTo(out); err != nil {
		return fmt.Errorf("write excel workbook: %w", err)
	}

	return nil
}
