package output

import (
	"encoding/csv"
	"fmt"
	"io"

	"trackconv/worklog"
)

type CSVWriter struct{}

func (w *CSVWriter) Write(out io.Writer, entries []worklog.Entry) error {
	writer := csv.NewWriter(out)

	if err := writer.Write(worklog.Header); err != nil {
		return fmt.Errorf("write csv headers: %w", err)
	}

	for _, entry := range entries {
		if err := writer.Write(entry.Row()); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv output: %w", err)
	}

	return nil
}
