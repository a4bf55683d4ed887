package output

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"trackconv/worklog"
)

// Stdout is the destination name that selects standard output.
const Stdout = "-"

var ErrWrite = errors.New("cannot write output")

type Writer interface {
	Write(w io.Writer, entries []worklog.Entry) error
}

func WriterForFormat(format string) (Writer, error) {
	switch normalizeFormat(format) {
	case "csv":
		return &CSVWriter{}, nil
	case "excel", "xlsx":
		return &ExcelWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// DetectFormat picks the output format from the destination extension.
// Everything except .xlsx and .xlsm, including standard output, is written as CSV.
func DetectFormat(path string) string {
	if IsStdout(path) {
		return "csv"
	}
	switch strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".") {
	case "xlsx", "xlsm":
		return "excel"
	default:
		return "csv"
	}
}

func IsStdout(path string) bool {
	return strings.TrimSpace(path) == Stdout
}

// WriteToPath writes entries next to path under a temporary name and renames
// the file into place once it is complete. The temporary file is removed on
// every failure.
func WriteToPath(path, format string, entries []worklog.Entry) (err error) {
	writer, err := WriterForFormat(format)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), tempOutputPattern(path))
	if err != nil {
		return fmt.Errorf("%w: create %s: %w", ErrWrite, path, err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if err = writer.Write(tmp, entries); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}
	if err = tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("%w: set permissions on %s: %w", ErrWrite, path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", ErrWrite, path, err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("%w: move output into place at %s: %w", ErrWrite, path, err)
	}

	return nil
}

// WriteToStream serializes entries as CSV into memory and copies the complete
// document to w, so nothing reaches w when serialization fails.
func WriteToStream(w io.Writer, entries []worklog.Entry) error {
	var buf bytes.Buffer
	if err := (&CSVWriter{}).Write(&buf, entries); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if _, err := io.Copy(w, &buf); err != nil {
		return fmt.Errorf("%w: copy to standard output: %w", ErrWrite, err)
	}
	return nil
}

func tempOutputPattern(path string) string {
	base := filepath.Base(strings.TrimSpace(path))
	if base == "" || base == "." || base == string(filepath.Separator) {
		return ".trackconv-*"
	}

	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return "." + stem + "-*" + ext
}

func normalizeFormat(value string) string {
	return strings.TrimSpace(strings.ToLower(value))
}
