package importer

import (
	"fmt"
	"path/filepath"
	"strings"
)

const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

type Reader interface {
	Read(path string) ([]Record, error)
}

func ReaderForFormat(format string) (Reader, error) {
	switch normalizeHeader(format) {
	case FormatCSV:
		return &CSVReader{}, nil
	case FormatJSON:
		return &JSONReader{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFileType, format)
	}
}

// InferFormat returns the explicit format when given, otherwise the format
// matching the file extension.
func InferFormat(path string, format string) (string, error) {
	if strings.TrimSpace(format) != "" {
		normalized := normalizeHeader(format)
		if normalized != FormatCSV && normalized != FormatJSON {
			return "", fmt.Errorf("%w: %s", ErrUnsupportedFileType, format)
		}
		return normalized, nil
	}

	extension := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch extension {
	case FormatCSV:
		return FormatCSV, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %s (supported: .csv, .json)", ErrUnsupportedFileType, path)
	}
}
