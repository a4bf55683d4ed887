package importer

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/goccy/go-json"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// jsonFieldSources lists, per canonical key, the item keys it is read from in
// order of preference.
var jsonFieldSources = []struct {
	key     string
	sources []string
}{
	{key: KeyStartDate, sources: []string{"startDate"}},
	{key: KeyDuration, sources: []string{"duration"}},
	{key: KeyTaskTitle, sources: []string{"activityTitle", "taskActivityTitle"}},
	{key: KeyProject, sources: []string{"project"}},
}

// JSONReader reads exports holding a single top-level array of objects. A
// leading UTF-8 or UTF-16 BOM is honored.
type JSONReader struct{}

func (r *JSONReader) Read(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open json file %s: %w", ErrFileRead, path, err)
	}
	defer file.Close()

	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	content, err := io.ReadAll(transform.NewReader(file, decoder))
	if err != nil {
		return nil, fmt.Errorf("%w: read json file %s: %w", ErrFileRead, path, err)
	}

	if !bytes.HasPrefix(bytes.TrimSpace(content), []byte("[")) {
		return nil, fmt.Errorf("%w: %s does not contain a json array", ErrFileRead, path)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(content, &items); err != nil {
		return nil, fmt.Errorf("%w: decode json array in %s: %w", ErrFileRead, path, err)
	}

	records := make([]Record, 0, len(items))
	for i, raw := range items {
		rowNumber := i + 1

		var item map[string]any
		if err := json.Unmarshal(raw, &item); err != nil || item == nil {
			records = append(records, Record{RowNumber: rowNumber, Err: fmt.Errorf("%w: item is not an object", ErrMalformedItem)})
			continue
		}

		values := make(map[string]string, len(jsonFieldSources))
		for _, field := range jsonFieldSources {
			for _, source := range field.sources {
				value, ok := jsonScalar(item[source])
				if ok {
					values[normalizeHeader(field.key)] = value
					break
				}
			}
		}
		records = append(records, Record{RowNumber: rowNumber, Values: values})
	}

	return records, nil
}

// jsonScalar renders a decoded JSON value as text. Absent keys and null are
// reported as missing.
func jsonScalar(value any) (string, bool) {
	switch typed := value.(type) {
	case nil:
		return "", false
	case string:
		return typed, true
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(typed), true
	default:
		encoded, err := json.Marshal(typed)
		if err != nil {
			return "", false
		}
		return string(encoded), true
	}
}
