package importer

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const sniffSize = 4096

var candidateDelimiters = []rune{',', ';', '\t', '|'}

// CSVReader reads delimited exports. The first row is the header; the
// delimiter is taken from the header line and a UTF-8 or UTF-16 BOM is honored.
// Rows whose cell count differs from the header are returned with Err set so
// the caller decides whether to skip them. RowNumber is the line the row
// starts on in the file.
type CSVReader struct{}

func (r *CSVReader) Read(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open csv file %s: %w", ErrFileRead, path, err)
	}
	defer file.Close()

	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	buffered := bufio.NewReaderSize(transform.NewReader(file, decoder), sniffSize)

	head, err := buffered.Peek(sniffSize)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, fmt.Errorf("%w: read csv file %s: %w", ErrFileRead, path, err)
	}

	reader := csv.NewReader(buffered)
	reader.Comma = detectDelimiter(head)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	headers, err := reader.Read()
	if err == io.EOF {
		return []Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read csv header: %w", ErrFileRead, err)
	}

	normalizedHeaders := make([]string, len(headers))
	for i, header := range headers {
		normalizedHeaders[i] = normalizeHeader(header)
	}

	records := make([]Record, 0, 128)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}

		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			records = append(records, Record{RowNumber: parseErr.StartLine, Err: fmt.Errorf("%w: %v", ErrColumnMismatch, parseErr)})
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%w: read csv file %s: %w", ErrFileRead, path, err)
		}

		// Physical line of the row's first cell; blank lines and multi-line
		// quoted cells are counted.
		rowNumber, _ := reader.FieldPos(0)

		if len(row) != len(normalizedHeaders) {
			records = append(records, Record{
				RowNumber: rowNumber,
				Err:       fmt.Errorf("%w: got %d cells, header has %d", ErrColumnMismatch, len(row), len(normalizedHeaders)),
			})
			continue
		}

		values := make(map[string]string, len(normalizedHeaders))
		for i, header := range normalizedHeaders {
			values[header] = row[i]
		}
		records = append(records, Record{RowNumber: rowNumber, Values: values})
	}

	return records, nil
}

// detectDelimiter picks the candidate that occurs most often outside quotes
// on the first line. Comma wins ties and empty input.
func detectDelimiter(head []byte) rune {
	if idx := bytes.IndexByte(head, '\n'); idx >= 0 {
		head = head[:idx]
	}

	counts := make(map[rune]int, len(candidateDelimiters))
	quoted := false
	for _, char := range string(head) {
		if char == '"' {
			quoted = !quoted
			continue
		}
		if !quoted {
			counts[char]++
		}
	}

	best := ','
	for _, candidate := range candidateDelimiters {
		if counts[candidate] > counts[best] {
			best = candidate
		}
	}
	return best
}
