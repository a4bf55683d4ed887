// Package convert runs one conversion from a time-tracking export to the
// import CSV: validate arguments, read and normalize the source, write the
// destination and report what happened.
package convert

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"trackconv/config"
	"trackconv/importer"
	"trackconv/output"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidOutput = errors.New("invalid output")
)

type Options struct {
	Input    string
	Output   string
	Email    string
	Project  string
	Format   string
	Policy   importer.ErrorPolicy
	UTC      importer.UTCMode
	Location *time.Location
	Rules    []config.Rule
	Verbose  bool
}

type Outcome struct {
	RowsRead    int
	RowsWritten int
	RowsSkipped int
	NoData      bool
}

// Run converts options.Input into options.Output. When the output is "-" the
// CSV document is the only thing written to stdout; notices go to stderr and
// the success and skip summaries are left out.
func Run(options Options, stdout, stderr io.Writer) (*Outcome, error) {
	options.Input = strings.TrimSpace(options.Input)
	options.Output = strings.TrimSpace(options.Output)
	if err := validate(options); err != nil {
		return nil, err
	}
	toStdout := output.IsStdout(options.Output)

	status := stdout
	if toStdout {
		status = stderr
	}

	result, err := importer.Run(options.Input, importer.RunOptions{
		Format:   options.Format,
		Email:    options.Email,
		Project:  options.Project,
		Policy:   options.Policy,
		UTC:      options.UTC,
		Location: options.Location,
		Rules:    options.Rules,
	})
	if err != nil {
		return nil, err
	}

	outcome := &Outcome{
		RowsRead:    result.RowsRead,
		RowsSkipped: len(result.Skipped),
	}
	if options.Verbose {
		for i := range result.Skipped {
			fmt.Fprintf(stderr, "Skipped %v\n", &result.Skipped[i])
		}
	}

	if len(result.Entries) == 0 {
		outcome.NoData = true
		fmt.Fprintln(status, "No data to convert.")
		return outcome, nil
	}

	if toStdout {
		if err := output.WriteToStream(stdout, result.Entries); err != nil {
			return nil, err
		}
		outcome.RowsWritten = len(result.Entries)
		return outcome, nil
	}

	format := output.DetectFormat(options.Output)
	if err := output.WriteToPath(options.Output, format, result.Entries); err != nil {
		return nil, err
	}
	outcome.RowsWritten = len(result.Entries)

	if result.HasSkipped() {
		fmt.Fprintf(stderr, "Warning: %d of %d row(s) could not be converted and were skipped.\n", outcome.RowsSkipped, outcome.RowsRead)
	}
	fmt.Fprintf(stdout, "Conversion completed. Rows written: %d, File: %s\n", outcome.RowsWritten, options.Output)

	return outcome, nil
}

func validate(options Options) error {
	input := options.Input
	if input == "" {
		return fmt.Errorf("%w: input path is empty", ErrInvalidInput)
	}
	info, err := os.Stat(input)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: input file not found: %s", ErrInvalidInput, input)
		}
		return fmt.Errorf("%w: stat input file: %w", ErrInvalidInput, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: input path is a directory: %s", ErrInvalidInput, input)
	}

	if options.Output == "" {
		return fmt.Errorf("%w: output path is empty", ErrInvalidOutput)
	}
	if strings.TrimSpace(options.Email) == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	return nil
}
