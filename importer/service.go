package importer

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"trackconv/config"
	"trackconv/worklog"
)

type Result struct {
	Format   string
	RowsRead int
	Entries  []worklog.Entry
	Skipped  []RowError
}

// HasSkipped reports whether at least one record was dropped.
func (r *Result) HasSkipped() bool {
	return len(r.Skipped) > 0
}

type RunOptions struct {
	Format   string
	Email    string
	Project  string
	Policy   ErrorPolicy
	UTC      UTCMode
	Location *time.Location
	Rules    []config.Rule
}

// Run reads one source file and normalizes every record into an entry.
// Under ContinueOnError failed records are collected in Result.Skipped; under
// AbortOnError the first failure is returned and no entries are kept.
func Run(path string, options RunOptions) (*Result, error) {
	format, err := InferFormat(path, options.Format)
	if err != nil {
		return nil, err
	}
	reader, err := ReaderForFormat(format)
	if err != nil {
		return nil, err
	}

	records, err := reader.Read(path)
	if err != nil {
		return nil, err
	}

	normalizer := Normalizer{
		Email:           strings.TrimSpace(options.Email),
		ProjectOverride: resolveProject(path, options),
		Location:        options.Location,
		ConvertToUTC:    options.UTC.ForFormat(format),
	}
	policy := options.Policy.ForFormat(format)

	result := &Result{
		Format:   format,
		RowsRead: len(records),
		Entries:  make([]worklog.Entry, 0, len(records)),
	}
	for _, record := range records {
		entry, mapErr := normalizer.Normalize(record)
		if mapErr != nil {
			if policy == AbortOnError {
				return nil, fmt.Errorf("convert %s: %w", path, mapErr)
			}
			rowErr, ok := mapErr.(*RowError)
			if !ok {
				rowErr = &RowError{Row: record.RowNumber, Err: mapErr}
			}
			result.Skipped = append(result.Skipped, *rowErr)
			continue
		}
		result.Entries = append(result.Entries, entry)
	}

	return result, nil
}

func resolveProject(path string, options RunOptions) string {
	if project := strings.TrimSpace(options.Project); project != "" {
		return project
	}
	return strings.TrimSpace(MatchRuleByTemplate(path, options.Rules).Project)
}

func MatchRuleByTemplate(path string, rules []config.Rule) config.Rule {
	baseName := filepath.Base(path)
	for _, rule := range rules {
		template := strings.TrimSpace(rule.FileTemplate)
		if template == "" {
			continue
		}
		matchesBase, err := filepath.Match(template, baseName)
		if err == nil && matchesBase {
			return rule
		}
		matchesFull, err := filepath.Match(template, path)
		if err == nil && matchesFull {
			return rule
		}
	}
	return config.Rule{}
}
