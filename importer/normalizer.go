package importer

import (
	"fmt"
	"strings"
	"time"

	"trackconv/worklog"
)

// Canonical record keys. Readers store values under these keys.
const (
	KeyStartDate = "start date"
	KeyDuration  = "duration"
	KeyTaskTitle = "task title"
	KeyProject   = "project"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04:05"
)

// Normalizer turns raw records into import entries for one run.
//
// When ConvertToUTC is set, the parsed start instant is converted to UTC
// before it is split into date and time, and timestamps without an offset are
// read in Location (time.Local when nil). Otherwise the wall-clock components
// of the source value are kept as written.
type Normalizer struct {
	Email           string
	ProjectOverride string
	Location        *time.Location
	ConvertToUTC    bool
}

func (n Normalizer) Normalize(record Record) (worklog.Entry, error) {
	entry, err := n.normalize(record)
	if err != nil {
		return worklog.Entry{}, &RowError{Row: record.RowNumber, Err: err}
	}
	return entry, nil
}

func (n Normalizer) normalize(record Record) (worklog.Entry, error) {
	if record.Err != nil {
		return worklog.Entry{}, record.Err
	}

	project := strings.TrimSpace(n.ProjectOverride)
	if project == "" {
		project = record.Get(KeyProject)
	}
	if project == "" {
		return worklog.Entry{}, fmt.Errorf("%w: %s", ErrMissingField, KeyProject)
	}

	title, ok := record.Lookup(KeyTaskTitle)
	if !ok {
		return worklog.Entry{}, fmt.Errorf("%w: %s", ErrMissingField, KeyTaskTitle)
	}

	startRaw, ok := record.Lookup(KeyStartDate)
	if !ok {
		return worklog.Entry{}, fmt.Errorf("%w: %s", ErrMissingField, KeyStartDate)
	}
	start, err := n.parseStart(startRaw)
	if err != nil {
		return worklog.Entry{}, fmt.Errorf("parse start date: %w", err)
	}

	durationRaw, ok := record.Lookup(KeyDuration)
	if !ok {
		return worklog.Entry{}, fmt.Errorf("%w: %s", ErrMissingField, KeyDuration)
	}
	duration, err := worklog.ParseDuration(durationRaw)
	if err != nil {
		return worklog.Entry{}, fmt.Errorf("parse duration: %w", err)
	}

	entry := worklog.Entry{
		Email:       n.Email,
		Project:     project,
		Description: title,
		StartDate:   start.Format(dateLayout),
		StartTime:   start.Format(clockLayout),
		Duration:    duration.String(),
	}
	if err := entry.Validate(); err != nil {
		return worklog.Entry{}, err
	}

	return entry, nil
}

func (n Normalizer) parseStart(value string) (time.Time, error) {
	if !n.ConvertToUTC {
		// Components are kept as parsed, so no DST adjustment may apply.
		return parseTimestamp(value, time.UTC)
	}

	parsed, err := parseTimestamp(value, n.Location)
	if err != nil {
		return time.Time{}, err
	}
	return parsed.UTC(), nil
}
