package importer

import (
	"errors"
	"testing"
	"time"

	"trackconv/config"
	"trackconv/worklog"
)

const mixedCSV = "start date,duration,task title,project\n" +
	"2023-01-05 10:00:00,1:30:00,Write docs,Infra\n" +
	"2023-01-05 11:00:00,1:30\n" +
	"not a date,1:00:00,Broken,Infra\n" +
	"2023-01-05 13:00:00,0:30:00,Last,Ops\n"

func TestRun_CSVSkipsBadRows(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "export.csv", mixedCSV)
	result, err := Run(path, RunOptions{Email: "a@b.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Format != FormatCSV || result.RowsRead != 4 {
		t.Fatalf("unexpected result: format=%s rows=%d", result.Format, result.RowsRead)
	}
	if len(result.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(result.Entries))
	}
	if !result.HasSkipped() || len(result.Skipped) != 2 {
		t.Fatalf("expected 2 skipped rows, got %d", len(result.Skipped))
	}
	if result.Skipped[0].Row != 3 || !errors.Is(&result.Skipped[0], ErrColumnMismatch) {
		t.Fatalf("unexpected first skip: %v", &result.Skipped[0])
	}
	if result.Skipped[1].Row != 4 || !errors.Is(&result.Skipped[1], ErrInvalidTimestamp) {
		t.Fatalf("unexpected second skip: %v", &result.Skipped[1])
	}

	want := worklog.Entry{Email: "a@b.com", Project: "Infra", Description: "Write docs", StartDate: "2023-01-05", StartTime: "10:00:00", Duration: "01:30:00"}
	if result.Entries[0] != want {
		t.Fatalf("unexpected first entry: %+v", result.Entries[0])
	}
	if result.Entries[1].Project != "Ops" {
		t.Fatalf("expected per-row project, got %q", result.Entries[1].Project)
	}
}

func TestRun_CSVWithoutBadRowsIsNotSkipped(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "export.csv", "start date,duration,task title,project\n2023-01-05 10:00:00,1:30:00,Task,Infra\n")
	result, err := Run(path, RunOptions{Email: "a@b.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.HasSkipped() || len(result.Entries) != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestRun_CSVAbortPolicy(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "export.csv", mixedCSV)
	result, err := Run(path, RunOptions{Email: "a@b.com", Policy: AbortOnError})
	if !errors.Is(err, ErrColumnMismatch) {
		t.Fatalf("expected ErrColumnMismatch, got %v", err)
	}
	if result != nil {
		t.Fatalf("expected no result on abort")
	}
}

func TestRun_JSONAbortsOnFirstBadItem(t *testing.T) {
	t.Parallel()

	content := `[
  {"startDate": "2023-01-05T10:00:00+02:00", "duration": "0:45:10", "activityTitle": "Review", "project": "Infra"},
  {"startDate": "2023-01-05T11:00:00+02:00", "duration": "bad", "activityTitle": "Broken", "project": "Infra"},
  {"startDate": "2023-01-05T12:00:00+02:00", "duration": "0:15:00", "activityTitle": "Never", "project": "Infra"}
]`
	path := writeFile(t, t.TempDir(), "export.json", content)

	result, err := Run(path, RunOptions{Email: "a@b.com"})
	if !errors.Is(err, worklog.ErrMalformedDuration) {
		t.Fatalf("expected ErrMalformedDuration, got %v", err)
	}
	var rowErr *RowError
	if !errors.As(err, &rowErr) || rowErr.Row != 2 {
		t.Fatalf("expected failure on item 2, got %v", err)
	}
	if result != nil {
		t.Fatalf("expected no partial result")
	}
}

func TestRun_JSONSkipPolicy(t *testing.T) {
	t.Parallel()

	content := `[
  {"startDate": "2023-01-05T10:00:00+02:00", "duration": "0:45:10", "activityTitle": "Review", "project": "Infra"},
  {"startDate": "2023-01-05T11:00:00+02:00", "duration": "bad", "activityTitle": "Broken", "project": "Infra"}
]`
	path := writeFile(t, t.TempDir(), "export.json", content)

	result, err := Run(path, RunOptions{Email: "a@b.com", Policy: ContinueOnError})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Entries) != 1 || len(result.Skipped) != 1 {
		t.Fatalf("expected 1 entry and 1 skip, got %d/%d", len(result.Entries), len(result.Skipped))
	}
}

func TestRun_JSONConvertsToUTC(t *testing.T) {
	t.Parallel()

	content := `[{"startDate": "2023-01-05T10:00:00+02:00", "duration": "0:45:10", "activityTitle": "Review", "project": "Infra"}]`
	path := writeFile(t, t.TempDir(), "export.json", content)

	result, err := Run(path, RunOptions{Email: "a@b.com", Location: time.UTC})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := worklog.Entry{Email: "a@b.com", Project: "Infra", Description: "Review", StartDate: "2023-01-05", StartTime: "08:00:00", Duration: "00:45:10"}
	if len(result.Entries) != 1 || result.Entries[0] != want {
		t.Fatalf("unexpected entries: %+v", result.Entries)
	}
}

func TestRun_UTCModeOverrides(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	jsonPath := writeFile(t, dir, "export.json", `[{"startDate": "2023-01-05T10:00:00+02:00", "duration": "1:00:00", "activityTitle": "A", "project": "P"}]`)
	result, err := Run(jsonPath, RunOptions{Email: "a@b.com", UTC: UTCOff})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Entries[0].StartTime != "10:00:00" {
		t.Fatalf("expected wall clock with utc off, got %s", result.Entries[0].StartTime)
	}

	csvPath := writeFile(t, dir, "export.csv", "start date,duration,task title,project\n2023-01-05T10:00:00+02:00,1:00:00,A,P\n")
	result, err = Run(csvPath, RunOptions{Email: "a@b.com", UTC: UTCOn})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Entries[0].StartTime != "08:00:00" {
		t.Fatalf("expected UTC time with utc on, got %s", result.Entries[0].StartTime)
	}
}

func TestRun_ProjectOverrideAndRules(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	path := writeFile(t, dir, "infra-2023.csv", "start date,duration,task title,project\n2023-01-05 10:00:00,1:00:00,A,One\n2023-01-05 11:00:00,1:00:00,B,Two\n")
	rules := []config.Rule{{Name: "infra", FileTemplate: "infra-*.csv", Project: "Infrastructure"}}

	result, err := Run(path, RunOptions{Email: "a@b.com", Project: "Explicit", Rules: rules})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, entry := range result.Entries {
		if entry.Project != "Explicit" {
			t.Fatalf("expected explicit override, got %q", entry.Project)
		}
	}

	result, err = Run(path, RunOptions{Email: "a@b.com", Rules: rules})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, entry := range result.Entries {
		if entry.Project != "Infrastructure" {
			t.Fatalf("expected rule project, got %q", entry.Project)
		}
	}
}

func TestRun_UnsupportedFileType(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "export.xml", "<xml/>")
	if _, err := Run(path, RunOptions{Email: "a@b.com"}); !errors.Is(err, ErrUnsupportedFileType) {
		t.Fatalf("expected ErrUnsupportedFileType, got %v", err)
	}
}

func TestRun_ForcedFormat(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "export.txt", `[{"startDate": "2023-01-05T10:00:00Z", "duration": "1:00:00", "activityTitle": "A", "project": "P"}]`)
	result, err := Run(path, RunOptions{Email: "a@b.com", Format: "json"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Format != FormatJSON || len(result.Entries) != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestInferFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path    string
		format  string
		want    string
		wantErr bool
	}{
		{path: "a.csv", want: "csv"},
		{path: "a.CSV", want: "csv"},
		{path: "a.json", want: "json"},
		{path: "a.Json", want: "json"},
		{path: "a.xlsx", wantErr: true},
		{path: "noext", wantErr: true},
		{path: "a.txt", format: "CSV", want: "csv"},
		{path: "a.csv", format: "xml", wantErr: true},
	}
	for _, tc := range tests {
		got, err := InferFormat(tc.path, tc.format)
		if tc.wantErr {
			if !errors.Is(err, ErrUnsupportedFileType) {
				t.Fatalf("%s/%s: expected ErrUnsupportedFileType, got %v", tc.path, tc.format, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("%s/%s: got %q, %v; want %q", tc.path, tc.format, got, err, tc.want)
		}
	}
}

func TestMatchRuleByTemplate(t *testing.T) {
	rules := []config.Rule{
		{Name: "a", FileTemplate: "infra-*.csv", Project: "Infra"},
		{Name: "b", FileTemplate: "/exports/*.json", Project: "Exports"},
	}

	if rule := MatchRuleByTemplate("/tmp/infra-202601.csv", rules); rule.Name != "a" {
		t.Fatalf("expected rule a, got %+v", rule)
	}
	if rule := MatchRuleByTemplate("/exports/day.json", rules); rule.Name != "b" {
		t.Fatalf("expected rule b, got %+v", rule)
	}
	if rule := MatchRuleByTemplate("/tmp/other.csv", rules); rule.Name != "" {
		t.Fatalf("expected no rule, got %+v", rule)
	}
}
