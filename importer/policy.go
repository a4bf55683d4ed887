package importer

import (
	"fmt"
	"strings"
)

// ErrorPolicy decides what happens to a run when a single record fails to
// normalize.
type ErrorPolicy string

const (
	// PolicyAuto skips bad CSV rows and aborts on bad JSON items.
	PolicyAuto      ErrorPolicy = "auto"
	ContinueOnError ErrorPolicy = "skip"
	AbortOnError    ErrorPolicy = "abort"
)

func ParseErrorPolicy(value string) (ErrorPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "auto":
		return PolicyAuto, nil
	case "skip", "continue":
		return ContinueOnError, nil
	case "abort", "fail":
		return AbortOnError, nil
	default:
		return "", fmt.Errorf("invalid error policy %q (supported: auto|skip|abort)", value)
	}
}

func (p ErrorPolicy) ForFormat(format string) ErrorPolicy {
	if p != PolicyAuto && p != "" {
		return p
	}
	if format == FormatJSON {
		return AbortOnError
	}
	return ContinueOnError
}

// UTCMode decides whether start timestamps are converted to UTC.
type UTCMode string

const (
	// UTCAuto converts JSON timestamps and keeps CSV timestamps as written.
	UTCAuto UTCMode = "auto"
	UTCOn   UTCMode = "on"
	UTCOff  UTCMode = "off"
)

func ParseUTCMode(value string) (UTCMode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "auto":
		return UTCAuto, nil
	case "on", "true", "yes":
		return UTCOn, nil
	case "off", "false", "no":
		return UTCOff, nil
	default:
		return "", fmt.Errorf("invalid utc mode %q (supported: auto|on|off)", value)
	}
}

func (m UTCMode) ForFormat(format string) bool {
	switch m {
	case UTCOn:
		return true
	case UTCOff:
		return false
	default:
		return format == FormatJSON
	}
}
