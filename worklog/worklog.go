package worklog

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Header is the fixed column order of the import CSV.
var Header = []string{"Email", "Project", "Description", "Start date", "Start time", "Duration"}

// Entry is the normalized row shape shared by importers and outputs.
type Entry struct {
	Email       string `validate:"required"`
	Project     string `validate:"required"`
	Description string
	StartDate   string `validate:"required,datetime=2006-01-02"`
	StartTime   string `validate:"required,datetime=15:04:05"`
	Duration    string `validate:"required"`
}

var validate = validator.New()

// Validate checks that every column is populated in the expected format.
func (e Entry) Validate() error {
	if err := validate.Struct(e); err != nil {
		return fmt.Errorf("invalid entry: %w", err)
	}
	return nil
}

// Row returns the entry's values in Header order.
func (e Entry) Row() []string {
	return []string{e.Email, e.Project, e.Description, e.StartDate, e.StartTime, e.Duration}
}
