// Package wizard provides an interactive form for entering the date to enumerate.
package wizard

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/mrsinham/dateomatic/cmd/dateomatic/wizard/components"
	"github.com/mrsinham/dateomatic/internal/candidates"
)

// ErrCancelled is returned when the user aborts the form.
var ErrCancelled = errors.New("wizard: cancelled")

// DateInput holds the raw form values.
type DateInput struct {
	Day   string
	Month string
	Year  string
}

// Date parses and range-checks the input.
func (in DateInput) Date() (candidates.Date, error) {
	d, err := candidates.ParseDate(in.Day, in.Month, in.Year)
	if err != nil {
		return candidates.Date{}, err
	}
	if err := d.Validate(); err != nil {
		return candidates.Date{}, err
	}
	return d, nil
}

// NewForm builds the date form bound to in.
func NewForm(in *DateInput) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("day").
				Title("Day").
				Description("1-31").
				Value(&in.Day).
				Validate(validateDay),

			huh.NewInput().
				Key("month").
				Title("Month").
				Description("1-12").
				Value(&in.Month).
				Validate(validateMonth),

			huh.NewInput().
				Key("year").
				Title("Year").
				Description("e.g. 1998").
				Value(&in.Year).
				Validate(validateYear),
		),
	).WithShowHelp(false).WithShowErrors(true)
}

// Run shows the form on out and returns the entered date. The form never writes to
// stdout so candidates can be piped.
func Run(out io.Writer) (candidates.Date, error) {
	fmt.Fprintln(out, components.Banner("dateomatic", "Enter the date to enumerate"))

	var in DateInput
	if err := NewForm(&in).WithOutput(out).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return candidates.Date{}, ErrCancelled
		}
		return candidates.Date{}, fmt.Errorf("run form: %w", err)
	}
	return in.Date()
}

func validateDay(s string) error {
	return validateRange("day", s, 1, 31)
}

func validateMonth(s string) error {
	return validateRange("month", s, 1, 12)
}

func validateYear(s string) error {
	return validateRange("year", s, 0, -1)
}

// validateRange checks s is an integer in [lo, hi]; a negative hi means no upper bound.
func validateRange(field, s string, lo, hi int) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%s is required", field)
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("%s must be a number", field)
	}
	if n < lo || (hi >= 0 && n > hi) {
		if hi < 0 {
			return fmt.Errorf("%s must be >= %d", field, lo)
		}
		return fmt.Errorf("%s must be between %d and %d", field, lo, hi)
	}
	return nil
}
