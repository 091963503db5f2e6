package candidates

import (
	"fmt"
	"strconv"
	"strings"
)

// Date is a day/month/year triple. It is not checked against a real calendar.
type Date struct {
	Day   int
	Month int
	Year  int
}

// ParseDate parses the three fields as base-10 integers. Surrounding spaces, a leading
// sign and single underscores between digits ("1_998") are accepted. It does not check
// ranges.
func ParseDate(day, month, year string) (Date, error) {
	var d Date
	fields := []struct {
		name string
		in   string
		out  *int
	}{
		{"day", day, &d.Day},
		{"month", month, &d.Month},
		{"year", year, &d.Year},
	}
	for _, f := range fields {
		n, err := parseInt(f.in)
		if err != nil {
			return Date{}, fmt.Errorf("%w: %s %q", ErrInvalidNumber, f.name, f.in)
		}
		*f.out = n
	}
	return d, nil
}

// Validate performs the coarse range checks: day 1-31, month 1-12, year >= 0.
func (d Date) Validate() error {
	if d.Day < 1 || d.Day > 31 {
		return fmt.Errorf("%w, got %d", ErrDayOutOfRange, d.Day)
	}
	if d.Month < 1 || d.Month > 12 {
		return fmt.Errorf("%w, got %d", ErrMonthOutOfRange, d.Month)
	}
	if d.Year < 0 {
		return fmt.Errorf("%w, got %d", ErrYearOutOfRange, d.Year)
	}
	return nil
}

// String returns the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

func parseInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, "_") {
		digits := strings.TrimLeft(s, "+-")
		if len(s)-len(digits) > 1 {
			return 0, strconv.ErrSyntax
		}
		for i := 0; i < len(digits); i++ {
			if digits[i] != '_' {
				continue
			}
			if i == 0 || i == len(digits)-1 || digits[i-1] == '_' || digits[i+1] == '_' {
				return 0, strconv.ErrSyntax
			}
		}
		s = strings.ReplaceAll(s, "_", "")
	}
	return strconv.Atoi(s)
}
