package candidates

import "errors"

var (
	// ErrInvalidNumber indicates a date field is not a base-10 integer.
	ErrInvalidNumber = errors.New("candidates: date field is not an integer")
	// ErrDayOutOfRange indicates a day outside 1-31.
	ErrDayOutOfRange = errors.New("candidates: day must be between 1 and 31")
	// ErrMonthOutOfRange indicates a month outside 1-12.
	ErrMonthOutOfRange = errors.New("candidates: month must be between 1 and 12")
	// ErrYearOutOfRange indicates a negative year.
	ErrYearOutOfRange = errors.New("candidates: year must be >= 0")
	// ErrMonthNotInTable indicates the month table has no entry for the requested month.
	ErrMonthNotInTable = errors.New("candidates: month not present in month table")
	// ErrNoSchemas indicates an empty schema list.
	ErrNoSchemas = errors.New("candidates: schema list is empty")
	// ErrNoSeparators indicates an empty separator list.
	ErrNoSeparators = errors.New("candidates: separator list is empty")
)
