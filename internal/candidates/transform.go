package candidates

import (
	"iter"
	"strconv"
	"strings"
)

var (
	dayWidths        = []int{1, 2}
	shortMonthWidths = []int{1, 2}
	longMonthWidths  = []int{2}
	yearWidths       = []int{2, 4}
)

// sized zero-pads n to width w and keeps the last w characters, so values longer than
// w are truncated to their trailing digits. A non-positive width keeps the whole string.
func sized(n, w int) string {
	s := strconv.Itoa(n)
	if w <= 0 {
		return s
	}
	if len(s) < w {
		sign := ""
		if n < 0 {
			sign, s = "-", s[1:]
		}
		s = sign + strings.Repeat("0", w-len(sign)-len(s)) + s
	}
	return s[len(s)-w:]
}

// SizedTransformations yields one string per width, in order, without deduplication.
func SizedTransformations(n int, widths ...int) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, w := range widths {
			if !yield(sized(n, w)) {
				return
			}
		}
	}
}

// DayTransformations yields the 1- and 2-wide forms of day: 5 gives "5", "05";
// 15 gives "5", "15".
func DayTransformations(day int) iter.Seq[string] {
	return SizedTransformations(day, dayWidths...)
}

// MonthTransformations yields the numeric forms of month followed by its aliases from
// months. Months from 10 on have no 1-wide form. A month absent from months yields
// only its numeric forms.
func MonthTransformations(month int, months MonthTable) iter.Seq[string] {
	widths := shortMonthWidths
	if month >= 10 {
		widths = longMonthWidths
	}
	return func(yield func(string) bool) {
		for s := range SizedTransformations(month, widths...) {
			if !yield(s) {
				return
			}
		}
		for _, alias := range months[month] {
			if !yield(alias) {
				return
			}
		}
	}
}

// YearTransformations yields the 2- and 4-wide forms of year.
func YearTransformations(year int) iter.Seq[string] {
	return SizedTransformations(year, yearWidths...)
}

// SeparatorTransformations yields sep once.
func SeparatorTransformations(sep string) iter.Seq[string] {
	return func(yield func(string) bool) {
		yield(sep)
	}
}

// Transformations dispatches on id. An unrecognized identifier yields nothing.
func Transformations(id Identifier, d Date, months MonthTable, sep string) iter.Seq[string] {
	switch id {
	case Day:
		return DayTransformations(d.Day)
	case Month:
		return MonthTransformations(d.Month, months)
	case Year:
		return YearTransformations(d.Year)
	case Separator:
		return SeparatorTransformations(sep)
	default:
		return func(func(string) bool) {}
	}
}
