// Package candidates enumerates textual encodings of a calendar date.
//
// Each field of a date has several encodings (a day is "5" or "05", a month is "3",
// "03", "mar" or "march", a year is "98" or "1998"). A schema such as "ysmsd" lays the
// fields out in order, with 's' positions filled by a separator. Generate combines
// every separator with every schema and every choice of field encoding.
//
// All sequences are lazy and hold no shared state, so a consumer may stop at any point
// and concurrent calls never interfere. Duplicates across schemas and separators are
// kept.
package candidates

import (
	"fmt"
	"iter"
)

// Generate returns the full candidate sequence for d: separators in the outer loop,
// schemas in the inner loop, each pair contributing its Expand output.
//
// Ranges of d are not checked here; out-of-range numbers are truncated by the
// width rules. Generate fails before yielding anything when tables.Months has no
// entry for d.Month.
func Generate(d Date, tables Tables) (iter.Seq[string], error) {
	if _, ok := tables.Months[d.Month]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrMonthNotInTable, d.Month)
	}
	return func(yield func(string) bool) {
		for _, sep := range tables.Separators {
			for _, schema := range tables.Schemas {
				for s := range Expand(schema, d, tables.Months, sep) {
					if !yield(s) {
						return
					}
				}
			}
		}
	}, nil
}

// Count returns how many strings Generate yields for d without building them.
func Count(d Date, tables Tables) int {
	perSeparator := 0
	for _, schema := range tables.Schemas {
		perSeparator += expansionSize(schema, d, tables.Months)
	}
	return perSeparator * len(tables.Separators)
}
