package candidates

import "iter"

// Expand yields every string built by picking one transformation per schema position
// and concatenating them in schema order. The first position varies slowest.
//
// An empty schema yields exactly "". A position with no transformations (an
// unrecognized identifier) makes the whole expansion empty.
func Expand(schema Schema, d Date, months MonthTable, sep string) iter.Seq[string] {
	return func(yield func(string) bool) {
		expand(schema, d, months, sep, "", yield)
	}
}

// expand walks the product depth-first, carrying the prefix built so far. The tail is
// re-derived for every head value. It returns false once the consumer stops.
func expand(schema Schema, d Date, months MonthTable, sep, prefix string, yield func(string) bool) bool {
	if len(schema) == 0 {
		return yield(prefix)
	}
	for head := range Transformations(Identifier(schema[0]), d, months, sep) {
		if !expand(schema[1:], d, months, sep, prefix+head, yield) {
			return false
		}
	}
	return true
}

// expansionSize is the number of strings Expand yields for schema.
func expansionSize(schema Schema, d Date, months MonthTable) int {
	n := 1
	for i := 0; i < len(schema); i++ {
		n *= transformationCount(Identifier(schema[i]), d, months)
		if n == 0 {
			return 0
		}
	}
	return n
}

func transformationCount(id Identifier, d Date, months MonthTable) int {
	switch id {
	case Day:
		return len(dayWidths)
	case Month:
		if d.Month >= 10 {
			return len(longMonthWidths) + len(months[d.Month])
		}
		return len(shortMonthWidths) + len(months[d.Month])
	case Year:
		return len(yearWidths)
	case Separator:
		return 1
	default:
		return 0
	}
}
