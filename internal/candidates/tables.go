package candidates

import (
	"fmt"
	"maps"
	"slices"

	"github.com/hashicorp/go-multierror"
)

// Identifier selects which date field a schema position encodes.
type Identifier byte

const (
	Day       Identifier = 'd'
	Month     Identifier = 'm'
	Year      Identifier = 'y'
	Separator Identifier = 's'
)

// AllIdentifiers returns every recognized identifier.
func AllIdentifiers() []Identifier {
	return []Identifier{Day, Month, Year, Separator}
}

// IsValid reports whether id is one of the recognized identifiers.
func (id Identifier) IsValid() bool {
	return slices.Contains(AllIdentifiers(), id)
}

// Schema is an ordered layout of identifiers, e.g. "ysmsd" for year, separator,
// month, separator, day.
type Schema string

// Unknown returns the characters of s that are not recognized identifiers, in order
// of first appearance. Such characters make the schema expand to nothing.
func (s Schema) Unknown() []byte {
	var unknown []byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !Identifier(c).IsValid() && !slices.Contains(unknown, c) {
			unknown = append(unknown, c)
		}
	}
	return unknown
}

// MonthTable maps a month number to its textual aliases, in emission order.
type MonthTable map[int][]string

// Clone returns a deep copy of t.
func (t MonthTable) Clone() MonthTable {
	out := make(MonthTable, len(t))
	for k, v := range t {
		out[k] = slices.Clone(v)
	}
	return out
}

// DefaultMonths returns a fresh copy of the English month alias table.
func DefaultMonths() MonthTable {
	return MonthTable{
		1:  {"jan", "january"},
		2:  {"feb", "february"},
		3:  {"mar", "march"},
		4:  {"apr", "april"},
		5:  {"may"},
		6:  {"jun", "june"},
		7:  {"jul", "july"},
		8:  {"aug", "august"},
		9:  {"sep", "sept", "september"},
		10: {"oct", "october"},
		11: {"nov", "november"},
		12: {"dec", "december"},
	}
}

// DefaultSchemas returns the default schema list.
func DefaultSchemas() []Schema {
	return []Schema{"ysmsd", "dsmsy", "dsm", "msd", "msy", "ysm"}
}

// DefaultSeparators returns the default separator list. The empty separator is
// intentional: it produces compact forms such as "01012000".
func DefaultSeparators() []string {
	return []string{"/", "", "-", " ", ";", ":", "."}
}

// Tables groups the three lookup tables that drive generation. Order of Schemas and
// Separators is the enumeration order.
type Tables struct {
	Months     MonthTable
	Schemas    []Schema
	Separators []string
}

// DefaultTables returns fresh copies of the default tables.
func DefaultTables() Tables {
	return Tables{
		Months:     DefaultMonths(),
		Schemas:    DefaultSchemas(),
		Separators: DefaultSeparators(),
	}
}

// Clone returns a deep copy of t.
func (t Tables) Clone() Tables {
	return Tables{
		Months:     t.Months.Clone(),
		Schemas:    slices.Clone(t.Schemas),
		Separators: slices.Clone(t.Separators),
	}
}

// Validate reports every problem with t at once: month keys 1-12 must all be present
// and no other key is allowed, and both lists must be non-empty.
func (t Tables) Validate() error {
	var result *multierror.Error
	for m := 1; m <= 12; m++ {
		if _, ok := t.Months[m]; !ok {
			result = multierror.Append(result, fmt.Errorf("%w: %d", ErrMonthNotInTable, m))
		}
	}
	for _, k := range slices.Sorted(maps.Keys(t.Months)) {
		if k < 1 || k > 12 {
			result = multierror.Append(result, fmt.Errorf("month table key %d is outside 1-12", k))
		}
	}
	if len(t.Schemas) == 0 {
		result = multierror.Append(result, ErrNoSchemas)
	}
	if len(t.Separators) == 0 {
		result = multierror.Append(result, ErrNoSeparators)
	}
	return result.ErrorOrNil()
}
