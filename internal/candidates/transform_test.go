package candidates

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDayTransformations(t *testing.T) {
	tests := []struct {
		name string
		day  int
		want []string
	}{
		{"single digit", 5, []string{"5", "05"}},
		{"two digits", 15, []string{"5", "15"}},
		{"ten", 10, []string{"0", "10"}},
		{"out of range truncates", 234, []string{"4", "34"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := slices.Collect(DayTransformations(tt.day))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("DayTransformations(%d) mismatch (-want +got):\n%s", tt.day, diff)
			}
		})
	}
}

func TestMonthTransformations(t *testing.T) {
	tests := []struct {
		name   string
		month  int
		months MonthTable
		want   []string
	}{
		{"march", 3, DefaultMonths(), []string{"3", "03", "mar", "march"}},
		{"november has no short form", 11, DefaultMonths(), []string{"11", "nov", "november"}},
		{"september keeps table order", 9, DefaultMonths(), []string{"9", "09", "sep", "sept", "september"}},
		{"may has one alias", 5, DefaultMonths(), []string{"5", "05", "may"}},
		{"custom table", 1, MonthTable{1: {"janv", "janvier"}}, []string{"1", "01", "janv", "janvier"}},
		{"missing entry keeps numeric forms", 4, MonthTable{1: {"jan"}}, []string{"4", "04"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := slices.Collect(MonthTransformations(tt.month, tt.months))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("MonthTransformations(%d) mismatch (-want +got):\n%s", tt.month, diff)
			}
		})
	}
}

func TestYearTransformations(t *testing.T) {
	tests := []struct {
		year int
		want []string
	}{
		{1998, []string{"98", "1998"}},
		{5, []string{"05", "0005"}},
		{0, []string{"00", "0000"}},
		{12345, []string{"45", "2345"}},
	}
	for _, tt := range tests {
		got := slices.Collect(YearTransformations(tt.year))
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("YearTransformations(%d) mismatch (-want +got):\n%s", tt.year, diff)
		}
	}
}

func TestSizedTransformations(t *testing.T) {
	tests := []struct {
		name   string
		n      int
		widths []int
		want   []string
	}{
		{"no widths", 7, nil, nil},
		{"duplicates kept", 7, []int{1, 1}, []string{"7", "7"}},
		{"wide padding", 42, []int{6}, []string{"000042"}},
		{"zero width keeps value", 42, []int{0}, []string{"42"}},
		{"negative padded after sign", -5, []int{2, 4}, []string{"-5", "-005"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := slices.Collect(SizedTransformations(tt.n, tt.widths...))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("SizedTransformations(%d, %v) mismatch (-want +got):\n%s", tt.n, tt.widths, diff)
			}
		})
	}
}

func TestTransformations_Dispatch(t *testing.T) {
	d := Date{Day: 5, Month: 3, Year: 1998}
	months := DefaultMonths()

	tests := []struct {
		id   Identifier
		want []string
	}{
		{Day, []string{"5", "05"}},
		{Month, []string{"3", "03", "mar", "march"}},
		{Year, []string{"98", "1998"}},
		{Separator, []string{"/"}},
		{Identifier('x'), nil},
	}
	for _, tt := range tests {
		got := slices.Collect(Transformations(tt.id, d, months, "/"))
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Transformations(%q) mismatch (-want +got):\n%s", tt.id, diff)
		}
	}
}

func TestSeparatorTransformations_Empty(t *testing.T) {
	got := slices.Collect(SeparatorTransformations(""))
	if diff := cmp.Diff([]string{""}, got); diff != "" {
		t.Errorf("SeparatorTransformations(\"\") mismatch (-want +got):\n%s", diff)
	}
}

func TestTransformations_FreshSequencePerCall(t *testing.T) {
	seq := DayTransformations(5)
	first := slices.Collect(seq)
	second := slices.Collect(seq)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("re-ranging a sequence changed its output (-first +second):\n%s", diff)
	}
}
