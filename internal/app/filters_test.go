package app

import (
	"reflect"
	"testing"
)

func sampleEvents() []Event {
	return []Event{
		{ID: 1, Year: 1990, Title: "One", Category: "A"},
		{ID: 2, Year: 2000, Title: "Two", Category: "B"},
		{ID: 3, Year: 1990, Title: "Three", Category: "B"},
	}
}

func ids(events []Event) []int {
	out := []int{}
	for _, e := range events {
		out = append(out, e.ID)
	}
	return out
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name string
		sel  FilterSelection
		want []int
	}{
		{name: "Unconstrained", sel: DefaultSelection, want: []int{1, 2, 3}},
		{name: "Empty category means All", sel: FilterSelection{Category: ""}, want: []int{1, 2, 3}},
		{name: "Category B", sel: FilterSelection{Category: "B", Year: AnyYear}, want: []int{2, 3}},
		{name: "Year 1990", sel: FilterSelection{Category: All, Year: OnlyYear(1990)}, want: []int{1, 3}},
		{name: "Category B and year 1990", sel: FilterSelection{Category: "B", Year: OnlyYear(1990)}, want: []int{3}},
		{name: "No match", sel: FilterSelection{Category: "C", Year: AnyYear}, want: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Filter(sampleEvents(), tt.sel))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Filter() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterPredicate(t *testing.T) {
	events := sampleEvents()
	selections := []FilterSelection{
		DefaultSelection,
		{Category: "A", Year: AnyYear},
		{Category: All, Year: OnlyYear(2000)},
		{Category: "B", Year: OnlyYear(2000)},
		{Category: "A", Year: OnlyYear(2000)},
	}

	for _, sel := range selections {
		kept := map[int]bool{}
		for _, e := range Filter(events, sel) {
			kept[e.ID] = true
		}
		for _, e := range events {
			passes := (sel.Category == All || e.Category == sel.Category) && sel.Year.Matches(e.Year)
			if passes != kept[e.ID] {
				t.Errorf("Selection %+v: event %d kept=%v, predicate=%v", sel, e.ID, kept[e.ID], passes)
			}
		}
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	events := sampleEvents()
	before := append([]Event{}, events...)

	_ = Filter(events, FilterSelection{Category: "B", Year: AnyYear})

	if !reflect.DeepEqual(events, before) {
		t.Error("Filter() modified its input")
	}
}

func TestFilterEmptyInput(t *testing.T) {
	got := Filter(nil, DefaultSelection)
	if got == nil {
		t.Error("Filter() on empty input should return an empty, non-nil slice")
	}
}

func TestSortByYear(t *testing.T) {
	events := []Event{
		{ID: 1, Year: 2000},
		{ID: 2, Year: 1990},
		{ID: 3, Year: 2000},
		{ID: 4, Year: 1980},
		{ID: 5, Year: 1990},
	}
	before := append([]Event{}, events...)

	sorted := SortByYear(events)

	if got, want := ids(sorted), []int{4, 2, 5, 1, 3}; !reflect.DeepEqual(got, want) {
		t.Errorf("SortByYear() = %v, want %v", got, want)
	}
	if !reflect.DeepEqual(events, before) {
		t.Error("SortByYear() modified its input")
	}
	if again := SortByYear(sorted); !reflect.DeepEqual(again, sorted) {
		t.Errorf("SortByYear() not idempotent: %v vs %v", ids(again), ids(sorted))
	}
}

func TestSortByYearStable(t *testing.T) {
	events := []Event{{ID: 1, Year: 2000}, {ID: 2, Year: 2000}}

	if got := ids(SortByYear(events)); !reflect.DeepEqual(got, []int{1, 2}) {
		t.Errorf("Equal years must keep input order, got %v", got)
	}
}

func TestDeriveOptions(t *testing.T) {
	events := []Event{
		{ID: 1, Year: 2001, Category: "b"},
		{ID: 2, Year: 1999, Category: "a"},
		{ID: 3, Year: 2001, Category: "a"},
	}

	opts := DeriveOptions(events)

	if want := []string{"a", "b"}; !reflect.DeepEqual(opts.Categories, want) {
		t.Errorf("Categories = %v, want %v", opts.Categories, want)
	}
	if want := []int{1999, 2001}; !reflect.DeepEqual(opts.Years, want) {
		t.Errorf("Years = %v, want %v", opts.Years, want)
	}
}

func TestDeriveOptionsSortsYearsNumerically(t *testing.T) {
	opts := DeriveOptions([]Event{{Year: 950}, {Year: 1066}, {Year: -44}})

	if want := []int{-44, 950, 1066}; !reflect.DeepEqual(opts.Years, want) {
		t.Errorf("Years = %v, want %v", opts.Years, want)
	}
}

func TestParseYearFilter(t *testing.T) {
	tests := []struct {
		in      string
		want    YearFilter
		wantErr bool
	}{
		{in: "", want: AnyYear},
		{in: "All", want: AnyYear},
		{in: "1969", want: OnlyYear(1969)},
		{in: " 1969 ", want: OnlyYear(1969)},
		{in: "-44", want: OnlyYear(-44)},
		{in: "sixties", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseYearFilter(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseYearFilter(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseYearFilter(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		text string
		max  int
		want string
	}{
		{name: "Short text", text: "hello", max: 10, want: "hello"},
		{name: "Exact length", text: "hello", max: 5, want: "hello"},
		{name: "Cut", text: "hello world", max: 5, want: "hello..."},
		{name: "Counts runes", text: "Zürich ist schön", max: 6, want: "Zürich..."},
		{name: "Zero disables", text: "hello", max: 0, want: "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.text, tt.max); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.text, tt.max, got, tt.want)
			}
		})
	}
}
