package app

import (
	"sort"
)

// Filter returns the events matching the selection, in input order
func Filter(events []Event, sel FilterSelection) []Event {
	category := NormalizeCategory(sel.Category)

	filtered := make([]Event, 0, len(events))
	for _, e := range events {
		if category != All && e.Category != category {
			continue
		}
		if !sel.Year.Matches(e.Year) {
			continue
		}
		filtered = append(filtered, e)
	}
	return filtered
}

// SortByYear returns a copy of events sorted by year in ascending order.
// Events from the same year keep their relative order.
func SortByYear(events []Event) []Event {
	sorted := make([]Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Year < sorted[j].Year
	})
	return sorted
}

// DeriveOptions collects the distinct categories and years of events
func DeriveOptions(events []Event) FilterOptions {
	categorySet := make(map[string]bool)
	yearSet := make(map[int]bool)

	opts := FilterOptions{Categories: []string{}, Years: []int{}}
	for _, e := range events {
		if !categorySet[e.Category] {
			categorySet[e.Category] = true
			opts.Categories = append(opts.Categories, e.Category)
		}
		if !yearSet[e.Year] {
			yearSet[e.Year] = true
			opts.Years = append(opts.Years, e.Year)
		}
	}

	sort.Strings(opts.Categories)
	sort.Ints(opts.Years)
	return opts
}
