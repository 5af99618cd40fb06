package cli

import (
	"sort"

	"github.com/fukayatti/api.fukayatti0.dev/internal/bulletin"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortBySource SortOrder = "source"
	SortByDate   SortOrder = "date"
	SortByClass  SortOrder = "class"
)

// sortRecords reorders records for presentation. SortBySource keeps the
// bulletin's own order untouched. Stable sorts preserve that order
// between equal keys.
func sortRecords(records []bulletin.Record, order SortOrder) {
	switch order {
	case SortByDate:
		sort.SliceStable(records, func(i, j int) bool {
			return compareByDate(records[i], records[j])
		})
	case SortByClass:
		sort.SliceStable(records, func(i, j int) bool {
			if records[i].TargetClass != records[j].TargetClass {
				return records[i].TargetClass < records[j].TargetClass
			}
			return compareByDate(records[i], records[j])
		})
	}
}

// compareByDate compares two records by their resolved date
// Returns true if record a should come before record b
func compareByDate(a, b bulletin.Record) bool {
	dateA := bulletin.ParseDate(a.Date)
	dateB := bulletin.ParseDate(b.Date)

	// If both dates are valid, compare them
	if !dateA.IsZero() && !dateB.IsZero() {
		if !dateA.Equal(dateB) {
			return dateA.Before(dateB)
		}
		return a.TargetClass < b.TargetClass
	}

	// If only one date is valid, put the valid one first
	if !dateA.IsZero() {
		return true
	}
	if !dateB.IsZero() {
		return false
	}

	return a.TargetClass < b.TargetClass
}
