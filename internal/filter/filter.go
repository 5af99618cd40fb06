// Package filter narrows bulletin records by class, kind, date and free
// text.
//
// A filter backs the query parameters of the records endpoint and the
// flags of the check command. An empty filter matches every record.
//
// Example usage:
//
//	f := filter.FromQueryParams("1-A,2-B", "休講", "", "")
//	matched := f.Apply(records)
package filter

import (
	"fmt"
	"strings"

	"github.com/fukayatti/api.fukayatti0.dev/internal/bulletin"
)

// Filter represents record filtering criteria. All active criteria must
// hold for a record to match.
type Filter struct {
	// Classes match the record's target class exactly, ignoring ASCII
	// case, e.g. "1-a" matches "1-A".
	Classes []string `json:"classes,omitempty"`

	// Kinds match the record's kind label exactly, e.g. 休講.
	Kinds []string `json:"kinds,omitempty"`

	// Date matches the record's date heading exactly, e.g. "1/6(火)".
	Date string `json:"date,omitempty"`

	// Query is a case-insensitive substring match against the subject,
	// target class and raw text.
	Query string `json:"query,omitempty"`
}

// New creates an empty filter that matches every record.
func New() *Filter {
	return &Filter{
		Classes: []string{},
		Kinds:   []string{},
	}
}

// FromQueryParams builds a filter from raw request values. class and kind
// accept comma-separated lists; kind entries may be given as marker
// symbols (◉ for 休講 and so on) and are mapped to their labels. All
// values are width-normalized so full-width input behaves like its
// half-width form.
func FromQueryParams(class, kind, date, query string) *Filter {
	f := New()

	for _, c := range splitList(class) {
		f.Classes = append(f.Classes, bulletin.Normalize(c))
	}
	for _, k := range splitList(kind) {
		if mapped := bulletin.KindForSymbol(k); mapped != bulletin.KindOther {
			k = mapped
		}
		f.Kinds = append(f.Kinds, k)
	}
	f.Date = bulletin.Normalize(strings.TrimSpace(date))
	f.Query = bulletin.Normalize(strings.TrimSpace(query))

	return f
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// IsEmpty reports whether the filter has no active criteria.
func (f *Filter) IsEmpty() bool {
	return len(f.Classes) == 0 &&
		len(f.Kinds) == 0 &&
		f.Date == "" &&
		f.Query == ""
}

// Matches reports whether a record passes all active criteria.
func (f *Filter) Matches(rec bulletin.Record) bool {
	if len(f.Classes) > 0 {
		matched := false
		for _, class := range f.Classes {
			if strings.EqualFold(rec.TargetClass, class) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	if len(f.Kinds) > 0 {
		matched := false
		for _, kind := range f.Kinds {
			if rec.Kind == kind {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	if f.Date != "" && rec.Date != f.Date {
		return false
	}

	if f.Query != "" {
		query := strings.ToLower(f.Query)
		haystack := strings.ToLower(rec.Subject + " " + rec.TargetClass + " " + rec.RawText)
		if !strings.Contains(haystack, query) {
			return false
		}
	}

	return true
}

// Apply returns the records that pass the filter, preserving order. The
// result is never nil, so it serializes as a JSON array even when empty.
func (f *Filter) Apply(records []bulletin.Record) []bulletin.Record {
	if f.IsEmpty() {
		return records
	}

	filtered := make([]bulletin.Record, 0, len(records))
	for _, rec := range records {
		if f.Matches(rec) {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}

// String returns a human-readable description of the active criteria.
func (f *Filter) String() string {
	if f.IsEmpty() {
		return "No active filters"
	}

	var parts []string
	if len(f.Classes) > 0 {
		parts = append(parts, fmt.Sprintf("Classes: %s", strings.Join(f.Classes, ", ")))
	}
	if len(f.Kinds) > 0 {
		parts = append(parts, fmt.Sprintf("Kinds: %s", strings.Join(f.Kinds, ", ")))
	}
	if f.Date != "" {
		parts = append(parts, fmt.Sprintf("Date: %s", f.Date))
	}
	if f.Query != "" {
		parts = append(parts, fmt.Sprintf("Query: %s", f.Query))
	}
	return strings.Join(parts, " | ")
}
