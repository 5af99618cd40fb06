package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/fukayatti/api.fukayatti0.dev/internal/bulletin"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// OutputResult contains data to be output
type OutputResult struct {
	CheckedAt   time.Time         `json:"checked_at"`
	SourceURL   string            `json:"source_url"`
	Title       string            `json:"title,omitempty"`
	Records     []bulletin.Record `json:"records"`
	RecordCount int               `json:"record_count"`
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *OutputResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs results grouped by date, dates in order of first
// appearance so the bulletin's own ordering shows through.
func writeText(w io.Writer, result *OutputResult, verbose bool) error {
	if result.RecordCount == 0 {
		fmt.Fprintln(w, "No records found.")
		return nil
	}

	dates := make([]string, 0)
	byDate := make(map[string][]bulletin.Record)
	for _, rec := range result.Records {
		if _, seen := byDate[rec.Date]; !seen {
			dates = append(dates, rec.Date)
		}
		byDate[rec.Date] = append(byDate[rec.Date], rec)
	}

	for _, date := range dates {
		records := byDate[date]
		fmt.Fprintf(w, "\n%s (%d records):\n", date, len(records))
		for _, rec := range records {
			fmt.Fprintf(w, "  %s\n", rec.RawText)
			if verbose {
				fmt.Fprintf(w, "       ID: %s\n", rec.ID())
				fmt.Fprintf(w, "       Kind: %s\n", rec.Kind)
				if rec.SubjectFrom != nil && rec.SubjectTo != nil {
					fmt.Fprintf(w, "       Change: %s to %s\n", *rec.SubjectFrom, *rec.SubjectTo)
				}
			}
		}
	}
	fmt.Fprintf(w, "\nTotal: %d records across %d dates\n", result.RecordCount, len(dates))

	return nil
}
