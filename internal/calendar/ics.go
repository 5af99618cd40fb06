// Package calendar renders bulletin records as an iCalendar feed so that
// cancellations and changes show up directly in a student's calendar app.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/fukayatti/api.fukayatti0.dev/internal/bulletin"
)

// calendarDomain scopes event UIDs to this service.
const calendarDomain = "api.fukayatti0.dev"

// Generate renders records as an iCalendar (RFC 5545) feed with one
// all-day VEVENT per record. Records whose date cannot be resolved to a
// concrete day are skipped; the feed never invents dates.
func Generate(records []bulletin.Record, sourceURL string) string {
	return generateAt(records, sourceURL, time.Now())
}

func generateAt(records []bulletin.Record, sourceURL string, now time.Time) string {
	var ics strings.Builder

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString("PRODID:-//api.fukayatti0.dev//kyuko-api//JA\r\n")
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")
	ics.WriteString("X-WR-CALNAME:休講・授業変更\r\n")

	for _, rec := range records {
		day := bulletin.ResolveDate(rec.Date, now)
		if day.IsZero() {
			continue
		}
		writeEvent(&ics, rec, day, sourceURL, now)
	}

	ics.WriteString("END:VCALENDAR\r\n")

	return ics.String()
}

func writeEvent(ics *strings.Builder, rec bulletin.Record, day time.Time, sourceURL string, now time.Time) {
	ics.WriteString("BEGIN:VEVENT\r\n")
	ics.WriteString(fmt.Sprintf("UID:%s@%s\r\n", rec.ID(), calendarDomain))
	ics.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", formatICSTime(now.UTC())))
	// All-day events; DTEND is exclusive per RFC 5545.
	ics.WriteString(fmt.Sprintf("DTSTART;VALUE=DATE:%s\r\n", formatICSDate(day)))
	ics.WriteString(fmt.Sprintf("DTEND;VALUE=DATE:%s\r\n", formatICSDate(day.AddDate(0, 0, 1))))
	ics.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICS(Summary(rec))))
	ics.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeICS(description(rec, sourceURL))))
	if sourceURL != "" {
		ics.WriteString(fmt.Sprintf("URL:%s\r\n", sourceURL))
	}
	ics.WriteString("STATUS:CONFIRMED\r\n")
	ics.WriteString("SEQUENCE:0\r\n")
	ics.WriteString("TRANSP:TRANSPARENT\r\n")
	ics.WriteString("END:VEVENT\r\n")
}

// Summary builds the one-line event title, e.g. "【休講】1-A 3限 English".
func Summary(rec bulletin.Record) string {
	parts := make([]string, 0, 3)
	if rec.TargetClass != "" {
		parts = append(parts, rec.TargetClass)
	}
	if rec.Period != "" {
		parts = append(parts, rec.Period)
	}
	if rec.Subject != "" {
		parts = append(parts, rec.Subject)
	}

	detail := strings.Join(parts, " ")
	if detail == "" {
		return "【" + rec.Kind + "】"
	}
	return "【" + rec.Kind + "】" + detail
}

func description(rec bulletin.Record, sourceURL string) string {
	var b strings.Builder
	b.WriteString(rec.RawText)
	b.WriteString("\n日付: ")
	b.WriteString(rec.Date)
	if sourceURL != "" {
		b.WriteString("\n出典: ")
		b.WriteString(sourceURL)
	}
	return b.String()
}

// formatICSDate formats a day for all-day DTSTART/DTEND values.
func formatICSDate(t time.Time) string {
	return t.Format("20060102")
}

// formatICSTime formats a timestamp in UTC for DTSTAMP.
func formatICSTime(t time.Time) string {
	return t.Format("20060102T150405Z")
}

// escapeICS escapes text per RFC 5545 section 3.3.11.
func escapeICS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
