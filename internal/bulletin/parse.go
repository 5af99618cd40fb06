package bulletin

import (
	"regexp"
	"strings"
	"unicode"
)

// Paragraph is one block-level unit of the bulletin body. Text holds the
// trimmed visible text. Emphasis reports whether the paragraph contains an
// inline emphasis element; the bulletin uses emphasis to highlight date
// headings that do not follow the usual M/D shape.
type Paragraph struct {
	Text     string
	Emphasis bool
}

var (
	// Date headings open with "M/D", usually followed by the weekday in
	// parentheses, e.g. "1/6(火)". Matched against normalized text.
	dateHeadingRe = regexp.MustCompile(`^\d{1,2}/\d{1,2}(?:\(.\))?`)

	// All arrow spellings the bulletin has used for subject substitutions.
	arrowRe = regexp.MustCompile(`\s*(⇒|→|=>|->)\s*`)
)

// Paragraphs that merely mention a date inside prose, such as timetable
// links or notes about a day, open like a date heading but are not one.
var headingExclusions = []string{"時間割", "について"}

// recordMarkers lists the symbols that open an entry line. They sit outside
// the width-folded range, so detection runs on the raw paragraph text.
var recordMarkers = []string{
	SymbolCancellation,
	SymbolMakeup,
	SymbolSubstitution,
	SymbolRoomChange,
}

// Parse classifies bulletin paragraphs into records in a single pass.
// Each date heading sets the date for the entry lines that follow it, and
// entry lines seen before any heading get UnknownDate. Paragraphs that are
// neither headings nor entry lines are skipped without touching the
// current date. The date context lives entirely within one call, so
// concurrent calls never interfere.
func Parse(paragraphs []Paragraph) []Record {
	records := make([]Record, 0, len(paragraphs))
	currentDate := ""

	for _, p := range paragraphs {
		if date, ok := parseDateHeading(p); ok {
			currentDate = date
			continue
		}
		if rec, ok := parseEntry(p.Text, currentDate); ok {
			records = append(records, rec)
		}
	}

	return records
}

// parseDateHeading reports whether the paragraph is a date heading and, if
// so, returns the date value to carry forward. A paragraph qualifies when
// it carries emphasis, or when its normalized text opens with the date
// pattern and contains none of the prose exclusions. The value is the
// matched date pattern when the pattern test passed, otherwise the heading
// text with all whitespace removed.
func parseDateHeading(p Paragraph) (string, bool) {
	text := Normalize(p.Text)
	match := dateHeadingRe.FindString(text)

	patternHeading := match != ""
	if patternHeading {
		for _, excl := range headingExclusions {
			if strings.Contains(text, excl) {
				patternHeading = false
				break
			}
		}
	}

	switch {
	case patternHeading:
		return match, true
	case p.Emphasis:
		return stripSpace(text), true
	default:
		return "", false
	}
}

// parseEntry reports whether the paragraph text is an entry line and, if
// so, decomposes it into a Record. The marker symbol is matched on the raw
// text; the content after it is normalized before field extraction.
func parseEntry(raw, currentDate string) (Record, bool) {
	symbol, rest, ok := splitMarker(raw)
	if !ok {
		return Record{}, false
	}

	content := Normalize(strings.TrimSpace(rest))

	rec := Record{
		Date:    currentDate,
		Kind:    KindForSymbol(symbol),
		Symbol:  symbol,
		RawText: symbol + content,
	}
	if rec.Date == "" {
		rec.Date = UnknownDate
	}

	parts := strings.Fields(content)
	if len(parts) > 0 {
		rec.TargetClass = parts[0]
		parts = parts[1:]
	}
	if len(parts) > 0 && isPeriodToken(parts[0]) {
		rec.Period = parts[0]
		parts = parts[1:]
	}
	rec.Subject = strings.Join(parts, " ")

	if from, to, ok := splitSubstitution(rec.Subject); ok {
		rec.SubjectFrom = &from
		rec.SubjectTo = &to
	}

	return rec, true
}

// splitMarker splits off a recognized leading marker symbol.
func splitMarker(s string) (symbol, rest string, ok bool) {
	for _, m := range recordMarkers {
		if strings.HasPrefix(s, m) {
			return m, strings.TrimPrefix(s, m), true
		}
	}
	return "", "", false
}

// isPeriodToken reports whether a token designates a class period rather
// than the start of the subject. The heuristic is permissive on purpose:
// the bulletin writes periods as "3限", "1・2限", "7・8限" or "空きコマ",
// so any token carrying a digit or one of the two period words counts.
// A subject that happens to open with a digit-bearing token is
// misclassified; the source format cannot distinguish the two.
func isPeriodToken(token string) bool {
	if strings.ContainsAny(token, "0123456789") {
		return true
	}
	return strings.Contains(token, "限") || strings.Contains(token, "コマ")
}

// splitSubstitution splits an arrow-notation subject into its before and
// after sides. With more than one arrow, everything past the first arrow
// is rejoined with the first arrow glyph so no segment is lost. Both
// return values are meaningful only when ok is true.
func splitSubstitution(subject string) (from, to string, ok bool) {
	m := arrowRe.FindStringSubmatch(subject)
	if m == nil {
		return "", "", false
	}
	segments := arrowRe.Split(subject, -1)
	if len(segments) < 2 {
		return "", "", false
	}
	return segments[0], strings.Join(segments[1:], m[1]), true
}

// stripSpace removes every whitespace rune from s.
func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
