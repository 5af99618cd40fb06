package bulletin

import "strings"

// The fullwidth forms block U+FF01..U+FF5E mirrors printable ASCII
// ! through ~ at a fixed code point offset.
const (
	fullwidthFirst  = '！' // U+FF01
	fullwidthLast   = '～' // U+FF5E
	fullwidthOffset = 0xFEE0

	ideographicSpace = '　' // U+3000
)

// Normalize folds full-width characters to their half-width equivalents so
// that digits, letters, slashes and parentheses compare equally regardless
// of how the bulletin author typed them. Ideographic spaces become ASCII
// spaces. The fold is limited to the U+FF01..U+FF5E block; marker symbols,
// kana and kanji pass through untouched. Applying Normalize twice yields
// the same result as applying it once.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= fullwidthFirst && r <= fullwidthLast:
			b.WriteRune(r - fullwidthOffset)
		case r == ideographicSpace:
			b.WriteByte(' ')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
