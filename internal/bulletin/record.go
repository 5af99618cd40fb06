package bulletin

import (
	"crypto/sha1"
	"fmt"
)

// Marker symbols used by the bulletin to open an entry line.
const (
	SymbolCancellation = "◉"
	SymbolMakeup       = "◎"
	SymbolSubstitution = "☆"
	SymbolRoomChange   = "◇"
)

// Kind labels assigned to records. The Japanese values mirror the wording
// used on the bulletin itself; KindOther marks symbols outside the table.
const (
	KindCancellation = "休講"
	KindMakeup       = "補講"
	KindSubstitution = "授業変更"
	KindRoomChange   = "教室変更"
	KindOther        = "other"
)

// UnknownDate is the date value for records that appear before any date
// heading in the bulletin.
const UnknownDate = "date unknown"

// Record represents one entry line of the bulletin: a cancelled, added,
// substituted or relocated class session.
type Record struct {
	Date        string  `json:"date"`
	Kind        string  `json:"kind"`
	Symbol      string  `json:"symbol"`
	TargetClass string  `json:"target_class"`
	Period      string  `json:"period"`
	Subject     string  `json:"subject"`
	SubjectFrom *string `json:"subject_from,omitempty"`
	SubjectTo   *string `json:"subject_to,omitempty"`
	RawText     string  `json:"raw_text"`
}

// KindForSymbol maps a marker symbol to its kind label. Symbols outside the
// four-entry table map to KindOther.
func KindForSymbol(symbol string) string {
	switch symbol {
	case SymbolCancellation:
		return KindCancellation
	case SymbolMakeup:
		return KindMakeup
	case SymbolSubstitution:
		return KindSubstitution
	case SymbolRoomChange:
		return KindRoomChange
	default:
		return KindOther
	}
}

// ID returns a deterministic identifier for the record based on its date and
// raw text, suitable for deduplication and calendar UIDs.
func (r Record) ID() string {
	h := sha1.New()
	h.Write([]byte(r.Date + "|" + r.RawText))
	return fmt.Sprintf("%x", h.Sum(nil))
}

// IsSubstitution reports whether the record carries an arrow-notation
// subject change. SubjectFrom and SubjectTo are always set together.
func (r Record) IsSubstitution() bool {
	return r.SubjectFrom != nil && r.SubjectTo != nil
}
