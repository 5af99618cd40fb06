// Package bulletin turns the text of a school cancellation bulletin into
// structured records.
//
// The bulletin is published as loosely formatted paragraphs. A paragraph is
// either a date heading ("1/6(火)"), an entry line opening with one of the
// marker symbols (◉ cancellation, ◎ make-up, ☆ substitution, ◇ room change),
// or prose that carries no data. The parser walks the paragraphs once, keeps
// the most recent date heading as context, and emits a Record for every
// entry line under it. All comparisons run on width-normalized text so that
// full-width digits, slashes and parentheses behave like their ASCII forms.
package bulletin
