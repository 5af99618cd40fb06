// Package scraper fetches the school cancellation bulletin page and turns
// it into parsed records.
//
// The scraper issues a single bounded GET against the configured bulletin
// URL, decodes the body according to its declared charset, decomposes the
// content container into paragraphs and hands them to the bulletin parser.
// Upstream failures surface as sentinel errors so callers can map them to
// distinct response categories.
package scraper
