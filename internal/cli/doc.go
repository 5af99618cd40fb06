// Package cli implements the command-line interface for kyuko-api.
//
// The cli package provides the Cobra-based CLI with commands to serve the
// HTTP API, check the bulletin once with filtering and formatted output
// (text/JSON), and watch the bulletin on an interval, announcing new
// records through a notifier. It coordinates the scraper, snapshot and
// notifier packages.
package cli
