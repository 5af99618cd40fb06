package notifier

import (
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/fukayatti/api.fukayatti0.dev/internal/bulletin"
)

// DryRunNotifier prints what would be posted without actually posting.
type DryRunNotifier struct {
	out io.Writer
}

// NewDryRunNotifier creates a dry-run notifier writing to out, or to
// stdout when out is nil.
func NewDryRunNotifier(out io.Writer) *DryRunNotifier {
	if out == nil {
		out = os.Stdout
	}
	return &DryRunNotifier{out: out}
}

// Notify prints the notifications that would be sent.
func (n *DryRunNotifier) Notify(records []bulletin.Record) error {
	for i, rec := range records {
		tweet := formatTweet(rec)
		fmt.Fprintf(n.out, "--- Notification %d/%d ---\n", i+1, len(records))
		fmt.Fprintln(n.out, tweet)
		fmt.Fprintf(n.out, "\n(Length: %d characters)\n\n", utf8.RuneCountInString(tweet))
	}
	return nil
}
