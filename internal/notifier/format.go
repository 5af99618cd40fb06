package notifier

import (
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	"github.com/fukayatti/api.fukayatti0.dev/internal/bulletin"
)

// tweetLimit is the Twitter character limit.
const tweetLimit = 280

// formatTweet formats a single record as a tweet.
func formatTweet(rec bulletin.Record) string {
	var b strings.Builder
	b.WriteString("📢 休講・授業変更のお知らせ\n\n")
	b.WriteString(fmt.Sprintf("【%s】%s\n", rec.Kind, rec.Date))
	b.WriteString(rec.RawText)
	b.WriteString("\n\n#茨城高専")

	tweet := b.String()
	if utf8.RuneCountInString(tweet) > tweetLimit {
		runes := []rune(tweet)
		tweet = string(runes[:tweetLimit-3]) + "..."
	}

	return tweet
}

// formatDigest formats a batch of records as one Telegram message using
// HTML parse mode. Record text comes from an external page, so it is
// escaped before markup is added around it.
func formatDigest(records []bulletin.Record) string {
	var b strings.Builder
	b.WriteString("<b>📢 休講・授業変更のお知らせ</b>\n")

	for _, rec := range records {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("【%s】%s\n", html.EscapeString(rec.Kind), html.EscapeString(rec.Date)))
		b.WriteString(html.EscapeString(rec.RawText))
		b.WriteString("\n")
	}

	return b.String()
}
