package bulletin

import (
	"regexp"
	"strconv"
	"time"
)

var monthDayRe = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})`)

// ParseDate resolves a record date such as "1/6(火)" to a concrete day.
// Bulletin dates never carry a year, so of the previous, current and next
// year the candidate closest to now wins; a January heading read in
// December resolves to the coming January. Returns time.Time{} (zero
// value) when the date does not open with M/D, including the UnknownDate
// sentinel.
func ParseDate(date string) time.Time {
	return ResolveDate(date, time.Now())
}

// ResolveDate is ParseDate with an explicit reference time for the year
// inference.
func ResolveDate(date string, now time.Time) time.Time {
	m := monthDayRe.FindStringSubmatch(date)
	if m == nil {
		return time.Time{}
	}
	month, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}
	}

	var best time.Time
	var bestGap time.Duration
	for _, year := range []int{now.Year() - 1, now.Year(), now.Year() + 1} {
		candidate := time.Date(year, time.Month(month), day, 0, 0, 0, 0, now.Location())
		gap := candidate.Sub(now)
		if gap < 0 {
			gap = -gap
		}
		if best.IsZero() || gap < bestGap {
			best, bestGap = candidate, gap
		}
	}
	return best
}
