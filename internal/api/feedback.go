package api

import "time"

// LatestFeedback returns the most recent entry by evaluation date, or nil
// when there is none. Entries with unparseable dates rank by position.
func LatestFeedback(entries []FeedbackEntry) *FeedbackEntry {
	if len(entries) == 0 {
		return nil
	}
	best := len(entries) - 1
	bestAt, _ := parseEvalDate(entries[best].EvaluationDate)
	for i := range entries {
		at, ok := parseEvalDate(entries[i].EvaluationDate)
		if ok && at.After(bestAt) {
			best, bestAt = i, at
		}
	}
	return &entries[best]
}

func parseEvalDate(s string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999", "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
