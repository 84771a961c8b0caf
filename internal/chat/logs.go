package chat

import (
	"time"

	"github.com/bobbyhwsong/voice-chat-app/internal/api"
)

const (
	LogsEmpty        = "해당 참여자의 로그가 없습니다."
	LogsFailed       = "로그 조회 중 오류가 발생했습니다."
	LogsNetworkError = "로그 조회 중 네트워크 오류가 발생했습니다."
)

// LogsTitle is the heading of the log viewer for a page.
func LogsTitle(page api.PageType, date, participantID string) string {
	title := "진료 대화 로그"
	if page == api.PageRetry {
		title = "이전 대화 기록"
	}
	title += " (" + date + ")"
	if participantID != "" {
		title += " - " + participantID
	}
	return title
}

// LogsFailure maps a logs error to its user-facing text.
func LogsFailure(err error) string {
	if FailureMessage(err) == ReplyFailed {
		return LogsFailed
	}
	return LogsNetworkError
}

// EntryTime parses a log entry timestamp. Unparseable values yield the zero
// time.
func EntryTime(e api.LogEntry) time.Time {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, e.Timestamp); err == nil {
			return t
		}
	}
	return time.Time{}
}
