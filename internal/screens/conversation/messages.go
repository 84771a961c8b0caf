package conversation

import "github.com/bobbyhwsong/voice-chat-app/internal/api"

// replyMsg carries the doctor's answer to one user message.
type replyMsg struct {
	user  string
	reply string
	err   error
}

// clearedMsg reports the outcome of a backend session reset.
type clearedMsg struct {
	err error
}

// feedbackMsg carries the stored evaluations a retry visit derives its
// quests from.
type feedbackMsg struct {
	entries []api.FeedbackEntry
	err     error
}

// analyzedMsg carries the analyzer's verdict on one exchange.
type analyzedMsg struct {
	user string
	bot  string
	ids  []string
	err  error
}
