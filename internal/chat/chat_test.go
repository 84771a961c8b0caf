package chat

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobbyhwsong/voice-chat-app/internal/api"
)

func fixedClock() func() time.Time {
	t := time.Date(2026, 5, 4, 14, 7, 0, 0, time.Local)
	return func() time.Time { return t }
}

func TestNewTranscriptHasGreeting(t *testing.T) {
	tr := NewTranscript(Greeting, fixedClock())
	msgs := tr.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, RoleBot, msgs[0].Role)
	assert.Equal(t, Greeting, msgs[0].Text)
	assert.Equal(t, "14:07", msgs[0].Clock())
}

func TestReplyReplacesPlaceholder(t *testing.T) {
	tr := NewTranscript(Greeting, fixedClock())
	tr.AddUser("머리가 아파요")
	tr.BeginReply()
	assert.True(t, tr.Waiting())
	assert.Equal(t, Thinking, tr.Messages()[2].Text)

	got := tr.ResolveReply("언제부터 아프셨나요?", nil)
	assert.Equal(t, "언제부터 아프셨나요?", got.Text)
	assert.False(t, tr.Waiting())

	msgs := tr.Messages()
	require.Len(t, msgs, 3)
	for _, m := range msgs {
		assert.NotEqual(t, Thinking, m.Text)
	}
}

func TestReplyFailures(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"error status", &api.ErrStatus{Endpoint: "/api/chat", Status: "error"}, ReplyFailed},
		{"unreachable", &api.ErrUnavailable{Endpoint: "/api/chat", Err: errors.New("connection refused")}, NetworkFailed},
		{"bad payload", &api.ErrInvalidResponse{Endpoint: "/api/chat"}, NetworkFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTranscript(Greeting, fixedClock())
			tr.AddUser("hi")
			tr.BeginReply()
			got := tr.ResolveReply("", tt.err)
			assert.Equal(t, tt.want, got.Text)
			assert.Equal(t, 3, tr.Len())
		})
	}
}

func TestResolveWithoutPlaceholder(t *testing.T) {
	tr := NewTranscript(Greeting, fixedClock())
	tr.AddUser("hi")
	tr.ResolveReply("hello", nil)
	assert.Equal(t, 3, tr.Len(), "the user message must not be removed")
}

func TestResetKeepsGreeting(t *testing.T) {
	tr := NewTranscript(Greeting, fixedClock())
	tr.AddUser("a")
	tr.AddBot("b")
	tr.AddWarning("c")
	tr.Reset()
	tr.AddBot(Cleared)

	msgs := tr.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, Greeting, msgs[0].Text)
	assert.Equal(t, Cleared, msgs[1].Text)
}

func TestAddWarning(t *testing.T) {
	tr := NewTranscript(Greeting, fixedClock())
	tr.AddWarning(LogsNetworkError)
	m := tr.Messages()[1]
	assert.True(t, m.Warning)
	assert.Equal(t, "⚠️ "+LogsNetworkError, m.Text)
}

func TestLogsTitle(t *testing.T) {
	assert.Equal(t, "진료 대화 로그 (2026-05-04) - P3", LogsTitle(api.PageChat, "2026-05-04", "P3"))
	assert.Equal(t, "이전 대화 기록 (2026-05-04)", LogsTitle(api.PageRetry, "2026-05-04", ""))
}

func TestLogsFailure(t *testing.T) {
	assert.Equal(t, LogsFailed, LogsFailure(&api.ErrStatus{}))
	assert.Equal(t, LogsNetworkError, LogsFailure(&api.ErrUnavailable{}))
}

func TestEntryTime(t *testing.T) {
	got := EntryTime(api.LogEntry{Timestamp: "2026-05-04T14:07:33.123456"})
	assert.Equal(t, 14, got.Hour())
	assert.Equal(t, 33, got.Second())

	assert.True(t, EntryTime(api.LogEntry{Timestamp: "yesterday"}).IsZero())
}
