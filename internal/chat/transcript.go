// Package chat keeps the visible conversation of a practice consultation.
package chat

import (
	"errors"
	"time"

	"github.com/bobbyhwsong/voice-chat-app/internal/api"
)

// Role identifies who a message belongs to.
type Role int

const (
	RoleBot Role = iota
	RoleUser
)

const (
	Greeting         = "안녕하세요. 오늘 어디가 불편해서 오셨나요?"
	Thinking         = "생각 중입니다..."
	ReplyFailed      = "죄송합니다. 응답을 생성하는 중에 오류가 발생했습니다."
	NetworkFailed    = "네트워크 오류가 발생했습니다. 서버가 실행 중인지 확인해주세요."
	ClearConfirm     = "정말로 진료 세션을 초기화하시겠습니까?"
	ClearConfirmHint = "모든 대화 내용이 삭제됩니다."
	Cleared          = "진료 세션이 초기화되었습니다."
	ClearFailed      = "진료 세션 초기화 중 오류가 발생했습니다."
)

// Message is one line of the transcript.
type Message struct {
	Role    Role
	Text    string
	Time    time.Time
	Pending bool
	Warning bool
}

// Clock formats the message time as HH:MM.
func (m Message) Clock() string {
	return m.Time.Format("15:04")
}

// Transcript is an append-only list of messages whose first entry is the
// greeting.
type Transcript struct {
	messages []Message
	now      func() time.Time
}

// NewTranscript starts a transcript with the greeting. now may be nil.
func NewTranscript(greeting string, now func() time.Time) *Transcript {
	if now == nil {
		now = time.Now
	}
	t := &Transcript{now: now}
	t.append(Message{Role: RoleBot, Text: greeting})
	return t
}

func (t *Transcript) append(m Message) {
	m.Time = t.now()
	t.messages = append(t.messages, m)
}

// AddUser appends the participant's message.
func (t *Transcript) AddUser(text string) {
	t.append(Message{Role: RoleUser, Text: text})
}

// AddBot appends a doctor message.
func (t *Transcript) AddBot(text string) {
	t.append(Message{Role: RoleBot, Text: text})
}

// AddWarning appends a highlighted bot-side notice.
func (t *Transcript) AddWarning(text string) {
	t.append(Message{Role: RoleBot, Text: "⚠️ " + text, Warning: true})
}

// BeginReply appends the thinking placeholder.
func (t *Transcript) BeginReply() {
	t.append(Message{Role: RoleBot, Text: Thinking, Pending: true})
}

// ResolveReply removes the trailing placeholder, if any, and appends either
// the reply or a failure message. It returns the appended message.
func (t *Transcript) ResolveReply(reply string, err error) Message {
	if n := len(t.messages); n > 0 && t.messages[n-1].Pending {
		t.messages = t.messages[:n-1]
	}
	if err != nil {
		t.AddBot(FailureMessage(err))
	} else {
		t.AddBot(reply)
	}
	return t.messages[len(t.messages)-1]
}

// Waiting reports whether a reply placeholder is showing.
func (t *Transcript) Waiting() bool {
	n := len(t.messages)
	return n > 0 && t.messages[n-1].Pending
}

// Reset drops everything except the greeting.
func (t *Transcript) Reset() {
	if len(t.messages) > 1 {
		t.messages = t.messages[:1]
	}
}

// Messages returns a copy of the transcript.
func (t *Transcript) Messages() []Message {
	return append([]Message(nil), t.messages...)
}

// Len returns the number of messages.
func (t *Transcript) Len() int { return len(t.messages) }

// FailureMessage maps a chat error to the text shown in place of a reply.
// A backend that answered with an error status gets the apology; anything
// else is treated as the server being unreachable.
func FailureMessage(err error) string {
	var status *api.ErrStatus
	if errors.As(err, &status) {
		return ReplyFailed
	}
	return NetworkFailed
}
