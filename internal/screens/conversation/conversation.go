// Package conversation is the practice consultation screen. The same screen
// serves the first visit and the retry visit; the retry visit adds a quest
// panel driven by the latest evaluation.
package conversation

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/bobbyhwsong/voice-chat-app/internal/api"
	"github.com/bobbyhwsong/voice-chat-app/internal/chat"
	"github.com/bobbyhwsong/voice-chat-app/internal/quest"
	"github.com/bobbyhwsong/voice-chat-app/internal/router"
	"github.com/bobbyhwsong/voice-chat-app/internal/screen"
	"github.com/bobbyhwsong/voice-chat-app/internal/session"
	"github.com/bobbyhwsong/voice-chat-app/internal/ui/components"
	"github.com/bobbyhwsong/voice-chat-app/internal/ui/layout"
)

// Mode selects which visit the screen runs.
type Mode int

const (
	ModeChat Mode = iota
	ModeRetry
)

func (m Mode) page() api.PageType {
	if m == ModeRetry {
		return api.PageRetry
	}
	return api.PageChat
}

type focus int

const (
	focusInput focus = iota
	focusQuests
)

// Screen is the conversation screen.
type Screen struct {
	deps   screen.Deps
	mode   Mode
	user   session.UserSession
	noUser bool

	transcript *chat.Transcript
	input      components.TextInput
	scroll     int

	confirming bool
	confirmYes bool

	speaking bool

	tracker     *quest.Tracker
	questCursor int
	tipsShown   map[string]bool
	focus       focus
}

var (
	_ screen.Screen          = (*Screen)(nil)
	_ screen.KeyHintProvider = (*Screen)(nil)
	_ screen.EscapeCapturer  = (*Screen)(nil)
)

// NewChat creates the first-visit conversation screen.
func NewChat(deps screen.Deps) *Screen {
	return newScreen(deps, ModeChat)
}

// NewRetry creates the retry conversation screen with its quest panel.
func NewRetry(deps screen.Deps) *Screen {
	return newScreen(deps, ModeRetry)
}

func newScreen(deps screen.Deps, mode Mode) *Screen {
	u, err := deps.Sessions.Require(context.Background())
	s := &Screen{
		deps:       deps,
		mode:       mode,
		user:       u,
		noUser:     err != nil,
		transcript: chat.NewTranscript(chat.Greeting, deps.Clock),
		input:      components.NewTextInput("", "메시지를 입력하고 Enter를 누르세요", 500),
		tracker:    quest.NewTracker(),
		tipsShown:  map[string]bool{},
	}
	return s
}

func (s *Screen) Init() tea.Cmd {
	if s.noUser {
		return router.LoginRequired(s.deps.Nav)
	}
	if s.mode == ModeRetry {
		return s.loadQuests()
	}
	return nil
}

func (s *Screen) Title() string {
	if s.mode == ModeRetry {
		return "다시 연습하기"
	}
	return "진료 연습"
}

// CapturesEscape keeps Esc for the confirmation dialog and the quest
// panel.
func (s *Screen) CapturesEscape() bool {
	return s.confirming || s.focus == focusQuests
}

func (s *Screen) KeyHints() []layout.KeyHint {
	if s.confirming {
		return []layout.KeyHint{
			{Key: "y", Description: "초기화"},
			{Key: "n/Esc", Description: "취소"},
		}
	}
	finish := "피드백"
	if s.mode == ModeRetry {
		finish = "스크립트"
	}
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "보내기"},
		{Key: "^S", Description: "음성 중지"},
		{Key: "^L", Description: "로그"},
		{Key: "^R", Description: "초기화"},
		{Key: "^F", Description: finish},
	}
	if s.mode == ModeRetry {
		if s.focus == focusQuests {
			hints = []layout.KeyHint{
				{Key: "Space", Description: "완료 표시"},
				{Key: "t", Description: "팁"},
				{Key: "Tab/Esc", Description: "입력으로"},
			}
		} else {
			hints = append(hints, layout.KeyHint{Key: "Tab", Description: "퀘스트"})
		}
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "뒤로"})
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case replyMsg:
		return s, s.onReply(msg)
	case clearedMsg:
		s.onCleared(msg)
		return s, nil
	case feedbackMsg:
		s.onFeedback(msg)
		return s, nil
	case analyzedMsg:
		return s, s.onAnalyzed(msg)
	case screen.SpeechDoneMsg:
		s.speaking = false
		return s, nil
	case tea.KeyPressMsg:
		if s.confirming {
			return s, s.updateConfirm(msg)
		}
		if cmd, handled := s.handleKey(msg); handled {
			return s, cmd
		}
	}

	if s.focus == focusQuests {
		return s, nil
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *Screen) handleKey(msg tea.KeyPressMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+s":
		s.deps.StopSpeech()
		s.speaking = false
		return nil, true
	case "ctrl+l":
		route := screen.RouteChatLogs
		if s.mode == ModeRetry {
			route = screen.RouteRetryLogs
		}
		return router.Open(s.deps.Nav, route), true
	case "ctrl+r":
		s.confirming = true
		s.confirmYes = false
		return nil, true
	case "ctrl+f":
		s.deps.StopSpeech()
		next := screen.RouteFeedback
		if s.mode == ModeRetry {
			next = screen.RouteCheatsheet
		}
		return router.Switch(s.deps.Nav, next), true
	case "pgup":
		s.scroll += 5
		return nil, true
	case "pgdown":
		s.scroll -= 5
		if s.scroll < 0 {
			s.scroll = 0
		}
		return nil, true
	}

	if s.mode == ModeRetry {
		if cmd, handled := s.handleQuestKey(msg); handled {
			return cmd, true
		}
	}

	if s.focus == focusInput && msg.String() == "enter" {
		return s.send(), true
	}
	return nil, false
}

// send posts the typed message. A second send while a reply is pending is
// not blocked.
func (s *Screen) send() tea.Cmd {
	text := s.input.Take()
	if text == "" {
		return nil
	}
	s.scroll = 0
	s.transcript.AddUser(text)
	s.transcript.BeginReply()

	client, log := s.deps.Client, s.deps.Log()
	req := api.ChatRequest{Message: text, ParticipantID: s.user.ParticipantID, PageType: s.mode.page()}
	return func() tea.Msg {
		reply, err := client.Chat(context.Background(), req)
		if err != nil {
			log.Warn("chat failed", zap.String("page_type", string(req.PageType)), zap.Error(err))
		}
		return replyMsg{user: text, reply: reply, err: err}
	}
}

func (s *Screen) onReply(msg replyMsg) tea.Cmd {
	m := s.transcript.ResolveReply(msg.reply, msg.err)
	if msg.err != nil {
		return nil
	}

	s.deps.StopSpeech()
	speak := s.deps.Speak(s.user.ParticipantID, m.Text)
	s.speaking = speak != nil

	var analyze tea.Cmd
	if s.mode == ModeRetry {
		analyze = s.analyze(msg.user, msg.reply)
	}
	return tea.Batch(speak, analyze)
}

func (s *Screen) updateConfirm(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "y":
		s.confirming = false
		return s.clear()
	case "n", "esc":
		s.confirming = false
	case "left", "right", "tab":
		s.confirmYes = !s.confirmYes
	case "enter":
		s.confirming = false
		if s.confirmYes {
			return s.clear()
		}
	}
	return nil
}

func (s *Screen) clear() tea.Cmd {
	s.deps.StopSpeech()
	client, log, pid := s.deps.Client, s.deps.Log(), s.user.ParticipantID
	return func() tea.Msg {
		err := client.Clear(context.Background(), pid)
		if err != nil {
			log.Warn("clear conversation failed", zap.Error(err))
		}
		return clearedMsg{err: err}
	}
}

func (s *Screen) onCleared(msg clearedMsg) {
	s.scroll = 0
	if msg.err != nil {
		s.transcript.AddBot(chat.ClearFailed)
		return
	}
	s.transcript.Reset()
	s.transcript.AddBot(chat.Cleared)
}
