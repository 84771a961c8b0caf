// Package feedback shows the checklist evaluation of the last
// conversation together with the voice analysis and the transcript.
package feedback

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/bobbyhwsong/voice-chat-app/internal/api"
	"github.com/bobbyhwsong/voice-chat-app/internal/evaluation"
	"github.com/bobbyhwsong/voice-chat-app/internal/router"
	"github.com/bobbyhwsong/voice-chat-app/internal/screen"
	"github.com/bobbyhwsong/voice-chat-app/internal/session"
	"github.com/bobbyhwsong/voice-chat-app/internal/ui/layout"
)

type logsMsg struct {
	logs []api.LogEntry
	err  error
}

type evaluatedMsg struct {
	ev  *api.Evaluation
	err error
}

type voiceMsg struct {
	analysis *api.VoiceAnalysis
	err      error
}

// FeedbackScreen loads the conversation log, asks the backend to grade it
// and shows the result.
type FeedbackScreen struct {
	deps   screen.Deps
	user   session.UserSession
	noUser bool

	state       *evaluation.State
	logs        []api.LogEntry
	logsLoaded  bool
	voice       *api.VoiceAnalysis
	voiceFailed bool

	cursor int
	scroll int
}

var (
	_ screen.Screen          = (*FeedbackScreen)(nil)
	_ screen.KeyHintProvider = (*FeedbackScreen)(nil)
)

// New creates a FeedbackScreen.
func New(deps screen.Deps) *FeedbackScreen {
	u, err := deps.Sessions.Require(context.Background())
	return &FeedbackScreen{
		deps:   deps,
		user:   u,
		noUser: err != nil,
		state:  evaluation.NewState(),
	}
}

func (f *FeedbackScreen) Init() tea.Cmd {
	if f.noUser {
		return router.LoginRequired(f.deps.Nav)
	}
	client, pid := f.deps.Client, f.user.ParticipantID
	return func() tea.Msg {
		resp, err := client.Logs(context.Background(), pid, api.PageChat)
		if err != nil {
			return logsMsg{err: err}
		}
		return logsMsg{logs: resp.Logs}
	}
}

func (f *FeedbackScreen) Title() string {
	return "피드백"
}

func (f *FeedbackScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑/↓", Description: "항목"},
		{Key: "Space", Description: "이유 보기"},
		{Key: "PgUp/PgDn", Description: "스크롤"},
		{Key: "r", Description: "다시 연습"},
		{Key: "c", Description: "스크립트"},
		{Key: "Esc", Description: "뒤로"},
	}
}

func (f *FeedbackScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case logsMsg:
		return f, f.onLogs(msg)

	case evaluatedMsg:
		if msg.err != nil {
			f.deps.Log().Warn("evaluation failed", zap.Error(msg.err))
			f.state.SetError()
			return f, nil
		}
		f.state.Apply(*msg.ev)
		f.deps.Log().Info("evaluation loaded",
			zap.String("participant_id", f.user.ParticipantID),
			zap.Int("score", f.state.Summary().Score))
		return f, nil

	case voiceMsg:
		if msg.err != nil {
			f.deps.Log().Warn("voice analysis failed", zap.Error(msg.err))
			fallback := evaluation.VoiceFallback()
			f.voice = &fallback
			f.voiceFailed = true
			return f, nil
		}
		f.voice = msg.analysis
		return f, nil

	case tea.KeyPressMsg:
		return f, f.handleKey(msg)
	}
	return f, nil
}

func (f *FeedbackScreen) onLogs(msg logsMsg) tea.Cmd {
	f.logsLoaded = true
	if msg.err != nil {
		f.deps.Log().Warn("load logs failed", zap.Error(msg.err))
		f.state.SetNoData()
		return nil
	}
	if len(msg.logs) == 0 {
		f.state.SetNoData()
		return nil
	}
	f.logs = msg.logs

	client, pid, logs := f.deps.Client, f.user.ParticipantID, msg.logs
	evaluate := func() tea.Msg {
		ev, err := client.Evaluate(context.Background(), api.EvaluateRequest{
			Logs:          logs,
			ParticipantID: pid,
		})
		return evaluatedMsg{ev: ev, err: err}
	}
	analyze := func() tea.Msg {
		a, err := client.AnalyzeVoice(context.Background(), api.AnalyzeVoiceRequest{
			Messages:      evaluation.VoiceMessages(logs),
			ParticipantID: pid,
		})
		return voiceMsg{analysis: a, err: err}
	}
	return tea.Batch(evaluate, analyze)
}

func (f *FeedbackScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	rows := f.state.Rows()
	switch msg.String() {
	case "up", "k":
		if f.cursor > 0 {
			f.cursor--
		}
	case "down", "j":
		if f.cursor < len(rows)-1 {
			f.cursor++
		}
	case "space", "enter":
		if f.cursor < len(rows) {
			f.state.ToggleReason(rows[f.cursor].Key)
		}
	case "pgup":
		f.scroll -= 5
		if f.scroll < 0 {
			f.scroll = 0
		}
	case "pgdown":
		f.scroll += 5
	case "home":
		f.scroll = 0
	case "r":
		return router.Switch(f.deps.Nav, screen.RouteRetry)
	case "c":
		return router.Switch(f.deps.Nav, screen.RouteCheatsheet)
	}
	return nil
}
