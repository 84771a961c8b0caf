// Package app wires the screens into the root Bubble Tea model.
package app

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/bobbyhwsong/voice-chat-app/internal/api"
	"github.com/bobbyhwsong/voice-chat-app/internal/notify"
	"github.com/bobbyhwsong/voice-chat-app/internal/router"
	"github.com/bobbyhwsong/voice-chat-app/internal/screen"
	"github.com/bobbyhwsong/voice-chat-app/internal/screens/welcome"
	"github.com/bobbyhwsong/voice-chat-app/internal/session"
	"github.com/bobbyhwsong/voice-chat-app/internal/speech"
	"github.com/bobbyhwsong/voice-chat-app/internal/store"
	"github.com/bobbyhwsong/voice-chat-app/internal/ui/layout"
)

// Options holds the services the TUI runs on. Speaker and Events may be
// nil.
type Options struct {
	Client   api.Client
	Sessions *session.Store
	Events   store.EventRepo
	Speaker  *speech.Speaker
	Logger   *zap.Logger
	VisitID  string
	Now      func() time.Time

	// CheatsheetStyle is the glamour style name; "" keeps the screen default.
	CheatsheetStyle string

	// SkipWelcome starts directly at home or login.
	SkipWelcome bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router      *router.Router
	nav         *navigator
	deps        screen.Deps
	toast       notify.Presenter
	participant string
	width       int
	height      int
}

// newAppModel creates the model, starting at the welcome splash.
func newAppModel(opts Options) AppModel {
	deps := screen.Deps{
		Client:   opts.Client,
		Sessions: opts.Sessions,
		Events:   opts.Events,
		Speaker:  opts.Speaker,
		Logger:   opts.Logger,
		VisitID:  opts.VisitID,
		Now:      opts.Now,
	}
	nav := newNavigator(deps, opts.CheatsheetStyle)

	var first screen.Screen
	if opts.SkipWelcome {
		first = nav.entry()
	} else {
		first = welcome.New(nav.entry)
	}

	m := AppModel{
		router: router.New(first),
		nav:    nav,
		deps:   nav.deps,
		toast:  notify.New(),
	}
	if u, err := opts.Sessions.Require(context.Background()); err == nil {
		m.participant = u.ParticipantID
	}
	return m
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case notify.ShowMsg, notify.QuestMsg:
		var cmd tea.Cmd
		m.toast, cmd = m.toast.Update(msg)
		return m, cmd

	case screen.SessionChangedMsg:
		m.participant = msg.Participant
		return m, m.router.Update(msg)

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			m.deps.StopSpeech()
			return m, tea.Quit
		case "esc":
			if c, ok := m.router.Active().(screen.EscapeCapturer); ok && c.CapturesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, router.Back()
			}
			return m, nil
		}
	}

	var toastCmd tea.Cmd
	m.toast, toastCmd = m.toast.Update(msg)
	cmd := m.router.Update(msg)
	return m, tea.Batch(toastCmd, cmd)
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(layout.Header{
		Title:       title,
		Participant: m.participant,
		Speaking:    m.deps.Speaker != nil && m.deps.Speaker.Playing(),
	}, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)
	toast := m.toast.View(m.width)

	content := m.router.View(m.width, layout.ContentHeight(header, toast, footer, m.height))
	v.SetContent(layout.RenderFrame(header, toast, content, footer, m.width, m.height))
	return v
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		return append(p.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "종료"})
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "뒤로"},
			{Key: "Ctrl+C", Description: "종료"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "이동"},
		{Key: "Enter", Description: "선택"},
		{Key: "Ctrl+C", Description: "종료"},
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if opts.Speaker != nil {
		opts.Speaker.Close()
	}
	if err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
