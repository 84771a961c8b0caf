// Package cheatsheet shows the consultation script generated after the
// retry visit.
package cheatsheet

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/bobbyhwsong/voice-chat-app/internal/api"
	sheet "github.com/bobbyhwsong/voice-chat-app/internal/cheatsheet"
	"github.com/bobbyhwsong/voice-chat-app/internal/notify"
	"github.com/bobbyhwsong/voice-chat-app/internal/router"
	"github.com/bobbyhwsong/voice-chat-app/internal/screen"
	"github.com/bobbyhwsong/voice-chat-app/internal/ui/components"
	"github.com/bobbyhwsong/voice-chat-app/internal/ui/layout"
	"github.com/bobbyhwsong/voice-chat-app/internal/ui/theme"
)

const (
	finishTitle = "🎉 모든 연습을 마쳤습니다!"
	finishBody  = "수고하셨습니다. 실제 진료에서도 스크립트를 활용해 보세요."
)

type generatedMsg struct {
	cs      *api.Cheatsheet
	outcome sheet.Outcome
	err     error
}

// Option configures a CheatsheetScreen.
type Option func(*CheatsheetScreen)

// WithStyle sets the glamour style used to render the script.
func WithStyle(style string) Option {
	return func(c *CheatsheetScreen) { c.style = style }
}

// CheatsheetScreen generates and displays the cheatsheet.
type CheatsheetScreen struct {
	deps          screen.Deps
	participantID string
	style         string
	copy          func(*api.Cheatsheet) error

	cs      *api.Cheatsheet
	loading bool

	rendered      string
	renderedWidth int

	scroll      int
	popup       bool
	popupChoice int
}

var (
	_ screen.Screen          = (*CheatsheetScreen)(nil)
	_ screen.KeyHintProvider = (*CheatsheetScreen)(nil)
	_ screen.EscapeCapturer  = (*CheatsheetScreen)(nil)
)

// New creates a CheatsheetScreen. A missing session is reported instead of
// redirecting.
func New(deps screen.Deps, opts ...Option) *CheatsheetScreen {
	c := &CheatsheetScreen{
		deps:  deps,
		style: "dark",
		copy:  sheet.Copy,
	}
	if u, err := deps.Sessions.Require(context.Background()); err == nil {
		c.participantID = u.ParticipantID
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *CheatsheetScreen) Init() tea.Cmd {
	return c.generate()
}

func (c *CheatsheetScreen) generate() tea.Cmd {
	if c.participantID == "" {
		return notify.Cmd(sheet.NoParticipant.Message(), notify.KindError)
	}
	c.loading = true
	client, pid := c.deps.Client, c.participantID
	return func() tea.Msg {
		cs, outcome, err := sheet.Generate(context.Background(), client, pid)
		return generatedMsg{cs: cs, outcome: outcome, err: err}
	}
}

func (c *CheatsheetScreen) Title() string {
	return "진료 스크립트"
}

func (c *CheatsheetScreen) CapturesEscape() bool {
	return c.popup
}

func (c *CheatsheetScreen) KeyHints() []layout.KeyHint {
	if c.popup {
		return []layout.KeyHint{
			{Key: "←/→", Description: "선택"},
			{Key: "Enter", Description: "확인"},
			{Key: "Esc", Description: "닫기"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑/↓", Description: "스크롤"},
		{Key: "c", Description: "전체 복사"},
		{Key: "r", Description: "다시 생성"},
		{Key: "f", Description: "완료"},
		{Key: "Esc", Description: "뒤로"},
	}
}

func (c *CheatsheetScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case generatedMsg:
		c.loading = false
		c.cs = msg.cs
		c.rendered = ""
		c.scroll = 0
		if msg.err != nil {
			c.deps.Log().Warn("generate cheatsheet failed, showing default",
				zap.String("participant_id", c.participantID), zap.Error(msg.err))
		}
		kind := notify.KindError
		if msg.outcome.Success() {
			kind = notify.KindSuccess
		}
		return c, notify.Cmd(msg.outcome.Message(), kind)

	case tea.KeyPressMsg:
		if c.popup {
			return c, c.updatePopup(msg)
		}
		return c, c.handleKey(msg)
	}
	return c, nil
}

func (c *CheatsheetScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if c.scroll > 0 {
			c.scroll--
		}
	case "down", "j":
		c.scroll++
	case "pgup":
		c.scroll -= 10
		if c.scroll < 0 {
			c.scroll = 0
		}
	case "pgdown", "space":
		c.scroll += 10
	case "home", "g":
		c.scroll = 0
	case "c":
		return c.copyAll()
	case "r":
		if !c.loading {
			return c.generate()
		}
	case "f":
		c.popup = true
		c.popupChoice = 1
	}
	return nil
}

func (c *CheatsheetScreen) copyAll() tea.Cmd {
	if c.cs == nil {
		return nil
	}
	if err := c.copy(c.cs); err != nil {
		c.deps.Log().Warn("copy cheatsheet failed", zap.Error(err))
		return notify.Cmd(sheet.CopyFailed, notify.KindError)
	}
	return notify.Cmd(sheet.CopiedMessage, notify.KindSuccess)
}

func (c *CheatsheetScreen) updatePopup(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		c.popup = false
	case "left", "right", "tab", "h", "l":
		c.popupChoice = 1 - c.popupChoice
	case "enter":
		c.popup = false
		if c.popupChoice == 1 {
			c.deps.StopSpeech()
			return router.Restart(c.deps.Nav, screen.RouteHome)
		}
	}
	return nil
}

func (c *CheatsheetScreen) View(width, height int) string {
	if c.popup {
		dialog := components.Dialog(finishTitle, finishBody, []string{"닫기", "홈으로"}, c.popupChoice, width)
		return components.Center(dialog, width, height)
	}

	if c.loading || c.cs == nil {
		text := sheet.LoadingScript
		if !c.loading {
			text = sheet.NoParticipant.Message()
		}
		return components.Center(theme.Hint.Render(text), width, height)
	}

	body := c.render(width)
	lines := strings.Split(body, "\n")
	maxScroll := len(lines) - height
	if maxScroll < 0 {
		maxScroll = 0
	}
	if c.scroll > maxScroll {
		c.scroll = maxScroll
	}
	end := c.scroll + height
	if end > len(lines) {
		end = len(lines)
	}
	return lipgloss.NewStyle().Width(width).Render(strings.Join(lines[c.scroll:end], "\n"))
}

// render converts the cheatsheet to terminal output, caching by width.
func (c *CheatsheetScreen) render(width int) string {
	if c.rendered != "" && c.renderedWidth == width {
		return c.rendered
	}
	md := sheet.Markdown(c.cs)
	out, err := sheet.Render(md, width-4, c.style)
	if err != nil {
		c.deps.Log().Warn("render cheatsheet failed", zap.Error(err))
		out = md
	}
	c.rendered = strings.TrimRight(out, "\n")
	c.renderedWidth = width
	return c.rendered
}
