// Package guideline is the pre-visit checklist screen.
package guideline

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/bobbyhwsong/voice-chat-app/internal/guideline"
	"github.com/bobbyhwsong/voice-chat-app/internal/notify"
	"github.com/bobbyhwsong/voice-chat-app/internal/router"
	"github.com/bobbyhwsong/voice-chat-app/internal/screen"
	"github.com/bobbyhwsong/voice-chat-app/internal/session"
	"github.com/bobbyhwsong/voice-chat-app/internal/ui/components"
	"github.com/bobbyhwsong/voice-chat-app/internal/ui/layout"
	"github.com/bobbyhwsong/voice-chat-app/internal/ui/theme"
)

const (
	NotReady   = "모든 항목을 확인한 뒤 시작할 수 있습니다."
	Started    = "진료 연습을 시작합니다."
	SaveFailed = "가이드라인 완료 상태를 저장하지 못했습니다."
)

// GuidelineScreen asks the participant to confirm every checklist item
// before the chat opens.
type GuidelineScreen struct {
	deps   screen.Deps
	user   session.UserSession
	noUser bool
	list   components.Checklist
}

var (
	_ screen.Screen          = (*GuidelineScreen)(nil)
	_ screen.KeyHintProvider = (*GuidelineScreen)(nil)
)

// New creates a GuidelineScreen.
func New(deps screen.Deps) *GuidelineScreen {
	u, err := deps.Sessions.Require(context.Background())
	return &GuidelineScreen{
		deps:   deps,
		user:   u,
		noUser: err != nil,
		list:   components.NewChecklist(guideline.Items),
	}
}

func (g *GuidelineScreen) Init() tea.Cmd {
	if g.noUser {
		return router.LoginRequired(g.deps.Nav)
	}
	return nil
}

func (g *GuidelineScreen) Title() string {
	return "진료 전 가이드라인"
}

func (g *GuidelineScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Space", Description: "확인"},
		{Key: "1-5", Description: "항목 선택"},
		{Key: "Enter", Description: "시작"},
		{Key: "Esc", Description: "뒤로"},
	}
}

func (g *GuidelineScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok && kmsg.String() == "enter" {
		return g, g.start()
	}
	var cmd tea.Cmd
	g.list, cmd = g.list.Update(msg)
	return g, cmd
}

func (g *GuidelineScreen) start() tea.Cmd {
	if !guideline.Ready(g.list.Checked) {
		return notify.Cmd(NotReady, notify.KindInfo)
	}
	u, err := guideline.Complete(context.Background(), g.deps.Sessions, g.list.Checked, g.deps.Clock())
	if err != nil {
		g.deps.Log().Error("complete guideline failed", zap.Error(err))
		return notify.Cmd(SaveFailed, notify.KindError)
	}
	g.user = u
	return tea.Batch(
		notify.Cmd(Started, notify.KindSuccess),
		router.Switch(g.deps.Nav, screen.RouteChat),
	)
}

func (g *GuidelineScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.Body.Render("실제 진료처럼 연습하기 위해 아래 항목을 확인해주세요."))
	b.WriteString("\n\n")
	b.WriteString(g.list.View(cw - 4))
	b.WriteString("\n")

	bar := components.NewCounterBar("확인", g.list.CheckedCount(), len(g.list.Items), cw-4)
	b.WriteString(bar.View())
	b.WriteString("\n\n")

	button := components.NewButton("진료 연습 시작", nil)
	button.Disabled = !guideline.Ready(g.list.Checked)
	b.WriteString(button.View())
	if button.Disabled {
		b.WriteString("  " + theme.Hint.Render(fmt.Sprintf("%d개 남음", len(g.list.Items)-g.list.CheckedCount())))
	}

	card := components.Card("📋 진료 전 확인 사항", b.String(), cw)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
