package home

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/bobbyhwsong/voice-chat-app/internal/notify"
	"github.com/bobbyhwsong/voice-chat-app/internal/router"
	"github.com/bobbyhwsong/voice-chat-app/internal/screen"
	"github.com/bobbyhwsong/voice-chat-app/internal/session"
	"github.com/bobbyhwsong/voice-chat-app/internal/ui/components"
	"github.com/bobbyhwsong/voice-chat-app/internal/ui/layout"
)

// LoggedOut is announced after logout.
const LoggedOut = "로그아웃되었습니다."

// HomeScreen is the main menu shown after login.
type HomeScreen struct {
	deps    screen.Deps
	user    session.UserSession
	noUser  bool
	menu    components.Menu
	compact bool
}

var (
	_ screen.Screen          = (*HomeScreen)(nil)
	_ screen.KeyHintProvider = (*HomeScreen)(nil)
)

// New creates a HomeScreen for the stored participant.
func New(deps screen.Deps) *HomeScreen {
	h := &HomeScreen{deps: deps}
	u, err := deps.Sessions.Require(context.Background())
	if err != nil {
		h.noUser = true
	}
	h.user = u
	h.menu = components.NewMenu(h.items())
	return h
}

func (h *HomeScreen) items() []components.MenuItem {
	nav := h.deps.Nav
	open := func(r screen.Route) func() tea.Cmd {
		return func() tea.Cmd { return router.Open(nav, r) }
	}

	guidelineDesc := "진료 전에 확인할 항목을 점검합니다"
	if h.user.GuidelineCompleted() {
		guidelineDesc = "완료됨 · 다시 확인할 수 있습니다"
	}

	return []components.MenuItem{
		{Label: "진료 전 가이드라인", Description: guidelineDesc, Action: open(screen.RouteGuideline)},
		{Label: "진료 연습하기", Description: "AI 의사와 음성으로 대화합니다", Action: open(screen.RouteChat)},
		{Label: "피드백 보기", Description: "체크리스트별 평가를 확인합니다", Action: open(screen.RouteFeedback)},
		{Label: "다시 연습하기", Description: "부족했던 항목을 퀘스트로 연습합니다", Action: open(screen.RouteRetry)},
		{Label: "진료 스크립트", Description: "실제 진료에 가져갈 요약본을 만듭니다", Action: open(screen.RouteCheatsheet)},
		{Label: "대화 로그", Description: "지금까지의 대화를 봅니다", Action: open(screen.RouteChatLogs)},
		{Label: "로그아웃", Action: h.logout},
		{Label: "종료", Action: func() tea.Cmd { return tea.Quit }},
	}
}

func (h *HomeScreen) logout() tea.Cmd {
	h.deps.StopSpeech()
	if err := h.deps.Sessions.Clear(context.Background()); err != nil {
		h.deps.Log().Error("clear session failed", zap.Error(err))
	}
	h.deps.Log().Info("participant signed out", zap.String("participant_id", h.user.ParticipantID))
	return tea.Batch(
		func() tea.Msg { return screen.SessionChangedMsg{} },
		notify.Cmd(LoggedOut, notify.KindInfo),
		router.Restart(h.deps.Nav, screen.RouteLogin),
	)
}

func (h *HomeScreen) Init() tea.Cmd {
	if h.noUser {
		return router.LoginRequired(h.deps.Nav)
	}
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) Title() string {
	return "홈"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑/↓", Description: "이동"},
		{Key: "1-8", Description: "바로 선택"},
		{Key: "Enter", Description: "선택"},
	}
}

func (h *HomeScreen) View(width, height int) string {
	termHeight := height + layout.HeaderHeight + layout.FooterHeight + 2
	h.compact = layout.IsCompactHeight(termHeight) || layout.IsCompactWidth(width)

	cw := contentWidth(width)
	sections := []string{
		renderTitle(cw, h.compact),
		renderStatusCard(h.user, h.deps.Clock(), cw, h.compact),
		renderMenu(h.menu, cw, h.compact),
	}
	return renderFrame(joinSections(sections), width, height)
}
