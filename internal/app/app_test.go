package app

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobbyhwsong/voice-chat-app/internal/api"
	"github.com/bobbyhwsong/voice-chat-app/internal/notify"
	"github.com/bobbyhwsong/voice-chat-app/internal/router"
	"github.com/bobbyhwsong/voice-chat-app/internal/screen"
	"github.com/bobbyhwsong/voice-chat-app/internal/screens/cheatsheet"
	"github.com/bobbyhwsong/voice-chat-app/internal/screens/conversation"
	"github.com/bobbyhwsong/voice-chat-app/internal/screens/feedback"
	"github.com/bobbyhwsong/voice-chat-app/internal/screens/guideline"
	"github.com/bobbyhwsong/voice-chat-app/internal/screens/history"
	"github.com/bobbyhwsong/voice-chat-app/internal/screens/home"
	"github.com/bobbyhwsong/voice-chat-app/internal/screens/login"
	"github.com/bobbyhwsong/voice-chat-app/internal/screens/welcome"
	"github.com/bobbyhwsong/voice-chat-app/internal/session"
	"github.com/bobbyhwsong/voice-chat-app/internal/store"
)

func testOptions(t *testing.T, participant string) Options {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	st, err := store.Open(fmt.Sprintf("file:app_%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	sessions := session.NewStore(st.UserDataRepo())
	if participant != "" {
		require.NoError(t, sessions.Set(context.Background(), session.UserSession{
			ParticipantID: participant,
			Symptoms:      "두통",
			Consent:       true,
			LoginTime:     time.Now().UTC(),
		}))
	}
	return Options{
		Client:      &api.MockClient{},
		Sessions:    sessions,
		Events:      st.EventRepo(),
		VisitID:     "visit-test",
		SkipWelcome: true,
	}
}

func update(t *testing.T, m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	am, ok := next.(AppModel)
	require.True(t, ok)
	return am, cmd
}

func TestStartsAtLoginWithoutSession(t *testing.T) {
	m := newAppModel(testOptions(t, ""))
	_, ok := m.router.Active().(*login.LoginScreen)
	assert.True(t, ok)
	assert.Empty(t, m.participant)
}

func TestStartsAtHomeWithSession(t *testing.T) {
	m := newAppModel(testOptions(t, "P001"))
	_, ok := m.router.Active().(*home.HomeScreen)
	assert.True(t, ok)
	assert.Equal(t, "P001", m.participant)
}

func TestWelcomeSplashFirst(t *testing.T) {
	opts := testOptions(t, "")
	opts.SkipWelcome = false
	m := newAppModel(opts)
	_, ok := m.router.Active().(*welcome.WelcomeScreen)
	assert.True(t, ok)
}

func TestNavigatorRoutes(t *testing.T) {
	m := newAppModel(testOptions(t, "P001"))
	tests := []struct {
		route screen.Route
		check func(screen.Screen) bool
	}{
		{screen.RouteLogin, func(s screen.Screen) bool { _, ok := s.(*login.LoginScreen); return ok }},
		{screen.RouteHome, func(s screen.Screen) bool { _, ok := s.(*home.HomeScreen); return ok }},
		{screen.RouteGuideline, func(s screen.Screen) bool { _, ok := s.(*guideline.GuidelineScreen); return ok }},
		{screen.RouteChat, func(s screen.Screen) bool { _, ok := s.(*conversation.Screen); return ok }},
		{screen.RouteRetry, func(s screen.Screen) bool { _, ok := s.(*conversation.Screen); return ok }},
		{screen.RouteFeedback, func(s screen.Screen) bool { _, ok := s.(*feedback.FeedbackScreen); return ok }},
		{screen.RouteCheatsheet, func(s screen.Screen) bool { _, ok := s.(*cheatsheet.CheatsheetScreen); return ok }},
		{screen.RouteChatLogs, func(s screen.Screen) bool { _, ok := s.(*history.HistoryScreen); return ok }},
		{screen.RouteRetryLogs, func(s screen.Screen) bool { _, ok := s.(*history.HistoryScreen); return ok }},
	}
	for _, tt := range tests {
		t.Run(tt.route.String(), func(t *testing.T) {
			assert.True(t, tt.check(m.nav.Open(tt.route)))
		})
	}
}

func TestSessionChangedUpdatesHeader(t *testing.T) {
	m := newAppModel(testOptions(t, ""))
	m, _ = update(t, m, screen.SessionChangedMsg{Participant: "P002"})
	assert.Equal(t, "P002", m.participant)

	m, _ = update(t, m, screen.SessionChangedMsg{})
	assert.Empty(t, m.participant)
}

func TestNotificationsAreShownAtAppLevel(t *testing.T) {
	m := newAppModel(testOptions(t, "P001"))
	m, cmd := update(t, m, notify.ShowMsg{Message: "저장되었습니다", Kind: notify.KindSuccess})
	assert.NotNil(t, cmd)

	n, ok := m.toast.Current()
	require.True(t, ok)
	assert.Equal(t, "저장되었습니다", n.Message)

	m, _ = update(t, m, notify.QuestMsg{Icon: "💊", Title: "복용 중인 약물 언급하기", Grade: "하"})
	n, ok = m.toast.Current()
	require.True(t, ok)
	assert.Equal(t, notify.KindQuest, n.Kind)
}

func TestEscPopsPushedScreen(t *testing.T) {
	m := newAppModel(testOptions(t, "P001"))
	m, _ = update(t, m, router.PushScreenMsg{Screen: m.nav.Open(screen.RouteChatLogs)})
	require.Equal(t, 2, m.router.Depth())

	m, cmd := update(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())
	assert.Equal(t, 1, m.router.Depth())

	_, cmd = update(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Nil(t, cmd)
}

func TestCtrlCQuits(t *testing.T) {
	m := newAppModel(testOptions(t, "P001"))
	_, cmd := update(t, m, tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestFooterUsesScreenHints(t *testing.T) {
	m := newAppModel(testOptions(t, "P001"))
	logs := m.nav.Open(screen.RouteChatLogs)
	hints := m.footerHints(logs)
	require.NotEmpty(t, hints)
	assert.Equal(t, "Ctrl+C", hints[len(hints)-1].Key)
	assert.Equal(t, "Enter", hints[0].Key)
}
