package guideline

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobbyhwsong/voice-chat-app/internal/notify"
	"github.com/bobbyhwsong/voice-chat-app/internal/router"
	"github.com/bobbyhwsong/voice-chat-app/internal/screen"
	"github.com/bobbyhwsong/voice-chat-app/internal/screens/screentest"
)

func TestStartRequiresEveryItem(t *testing.T) {
	env := screentest.NewEnv(t, "P001")
	g := New(env.Deps)
	g.Update(screentest.Key('1'))
	g.Update(screentest.Key('2'))

	_, cmd := g.Update(screentest.Special(tea.KeyEnter))
	msgs := screentest.Drain(cmd)
	require.Len(t, msgs, 1)
	assert.Equal(t, NotReady, msgs[0].(notify.ShowMsg).Message)
	assert.Empty(t, env.Nav.Opened)

	u, err := env.Deps.Sessions.Require(context.Background())
	require.NoError(t, err)
	assert.False(t, u.GuidelineCompleted())
}

func TestStartRecordsCompletionAndOpensChat(t *testing.T) {
	env := screentest.NewEnv(t, "P001")
	g := New(env.Deps)
	for _, k := range "12345" {
		g.Update(screentest.Key(k))
	}

	_, cmd := g.Update(screentest.Special(tea.KeyEnter))
	msgs := screentest.Drain(cmd)

	u, err := env.Deps.Sessions.Require(context.Background())
	require.NoError(t, err)
	require.True(t, u.GuidelineCompleted())
	assert.Equal(t, screentest.Clock, *u.GuidelineCompletedAt)
	assert.Equal(t, screen.RouteChat, env.Nav.Last())

	var replaced bool
	for _, m := range msgs {
		if _, ok := m.(router.ReplaceScreenMsg); ok {
			replaced = true
		}
	}
	assert.True(t, replaced)
}

func TestUncheckingBlocksStartAgain(t *testing.T) {
	env := screentest.NewEnv(t, "P001")
	g := New(env.Deps)
	for _, k := range "123455" {
		g.Update(screentest.Key(k))
	}
	assert.Equal(t, 4, g.list.CheckedCount())
	assert.Contains(t, g.View(100, 30), "1개 남음")
}

func TestGuidelineWithoutSession(t *testing.T) {
	env := screentest.NewEnv(t, "")
	g := New(env.Deps)
	screentest.Drain(g.Init())
	assert.Equal(t, screen.RouteLogin, env.Nav.Last())
}
