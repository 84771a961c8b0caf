package app

import (
	"context"

	"github.com/bobbyhwsong/voice-chat-app/internal/api"
	"github.com/bobbyhwsong/voice-chat-app/internal/screen"
	"github.com/bobbyhwsong/voice-chat-app/internal/screens/cheatsheet"
	"github.com/bobbyhwsong/voice-chat-app/internal/screens/conversation"
	"github.com/bobbyhwsong/voice-chat-app/internal/screens/feedback"
	"github.com/bobbyhwsong/voice-chat-app/internal/screens/guideline"
	"github.com/bobbyhwsong/voice-chat-app/internal/screens/history"
	"github.com/bobbyhwsong/voice-chat-app/internal/screens/home"
	"github.com/bobbyhwsong/voice-chat-app/internal/screens/login"
)

// navigator builds every routed screen from one shared Deps.
type navigator struct {
	deps            screen.Deps
	cheatsheetStyle string
}

func newNavigator(deps screen.Deps, cheatsheetStyle string) *navigator {
	n := &navigator{cheatsheetStyle: cheatsheetStyle}
	deps.Nav = n
	n.deps = deps
	return n
}

func (n *navigator) Open(r screen.Route) screen.Screen {
	switch r {
	case screen.RouteHome:
		return home.New(n.deps)
	case screen.RouteGuideline:
		return guideline.New(n.deps)
	case screen.RouteChat:
		return conversation.NewChat(n.deps)
	case screen.RouteRetry:
		return conversation.NewRetry(n.deps)
	case screen.RouteFeedback:
		return feedback.New(n.deps)
	case screen.RouteCheatsheet:
		var opts []cheatsheet.Option
		if n.cheatsheetStyle != "" {
			opts = append(opts, cheatsheet.WithStyle(n.cheatsheetStyle))
		}
		return cheatsheet.New(n.deps, opts...)
	case screen.RouteChatLogs:
		return history.New(n.deps, api.PageChat)
	case screen.RouteRetryLogs:
		return history.New(n.deps, api.PageRetry)
	default:
		return login.New(n.deps)
	}
}

// entry is the first screen after the splash: home for a stored session,
// login otherwise.
func (n *navigator) entry() screen.Screen {
	if _, err := n.deps.Sessions.Require(context.Background()); err == nil {
		return n.Open(screen.RouteHome)
	}
	return n.Open(screen.RouteLogin)
}
