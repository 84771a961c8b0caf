// Package screentest has fakes and helpers shared by the screen tests.
package screentest

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/bobbyhwsong/voice-chat-app/internal/api"
	"github.com/bobbyhwsong/voice-chat-app/internal/screen"
	"github.com/bobbyhwsong/voice-chat-app/internal/session"
	"github.com/bobbyhwsong/voice-chat-app/internal/store"
)

// Stub is a placeholder screen returned by Nav.
type Stub struct {
	Route screen.Route
}

func (s *Stub) Init() tea.Cmd                           { return nil }
func (s *Stub) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *Stub) View(int, int) string                    { return s.Route.String() }
func (s *Stub) Title() string                           { return s.Route.String() }

// Nav records every route opened.
type Nav struct {
	Opened []screen.Route
}

func (n *Nav) Open(r screen.Route) screen.Screen {
	n.Opened = append(n.Opened, r)
	return &Stub{Route: r}
}

// Last returns the most recently opened route, or -1.
func (n *Nav) Last() screen.Route {
	if len(n.Opened) == 0 {
		return -1
	}
	return n.Opened[len(n.Opened)-1]
}

// Env bundles the dependencies handed to a screen under test.
type Env struct {
	Deps   screen.Deps
	Client *api.MockClient
	Nav    *Nav
	Store  *store.Store
}

// Clock is the fixed time used by NewEnv.
var Clock = time.Date(2026, 4, 2, 10, 30, 0, 0, time.UTC)

// NewEnv opens an in-memory store and wires a MockClient and Nav. When
// participant is non-empty a session is stored for it.
func NewEnv(t *testing.T, participant string) *Env {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	st, err := store.Open(fmt.Sprintf("file:screen_%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	sessions := session.NewStore(st.UserDataRepo())
	if participant != "" {
		err := sessions.Set(context.Background(), session.UserSession{
			ParticipantID: participant,
			Symptoms:      "두통",
			Consent:       true,
			LoginTime:     Clock.Add(-time.Hour),
		})
		if err != nil {
			t.Fatalf("seed session: %v", err)
		}
	}

	client := &api.MockClient{}
	nav := &Nav{}
	return &Env{
		Deps: screen.Deps{
			Client:   client,
			Sessions: sessions,
			Events:   st.EventRepo(),
			Nav:      nav,
			VisitID:  "visit-test",
			Now:      func() time.Time { return Clock },
		},
		Client: client,
		Nav:    nav,
		Store:  st,
	}
}

// Key returns a printable key press.
func Key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// Special returns a non-printable key press such as tea.KeyEnter.
func Special(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// Ctrl returns ctrl+r.
func Ctrl(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

// Type sends each rune of s to the screen.
func Type(s screen.Screen, text string) screen.Screen {
	for _, r := range text {
		s, _ = s.Update(Key(r))
	}
	return s
}

// Drain runs cmd and every command it batches, returning the produced
// messages. Commands that do not finish within a short wait, such as
// timers, are skipped.
func Drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-ch:
	case <-time.After(200 * time.Millisecond):
		return nil
	}

	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, Drain(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// Pump feeds the messages produced by cmd back into the screen until no
// new screen-local messages appear. Messages for which keep returns false
// are collected and returned instead of being delivered.
func Pump(s screen.Screen, cmd tea.Cmd, keep func(tea.Msg) bool) (screen.Screen, []tea.Msg) {
	var external []tea.Msg
	queue := Drain(cmd)
	for i := 0; len(queue) > 0 && i < 100; i++ {
		msg := queue[0]
		queue = queue[1:]
		if !keep(msg) {
			external = append(external, msg)
			continue
		}
		var next tea.Cmd
		s, next = s.Update(msg)
		queue = append(queue, Drain(next)...)
	}
	return s, external
}
