package router

import (
	"github.com/bobbyhwsong/voice-chat-app/internal/notify"
	"github.com/bobbyhwsong/voice-chat-app/internal/screen"

	tea "charm.land/bubbletea/v2"
)

// LoginRequiredMessage is shown when a screen needs an identity and none is
// stored.
const LoginRequiredMessage = "로그인 정보가 없습니다. 다시 로그인해주세요."

// PushScreenMsg requests the router to push a new screen onto the stack.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg requests the router to pop the current screen off the stack.
type PopScreenMsg struct{}

// ReplaceScreenMsg requests the router to swap the top screen for another.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// ResetScreenMsg requests the router to drop every screen and start over
// from Screen.
type ResetScreenMsg struct {
	Screen screen.Screen
}

// Router manages a stack of screens.
type Router struct {
	stack []screen.Screen
}

// New creates a new Router with the given initial screen.
func New(initial screen.Screen) *Router {
	return &Router{
		stack: []screen.Screen{initial},
	}
}

// Push adds a screen on top of the stack and calls its Init().
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop removes the top screen. No-op if stack depth would become 0.
func (r *Router) Pop() tea.Cmd {
	if len(r.stack) <= 1 {
		return nil
	}
	r.stack = r.stack[:len(r.stack)-1]
	return nil
}

// Replace swaps the top screen and calls the new screen's Init().
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	if len(r.stack) == 0 {
		r.stack = append(r.stack, s)
	} else {
		r.stack[len(r.stack)-1] = s
	}
	return s.Init()
}

// Reset makes s the only screen on the stack.
func (r *Router) Reset(s screen.Screen) tea.Cmd {
	r.stack = []screen.Screen{s}
	return s.Init()
}

// Active returns the top screen on the stack.
func (r *Router) Active() screen.Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}

// Depth returns the number of screens on the stack.
func (r *Router) Depth() int {
	return len(r.stack)
}

// Update forwards a message to the active screen and handles navigation messages.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	case ResetScreenMsg:
		return r.Reset(msg.Screen)
	}

	active := r.Active()
	if active == nil {
		return nil
	}

	updated, cmd := active.Update(msg)
	r.stack[len(r.stack)-1] = updated
	return cmd
}

// View renders the active screen.
func (r *Router) View(width, height int) string {
	active := r.Active()
	if active == nil {
		return ""
	}
	return active.View(width, height)
}

// Open returns a command that pushes the screen for route r.
func Open(nav screen.Navigator, r screen.Route) tea.Cmd {
	s := nav.Open(r)
	return func() tea.Msg { return PushScreenMsg{Screen: s} }
}

// Switch returns a command that replaces the active screen with route r.
func Switch(nav screen.Navigator, r screen.Route) tea.Cmd {
	s := nav.Open(r)
	return func() tea.Msg { return ReplaceScreenMsg{Screen: s} }
}

// Restart returns a command that clears the stack and opens route r.
func Restart(nav screen.Navigator, r screen.Route) tea.Cmd {
	s := nav.Open(r)
	return func() tea.Msg { return ResetScreenMsg{Screen: s} }
}

// Back returns a command that pops the active screen.
func Back() tea.Cmd {
	return func() tea.Msg { return PopScreenMsg{} }
}

// LoginRequired returns a command that tells the user to sign in again and
// restarts at the login screen.
func LoginRequired(nav screen.Navigator) tea.Cmd {
	return tea.Batch(
		notify.Cmd(LoginRequiredMessage, notify.KindError),
		Restart(nav, screen.RouteLogin),
	)
}
