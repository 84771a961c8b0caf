package screen

// Route names a screen the application can open.
type Route int

const (
	RouteLogin Route = iota
	RouteHome
	RouteGuideline
	RouteChat
	RouteFeedback
	RouteRetry
	RouteCheatsheet
	RouteChatLogs
	RouteRetryLogs
)

func (r Route) String() string {
	switch r {
	case RouteLogin:
		return "login"
	case RouteHome:
		return "home"
	case RouteGuideline:
		return "guideline"
	case RouteChat:
		return "chat"
	case RouteFeedback:
		return "feedback"
	case RouteRetry:
		return "retry"
	case RouteCheatsheet:
		return "cheatsheet"
	case RouteChatLogs:
		return "chat-logs"
	case RouteRetryLogs:
		return "retry-logs"
	default:
		return "unknown"
	}
}

// Navigator builds screens by route. Screens hold a Navigator instead of
// importing each other.
type Navigator interface {
	Open(r Route) Screen
}

// EscapeCapturer is implemented by screens that use Esc themselves, e.g.
// to close a dialog, while the capture is active.
type EscapeCapturer interface {
	CapturesEscape() bool
}
