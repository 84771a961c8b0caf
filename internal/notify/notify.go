// Package notify shows one transient notification at a time. A new
// notification replaces the current one immediately; timers belonging to a
// replaced notification are ignored.
package notify

import (
	"time"

	tea "charm.land/bubbletea/v2"
)

// Kind selects the styling of a notification.
type Kind int

const (
	KindInfo Kind = iota
	KindSuccess
	KindError
	KindQuest
)

// Icon returns the leading symbol for a kind.
func (k Kind) Icon() string {
	switch k {
	case KindSuccess:
		return "✅"
	case KindError:
		return "❌"
	case KindQuest:
		return "🎉"
	default:
		return "ℹ️"
	}
}

// Phase is where the current notification is in its lifecycle.
type Phase int

const (
	PhaseHidden Phase = iota
	PhaseEntering
	PhaseVisible
	PhaseLeaving
)

// Timing controls a notification's lifecycle. Reveal and Display are
// measured from Show; Exit from the start of PhaseLeaving.
type Timing struct {
	Reveal  time.Duration
	Display time.Duration
	Exit    time.Duration
}

var (
	GenericTiming = Timing{Reveal: 100 * time.Millisecond, Display: 3 * time.Second, Exit: 300 * time.Millisecond}
	QuestTiming   = Timing{Reveal: 100 * time.Millisecond, Display: 5 * time.Second, Exit: 500 * time.Millisecond}
)

// Notification is the content being shown.
type Notification struct {
	Kind    Kind
	Icon    string
	Title   string
	Message string
	Detail  []string
}

type phaseMsg struct {
	gen   int
	phase Phase
}

// Presenter is a Bubble Tea component holding at most one notification.
type Presenter struct {
	current Notification
	phase   Phase
	gen     int
	timing  Timing
}

// New creates an empty Presenter.
func New() Presenter {
	return Presenter{}
}

// Show replaces any current notification with a plain message.
func (p Presenter) Show(message string, kind Kind) (Presenter, tea.Cmd) {
	return p.present(Notification{Kind: kind, Icon: kind.Icon(), Message: message}, GenericTiming)
}

// ShowQuest announces an automatically completed quest. grade may be empty.
func (p Presenter) ShowQuest(icon, title, grade string) (Presenter, tea.Cmd) {
	msg := title
	if grade != "" {
		msg += " (" + grade + " 등급 개선)"
	}
	return p.present(Notification{
		Kind:    KindQuest,
		Icon:    icon,
		Title:   "퀘스트 완료! 🎉",
		Message: msg,
		Detail: []string{
			"✅ AI가 자동으로 분석하여 완료를 확인했습니다!",
			"이제 더 나은 진료 대화를 할 수 있습니다.",
		},
	}, QuestTiming)
}

func (p Presenter) present(n Notification, t Timing) (Presenter, tea.Cmd) {
	p.gen++
	p.current = n
	p.phase = PhaseEntering
	p.timing = t
	gen := p.gen
	return p, tea.Batch(
		after(t.Reveal, gen, PhaseVisible),
		after(t.Display, gen, PhaseLeaving),
	)
}

func after(d time.Duration, gen int, phase Phase) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return phaseMsg{gen: gen, phase: phase}
	})
}

// Update advances the lifecycle. Messages for replaced notifications are
// dropped.
func (p Presenter) Update(msg tea.Msg) (Presenter, tea.Cmd) {
	switch msg := msg.(type) {
	case ShowMsg:
		return p.Show(msg.Message, msg.Kind)
	case QuestMsg:
		return p.ShowQuest(msg.Icon, msg.Title, msg.Grade)
	}

	m, ok := msg.(phaseMsg)
	if !ok || m.gen != p.gen || p.phase == PhaseHidden {
		return p, nil
	}
	switch m.phase {
	case PhaseVisible:
		if p.phase == PhaseEntering {
			p.phase = PhaseVisible
		}
	case PhaseLeaving:
		if p.phase == PhaseEntering || p.phase == PhaseVisible {
			p.phase = PhaseLeaving
			return p, after(p.timing.Exit, p.gen, PhaseHidden)
		}
	case PhaseHidden:
		p.phase = PhaseHidden
		p.current = Notification{}
	}
	return p, nil
}

// Phase returns the current lifecycle phase.
func (p Presenter) Phase() Phase { return p.phase }

// Current returns the notification on screen and whether there is one.
func (p Presenter) Current() (Notification, bool) {
	return p.current, p.phase != PhaseHidden
}

// ShowMsg asks the application-level presenter to show a notification.
type ShowMsg struct {
	Message string
	Kind    Kind
}

// QuestMsg asks the application-level presenter to announce a quest.
type QuestMsg struct {
	Icon  string
	Title string
	Grade string
}

// Cmd returns a command that emits ShowMsg.
func Cmd(message string, kind Kind) tea.Cmd {
	return func() tea.Msg { return ShowMsg{Message: message, Kind: kind} }
}

// QuestCmd returns a command that emits QuestMsg.
func QuestCmd(icon, title, grade string) tea.Cmd {
	return func() tea.Msg { return QuestMsg{Icon: icon, Title: title, Grade: grade} }
}
