// Package login is the entry screen: participant id, symptoms and consent.
package login

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/bobbyhwsong/voice-chat-app/internal/notify"
	"github.com/bobbyhwsong/voice-chat-app/internal/router"
	"github.com/bobbyhwsong/voice-chat-app/internal/screen"
	"github.com/bobbyhwsong/voice-chat-app/internal/session"
	"github.com/bobbyhwsong/voice-chat-app/internal/ui/components"
	"github.com/bobbyhwsong/voice-chat-app/internal/ui/layout"
	"github.com/bobbyhwsong/voice-chat-app/internal/ui/theme"
)

const (
	MissingID      = "참여자 ID를 입력해주세요."
	MissingConsent = "개인정보 수집 및 이용에 동의해주세요."
	SaveFailed     = "로그인 정보를 저장하지 못했습니다."
	Welcome        = "환영합니다, %s 님!"
	consentText    = "연습 대화가 연구 목적으로 기록되는 것에 동의합니다."
)

type field int

const (
	fieldID field = iota
	fieldSymptoms
	fieldConsent
	fieldSubmit
	fieldCount
)

// savedMsg reports the outcome of the best-effort backend registration.
type savedMsg struct{ err error }

// LoginScreen collects the participant's identity.
type LoginScreen struct {
	deps     screen.Deps
	id       components.TextInput
	symptoms components.TextInput
	consent  bool
	focus    field
	saving   bool
}

var (
	_ screen.Screen          = (*LoginScreen)(nil)
	_ screen.KeyHintProvider = (*LoginScreen)(nil)
)

// New creates a LoginScreen prefilled from any stored session.
func New(deps screen.Deps) *LoginScreen {
	s := &LoginScreen{
		deps:     deps,
		id:       components.NewTextInput("참여자 ID", "예: P001", 40),
		symptoms: components.NewTextInput("주요 증상 (선택)", "예: 사흘 전부터 두통이 있어요", 200),
	}
	s.symptoms.Blur()
	if deps.Sessions != nil {
		if u, err := deps.Sessions.Get(context.Background()); err == nil {
			s.id.Model.SetValue(u.ParticipantID)
			s.symptoms.Model.SetValue(u.Symptoms)
			s.consent = u.Consent
		}
	}
	return s
}

func (s *LoginScreen) Init() tea.Cmd {
	return nil
}

func (s *LoginScreen) Title() string {
	return "로그인"
}

func (s *LoginScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "다음 항목"},
		{Key: "Space", Description: "동의 선택"},
		{Key: "Enter", Description: "시작하기"},
		{Key: "Esc", Description: "종료"},
	}
}

func (s *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case savedMsg:
		s.saving = false
		if msg.err != nil {
			s.deps.Log().Warn("save user data failed", zap.Error(msg.err))
		}
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "tab", "down":
			return s, s.setFocus((s.focus + 1) % fieldCount)
		case "shift+tab", "up":
			return s, s.setFocus((s.focus + fieldCount - 1) % fieldCount)
		case "enter":
			switch s.focus {
			case fieldConsent:
				s.consent = !s.consent
				return s, nil
			case fieldSubmit:
				return s, s.submit()
			case fieldSymptoms:
				return s, s.setFocus(fieldConsent)
			default:
				return s, s.setFocus(fieldSymptoms)
			}
		case "space":
			if s.focus == fieldConsent {
				s.consent = !s.consent
				return s, nil
			}
		}
	}

	var cmd tea.Cmd
	switch s.focus {
	case fieldID:
		s.id, cmd = s.id.Update(msg)
	case fieldSymptoms:
		s.symptoms, cmd = s.symptoms.Update(msg)
	}
	return s, cmd
}

func (s *LoginScreen) setFocus(f field) tea.Cmd {
	s.focus = f
	s.id.Blur()
	s.symptoms.Blur()
	switch f {
	case fieldID:
		return s.id.Focus()
	case fieldSymptoms:
		return s.symptoms.Focus()
	}
	return nil
}

func (s *LoginScreen) submit() tea.Cmd {
	id := s.id.Value()
	if id == "" {
		return tea.Batch(notify.Cmd(MissingID, notify.KindError), s.setFocus(fieldID))
	}
	if !s.consent {
		s.focus = fieldConsent
		s.id.Blur()
		s.symptoms.Blur()
		return notify.Cmd(MissingConsent, notify.KindError)
	}

	u := session.UserSession{
		ParticipantID: id,
		Symptoms:      s.symptoms.Value(),
		Consent:       true,
		LoginTime:     s.deps.Clock().UTC(),
	}
	if err := s.deps.Sessions.Set(context.Background(), u); err != nil {
		s.deps.Log().Error("store session failed", zap.Error(err))
		return notify.Cmd(SaveFailed, notify.KindError)
	}
	s.deps.Log().Info("participant signed in", zap.String("participant_id", id))

	s.saving = true
	client, data := s.deps.Client, u.UserData()
	return tea.Batch(
		func() tea.Msg {
			return savedMsg{err: client.SaveUserData(context.Background(), data)}
		},
		func() tea.Msg { return screen.SessionChangedMsg{Participant: id} },
		notify.Cmd(fmt.Sprintf(Welcome, id), notify.KindSuccess),
		router.Restart(s.deps.Nav, screen.RouteHome),
	)
}

func (s *LoginScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	if cw > 64 {
		cw = 64
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("진료 대화 연습을 시작합니다"))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("참여자 정보를 입력한 뒤 동의 항목을 확인해주세요."))
	b.WriteString("\n\n")
	b.WriteString(s.id.View())
	b.WriteString("\n\n")
	b.WriteString(s.symptoms.View())
	b.WriteString("\n\n")

	box := "[ ]"
	style := theme.Unselected
	if s.consent {
		box = "[✓]"
		style = theme.Done
	}
	cursor := "  "
	if s.focus == fieldConsent {
		cursor = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("▸ ")
	}
	b.WriteString(cursor + style.Render(box+" "+consentText))
	b.WriteString("\n\n")

	button := components.NewButton("시작하기", nil)
	button.Disabled = s.focus != fieldSubmit
	b.WriteString(button.View())

	return components.Center(components.Card("", b.String(), cw), width, height)
}
