// Package history is the log viewer: the conversation the backend stored
// for one page, newest exchange last.
package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/bobbyhwsong/voice-chat-app/internal/api"
	"github.com/bobbyhwsong/voice-chat-app/internal/chat"
	"github.com/bobbyhwsong/voice-chat-app/internal/router"
	"github.com/bobbyhwsong/voice-chat-app/internal/screen"
	"github.com/bobbyhwsong/voice-chat-app/internal/store"
	"github.com/bobbyhwsong/voice-chat-app/internal/ui/layout"
	"github.com/bobbyhwsong/voice-chat-app/internal/ui/theme"
)

const previewWidth = 48

type historyLoadedMsg struct {
	Logs   *api.LogsResponse
	Quests []store.QuestEventRecord
	Err    error
}

// HistoryScreen displays the stored exchanges of a page.
type HistoryScreen struct {
	deps     screen.Deps
	page     api.PageType
	pid      string
	logs     []api.LogEntry
	date     string
	quests   []store.QuestEventRecord
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a HistoryScreen for page.
func New(deps screen.Deps, page api.PageType) *HistoryScreen {
	s := &HistoryScreen{
		deps:     deps,
		page:     page,
		expanded: make(map[int]bool),
	}
	if u, err := deps.Sessions.Require(context.Background()); err == nil {
		s.pid = u.ParticipantID
	}
	return s
}

func (s *HistoryScreen) Init() tea.Cmd {
	if s.pid == "" {
		return router.LoginRequired(s.deps.Nav)
	}
	client, events, pid, page := s.deps.Client, s.deps.Events, s.pid, s.page
	return func() tea.Msg {
		ctx := context.Background()

		resp, err := client.Logs(ctx, pid, page)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}

		var quests []store.QuestEventRecord
		if page == api.PageRetry && events != nil {
			// Local quest history is a bonus; the logs stand on their own.
			quests, _ = events.QueryQuestEvents(ctx, pid, store.QueryOpts{Limit: 20})
		}
		return historyLoadedMsg{Logs: resp, Quests: quests}
	}
}

func (s *HistoryScreen) Title() string {
	if s.page == api.PageRetry {
		return "이전 대화 기록"
	}
	return "진료 대화 로그"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "펼치기"},
		{Key: "↑↓", Description: "이동"},
		{Key: "Esc", Description: "닫기"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.deps.Log().Warn("load logs failed", zap.String("page_type", string(s.page)), zap.Error(msg.Err))
			s.errMsg = chat.LogsFailure(msg.Err)
		} else {
			s.logs = msg.Logs.Logs
			s.date = msg.Logs.Date
			if msg.Logs.ParticipantID != "" {
				s.pid = msg.Logs.ParticipantID
			}
			s.quests = msg.Quests
			s.selected = len(s.logs) - 1
			if s.selected < 0 {
				s.selected = 0
			}
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "q":
			return s, router.Back()
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.logs)-1 {
				s.selected++
			}
			return s, nil
		case "enter", "space":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		case "a":
			all := len(s.expanded) < len(s.logs)
			for i := range s.logs {
				if all {
					s.expanded[i] = true
				} else {
					delete(s.expanded, i)
				}
			}
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render("\n\n" + s.errMsg)
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  로그를 불러오는 중...")
	}

	var b strings.Builder
	b.WriteString(theme.SectionTitle.Render(chat.LogsTitle(s.page, s.date, s.pid)))
	b.WriteString("\n\n")

	if len(s.logs) == 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render(chat.LogsEmpty))
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
	}

	now := s.deps.Clock()
	textWidth := width - 12
	if textWidth < 20 {
		textWidth = 20
	}
	patient := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("환자:")
	doctor := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("의사:")

	var lines []string
	selectedLine := 0
	for i, e := range s.logs {
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "▸ "
			style = style.Foreground(theme.Primary).Bold(true)
			selectedLine = len(lines)
		}
		lines = append(lines, style.Render(fmt.Sprintf("%s#%d  %s", prefix, i+1, entryStamp(e, now))))

		if s.expanded[i] {
			wrap := lipgloss.NewStyle().Width(textWidth)
			lines = append(lines, strings.Split("    "+patient+" "+indentRest(wrap.Render(e.UserMessage), "         "), "\n")...)
			lines = append(lines, strings.Split("    "+doctor+" "+indentRest(wrap.Render(e.BotResponse), "         "), "\n")...)
		} else {
			lines = append(lines, "    "+patient+" "+theme.Hint.Render(preview(e.UserMessage)))
		}
	}

	if len(s.quests) > 0 {
		lines = append(lines, "", theme.SectionTitle.Render("🎯 퀘스트 기록"))
		for _, q := range s.quests {
			mark := "☐"
			if q.Completed {
				mark = "☑"
			}
			lines = append(lines, fmt.Sprintf("  %s %s  %s  %s", mark, q.QuestID,
				theme.Hint.Render(q.Source), theme.Timestamp.Render(humanize.RelTime(q.Timestamp, now, "ago", "from now"))))
		}
	}

	avail := height - 2
	if avail < 1 {
		avail = 1
	}
	start := 0
	if selectedLine >= avail {
		start = selectedLine - avail + 1
	}
	end := start + avail
	if end > len(lines) {
		end = len(lines)
	}
	b.WriteString(strings.Join(lines[start:end], "\n"))
	return lipgloss.NewStyle().Padding(0, 2).Render(b.String())
}

// entryStamp shows the exchange time both absolute and relative.
func entryStamp(e api.LogEntry, now time.Time) string {
	t := chat.EntryTime(e)
	if t.IsZero() {
		return e.Timestamp
	}
	return t.Format("15:04:05") + " · " + humanize.RelTime(t, now, "ago", "from now")
}

func preview(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= previewWidth {
		return s
	}
	return string(r[:previewWidth-1]) + "…"
}

func indentRest(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i := 1; i < len(lines); i++ {
		lines[i] = prefix + lines[i]
	}
	return strings.Join(lines, "\n")
}
