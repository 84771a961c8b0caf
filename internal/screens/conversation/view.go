package conversation

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/bobbyhwsong/voice-chat-app/internal/chat"
	"github.com/bobbyhwsong/voice-chat-app/internal/quest"
	"github.com/bobbyhwsong/voice-chat-app/internal/ui/components"
	"github.com/bobbyhwsong/voice-chat-app/internal/ui/theme"
)

const questPanelWidth = 38

func (s *Screen) View(width, height int) string {
	if s.confirming {
		dialog := components.Dialog(chat.ClearConfirm, chat.ClearConfirmHint,
			[]string{"취소", "초기화"}, boolIndex(s.confirmYes), width)
		return components.Center(dialog, width, height)
	}

	chatWidth := width
	var panel string
	if s.mode == ModeRetry && width >= 90 {
		chatWidth = width - questPanelWidth - 1
		panel = s.renderQuestPanel(questPanelWidth, height)
	}

	inputBox := s.renderInput(chatWidth)
	status := s.renderStatus(chatWidth)
	msgHeight := height - lipgloss.Height(inputBox) - lipgloss.Height(status)
	if s.mode == ModeRetry && panel == "" {
		bar := s.renderProgress(chatWidth)
		msgHeight -= lipgloss.Height(bar)
		status = bar + "\n" + status
	}

	left := lipgloss.JoinVertical(lipgloss.Left,
		s.renderMessages(chatWidth, msgHeight),
		status,
		inputBox,
	)
	if panel == "" {
		return left
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, left, " ", panel)
}

func boolIndex(b bool) int {
	if b {
		return 1
	}
	return 0
}

// renderMessages draws the newest messages that fit, honoring the scroll
// offset.
func (s *Screen) renderMessages(width, height int) string {
	if height < 1 {
		height = 1
	}
	bubbleWidth := width * 3 / 4
	if bubbleWidth < 20 {
		bubbleWidth = 20
	}

	var blocks []string
	for _, m := range s.transcript.Messages() {
		blocks = append(blocks, renderMessage(m, width, bubbleWidth))
	}
	lines := strings.Split(strings.Join(blocks, "\n"), "\n")

	maxScroll := len(lines) - height
	if maxScroll < 0 {
		maxScroll = 0
	}
	if s.scroll > maxScroll {
		s.scroll = maxScroll
	}
	end := len(lines) - s.scroll
	start := end - height
	if start < 0 {
		start = 0
	}
	visible := lines[start:end]

	return lipgloss.NewStyle().Width(width).Height(height).Render(strings.Join(visible, "\n"))
}

func renderMessage(m chat.Message, width, bubbleWidth int) string {
	stamp := theme.Timestamp.Render(m.Clock())
	switch {
	case m.Role == chat.RoleUser:
		bubble := theme.UserBubble.MaxWidth(bubbleWidth).Render(m.Text)
		return lipgloss.PlaceHorizontal(width, lipgloss.Right,
			lipgloss.JoinVertical(lipgloss.Right, bubble, stamp))
	case m.Pending:
		return theme.PendingBubble.Render("🩺 " + m.Text)
	case m.Warning:
		return lipgloss.JoinVertical(lipgloss.Left, theme.WarningText.Render(m.Text), stamp)
	default:
		bubble := theme.BotBubble.Width(bubbleWidth).Render("🩺 " + m.Text)
		return lipgloss.JoinVertical(lipgloss.Left, bubble, stamp)
	}
}

func (s *Screen) renderStatus(width int) string {
	var parts []string
	if s.transcript.Waiting() {
		parts = append(parts, theme.Hint.Render(chat.Thinking))
	}
	if s.speaking {
		parts = append(parts, lipgloss.NewStyle().Foreground(theme.Info).Render("🔊 재생 중 (Ctrl+S로 중지)"))
	}
	if s.scroll > 0 {
		parts = append(parts, theme.Hint.Render(fmt.Sprintf("↑ %d줄 위", s.scroll)))
	}
	return lipgloss.NewStyle().Width(width).Render(strings.Join(parts, "  "))
}

func (s *Screen) renderInput(width int) string {
	border := theme.Border
	if s.focus == focusInput {
		border = theme.Primary
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(width - 2).
		Render(s.input.View())
}

func (s *Screen) renderProgress(width int) string {
	p := s.tracker.Progress()
	return components.NewCounterBar("퀘스트", p.Completed, p.Total, width).View()
}

func (s *Screen) renderQuestPanel(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.SectionTitle.Render("🎯 이번 연습의 퀘스트"))
	b.WriteString("\n")
	b.WriteString(s.renderProgress(width - 4))
	b.WriteString("\n\n")

	if s.tracker.Phase() == quest.PhaseInit {
		b.WriteString(theme.Hint.Render("퀘스트를 불러오는 중..."))
	}

	for i, q := range s.tracker.Quests() {
		b.WriteString(s.renderQuest(i, q, width-4))
		b.WriteString("\n")
	}

	border := theme.Border
	if s.focus == focusQuests {
		border = theme.Primary
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(width).
		Height(height - 2).
		Padding(0, 1).
		Render(b.String())
}

func (s *Screen) renderQuest(i int, q quest.Quest, width int) string {
	done := s.tracker.IsCompleted(q.ID)

	box, style := "[ ]", theme.Unselected
	if done {
		box, style = "[✓]", theme.Done
	}
	cursor := "  "
	if s.focus == focusQuests && i == s.questCursor {
		cursor = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("▸ ")
	}

	title := q.Icon + " " + q.Title
	if q.Grade != "" {
		title += " " + theme.GradeColor(q.Grade.Badge()).Render("["+string(q.Grade)+"]")
	}

	lines := []string{cursor + style.Render(box) + " " + style.Render(title)}
	desc := lipgloss.NewStyle().Width(width - 4).Foreground(theme.TextDim).Render(q.Description)
	lines = append(lines, indent(desc, "    "))

	if s.tipsShown[q.ID] {
		lines = append(lines, "    "+lipgloss.NewStyle().Foreground(theme.Accent).Render("📖 개선 팁:"))
		tips := q.Tips
		if len(tips) == 0 {
			tips = []string{"구체적으로 설명해보세요."}
		}
		for _, t := range tips {
			tip := lipgloss.NewStyle().Width(width - 6).Render("• " + t)
			lines = append(lines, indent(tip, "      "))
		}
	} else {
		lines = append(lines, "    "+theme.Hint.Render("💡 팁 보기 (t)"))
	}
	return strings.Join(lines, "\n")
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = prefix + lines[i]
	}
	return strings.Join(lines, "\n")
}
