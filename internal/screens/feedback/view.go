package feedback

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/bobbyhwsong/voice-chat-app/internal/chat"
	"github.com/bobbyhwsong/voice-chat-app/internal/evaluation"
	"github.com/bobbyhwsong/voice-chat-app/internal/ui/components"
	"github.com/bobbyhwsong/voice-chat-app/internal/ui/theme"
)

const noConversation = "대화 로그가 없습니다."

func (f *FeedbackScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	sections := []string{
		f.renderSummary(cw),
		f.renderRows(cw),
		f.renderTips(cw),
		f.renderVoice(cw),
		f.renderConversation(cw),
	}
	var nonEmpty []string
	for _, s := range sections {
		if s != "" {
			nonEmpty = append(nonEmpty, s)
		}
	}
	content := strings.Join(nonEmpty, "\n\n")

	lines := strings.Split(content, "\n")
	maxScroll := len(lines) - height
	if maxScroll < 0 {
		maxScroll = 0
	}
	if f.scroll > maxScroll {
		f.scroll = maxScroll
	}
	end := f.scroll + height
	if end > len(lines) {
		end = len(lines)
	}
	visible := strings.Join(lines[f.scroll:end], "\n")
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, visible)
}

func (f *FeedbackScreen) renderSummary(cw int) string {
	sum := f.state.Summary()
	score := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(fmt.Sprintf("%d점", sum.Score))
	title := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(sum.Title)
	body := score + "  " + title + "\n" + theme.Hint.Render(sum.Description)
	return components.Card("📊 종합 평가", body, cw)
}

func (f *FeedbackScreen) renderRows(cw int) string {
	rows := f.state.Rows()
	if len(rows) == 0 {
		return ""
	}

	labelWidth := 30
	barWidth := cw - labelWidth - 14
	if barWidth < 10 {
		barWidth = 10
	}

	var b strings.Builder
	for i, r := range rows {
		cursor := "  "
		if i == f.cursor {
			cursor = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("▸ ")
		}
		label := lipgloss.NewStyle().Width(labelWidth).MaxWidth(labelWidth).Foreground(theme.Text).Render(r.Label)
		badge := theme.GradeColor(r.Badge).Render(string(r.Grade))
		bar := components.NewProgressBar("", float64(r.Percent)/100, true, barWidth).View()
		b.WriteString(cursor + label + " " + badge + " " + bar)
		b.WriteString("\n")
		if r.ReasonShown {
			reason := r.Reason
			if reason == "" {
				reason = "평가 이유가 없습니다."
			}
			text := lipgloss.NewStyle().Width(cw - 8).Foreground(theme.TextDim).Render("└ " + reason)
			b.WriteString(indent(text, "    "))
			b.WriteString("\n")
		}
	}
	return components.Card("✅ 체크리스트 평가", strings.TrimRight(b.String(), "\n"), cw)
}

func (f *FeedbackScreen) renderTips(cw int) string {
	tips := f.state.Tips()
	if len(tips) == 0 {
		return ""
	}
	var lines []string
	for _, t := range tips {
		style := lipgloss.NewStyle().Width(cw - 6).Foreground(theme.Text)
		prefix := "• "
		if t.Important {
			style = style.Foreground(theme.Accent)
			prefix = "❗ "
		}
		lines = append(lines, style.Render(prefix+t.Text))
	}
	return components.Card("💡 개선 제안", strings.Join(lines, "\n"), cw)
}

func (f *FeedbackScreen) renderVoice(cw int) string {
	if f.voice == nil {
		if f.state.Status() == evaluation.StatusPending && f.logsLoaded {
			return components.Card("🎤 음성 의사소통 분석", theme.Hint.Render("분석 중..."), cw)
		}
		return ""
	}
	v := f.voice
	wrap := lipgloss.NewStyle().Width(cw - 6)

	var b strings.Builder
	b.WriteString(wrap.Foreground(theme.Text).Bold(true).Render(v.Summary))
	if v.Details != "" {
		b.WriteString("\n" + wrap.Foreground(theme.TextDim).Render(v.Details))
	}
	if len(v.PositiveAspects) > 0 {
		b.WriteString("\n\n" + lipgloss.NewStyle().Foreground(theme.Success).Render("잘한 점"))
		for _, p := range v.PositiveAspects {
			b.WriteString("\n" + wrap.Render("• "+p))
		}
	}
	if len(v.Suggestions) > 0 {
		b.WriteString("\n\n" + lipgloss.NewStyle().Foreground(theme.Accent).Render("제안"))
		for _, s := range v.Suggestions {
			b.WriteString("\n" + wrap.Render("• "+s))
		}
	}
	return components.Card("🎤 음성 의사소통 분석", b.String(), cw)
}

func (f *FeedbackScreen) renderConversation(cw int) string {
	if !f.logsLoaded {
		return components.Card("💬 대화 기록", theme.Hint.Render("대화 기록을 불러오는 중..."), cw)
	}
	if len(f.logs) == 0 {
		return components.Card("💬 대화 기록", theme.Hint.Render(noConversation), cw)
	}

	wrap := lipgloss.NewStyle().Width(cw - 10)
	patient := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("환자")
	doctor := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("의사")

	var b strings.Builder
	for i, l := range f.logs {
		if i > 0 {
			b.WriteString("\n")
		}
		if t := chat.EntryTime(l); !t.IsZero() {
			b.WriteString(theme.Timestamp.Render(t.Format("2006-01-02 15:04")) + "\n")
		}
		b.WriteString(patient + "  " + indentRest(wrap.Render(l.UserMessage), "      ") + "\n")
		b.WriteString(doctor + "  " + indentRest(wrap.Render(l.BotResponse), "      ") + "\n")
	}
	return components.Card("💬 대화 기록", strings.TrimRight(b.String(), "\n"), cw)
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = prefix + lines[i]
	}
	return strings.Join(lines, "\n")
}

// indentRest indents every line but the first.
func indentRest(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i := 1; i < len(lines); i++ {
		lines[i] = prefix + lines[i]
	}
	return strings.Join(lines, "\n")
}
