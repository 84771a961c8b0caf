package home

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/dustin/go-humanize"

	"github.com/bobbyhwsong/voice-chat-app/internal/session"
	"github.com/bobbyhwsong/voice-chat-app/internal/ui/components"
	"github.com/bobbyhwsong/voice-chat-app/internal/ui/theme"
)

const (
	titleFull    = "🩺  진료 대화 연습"
	titleCompact = "진료 대화 연습"
	subtitle     = "말하기 연습으로 실제 진료를 준비하세요"
)

// contentWidth returns the uniform inner width used for all sections.
func contentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 64 {
		w = 64
	}
	if w < 20 {
		w = 20
	}
	return w
}

func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().Width(cw).Align(lipgloss.Center)
	if compact {
		return style.Render(theme.Title.Render(titleCompact))
	}
	return style.Render(theme.Title.Render(titleFull) + "\n" + theme.Subtitle.Render(subtitle))
}

// renderStatusCard shows who is signed in and how far they are.
func renderStatusCard(u session.UserSession, now time.Time, cw int, compact bool) string {
	label := lipgloss.NewStyle().Foreground(theme.TextDim)
	value := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)

	guideline := lipgloss.NewStyle().Foreground(theme.Accent).Render("미완료")
	if u.GuidelineCompleted() {
		guideline = lipgloss.NewStyle().Foreground(theme.Success).Render("완료")
	}

	login := "-"
	if !u.LoginTime.IsZero() {
		login = humanize.RelTime(u.LoginTime, now, "ago", "from now")
	}

	if compact {
		return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(
			fmt.Sprintf("%s %s  %s %s",
				label.Render("👤"), value.Render(u.ParticipantID),
				label.Render("가이드라인"), guideline))
	}

	symptoms := u.Symptoms
	if symptoms == "" {
		symptoms = "입력하지 않음"
	}
	lines := []string{
		label.Render("참여자   ") + value.Render(u.ParticipantID),
		label.Render("증상     ") + lipgloss.NewStyle().Foreground(theme.Text).Render(symptoms),
		label.Render("로그인   ") + lipgloss.NewStyle().Foreground(theme.Text).Render(login),
		label.Render("가이드라인 ") + guideline,
	}
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

// renderMenu draws the menu as buttons, or as plain lines when space is
// short.
func renderMenu(menu components.Menu, cw int, compact bool) string {
	if compact {
		return lipgloss.NewStyle().Width(cw).Render(menu.View())
	}

	var rows []string
	for i, item := range menu.Items {
		label := fmt.Sprintf("%d. %s", i+1, item.Label)
		rows = append(rows, components.ChoiceButton(label, i == menu.Selected, 28))
	}
	block := lipgloss.JoinVertical(lipgloss.Center, pairs(rows)...)

	if desc := menu.Items[menu.Selected].Description; desc != "" {
		block += "\n" + theme.Hint.Render(desc)
	}
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(block)
}

// pairs lays buttons out two per row.
func pairs(buttons []string) []string {
	var rows []string
	for i := 0; i < len(buttons); i += 2 {
		if i+1 < len(buttons) {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, buttons[i], " ", buttons[i+1]))
		} else {
			rows = append(rows, buttons[i])
		}
	}
	return rows
}

func joinSections(sections []string) string {
	return strings.Join(sections, "\n\n")
}

// renderFrame centers content inside a bordered frame filling the area.
func renderFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
