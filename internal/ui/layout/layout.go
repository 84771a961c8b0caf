// Package layout draws the chrome around every screen: the header with the
// signed-in participant, the key-hint footer and the toast slot.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/bobbyhwsong/voice-chat-app/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24

	HeaderHeight = 3
	FooterHeight = 3

	CompactWidthThreshold  = 100
	CompactHeightThreshold = 30
)

// KeyHint represents a key binding hint shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsCompactWidth returns true if the terminal width is in compact range.
func IsCompactWidth(width int) bool {
	return width < CompactWidthThreshold
}

// IsCompactHeight returns true if the terminal height is in compact range.
func IsCompactHeight(height int) bool {
	return height < CompactHeightThreshold
}

// IsTooSmall returns true if the terminal is below minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the user to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	body := fmt.Sprintf(
		"터미널 창이 너무 작습니다.\n\n최소 %d x %d 이상으로\n늘려 주세요.\n\n현재: %d x %d",
		MinWidth, MinHeight, width, height,
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Text).Align(lipgloss.Center).Render(body))
}

// Header is what the top bar shows.
type Header struct {
	Title       string
	Participant string // empty when signed out
	Speaking    bool
}

// RenderHeader renders the header bar: app name left, screen title centered,
// participant and a speaker mark right.
func RenderHeader(h Header, width int) string {
	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  🩺 voicechat")
	center := lipgloss.NewStyle().Foreground(theme.Text).Render(h.Title)

	var right string
	if h.Participant != "" {
		right = lipgloss.NewStyle().Foreground(theme.Accent).Render("👤 " + h.Participant)
	} else {
		right = lipgloss.NewStyle().Foreground(theme.TextDim).Render("로그인 필요")
	}
	if h.Speaking {
		right = lipgloss.NewStyle().Foreground(theme.Info).Render("🔊 ") + right
	}

	inner := width - 4
	if inner < 0 {
		inner = 0
	}
	lw, cw, rw := lipgloss.Width(left), lipgloss.Width(center), lipgloss.Width(right)
	leftGap := max((inner-cw)/2-lw, 1)
	rightGap := max(inner-lw-leftGap-cw-rw, 1)

	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(left + strings.Repeat(" ", leftGap) + center + strings.Repeat(" ", rightGap) + right)
}

// RenderFooter renders the key hints. Hints that do not fit are dropped from
// the end, so screens list the important keys first.
func RenderFooter(hints []KeyHint, width int) string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	budget := width - 6
	line := " "
	for i, h := range hints {
		part := keyStyle.Render(h.Key) + " " + descStyle.Render(h.Description)
		sep := "   "
		if i == 0 {
			sep = " "
		}
		if lipgloss.Width(line+sep+part) > budget {
			break
		}
		line += sep + part
	}

	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(line)
}

// RenderFrame stacks header, optional toast, content and footer. The content
// gets whatever height the others leave.
func RenderFrame(header, toast, content, footer string, width, height int) string {
	body := ContentHeight(header, toast, footer, height)
	if toast != "" {
		content = toast + "\n" + lipgloss.NewStyle().MaxHeight(body).Render(content)
		body += lipgloss.Height(toast)
	}
	styled := lipgloss.NewStyle().Width(width).Height(body).MaxHeight(body).Render(content)
	return header + "\n" + styled + "\n" + footer
}

// ContentHeight is the height left for the active screen.
func ContentHeight(header, toast, footer string, height int) int {
	h := height - lipgloss.Height(header) - lipgloss.Height(footer)
	if toast != "" {
		h -= lipgloss.Height(toast)
	}
	return max(h, 0)
}
