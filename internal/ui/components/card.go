package components

import (
	"charm.land/lipgloss/v2"

	"github.com/bobbyhwsong/voice-chat-app/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for stacked cards so
// they line up.
func ContentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 90 {
		w = 90
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Center places content in the middle of the given area.
func Center(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// Card wraps content in a rounded-border card with an optional title.
func Card(title, content string, cw int) string {
	if title != "" {
		content = theme.SectionTitle.Render(title) + "\n" + content
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw - 2).
		Padding(0, 1).
		Render(content)
}

// Dialog renders a modal box with a double border, used for confirmations
// and popups.
func Dialog(title, body string, options []string, selected, width int) string {
	content := lipgloss.NewStyle().Bold(true).Foreground(theme.Text).Render(title)
	if body != "" {
		content += "\n\n" + lipgloss.NewStyle().Foreground(theme.TextDim).Render(body)
	}
	if len(options) > 0 {
		row := make([]string, 0, len(options))
		for i, o := range options {
			row = append(row, ChoiceButton(o, i == selected, 14))
		}
		content += "\n\n" + lipgloss.JoinHorizontal(lipgloss.Center, row...)
	}

	w := width / 2
	if w < 40 {
		w = 40
	}
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(w).
		Align(lipgloss.Center).
		Padding(1, 2).
		Render(content)
}

// ChoiceButton renders a selectable option.
func ChoiceButton(label string, selected bool, width int) string {
	if selected {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Bold(true).
			Foreground(theme.BgDark).
			Background(theme.Highlight).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Highlight).
			Render("▸ " + label)
	}
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(label)
}
