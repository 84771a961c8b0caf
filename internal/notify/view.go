package notify

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/bobbyhwsong/voice-chat-app/internal/ui/theme"
)

// View renders the notification as a bordered toast, or "" when hidden.
func (p Presenter) View(width int) string {
	n, ok := p.Current()
	if !ok {
		return ""
	}

	accent := theme.Secondary
	switch n.Kind {
	case KindSuccess, KindQuest:
		accent = theme.Success
	case KindError:
		accent = theme.Error
	}

	var b strings.Builder
	if n.Title != "" {
		b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(theme.Text).Render(n.Icon + " " + n.Title))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(n.Message))
	} else {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(n.Icon + " " + n.Message))
	}
	for _, d := range n.Detail {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(d))
	}

	w := width / 2
	if w < 30 {
		w = 30
	}
	box := lipgloss.NewStyle().
		Width(w).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(0, 1)
	if p.phase != PhaseVisible {
		box = box.Faint(true)
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Right, box.Render(b.String()))
}
