package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/bobbyhwsong/voice-chat-app/internal/ui/theme"
)

// Checklist is a list of items toggled with space or their number key.
type Checklist struct {
	Items   []string
	Checked []bool
	Cursor  int
}

// NewChecklist creates an unchecked list.
func NewChecklist(items []string) Checklist {
	return Checklist{
		Items:   items,
		Checked: make([]bool, len(items)),
	}
}

// Update handles navigation and toggling.
func (c Checklist) Update(msg tea.Msg) (Checklist, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
	case "down", "j":
		if c.Cursor < len(c.Items)-1 {
			c.Cursor++
		}
	case "space", " ", "x":
		c.toggle(c.Cursor)
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			i := int(key[0] - '1')
			if i < len(c.Items) {
				c.Cursor = i
				c.toggle(i)
			}
		}
	}
	return c, nil
}

func (c *Checklist) toggle(i int) {
	if i < 0 || i >= len(c.Checked) {
		return
	}
	checked := append([]bool(nil), c.Checked...)
	checked[i] = !checked[i]
	c.Checked = checked
}

// CheckedCount returns how many items are checked.
func (c Checklist) CheckedCount() int {
	n := 0
	for _, v := range c.Checked {
		if v {
			n++
		}
	}
	return n
}

// View renders the checklist wrapped to width.
func (c Checklist) View(width int) string {
	var b strings.Builder
	textWidth := width - 8
	if textWidth < 20 {
		textWidth = 20
	}
	for i, item := range c.Items {
		box := "[ ]"
		style := theme.Unselected
		if c.Checked[i] {
			box = "[✓]"
			style = theme.Done
		}
		cursor := "  "
		if i == c.Cursor {
			cursor = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("▸ ")
		}
		text := lipgloss.NewStyle().Width(textWidth).Render(item)
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cursor, style.Render(box+" "), style.Render(text)))
		b.WriteString("\n")
	}
	return b.String()
}
