package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/bobbyhwsong/voice-chat-app/internal/ui/theme"
)

const bannerArt = `
 ██╗   ██╗ ██████╗ ██╗ ██████╗███████╗ ██████╗██╗  ██╗ █████╗ ████████╗
 ██║   ██║██╔═══██╗██║██╔════╝██╔════╝██╔════╝██║  ██║██╔══██╗╚══██╔══╝
 ██║   ██║██║   ██║██║██║     █████╗  ██║     ███████║███████║   ██║
 ╚██╗ ██╔╝██║   ██║██║██║     ██╔══╝  ██║     ██╔══██║██╔══██║   ██║
  ╚████╔╝ ╚██████╔╝██║╚██████╗███████╗╚██████╗██║  ██║██║  ██║   ██║
   ╚═══╝   ╚═════╝ ╚═╝ ╚═════╝╚══════╝ ╚═════╝╚═╝  ╚═╝╚═╝  ╚═╝   ╚═╝`

const bannerCompact = "V O I C E C H A T"

// RenderBanner returns the banner styled in the primary color. Terminals
// narrower than 74 columns get the compact form.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 74 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
