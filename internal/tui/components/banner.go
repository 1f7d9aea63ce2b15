package components

import "github.com/tessro/vortex/internal/tui/styles"

// Banner renders the dismissible error banner. It is empty while no error
// is shown.
func Banner(text string, width int) string {
	if text == "" {
		return ""
	}
	return styles.Banner.Width(width).Render(text + "  " + styles.Dim.Render("(x to dismiss)"))
}
