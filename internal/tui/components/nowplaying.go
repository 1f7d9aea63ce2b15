package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tessro/vortex/internal/tui/styles"
	"github.com/tessro/vortex/internal/ui"
)

// NowPlaying displays the song-info regions and the control row
type NowPlaying struct{}

// NewNowPlaying creates a new NowPlaying component
func NewNowPlaying() *NowPlaying {
	return &NowPlaying{}
}

// Render renders the now playing panel
func (n *NowPlaying) Render(panel ui.Panel, width, height int) string {
	title := styles.PanelTitle("Now Playing", true)

	var content string
	if panel.Text(ui.RegionSongTitle) == "" && panel.Text(ui.RegionSongArtist) == "" && panel.Text(ui.RegionSongStatus) == "" {
		content = styles.Muted.Render("Waiting for player...")
	} else {
		content = n.renderSong(panel, width-4)
	}

	return styles.Panel(true).
		Width(width).
		Height(height).
		Render(lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			content,
			"",
			n.RenderControls(panel),
		))
}

func (n *NowPlaying) renderSong(panel ui.Panel, width int) string {
	playing := panel.Icon(ui.ControlPlayPause) == ui.IconPause
	icon := styles.StatusIcon(playing)

	titleWidth := width - 4
	if titleWidth < 1 {
		titleWidth = 1
	}
	title := styles.Title.Width(titleWidth).Render(panel.Text(ui.RegionSongTitle))
	artist := styles.Subtitle.Render(panel.Text(ui.RegionSongArtist))
	status := styles.Dim.Render(panel.Text(ui.RegionSongStatus))

	return lipgloss.JoinVertical(lipgloss.Left,
		icon+" "+title,
		"  "+artist,
		"  "+status,
	)
}

// RenderControls renders one glyph per control. Random and repeat are
// highlighted while active; play/pause shows its current icon.
func (n *NowPlaying) RenderControls(panel ui.Panel) string {
	glyphs := make([]string, 0, len(ui.Controls))
	for _, id := range ui.Controls {
		glyphs = append(glyphs, controlGlyph(panel, id))
	}
	return strings.Join(glyphs, "  ")
}

func controlGlyph(panel ui.Panel, id ui.ControlID) string {
	switch id {
	case ui.ControlPrev:
		return styles.Dim.Render("⏮")
	case ui.ControlNext:
		return styles.Dim.Render("⏭")
	case ui.ControlPlayPause:
		if panel.Icon(id) == ui.IconPause {
			return styles.Playing.Render("⏸")
		}
		return styles.Paused.Render("▶")
	case ui.ControlRandom:
		return toggle("🔀", panel.IsActive(id))
	case ui.ControlRepeat:
		return toggle("🔁", panel.IsActive(id))
	default:
		return ""
	}
}

func toggle(glyph string, active bool) string {
	if active {
		return styles.Active.Render(glyph)
	}
	return styles.Dim.Render(glyph)
}
