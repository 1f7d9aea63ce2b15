package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/tessro/vortex/internal/ui"
)

// panelView is the JSON form of the now-playing panel.
type panelView struct {
	Title   string `json:"title"`
	Artist  string `json:"artist"`
	Status  string `json:"status"`
	Playing bool   `json:"playing"`
	Random  bool   `json:"random"`
	Repeat  bool   `json:"repeat"`
	Error   string `json:"error,omitempty"`
}

func newPanelView(p ui.Panel) panelView {
	return panelView{
		Title:   p.Text(ui.RegionSongTitle),
		Artist:  p.Text(ui.RegionSongArtist),
		Status:  p.Text(ui.RegionSongStatus),
		Playing: p.Icon(ui.ControlPlayPause) == ui.IconPause,
		Random:  p.IsActive(ui.ControlRandom),
		Repeat:  p.IsActive(ui.ControlRepeat),
		Error:   p.Error,
	}
}

// printPanel writes the panel as text, or as JSON with --json.
func printPanel(w io.Writer, p ui.Panel) error {
	view := newPanelView(p)

	if JSONOutput() {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	}

	if view.Title != "" || view.Artist != "" || view.Status != "" {
		icon := "⏸"
		if view.Playing {
			icon = "▶"
		}
		fmt.Fprintf(w, "%s %s\n", icon, view.Title)
		if view.Artist != "" {
			fmt.Fprintf(w, "  %s\n", view.Artist)
		}
		fmt.Fprintf(w, "  %s\n", view.Status)
	}
	if view.Error != "" {
		fmt.Fprintf(w, "Error: %s\n", view.Error)
	}
	return nil
}
