// Package render maps poll results onto the UI binding.
package render

import (
	"fmt"
	"strings"

	"github.com/tessro/vortex/internal/core"
	"github.com/tessro/vortex/internal/ui"
)

// Render applies the result to the binding. It is idempotent: rendering the
// same result twice leaves the same visible state as rendering it once.
func Render(b ui.Binding, r core.Result) {
	if !r.OK() {
		showError(b, FailureText(r.Failure))
		return
	}
	renderSnapshot(b, r.Snapshot)
}

// RenderCommandFailure shows a banner for a command that could not be sent.
func RenderCommandFailure(b ui.Binding, cmd core.Command, err error) {
	showError(b, fmt.Sprintf("Error while sending %s: %v", cmd.Label(), err))
}

// FailureText returns the banner text for a failed poll. Application failures
// show the service's text verbatim. The result is never empty so the banner
// always shows.
func FailureText(f *core.Failure) string {
	if f == nil {
		return "No player state received"
	}
	switch f.Kind {
	case core.FailureApplication:
		if f.Message == "" {
			return "Player reported an error"
		}
		return f.Message
	default:
		if f.Message == "" {
			return "Unable to reach player"
		}
		return "Unable to reach player: " + f.Message
	}
}

// StatusLine returns the song-status text for a snapshot.
func StatusLine(s *core.Snapshot) string {
	var b strings.Builder
	b.WriteString("[random: " + onOff(s.Random) + "] ")
	b.WriteString("[repeat: " + onOff(s.Repeat) + "]")
	switch s.State {
	case core.StatePause:
		b.WriteString(" [paused]")
	case core.StateStop:
		b.WriteString(" [stopped]")
	}
	return b.String()
}

// PlayPauseIcon returns the glyph for the play/pause control: pause while
// playing, play in every other state.
func PlayPauseIcon(state core.PlayerState) ui.Icon {
	if state.IsPlaying() {
		return ui.IconPause
	}
	return ui.IconPlay
}

// renderSnapshot leaves the error banner alone; it stays until dismissed or
// replaced by the next failure.
func renderSnapshot(b ui.Binding, s *core.Snapshot) {
	b.SetText(ui.RegionSongTitle, s.Song.Title)
	b.SetText(ui.RegionSongArtist, s.Song.Artist)
	b.SetText(ui.RegionSongStatus, StatusLine(s))
	b.SetIconState(ui.ControlPlayPause, PlayPauseIcon(s.State))
	b.SetActive(ui.ControlRandom, s.Random)
	b.SetActive(ui.ControlRepeat, s.Repeat)
}

func showError(b ui.Binding, text string) {
	b.ClearError()
	b.ShowError(text)
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
