// Package ui defines the port through which the synchronizer's renderer and
// the command dispatcher reach the visible controls.
package ui

// ControlID identifies a clickable control.
type ControlID string

const (
	ControlPlayPause ControlID = "play-pause"
	ControlNext      ControlID = "next"
	ControlPrev      ControlID = "prev"
	ControlRandom    ControlID = "random"
	ControlRepeat    ControlID = "repeat"
)

// Controls lists every control in display order.
var Controls = []ControlID{
	ControlPrev,
	ControlPlayPause,
	ControlNext,
	ControlRandom,
	ControlRepeat,
}

// RegionID identifies a text region of the song-info display.
type RegionID string

const (
	RegionSongTitle  RegionID = "song-title"
	RegionSongArtist RegionID = "song-artist"
	RegionSongStatus RegionID = "song-status"
)

// Icon is the glyph shown on a control.
type Icon string

const (
	IconPlay  Icon = "play"
	IconPause Icon = "pause"
)

// Binding is the capability for reading and mutating the visible regions.
type Binding interface {
	OnClick(id ControlID, handler func())
	SetText(id RegionID, text string)
	SetActive(id ControlID, active bool)
	SetIconState(id ControlID, icon Icon)
	ShowError(text string)
	ClearError()
}

// Batcher is implemented by bindings that can apply a group of mutations as
// a single visible change.
type Batcher interface {
	Batch(fn func(b Binding))
}
