package remote

import "github.com/tessro/vortex/internal/core"

// statusResponse is the body served by the status endpoint.
type statusResponse struct {
	Success bool          `json:"success"`
	Error   string        `json:"error,omitempty"`
	Song    *songResponse `json:"song,omitempty"`
	State   string        `json:"state,omitempty"`
	Random  bool          `json:"random,omitempty"`
	Repeat  bool          `json:"repeat,omitempty"`
}

// songResponse carries the song fields the client shows. The service may send
// more tags; they are ignored.
type songResponse struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
}

func (r *statusResponse) snapshot() *core.Snapshot {
	s := &core.Snapshot{
		State:  core.PlayerState(r.State),
		Random: r.Random,
		Repeat: r.Repeat,
	}
	if r.Song != nil {
		s.Song = core.Song{Title: r.Song.Title, Artist: r.Song.Artist}
	}
	return s
}
