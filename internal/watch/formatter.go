package watch

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/tessro/vortex/internal/render"
)

// Formatter formats events for output.
type Formatter struct {
	showEmoji     bool
	showTimestamp bool
	template      *template.Template
}

// FormatterOption configures a Formatter.
type FormatterOption func(*Formatter)

// WithEmoji enables emoji output.
func WithEmoji(enabled bool) FormatterOption {
	return func(f *Formatter) {
		f.showEmoji = enabled
	}
}

// WithTimestamp enables timestamp output.
func WithTimestamp(enabled bool) FormatterOption {
	return func(f *Formatter) {
		f.showTimestamp = enabled
	}
}

// WithTemplate sets a custom format template.
func WithTemplate(tmpl *template.Template) FormatterOption {
	return func(f *Formatter) {
		f.template = tmpl
	}
}

// ParseTemplate parses a line template. An empty string yields nil.
func ParseTemplate(text string) (*template.Template, error) {
	if text == "" {
		return nil, nil
	}
	t, err := template.New("format").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("invalid format template: %w", err)
	}
	return t, nil
}

// NewFormatter creates a new formatter with the given options.
func NewFormatter(opts ...FormatterOption) *Formatter {
	f := &Formatter{showEmoji: true}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format formats an event as a string.
func (f *Formatter) Format(e Event) string {
	if f.template != nil {
		return f.formatTemplate(e)
	}
	return f.formatLine(e)
}

func (f *Formatter) formatLine(e Event) string {
	var parts []string
	if f.showTimestamp {
		parts = append(parts, e.Timestamp.Format("15:04:05"))
	}
	if f.showEmoji {
		parts = append(parts, eventEmoji(e.Type))
	}
	parts = append(parts, Describe(e))
	return strings.Join(parts, " ")
}

func (f *Formatter) formatTemplate(e Event) string {
	data := templateData{
		Type:      eventTypeName(e.Type),
		Emoji:     eventEmoji(e.Type),
		Timestamp: e.Timestamp,
		Time:      e.Timestamp.Format("15:04:05"),
	}
	if e.Current != nil {
		data.Title = e.Current.Song.Title
		data.Artist = e.Current.Song.Artist
		data.State = string(e.Current.State)
		data.Random = e.Current.Random
		data.Repeat = e.Current.Repeat
	}
	if e.Failure != nil {
		data.Error = render.FailureText(e.Failure)
	}

	var buf bytes.Buffer
	if err := f.template.Execute(&buf, data); err != nil {
		return f.formatLine(e)
	}
	return buf.String()
}

type templateData struct {
	Type      string
	Emoji     string
	Timestamp time.Time
	Time      string
	Title     string
	Artist    string
	State     string
	Random    bool
	Repeat    bool
	Error     string
}

// Describe returns a human-readable description of the event.
func Describe(e Event) string {
	switch e.Type {
	case EventTrackChange:
		if e.Current != nil {
			return fmt.Sprintf("Now playing: %s", songLine(e.Current.Song.Artist, e.Current.Song.Title))
		}
		return "Track changed"
	case EventPause:
		return "Paused"
	case EventResume:
		return "Resumed"
	case EventStop:
		return "Stopped"
	case EventModeChange:
		if e.Current != nil {
			return "Mode: " + render.StatusLine(e.Current)
		}
		return "Mode changed"
	case EventError:
		if e.Failure != nil {
			return render.FailureText(e.Failure)
		}
		return "Error"
	case EventRecovered:
		return "Player reachable again"
	default:
		return "Unknown event"
	}
}

func songLine(artist, title string) string {
	switch {
	case artist == "":
		return title
	case title == "":
		return artist
	default:
		return artist + " - " + title
	}
}

func eventEmoji(t EventType) string {
	switch t {
	case EventTrackChange:
		return "🎵"
	case EventPause:
		return "⏸️"
	case EventResume:
		return "▶️"
	case EventStop:
		return "⏹️"
	case EventModeChange:
		return "🔀"
	case EventError:
		return "⚠️"
	case EventRecovered:
		return "✅"
	default:
		return "❓"
	}
}

func eventTypeName(t EventType) string {
	switch t {
	case EventTrackChange:
		return "track_change"
	case EventPause:
		return "pause"
	case EventResume:
		return "resume"
	case EventStop:
		return "stop"
	case EventModeChange:
		return "mode_change"
	case EventError:
		return "error"
	case EventRecovered:
		return "recovered"
	default:
		return "unknown"
	}
}

// String returns the event type name.
func (t EventType) String() string {
	return eventTypeName(t)
}
