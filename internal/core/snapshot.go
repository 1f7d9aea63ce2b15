package core

import "fmt"

// PlayerState is the playback state reported by the player service.
type PlayerState string

const (
	StatePlay  PlayerState = "play"
	StatePause PlayerState = "pause"
	StateStop  PlayerState = "stop"
)

// IsPlaying returns true only for the "play" state. Unknown states count as
// not playing.
func (s PlayerState) IsPlaying() bool {
	return s == StatePlay
}

// Song is the currently loaded song.
type Song struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
}

// Snapshot describes the player at one instant. It lives for one render pass.
type Snapshot struct {
	Song   Song        `json:"song"`
	State  PlayerState `json:"state"`
	Random bool        `json:"random"`
	Repeat bool        `json:"repeat"`
}

// FailureKind tells where a poll failed.
type FailureKind int

const (
	// FailureApplication means the service answered with success:false.
	FailureApplication FailureKind = iota
	// FailureTransport means the request itself failed (network, status, body).
	FailureTransport
)

func (k FailureKind) String() string {
	switch k {
	case FailureApplication:
		return "application"
	case FailureTransport:
		return "transport"
	default:
		return "unknown"
	}
}

// Failure is the failure-shaped outcome of a poll.
type Failure struct {
	Kind    FailureKind
	Message string
	Err     error
}

// Result is the outcome of one poll: exactly one of Snapshot or Failure is set.
type Result struct {
	Snapshot *Snapshot
	Failure  *Failure
}

// OK returns true if the poll produced a snapshot.
func (r Result) OK() bool {
	return r.Snapshot != nil && r.Failure == nil
}

// Succeeded wraps a snapshot in a Result.
func Succeeded(s *Snapshot) Result {
	return Result{Snapshot: s}
}

// Failed wraps a failure in a Result.
func Failed(kind FailureKind, message string, err error) Result {
	return Result{Failure: &Failure{Kind: kind, Message: message, Err: err}}
}

// ApplicationError is returned by status fetchers when the service reports
// success:false. Message is the service's error text, verbatim.
type ApplicationError struct {
	Message string
}

func (e *ApplicationError) Error() string {
	return fmt.Sprintf("player error: %s", e.Message)
}
