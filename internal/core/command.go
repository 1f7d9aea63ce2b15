package core

// Command is a one-way transport-control instruction.
type Command string

const (
	CommandPlayPause    Command = "play_pause"
	CommandNext         Command = "next"
	CommandPrev         Command = "prev"
	CommandToggleRandom Command = "random"
	CommandToggleRepeat Command = "repeat"
)

// Commands lists every command in control order.
var Commands = []Command{
	CommandPlayPause,
	CommandNext,
	CommandPrev,
	CommandToggleRandom,
	CommandToggleRepeat,
}

// Valid returns true if c is a known command.
func (c Command) Valid() bool {
	for _, known := range Commands {
		if c == known {
			return true
		}
	}
	return false
}

// Label returns a short human-readable name.
func (c Command) Label() string {
	switch c {
	case CommandPlayPause:
		return "play/pause"
	case CommandNext:
		return "next"
	case CommandPrev:
		return "previous"
	case CommandToggleRandom:
		return "random"
	case CommandToggleRepeat:
		return "repeat"
	default:
		return string(c)
	}
}
