// Package input turns key presses into menu and transport commands.
package input

import "errors"

// ErrQuit is returned by every loop when the user asked to quit. It is the
// single cancellation result of the program and is propagated, not handled.
var ErrQuit = errors.New("quit requested")

// Command is a menu navigation command.
type Command int

const (
	CommandUp Command = iota
	CommandDown
	CommandSelect
	CommandBack
)

func (c Command) String() string {
	switch c {
	case CommandUp:
		return "up"
	case CommandDown:
		return "down"
	case CommandSelect:
		return "select"
	case CommandBack:
		return "back"
	default:
		return "unknown"
	}
}

// Transport is a playback control command.
type Transport int

const (
	TransportStop Transport = iota
	TransportNext
	TransportPrevious
	TransportPause
)

func (t Transport) String() string {
	switch t {
	case TransportStop:
		return "stop"
	case TransportNext:
		return "next"
	case TransportPrevious:
		return "previous"
	case TransportPause:
		return "pause"
	default:
		return "unknown"
	}
}
