// Package keymap defines key bindings and action resolution for the application.
package keymap

// Action represents a user-triggerable action. The string value is also the
// name used for overrides in the config file.
type Action string

const (
	// Menu actions
	ActionUp     Action = "up"
	ActionDown   Action = "down"
	ActionSelect Action = "select"
	ActionBack   Action = "back"

	// Transport actions (while a collection is playing)
	ActionNext     Action = "next"
	ActionPrevious Action = "previous"
	ActionStop     Action = "stop"
	ActionPause    Action = "pause"

	// Available everywhere
	ActionQuit Action = "quit"
)

// Context selects which set of bindings is active.
type Context string

const (
	ContextMenu      Context = "menu"
	ContextTransport Context = "transport"
)
