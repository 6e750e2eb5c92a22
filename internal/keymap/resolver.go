package keymap

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
)

// Resolver maps key presses to actions for one context.
type Resolver struct {
	actions  []Action
	bindings []key.Binding // parallel to actions
}

// NewResolver creates a resolver from the bindings of the given context.
func NewResolver(bindings []Binding, context Context) *Resolver {
	r := &Resolver{}
	for _, b := range ByContext(bindings, context) {
		r.actions = append(r.actions, b.Action)
		r.bindings = append(r.bindings, key.NewBinding(
			key.WithKeys(b.Keys...),
			key.WithHelp(helpKey(b.Keys), b.Description),
		))
	}
	return r
}

// Resolve returns the action for a key press. Keys are anything with a
// String method in bubbletea's key notation, usually a tea.KeyMsg.
func (r *Resolver) Resolve(k fmt.Stringer) (Action, bool) {
	for i, b := range r.bindings {
		if key.Matches(k, b) {
			return r.actions[i], true
		}
	}
	return "", false
}

// KeysFor returns the keys bound to an action.
func (r *Resolver) KeysFor(action Action) []string {
	for i, a := range r.actions {
		if a == action {
			return r.bindings[i].Keys()
		}
	}
	return nil
}

// Help returns the bindings in display order, for help rendering.
func (r *Resolver) Help() []key.Binding {
	return r.bindings
}

// KeyMap holds the resolvers for every context.
type KeyMap struct {
	Menu      *Resolver
	Transport *Resolver
}

// New builds the key map from the defaults and the user's overrides.
func New(overrides map[string][]string) (*KeyMap, error) {
	bindings, err := WithOverrides(Bindings, overrides)
	if err != nil {
		return nil, err
	}
	return &KeyMap{
		Menu:      NewResolver(bindings, ContextMenu),
		Transport: NewResolver(bindings, ContextTransport),
	}, nil
}

// ResolveMenu resolves a key press in the menu context.
func (m *KeyMap) ResolveMenu(k fmt.Stringer) (Action, bool) {
	return m.Menu.Resolve(k)
}

// ResolveTransport resolves a key press while a collection is playing.
func (m *KeyMap) ResolveTransport(k fmt.Stringer) (Action, bool) {
	return m.Transport.Resolve(k)
}

func helpKey(keys []string) string {
	if len(keys) == 0 {
		return ""
	}
	switch k := keys[0]; k {
	case " ":
		return "space"
	case "up":
		return "↑"
	case "down":
		return "↓"
	case "left":
		return "←"
	case "right":
		return "→"
	default:
		return k
	}
}
