package keymap

import (
	"fmt"
	"slices"
)

// Binding describes a single key binding.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     Context
}

// Bindings contains the default key bindings.
var Bindings = []Binding{
	// Menu
	{ActionUp, []string{"up", "k"}, "up", ContextMenu},
	{ActionDown, []string{"down", "j"}, "down", ContextMenu},
	{ActionSelect, []string{"right", "enter", "l"}, "select", ContextMenu},
	{ActionBack, []string{"left", "h"}, "back", ContextMenu},
	{ActionQuit, []string{"esc", "q", "ctrl+c"}, "quit", ContextMenu},

	// Transport
	{ActionPrevious, []string{"left", "h"}, "previous", ContextTransport},
	{ActionNext, []string{"right", "enter", "l"}, "next", ContextTransport},
	{ActionPause, []string{"p", " "}, "pause", ContextTransport},
	{ActionStop, []string{"s", "down"}, "stop", ContextTransport},
	{ActionQuit, []string{"esc", "q", "ctrl+c"}, "quit", ContextTransport},
}

// ByContext returns key bindings filtered by context.
func ByContext(bindings []Binding, context Context) []Binding {
	var result []Binding
	for _, kb := range bindings {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}

// WithOverrides returns a copy of bindings where the keys of every action
// named in overrides are replaced. Unknown action names, empty key lists and
// keys bound twice within one context are errors.
func WithOverrides(bindings []Binding, overrides map[string][]string) ([]Binding, error) {
	known := make(map[Action]bool)
	for _, b := range bindings {
		known[b.Action] = true
	}
	for name, keys := range overrides {
		if !known[Action(name)] {
			return nil, fmt.Errorf("unknown action %q", name)
		}
		if len(keys) == 0 {
			return nil, fmt.Errorf("action %q has no keys", name)
		}
	}

	result := make([]Binding, len(bindings))
	for i, b := range bindings {
		b.Keys = slices.Clone(b.Keys)
		if keys, ok := overrides[string(b.Action)]; ok {
			b.Keys = make([]string, len(keys))
			for j, k := range keys {
				b.Keys[j] = normalizeKey(k)
			}
		}
		result[i] = b
	}

	if err := checkConflicts(result); err != nil {
		return nil, err
	}
	return result, nil
}

func checkConflicts(bindings []Binding) error {
	seen := make(map[Context]map[string]Action)
	for _, b := range bindings {
		if seen[b.Context] == nil {
			seen[b.Context] = make(map[string]Action)
		}
		for _, k := range b.Keys {
			if other, ok := seen[b.Context][k]; ok && other != b.Action {
				return fmt.Errorf("key %q bound to both %q and %q in %s context", k, other, b.Action, b.Context)
			}
			seen[b.Context][k] = b.Action
		}
	}
	return nil
}

// normalizeKey accepts "space" in config files for bubbletea's " ".
func normalizeKey(k string) string {
	if k == "space" {
		return " "
	}
	return k
}
