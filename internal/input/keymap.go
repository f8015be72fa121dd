package input

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"snav/internal/config"
	"snav/internal/geometry"
)

// KeyMap holds the bindings for every action. It implements help.KeyMap.
type KeyMap struct {
	Up       key.Binding
	Right    key.Binding
	Down     key.Binding
	Left     key.Binding
	Activate key.Binding
	Dismiss  key.Binding
	Dump     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// NewKeyMap builds bindings from the [keys] config section.
func NewKeyMap(keys config.KeysConfig) KeyMap {
	return KeyMap{
		Up:       binding(keys.Up, "move up"),
		Right:    binding(keys.Right, "move right"),
		Down:     binding(keys.Down, "move down"),
		Left:     binding(keys.Left, "move left"),
		Activate: binding(keys.Activate, "activate"),
		Dismiss:  binding(keys.Dismiss, "blur"),
		Dump:     binding(keys.Dump, "visible set"),
		Help:     binding(keys.Help, "more keys"),
		Quit:     binding(keys.Quit, "quit"),
	}
}

// DefaultKeyMap returns the bindings of the default config.
func DefaultKeyMap() KeyMap {
	return NewKeyMap(config.DefaultConfig().Keys)
}

func binding(keys []string, desc string) key.Binding {
	b := key.NewBinding(key.WithKeys(keys...), key.WithHelp(helpKeys(keys), desc))
	if len(keys) == 0 {
		b.SetEnabled(false)
	}
	return b
}

var arrows = map[string]string{
	"up":    "↑",
	"right": "→",
	"down":  "↓",
	"left":  "←",
}

func helpKeys(keys []string) string {
	out := make([]string, len(keys))
	for i, k := range keys {
		if a, ok := arrows[k]; ok {
			k = a
		}
		out[i] = k
	}
	return strings.Join(out, "/")
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Activate, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Right, k.Down, k.Left},
		{k.Activate, k.Dismiss},
		{k.Dump, k.Help, k.Quit},
	}
}

// direction returns the direction bound to name, if any.
func (k KeyMap) direction(name keyName) (geometry.Direction, bool) {
	switch {
	case key.Matches(name, k.Up):
		return geometry.Up, true
	case key.Matches(name, k.Right):
		return geometry.Right, true
	case key.Matches(name, k.Down):
		return geometry.Down, true
	case key.Matches(name, k.Left):
		return geometry.Left, true
	}
	return 0, false
}
