// Package input turns key presses into navigation, activation and dismissal.
package input

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/go-logr/logr"

	"snav/internal/geometry"
)

// Navigator moves interest directionally.
type Navigator interface {
	Advance(dir geometry.Direction) bool
}

// Activator acts on the interested element.
type Activator interface {
	Activate() bool
	Dismiss() bool
}

// keyName lets a plain key string be matched against key.Bindings.
type keyName string

func (k keyName) String() string { return string(k) }

type Handler struct {
	keys     KeyMap
	nav      Navigator
	interest Activator
	log      logr.Logger
}

func New(keys KeyMap, nav Navigator, interest Activator, log logr.Logger) *Handler {
	return &Handler{
		keys:     keys,
		nav:      nav,
		interest: interest,
		log:      log.WithName("input"),
	}
}

// KeyMap returns the bindings in use.
func (h *Handler) KeyMap() KeyMap {
	return h.keys
}

// Resolve maps a key name such as "down" or "enter" to an action, or nil when
// the key is unbound.
func (h *Handler) Resolve(name string) Action {
	k := keyName(name)
	if dir, ok := h.keys.direction(k); ok {
		return NavigateAction{Direction: dir}
	}
	switch {
	case key.Matches(k, h.keys.Activate):
		return ActivateAction{}
	case key.Matches(k, h.keys.Dismiss):
		return DismissAction{}
	case key.Matches(k, h.keys.Dump):
		return DumpAction{}
	case key.Matches(k, h.keys.Help):
		return ToggleHelpAction{}
	case key.Matches(k, h.keys.Quit):
		return QuitAction{}
	}
	return nil
}

// HandleKey performs the navigation action bound to name. It returns true
// when the key was consumed and the host should suppress its default
// behaviour. Direction keys are consumed only when interest moved; other
// keys only when they acted. Host-level actions and unbound keys return false.
func (h *Handler) HandleKey(name string) bool {
	action := h.Resolve(name)
	if action == nil {
		return false
	}
	return h.Dispatch(action)
}

// Dispatch performs a resolved action. See HandleKey.
func (h *Handler) Dispatch(action Action) bool {
	var handled bool
	switch a := action.(type) {
	case NavigateAction:
		handled = h.nav.Advance(a.Direction)
	case ActivateAction:
		handled = h.interest.Activate()
	case DismissAction:
		handled = h.interest.Dismiss()
	default:
		return false
	}
	h.log.V(1).Info("key dispatched", "action", action.Type(), "handled", handled)
	return handled
}
