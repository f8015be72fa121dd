package input

import "snav/internal/geometry"

// Action represents a command resolved from a key press
type Action interface {
	Type() string
}

// NavigateAction moves interest in a direction
type NavigateAction struct {
	Direction geometry.Direction
}

func (a NavigateAction) Type() string { return "navigate" }

// ActivateAction focuses and clicks the interested element
type ActivateAction struct{}

func (a ActivateAction) Type() string { return "activate" }

// DismissAction blurs the interested element
type DismissAction struct{}

func (a DismissAction) Type() string { return "dismiss" }

// DumpAction shows the visible set
type DumpAction struct{}

func (a DumpAction) Type() string { return "dump" }

// ToggleHelpAction expands or collapses the help footer
type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

// QuitAction exits the host
type QuitAction struct{}

func (a QuitAction) Type() string { return "quit" }
