package session

import (
	"github.com/go-logr/logr"

	"snav/internal/dom"
	"snav/internal/eventbus"
	"snav/internal/geometry"
	"snav/internal/input"
	"snav/internal/navigation"
)

// Step records what one key press did.
type Step struct {
	Key      string
	Action   string
	Handled  bool
	Outcome  navigation.Outcome
	Interest dom.Element
	Scrolled dom.Element
}

// Press dispatches one key. When a direction key finds no target and the
// search ended in a scrollable container, the host's default behaviour is
// applied: that container is scrolled by the configured step.
func (s *Session) Press(name string) Step {
	step := Step{Key: name, Action: "none"}
	if s.closed {
		return step
	}

	action := s.handler.Resolve(name)
	if action != nil {
		step.Action = action.Type()
		step.Handled = s.handler.Dispatch(action)
	}

	if nav, ok := action.(input.NavigateAction); ok {
		res := s.engine.LastResult()
		step.Outcome = res.Outcome
		if !step.Handled && res.Outcome == navigation.ScrollFallback {
			if s.ScrollNative(res.Container, nav.Direction) {
				step.Scrolled = res.Container
			}
		}
	}
	step.Interest = s.interest.Current()
	return step
}

// ScrollNative scrolls c by one step in dir, as the host would for an
// unhandled arrow key. It reports whether the offset changed.
func (s *Session) ScrollNative(c dom.Element, dir geometry.Direction) bool {
	n, ok := c.(*dom.Node)
	if !ok {
		s.log.Info("cannot scroll foreign element", "element", c.ID())
		return false
	}

	amount := float64(s.cfg.Navigation.ScrollStep)
	var dx, dy float64
	switch dir {
	case geometry.Up:
		dy = -amount
	case geometry.Down:
		dy = amount
	case geometry.Left:
		dx = -amount
	case geometry.Right:
		dx = amount
	default:
		return false
	}

	if !s.doc.ScrollBy(n, dx, dy) {
		return false
	}
	s.log.V(1).Info("native scroll", "container", n.ID(), "direction", dir.String())
	s.bus.Publish(eventbus.ScrolledEvent{Container: n, Direction: dir})
	return true
}

// Trace presses each key in turn, refreshing visibility after every press the
// way a host does once its debounce settles.
func (s *Session) Trace(keys []string) []Step {
	steps := make([]Step, 0, len(keys))
	for _, k := range keys {
		step := s.Press(k)
		s.Refresh()
		step.Interest = s.interest.Current()
		steps = append(steps, step)
		logStep(s.log, step)
	}
	return steps
}

func logStep(log logr.Logger, step Step) {
	log.V(1).Info("trace step",
		"key", step.Key,
		"action", step.Action,
		"handled", step.Handled,
		"outcome", step.Outcome.String(),
		"interest", elementID(step.Interest),
	)
}

func elementID(el dom.Element) string {
	if el == nil {
		return "-"
	}
	return el.ID()
}
