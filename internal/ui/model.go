// Package ui is the terminal host: it renders a document, draws the interest
// ring, delivers key presses to the session and performs the native scroll
// when navigation leaves a key unhandled.
package ui

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-logr/logr"

	"snav/internal/dom"
	"snav/internal/eventbus"
	"snav/internal/input"
	"snav/internal/navigation"
	"snav/internal/session"
)

// Model represents the UI state
type Model struct {
	session *session.Session
	ring    *Ring
	styles  *Styles
	help    help.Model
	keys    input.KeyMap
	pager   *Pager
	log     logr.Logger

	width  int
	height int

	delay      time.Duration
	refreshSeq int
	highlight  bool

	status      string
	statusError bool
	inPagerMode bool // tracks if we're currently in pager mode

	unsubscribe []func()
}

// NewModel creates a host for s. The model installs its own interest ring.
func NewModel(s *session.Session, log logr.Logger) *Model {
	cfg := s.Config()
	m := &Model{
		session:   s,
		ring:      NewRing(),
		styles:    NewStyles(),
		help:      help.New(),
		keys:      s.Handler().KeyMap(),
		pager:     NewPager(nil),
		log:       log.WithName("ui"),
		delay:     cfg.Visibility.Delay.Duration,
		highlight: cfg.Debug.HighlightOnscreen,
	}
	s.Interest().SetRing(m.ring)
	m.subscribe(s.Bus())
	if seeded := s.Seeded(); seeded.Visited > 0 {
		m.setStatus(fmt.Sprintf("scanned %d elements", seeded.Visited), false)
	}
	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.pager.SetProgram(p)
}

// Close detaches the model from the session's event bus.
func (m *Model) Close() {
	for _, unsub := range m.unsubscribe {
		unsub()
	}
	m.unsubscribe = nil
}

func (m *Model) subscribe(bus eventbus.EventBus) {
	m.unsubscribe = append(m.unsubscribe,
		bus.Subscribe(eventbus.EventInterestMoved, func(e eventbus.DomainEvent) {
			if event, ok := e.(eventbus.InterestMovedEvent); ok {
				if event.To == nil {
					m.setStatus("interest cleared", false)
				} else {
					m.setStatus("interest: "+event.To.ID(), false)
				}
			}
		}),
		bus.Subscribe(eventbus.EventActivated, func(e eventbus.DomainEvent) {
			if event, ok := e.(eventbus.ActivatedEvent); ok {
				m.setStatus("activated "+event.Element.ID(), false)
			}
		}),
		bus.Subscribe(eventbus.EventDismissed, func(e eventbus.DomainEvent) {
			if event, ok := e.(eventbus.DismissedEvent); ok {
				m.setStatus("blurred "+event.Element.ID(), false)
			}
		}),
		bus.Subscribe(eventbus.EventScrolled, func(e eventbus.DomainEvent) {
			if event, ok := e.(eventbus.ScrolledEvent); ok {
				m.setStatus(fmt.Sprintf("scrolled %s %s", event.Container.ID(), event.Direction), false)
			}
		}),
		bus.Subscribe(eventbus.EventError, func(e eventbus.DomainEvent) {
			if event, ok := e.(eventbus.ErrorEvent); ok {
				m.setStatus(event.Message, true)
			}
		}),
	)
}

func (m *Model) setStatus(text string, isError bool) {
	m.status = text
	m.statusError = isError
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return m.scheduleRefresh()
}

// scheduleRefresh restarts the visibility debounce.
func (m *Model) scheduleRefresh() tea.Cmd {
	m.refreshSeq++
	seq := m.refreshSeq
	return tea.Tick(m.delay, func(time.Time) tea.Msg {
		return refreshMsg{seq: seq}
	})
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.layout()
		return m, m.scheduleRefresh()

	case tea.KeyMsg:
		if m.inPagerMode {
			return m, nil
		}
		return m, m.handleKey(msg.String())

	case refreshMsg:
		if msg.seq == m.refreshSeq {
			changed := m.session.Refresh()
			m.log.V(2).Info("visibility refreshed", "changes", changed)
		}

	case pauseRenderingMsg:
		m.inPagerMode = true

	case resumeRenderingMsg:
		m.inPagerMode = false

	case pagerMsg:
		m.inPagerMode = false
		if msg.err != nil {
			m.log.Error(msg.err, "pager failed")
			m.setStatus("pager: "+msg.err.Error(), true)
		}
	}

	return m, nil
}

func (m *Model) handleKey(name string) tea.Cmd {
	switch m.session.Handler().Resolve(name).(type) {
	case input.QuitAction:
		return tea.Quit
	case input.ToggleHelpAction:
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
		return m.scheduleRefresh()
	case input.DumpAction:
		return m.dumpCmd()
	}

	step := m.session.Press(name)
	if step.Action == (input.NavigateAction{}).Type() && !step.Handled && step.Scrolled == nil {
		m.setStatus("nothing further "+describeOutcome(step.Outcome), false)
	}
	return m.scheduleRefresh()
}

func describeOutcome(o navigation.Outcome) string {
	if o == navigation.ScrollFallback {
		return "(already scrolled to the end)"
	}
	return "in that direction"
}

// layout gives the document every row not used by the footer, up to the
// size the document declares.
func (m *Model) layout() {
	if m.width == 0 || m.height == 0 {
		return
	}
	footer := 1 + lipgloss.Height(m.help.View(m.keys))
	width, height := float64(m.width), float64(max(m.height-footer, 1))
	doc := m.session.Document()
	if w, h, ok := doc.DeclaredSize(); ok {
		width, height = min(width, w), min(height, h)
	}
	doc.Resize(width, height)
}

// dumpCmd returns a command that shows the visible set using ov pager
func (m *Model) dumpCmd() tea.Cmd {
	var buf bytes.Buffer
	if err := m.session.Dump(&buf, true); err != nil {
		return func() tea.Msg { return pagerMsg{err: err} }
	}
	content := buf.String()
	pager := m.pager
	return func() tea.Msg {
		if pager.program != nil {
			pager.program.Send(pauseRenderingMsg{})
		}
		err := pager.Show(content)
		if pager.program != nil {
			pager.program.Send(resumeRenderingMsg{})
		}
		return pagerMsg{err: err}
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}

	r := renderer{
		doc:         m.session.Document(),
		ring:        m.ring,
		isNavigable: m.session.Registry().IsNavigable,
		highlight:   m.highlight,
	}
	if m.highlight {
		r.visible = m.session.Registry().Visible()
	}
	body := r.paint().Render(m.styles)

	return lipgloss.JoinVertical(lipgloss.Left, body, m.statusLine(), m.help.View(m.keys))
}

func (m *Model) statusLine() string {
	nav, vis := m.session.Registry().Len()
	parts := []string{
		fmt.Sprintf("%d navigable", nav),
		fmt.Sprintf("%d visible", vis),
	}
	if m.status != "" {
		parts = append(parts, m.status)
	}
	line := strings.Join(parts, " · ")
	if m.statusError {
		return m.styles.StatusError.Render(line)
	}
	return m.styles.Status.Render(line)
}

// Current returns the interested element, for hosts embedding the model.
func (m *Model) Current() dom.Element {
	return m.session.Current()
}
