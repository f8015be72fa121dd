package ui

// refreshMsg fires when the visibility debounce settles. Only the most recent
// one triggers a refresh.
type refreshMsg struct {
	seq int
}

// pagerMsg contains the result of a pager command
type pagerMsg struct {
	err error
}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
