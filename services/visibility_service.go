package services

import (
	"sync"
	"time"
)

const (
	// Within this distance of the top the navbar is always shown.
	navbarTopThreshold = 50
	// Scroll deltas at or below this magnitude are jitter and ignored.
	navbarMinDelta = 5
	// Dwell time before an upward scroll brings the navbar back.
	navbarShowDelay = 2 * time.Second
)

// NavbarController decides whether the floating navigation bar is shown,
// from sampled scroll positions. Deliberate downward scrolls hide it
// immediately; upward scrolls bring it back only after a dwell delay, so
// small jitter does not make it flicker.
type NavbarController struct {
	delay time.Duration

	mu      sync.Mutex
	visible bool
	lastY   float64
	timer   *time.Timer
	closed  bool
}

func NewNavbarController() *NavbarController {
	return &NavbarController{
		delay:   navbarShowDelay,
		visible: true,
	}
}

func (n *NavbarController) Visible() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.visible
}

// OnScroll feeds one sampled scroll position.
func (n *NavbarController) OnScroll(y float64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return
	}

	delta := y - n.lastY
	n.lastY = y

	switch {
	case y < navbarTopThreshold:
		n.cancelTimerLocked()
		n.visible = true
	case delta > navbarMinDelta:
		n.cancelTimerLocked()
		n.visible = false
	case delta < -navbarMinDelta:
		if !n.visible && n.timer == nil {
			n.timer = time.AfterFunc(n.delay, n.show)
		}
	}
}

func (n *NavbarController) show() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return
	}
	n.visible = true
	n.timer = nil
}

func (n *NavbarController) cancelTimerLocked() {
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
}

// Close cancels any pending delayed show. Must be called on teardown so the
// timer cannot fire into a destroyed view.
func (n *NavbarController) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.closed = true
	n.cancelTimerLocked()
}
