// Package gaze shows an info panel while an object has focus.
package gaze

import (
	"context"
	"time"

	"github.com/iburimskiy/data-ballpit/internal/timeline"
)

// Panel is the info display toggled by focus.
type Panel interface {
	SetVisible(v bool)
}

// Handler shows its panel on focus enter and hides it Delay after focus
// exit. A zero Delay hides it on the next frame.
type Handler struct {
	Delay time.Duration

	panel   Panel
	sched   *timeline.Scheduler
	pending context.CancelFunc
	focused bool
}

func NewHandler(panel Panel, sched *timeline.Scheduler, delay time.Duration) *Handler {
	return &Handler{Delay: delay, panel: panel, sched: sched}
}

// Focused reports whether focus is currently on the object.
func (h *Handler) Focused() bool { return h.focused }

// FocusEnter shows the panel and drops any hide still waiting to fire.
func (h *Handler) FocusEnter() {
	h.stopPending()
	h.focused = true
	h.panel.SetVisible(true)
}

// FocusExit schedules the panel to hide. ctx bounds the pending hide.
func (h *Handler) FocusExit(ctx context.Context) {
	h.stopPending()
	h.focused = false

	hideCtx, cancel := context.WithCancel(ctx)
	h.pending = cancel
	h.sched.Go(hideCtx, timeline.After(h.Delay, func() {
		h.panel.SetVisible(false)
	}), func(error) { cancel() })
}

func (h *Handler) stopPending() {
	if h.pending != nil {
		h.pending()
		h.pending = nil
	}
}
