// Package notify implements the single-slot transient notification banner.
package notify

import (
	"sync"
	"time"
)

// Kind is the visual category of a notification.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindWarning Kind = "warning"
)

// Notification is a snapshot of the banner state.
type Notification struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Visible bool   `json:"visible"`
}

// Slot holds at most one visible notification. Raising while one is visible
// replaces it and restarts the dismissal timer; nothing is ever queued.
type Slot struct {
	autoDismiss time.Duration
	onChange    func(Notification)

	mu    sync.Mutex
	cur   Notification
	timer *time.Timer
	seq   uint64
}

// NewSlot creates a Slot whose notifications auto-dismiss after d. onChange,
// if non-nil, is invoked (outside the slot lock) after every visible-state
// transition.
func NewSlot(d time.Duration, onChange func(Notification)) *Slot {
	if d <= 0 {
		d = 5 * time.Second
	}
	return &Slot{autoDismiss: d, onChange: onChange}
}

// Raise shows a notification, replacing any current one and restarting the
// auto-dismiss timer.
func (s *Slot) Raise(kind Kind, message string) {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	if s.timer != nil {
		s.timer.Stop()
	}
	s.cur = Notification{Kind: kind, Message: message, Visible: true}
	s.timer = time.AfterFunc(s.autoDismiss, func() { s.expire(seq) })
	n := s.cur
	s.mu.Unlock()

	s.notify(n)
}

// Dismiss hides the current notification immediately and cancels the timer.
// Dismissing an already-hidden slot is a no-op.
func (s *Slot) Dismiss() {
	s.mu.Lock()
	if !s.cur.Visible {
		s.mu.Unlock()
		return
	}
	s.seq++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.cur.Visible = false
	n := s.cur
	s.mu.Unlock()

	s.notify(n)
}

// Current returns a snapshot of the banner state.
func (s *Slot) Current() Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur
}

// expire hides the slot when the dismissal timer fires, unless a newer
// Raise or Dismiss superseded the timer in the meantime.
func (s *Slot) expire(seq uint64) {
	s.mu.Lock()
	if seq != s.seq || !s.cur.Visible {
		s.mu.Unlock()
		return
	}
	s.cur.Visible = false
	s.timer = nil
	n := s.cur
	s.mu.Unlock()

	s.notify(n)
}

func (s *Slot) notify(n Notification) {
	if s.onChange != nil {
		s.onChange(n)
	}
}
