package contact

import (
	"context"
	"fmt"
	"sync"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/delivery"
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/notify"
)

// Status is the submission state machine position.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusSubmitting Status = "submitting"
	StatusSucceeded  Status = "succeeded"
	StatusFailed     Status = "failed"
)

// Fixed user-facing messages for the non-delivery outcomes.
const (
	MsgSent          = "Message sent successfully! I'll get back to you soon."
	MsgNotConfigured = "Email service is not configured. Please contact the administrator."
)

// Visual cue kinds emitted on terminal transitions. Cosmetic only.
const (
	CuePulse = "form.pulse"
	CueShake = "form.shake"
)

// Credentials identifies the delivery service account.
type Credentials struct {
	ServiceID  string
	TemplateID string
	PublicKey  string
}

// Configured returns true when all three credentials are present.
func (c Credentials) Configured() bool {
	return c.ServiceID != "" && c.TemplateID != "" && c.PublicKey != ""
}

// DeliveryError is a failed delivery surfaced with its classified
// user-facing reason.
type DeliveryError struct {
	Reason string
	Err    error
}

func (e *DeliveryError) Error() string { return e.Reason }
func (e *DeliveryError) Unwrap() error { return e.Err }

// Pipeline orchestrates validation, delivery, and notification for the
// contact form. It owns the form draft: the draft is cleared only on a
// successful delivery so a failed attempt never loses the sender's text.
//
// Submissions are strictly serialized. While one is in flight, further
// Submit calls return apperr.ErrBusy without touching the sender.
type Pipeline struct {
	sender delivery.Sender
	slot   *notify.Slot
	creds  Credentials
	cue    func(kind string)

	mu     sync.Mutex
	status Status
	draft  models.ContactMessage
}

// NewPipeline creates a Pipeline. cue, if non-nil, receives the cosmetic
// visual cue kinds on terminal transitions.
func NewPipeline(sender delivery.Sender, slot *notify.Slot, creds Credentials, cue func(kind string)) *Pipeline {
	return &Pipeline{
		sender: sender,
		slot:   slot,
		creds:  creds,
		cue:    cue,
		status: StatusIdle,
	}
}

// Status returns the current state machine position.
func (p *Pipeline) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

// Form returns a copy of the current draft.
func (p *Pipeline) Form() models.ContactMessage {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.draft
}

// SetForm replaces the draft without submitting it. Edits during an
// in-flight submission are rejected.
func (p *Pipeline) SetForm(m models.ContactMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.status == StatusSubmitting {
		return apperr.ErrBusy
	}
	p.draft = m
	return nil
}

// Submit runs the full pipeline for msg. The message is adopted as the
// draft under the same lock as the busy check, and the delivery call uses
// msg itself, so interleaved submissions can never deliver each other's
// text under their own result.
//
// Outcomes:
//   - validation failure: Error notification with the exact check message,
//     state stays where it was, sender untouched, *ValidationError returned
//   - concurrent submit: apperr.ErrBusy, no delivery call
//   - missing credentials: Failed + Error notification, apperr.ErrNotConfigured
//   - delivery error or non-200 status: Failed + Error notification with the
//     classified reason, draft kept, *DeliveryError returned
//   - 200: Succeeded + Success notification, draft cleared, nil returned
func (p *Pipeline) Submit(ctx context.Context, msg models.ContactMessage) error {
	p.mu.Lock()
	if p.status == StatusSubmitting {
		p.mu.Unlock()
		return apperr.ErrBusy
	}
	p.draft = msg
	p.mu.Unlock()

	// Validation failures do not transition the state machine.
	if err := Validate(msg); err != nil {
		p.slot.Raise(notify.KindError, err.Error())
		return err
	}

	p.mu.Lock()
	if p.status == StatusSubmitting {
		p.mu.Unlock()
		return apperr.ErrBusy
	}
	p.status = StatusSubmitting
	p.mu.Unlock()

	if !p.creds.Configured() {
		p.finish(StatusFailed, false)
		p.slot.Raise(notify.KindError, MsgNotConfigured)
		return apperr.ErrNotConfigured
	}

	// The single asynchronous boundary. The Submitting state guarantees no
	// second delivery starts while this call is outstanding; there is no
	// cancellation once it begins.
	resp, err := p.sender.Send(ctx, delivery.Request{
		ServiceID:  p.creds.ServiceID,
		TemplateID: p.creds.TemplateID,
		PublicKey:  p.creds.PublicKey,
		Params:     msg,
	})
	if err == nil && resp.Status != 200 {
		err = fmt.Errorf("unexpected delivery status %d", resp.Status)
	}
	if err != nil {
		reason := delivery.Classify(err)
		p.finish(StatusFailed, false)
		p.slot.Raise(notify.KindError, reason)
		p.emitCue(CueShake)
		return &DeliveryError{Reason: reason, Err: err}
	}

	p.finish(StatusSucceeded, true)
	p.slot.Raise(notify.KindSuccess, MsgSent)
	p.emitCue(CuePulse)
	return nil
}

// finish records a terminal state and releases the submitting lock. The
// draft is cleared only on success.
func (p *Pipeline) finish(st Status, clearDraft bool) {
	p.mu.Lock()
	p.status = st
	if clearDraft {
		p.draft = models.ContactMessage{}
	}
	p.mu.Unlock()
}

func (p *Pipeline) emitCue(kind string) {
	if p.cue != nil {
		p.cue(kind)
	}
}
