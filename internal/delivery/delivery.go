// Package delivery sends contact messages through an EmailJS-compatible
// transactional-email endpoint.
package delivery

import (
	"context"
	"strings"

	"github.com/starford/ansuz/internal/models"
)

// User-facing failure messages. Classification is a deliberately coarse
// substring heuristic over the underlying error text; the three buckets
// mirror what the delivery provider's clients report in practice and are
// a known limitation, not a structured error contract.
const (
	MsgNetwork   = "Network error. Please check your connection and try again."
	MsgRateLimit = "Too many requests. Please wait a moment and try again."
	MsgGeneric   = "Failed to send message. Please try again later."
)

// Request carries the credentials and template parameters for one send.
type Request struct {
	ServiceID  string
	TemplateID string
	PublicKey  string
	Params     models.ContactMessage
}

// Response is the delivery provider's reply. Success is Status == 200;
// any other status is a failure even when no transport error occurred.
type Response struct {
	Status int
}

// Sender is the external delivery collaborator.
type Sender interface {
	Send(ctx context.Context, req Request) (*Response, error)
}

// Classify maps a delivery error to one of the three user-facing messages.
func Classify(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "network"):
		return MsgNetwork
	case strings.Contains(msg, "rate limit"):
		return MsgRateLimit
	default:
		return MsgGeneric
	}
}
