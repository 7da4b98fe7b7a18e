package api

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/notify"
)

// ScrollRequest is one viewer scroll report. Sections carry the freshly
// measured geometry; it must be re-sent on every report because layout can
// reflow between them.
type ScrollRequest struct {
	View           string                 `json:"view"`
	Y              float64                `json:"y"`
	ViewportHeight float64                `json:"viewport_height"`
	Sections       []models.SectionBounds `json:"sections"`
}

// Validate checks the report against the tracker input contract.
func (r *ScrollRequest) Validate() error {
	// Y may be negative (elastic overscroll); the tracker clamps it.
	if err := validation.ValidateStruct(r,
		validation.Field(&r.View, validation.Required),
		validation.Field(&r.ViewportHeight, validation.Min(0.0)),
		validation.Field(&r.Sections, validation.Required),
	); err != nil {
		return err
	}
	for i := range r.Sections {
		s := &r.Sections[i]
		if err := validation.ValidateStruct(s,
			validation.Field(&s.ID, validation.Required),
			validation.Field(&s.TopOffset, validation.Min(0.0)),
			validation.Field(&s.Height, validation.Required, validation.Min(0.000001)),
		); err != nil {
			return err
		}
	}
	return nil
}

// ScrollResponse reports the tracker outcome and any fired animation cues.
type ScrollResponse struct {
	Section string   `json:"section"`
	Changed bool     `json:"changed"`
	Cues    []string `json:"cues"`
}

// SectionResponse wraps the current section.
type SectionResponse struct {
	Section string `json:"section"`
}

// ContactRequest is the contact-form submission body.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// ToMessage converts the request to the domain draft.
func (r *ContactRequest) ToMessage() models.ContactMessage {
	return models.ContactMessage{
		Name:    r.Name,
		Email:   r.Email,
		Subject: r.Subject,
		Message: r.Message,
	}
}

// ContactResponse reports the submission outcome together with the
// notification the pipeline raised for it.
type ContactResponse struct {
	Status       string              `json:"status"`
	Notification notify.Notification `json:"notification"`
}

// ContactInfoResponse groups the contact-section content.
type ContactInfoResponse struct {
	Channels []models.ContactChannel `json:"channels"`
	Social   []models.SocialLink     `json:"social"`
}

// ThemeBody is the theme preference payload.
type ThemeBody struct {
	Dark bool `json:"dark"`
}
