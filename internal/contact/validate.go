// Package contact implements the contact-form validation and submission
// pipeline.
package contact

import (
	"errors"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/ansuz/internal/models"
)

// emailRe is the basic address shape: local part, @, domain with a dot,
// no whitespace anywhere.
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidationError carries the first failing check's user-facing message.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// notBlank fails with msg when the value is empty after trimming whitespace.
func notBlank(msg string) validation.Rule {
	return validation.By(func(v interface{}) error {
		s, _ := v.(string)
		if strings.TrimSpace(s) == "" {
			return errors.New(msg)
		}
		return nil
	})
}

// minRunes fails with msg when the untrimmed value is shorter than n runes.
func minRunes(n int, msg string) validation.Rule {
	return validation.By(func(v interface{}) error {
		s, _ := v.(string)
		if len([]rune(s)) < n {
			return errors.New(msg)
		}
		return nil
	})
}

// Validate checks a draft message. Checks run in fixed order and the first
// failure wins; errors are never aggregated. The returned error is always a
// *ValidationError whose message is shown to the user verbatim.
func Validate(m models.ContactMessage) error {
	checks := []struct {
		value string
		rules []validation.Rule
	}{
		{m.Name, []validation.Rule{notBlank("Please enter your name")}},
		{m.Email, []validation.Rule{
			notBlank("Please enter your email address"),
			validation.Match(emailRe).Error("Please enter a valid email address"),
		}},
		{m.Subject, []validation.Rule{notBlank("Please enter a subject")}},
		{m.Message, []validation.Rule{
			notBlank("Please enter your message"),
			minRunes(10, "Message should be at least 10 characters long"),
		}},
	}
	for _, c := range checks {
		if err := validation.Validate(c.value, c.rules...); err != nil {
			return &ValidationError{Message: err.Error()}
		}
	}
	return nil
}
