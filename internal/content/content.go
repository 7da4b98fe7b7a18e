// Package content loads and serves the site content file.
package content

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"regexp"
	"sync"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"github.com/starford/ansuz/internal/models"
)

var slugRe = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// Store holds the parsed site content. The section order from the file is
// the canonical order for the whole session; Reload swaps the content
// atomically and is skipped when the file bytes are unchanged.
type Store struct {
	path string

	mu   sync.RWMutex
	site models.Site
	sum  string
}

// NewStore creates a Store and performs the initial load.
func NewStore(path string) (*Store, error) {
	s := &Store{path: path}
	if _, err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads the content file. It returns true when the content
// actually changed. Invalid content is rejected and the previous content
// stays in place.
func (s *Store) Reload() (bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return false, fmt.Errorf("content: read %s: %w", s.path, err)
	}

	sum := fingerprint(data)
	s.mu.RLock()
	unchanged := sum == s.sum && s.sum != ""
	s.mu.RUnlock()
	if unchanged {
		return false, nil
	}

	var site models.Site
	if err := yaml.Unmarshal(data, &site); err != nil {
		return false, fmt.Errorf("content: parse %s: %w", s.path, err)
	}
	if err := validateSite(&site); err != nil {
		return false, fmt.Errorf("content: invalid %s: %w", s.path, err)
	}

	s.mu.Lock()
	s.site = site
	s.sum = sum
	s.mu.Unlock()
	return true, nil
}

// Site returns a copy of the whole content tree.
func (s *Store) Site() models.Site {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.site
}

// Sections returns the ordered section list.
func (s *Store) Sections() []models.Section {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Section, len(s.site.Sections))
	copy(out, s.site.Sections)
	return out
}

// Profile returns the owner profile.
func (s *Store) Profile() models.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.site.Profile
}

func validateSite(site *models.Site) error {
	if err := validation.ValidateStruct(site,
		validation.Field(&site.Sections, validation.Required),
	); err != nil {
		return err
	}
	if err := validation.ValidateStruct(&site.Profile,
		validation.Field(&site.Profile.Name, validation.Required),
		validation.Field(&site.Profile.Email, validation.Required),
	); err != nil {
		return fmt.Errorf("profile: %w", err)
	}

	seen := make(map[string]struct{}, len(site.Sections))
	for i, sec := range site.Sections {
		if sec.ID == "" {
			return fmt.Errorf("sections[%d]: id is required", i)
		}
		if !slugRe.MatchString(sec.ID) {
			return fmt.Errorf("sections[%d]: id %q is not a slug", i, sec.ID)
		}
		if _, dup := seen[sec.ID]; dup {
			return fmt.Errorf("sections[%d]: duplicate id %q", i, sec.ID)
		}
		seen[sec.ID] = struct{}{}
	}

	for i, cat := range site.Skills {
		for j, sk := range cat.Skills {
			if sk.Level < 0 || sk.Level > 100 {
				return fmt.Errorf("skills[%d].skills[%d]: level %d out of range", i, j, sk.Level)
			}
		}
	}
	return nil
}

// fingerprint returns the hex SHA-256 of the raw file bytes, used to skip
// no-op reloads.
func fingerprint(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}
