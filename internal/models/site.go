// Package models defines the domain types for Ansuz.
package models

// Section is a named, vertically bounded region of the single-page document.
// The ordered section list is fixed for the lifetime of a session.
type Section struct {
	ID    string `yaml:"id" json:"id"`
	Label string `yaml:"label" json:"label"`
}

// SectionBounds is the rendered geometry of a section, measured by the
// viewer at report time. Geometry is never cached server-side: layout can
// reflow (theme toggle, responsive breakpoints), so every evaluation works
// from a fresh measurement.
type SectionBounds struct {
	ID        string  `json:"id"`
	TopOffset float64 `json:"top"`
	Height    float64 `json:"height"`
}

// Contains reports whether y falls inside the half-open range
// [TopOffset, TopOffset+Height).
func (b SectionBounds) Contains(y float64) bool {
	return y >= b.TopOffset && y < b.TopOffset+b.Height
}

// Profile is the site owner's biography block.
type Profile struct {
	Name     string `yaml:"name" json:"name"`
	Headline string `yaml:"headline" json:"headline"`
	Tagline  string `yaml:"tagline" json:"tagline,omitempty"`
	About    string `yaml:"about" json:"about,omitempty"`
	Location string `yaml:"location" json:"location,omitempty"`
	Email    string `yaml:"email" json:"email"`
	Phone    string `yaml:"phone" json:"phone,omitempty"`
}

// Project is a portfolio entry.
type Project struct {
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Status      string   `yaml:"status" json:"status,omitempty"`
	Tech        []string `yaml:"tech" json:"tech,omitempty"`
	Repo        string   `yaml:"repo" json:"repo,omitempty"`
	Link        string   `yaml:"link" json:"link,omitempty"`
}

// Skill is a single named skill with a 0-100 proficiency level.
type Skill struct {
	Name  string `yaml:"name" json:"name"`
	Level int    `yaml:"level" json:"level"`
}

// SkillCategory groups skills under a presentational heading.
type SkillCategory struct {
	Title  string  `yaml:"title" json:"title"`
	Color  string  `yaml:"color" json:"color,omitempty"`
	Skills []Skill `yaml:"skills" json:"skills"`
}

// Experience is one work or education entry on the timeline.
type Experience struct {
	Role       string   `yaml:"role" json:"role"`
	Org        string   `yaml:"org" json:"org"`
	Start      string   `yaml:"start" json:"start"`
	End        string   `yaml:"end" json:"end,omitempty"`
	Highlights []string `yaml:"highlights" json:"highlights,omitempty"`
}

// ContactChannel is a direct contact method shown on the contact card.
type ContactChannel struct {
	Kind  string `yaml:"kind" json:"kind"`
	Value string `yaml:"value" json:"value"`
	Link  string `yaml:"link" json:"link,omitempty"`
	Color string `yaml:"color" json:"color,omitempty"`
}

// SocialLink is an external profile link.
type SocialLink struct {
	Name string `yaml:"name" json:"name"`
	URL  string `yaml:"url" json:"url"`
}

// Site aggregates everything the content file provides.
type Site struct {
	Profile    Profile          `yaml:"profile" json:"profile"`
	Sections   []Section        `yaml:"sections" json:"sections"`
	Projects   []Project        `yaml:"projects" json:"projects"`
	Skills     []SkillCategory  `yaml:"skills" json:"skills"`
	Experience []Experience     `yaml:"experience" json:"experience"`
	Channels   []ContactChannel `yaml:"channels" json:"channels"`
	Social     []SocialLink     `yaml:"social" json:"social"`
}

// ContactMessage is a contact-form draft. Fields are kept verbatim as
// typed by the sender; trimming happens only inside validation checks.
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Zero reports whether every field is empty.
func (m ContactMessage) Zero() bool {
	return m.Name == "" && m.Email == "" && m.Subject == "" && m.Message == ""
}
