package internal

import (
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Config represents the application configuration.
type Config struct {
	App      ApplicationConfig `yaml:"app"`
	Content  ContentConfig     `yaml:"content"`
	Assets   AssetsConfig      `yaml:"assets"`
	Prefs    PrefsConfig       `yaml:"prefs"`
	Delivery DeliveryConfig    `yaml:"delivery"`
	Notify   NotifyConfig      `yaml:"notify"`
	Tracker  TrackerConfig     `yaml:"tracker"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Content.Validate(); err != nil {
		return err
	}
	if err := c.Assets.Validate(); err != nil {
		return err
	}
	if err := c.Prefs.Validate(); err != nil {
		return err
	}
	if err := c.Delivery.Validate(); err != nil {
		return err
	}
	if err := c.Notify.Validate(); err != nil {
		return err
	}
	return c.Tracker.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// ContentConfig holds the path to the site content file.
type ContentConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the content configuration.
func (c *ContentConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// AssetsConfig holds static asset locations. Resume is relative to Dir.
type AssetsConfig struct {
	Dir    string `yaml:"dir"`
	Resume string `yaml:"resume"`
}

// Validate validates the assets configuration.
func (c *AssetsConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Dir, validation.Required),
		validation.Field(&c.Resume, validation.Required),
	)
}

// PrefsConfig holds the path of the SQLite preference store.
type PrefsConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the preference store configuration.
func (c *PrefsConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// DeliveryConfig holds the transactional-email delivery settings.
//
// ServiceID, TemplateID, and PublicKey are the delivery credentials. They
// are deliberately NOT required here: a missing credential is a reportable
// runtime condition surfaced on submit, not a startup failure.
type DeliveryConfig struct {
	ServiceID      string `yaml:"service_id"`
	TemplateID     string `yaml:"template_id"`
	PublicKey      string `yaml:"public_key"`
	Endpoint       string `yaml:"endpoint"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Validate validates the delivery configuration.
func (c *DeliveryConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Endpoint, validation.Required),
		validation.Field(&c.TimeoutSeconds, validation.Required, validation.Min(1), validation.Max(300)),
	)
}

// Configured returns true when all three delivery credentials are present.
func (c *DeliveryConfig) Configured() bool {
	return c.ServiceID != "" && c.TemplateID != "" && c.PublicKey != ""
}

// Timeout returns the HTTP client timeout for delivery calls.
func (c *DeliveryConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// NotifyConfig controls the notification banner.
type NotifyConfig struct {
	AutoDismissMS int `yaml:"auto_dismiss_ms"`
}

// Validate validates the notification configuration.
func (c *NotifyConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.AutoDismissMS, validation.Required, validation.Min(100)),
	)
}

// AutoDismiss returns the auto-dismiss duration.
func (c *NotifyConfig) AutoDismiss() time.Duration {
	return time.Duration(c.AutoDismissMS) * time.Millisecond
}

// TrackerConfig controls the scroll section tracker.
//
// LookaheadBias is added to the raw scroll offset before section matching,
// so the highlighted section flips slightly before its top edge reaches
// the viewport top.
type TrackerConfig struct {
	LookaheadBias     float64 `yaml:"lookahead_bias"`
	SectionThrottleMS int     `yaml:"section_throttle_ms"`
}

// Validate validates the tracker configuration.
func (c *TrackerConfig) Validate() error {
	if c.LookaheadBias < 0 {
		return fmt.Errorf("tracker: lookahead_bias must be >= 0, got %v", c.LookaheadBias)
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.SectionThrottleMS, validation.Min(0)),
	)
}

// SectionThrottle returns the minimum interval between section.changed broadcasts.
func (c *TrackerConfig) SectionThrottle() time.Duration {
	return time.Duration(c.SectionThrottleMS) * time.Millisecond
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Content: ContentConfig{
			Path: "./content/site.yaml",
		},
		Assets: AssetsConfig{
			Dir:    "./static",
			Resume: "resume.pdf",
		},
		Prefs: PrefsConfig{
			Path: "./ansuz.db",
		},
		Delivery: DeliveryConfig{
			Endpoint:       "https://api.emailjs.com/api/v1.0/email/send",
			TimeoutSeconds: 15,
		},
		Notify: NotifyConfig{
			AutoDismissMS: 5000,
		},
		Tracker: TrackerConfig{
			LookaheadBias:     100,
			SectionThrottleMS: 150,
		},
	}
}
