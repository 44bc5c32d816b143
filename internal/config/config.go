// Package config provides file-based configuration for the tempmail
// command with environment-variable overrides.  The core client takes
// plain values; nothing in here reaches past the CLI.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/knvi/tempmail/internal/mailbox"
	"github.com/knvi/tempmail/internal/mailhttp"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	defaultPollInterval = "15s"
	defaultRateLimit    = 4.0
)

// Config holds the complete command configuration.
type Config struct {
	Mailbox MailboxConfig `yaml:"mailbox"`
	API     APIConfig     `yaml:"api"`
	Watch   WatchConfig   `yaml:"watch"`

	// DownloadDir is where attachments are saved; empty means the
	// current directory.
	DownloadDir string `yaml:"download_dir"`
}

// MailboxConfig names the identity to operate on.
type MailboxConfig struct {
	Login  string `yaml:"login"`
	Domain string `yaml:"domain"`
}

// APIConfig holds remote endpoint settings.
type APIConfig struct {
	BaseURL string `yaml:"base_url"`

	// RateLimit is the request budget in calls per second.
	RateLimit float64 `yaml:"rate_limit"`
}

// WatchConfig holds polling settings for the watch and tui commands.
type WatchConfig struct {
	PollInterval string `yaml:"poll_interval"`
}

// Load returns the default configuration with environment overrides
// applied.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.applyDefaults()
	cfg.applyEnvVars()
	return cfg, cfg.validate()
}

// LoadFromFile loads a YAML file as the base layer, then applies
// environment overrides.  Environment variables always win.
func LoadFromFile(path string) (*Config, error) {
	cfg := &Config{}
	cfg.applyDefaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading config file")
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "parsing config file")
	}

	cfg.applyEnvVars()
	return cfg, cfg.validate()
}

func (c *Config) applyDefaults() {
	c.Mailbox.Domain = mailbox.DefaultDomain.String()
	c.API.BaseURL = mailhttp.DefaultBaseURL
	c.API.RateLimit = defaultRateLimit
	c.Watch.PollInterval = defaultPollInterval
}

func (c *Config) applyEnvVars() {
	if v := os.Getenv("TEMPMAIL_LOGIN"); v != "" {
		c.Mailbox.Login = v
	}
	if v := os.Getenv("TEMPMAIL_DOMAIN"); v != "" {
		c.Mailbox.Domain = v
	}
	if v := os.Getenv("TEMPMAIL_BASE_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("TEMPMAIL_RATE_LIMIT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.API.RateLimit = f
		}
	}
	if v := os.Getenv("TEMPMAIL_POLL_INTERVAL"); v != "" {
		c.Watch.PollInterval = v
	}
	if v := os.Getenv("TEMPMAIL_DOWNLOAD_DIR"); v != "" {
		c.DownloadDir = v
	}
}

func (c *Config) validate() error {
	if _, ok := mailbox.ParseDomain(c.Mailbox.Domain); !ok {
		return errors.Errorf("unsupported domain %q", c.Mailbox.Domain)
	}
	if _, err := time.ParseDuration(c.Watch.PollInterval); err != nil {
		return errors.Wrapf(err, "bad poll_interval %q", c.Watch.PollInterval)
	}
	if c.API.RateLimit <= 0 {
		return errors.Errorf("rate_limit must be positive, got %v", c.API.RateLimit)
	}
	return nil
}

// Identity returns the configured mailbox identity.  The login may be
// empty when the caller intends to generate a random identity.
func (c *Config) Identity() mailbox.Identity {
	d, _ := mailbox.ParseDomain(c.Mailbox.Domain)
	return mailbox.New(c.Mailbox.Login, d)
}

// PollEvery returns the parsed polling interval.
func (c *Config) PollEvery() time.Duration {
	d, _ := time.ParseDuration(c.Watch.PollInterval)
	return d
}
