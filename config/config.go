// Package config provides YAML-based configuration loading for AgentHub.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that unmarshals from YAML strings like "100ms".
// yaml.v3 has no native duration support.
type Duration time.Duration

// UnmarshalYAML parses the node value with time.ParseDuration.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("config: invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the standard library representation.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// String returns the duration in time.Duration notation.
func (d Duration) String() string { return time.Duration(d).String() }

// Config is the top-level AgentHub configuration, loaded from agenthub.yaml.
// Every field has a safe default so an empty file (or no file at all) yields
// a working hub.
type Config struct {
	// MailboxCap bounds each agent's message queue.
	MailboxCap int `yaml:"mailbox_cap"`
	// KnowledgeCap bounds each agent's knowledge log.
	KnowledgeCap int `yaml:"knowledge_cap"`
	// KnowledgeQueryLimit truncates knowledge query results.
	KnowledgeQueryLimit int `yaml:"knowledge_query_limit"`
	// PollInterval is the WaitForResponse retry interval.
	PollInterval Duration `yaml:"poll_interval"`
	// DefaultWaitTimeout applies when a wait is issued without a timeout.
	DefaultWaitTimeout Duration `yaml:"default_wait_timeout"`
	// Log configures the structured logger.
	Log LogConfig `yaml:"log"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json or text
}

// Load reads a YAML config file from path and returns a validated Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse unmarshals YAML bytes into a validated Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a Config with every field at its default value.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills in default values.
func (c *Config) applyDefaults() {
	if c.MailboxCap == 0 {
		c.MailboxCap = 1000
	}
	if c.KnowledgeCap == 0 {
		c.KnowledgeCap = 500
	}
	if c.KnowledgeQueryLimit == 0 {
		c.KnowledgeQueryLimit = 50
	}
	if c.PollInterval == 0 {
		c.PollInterval = Duration(100 * time.Millisecond)
	}
	if c.DefaultWaitTimeout == 0 {
		c.DefaultWaitTimeout = Duration(30 * time.Second)
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
}

// validate checks that all fields are consistent.
func (c *Config) validate() error {
	if c.MailboxCap < 1 {
		return fmt.Errorf("config: mailbox_cap must be positive, got %d", c.MailboxCap)
	}
	if c.KnowledgeCap < 1 {
		return fmt.Errorf("config: knowledge_cap must be positive, got %d", c.KnowledgeCap)
	}
	if c.KnowledgeQueryLimit < 1 {
		return fmt.Errorf("config: knowledge_query_limit must be positive, got %d", c.KnowledgeQueryLimit)
	}
	if c.PollInterval < Duration(time.Millisecond) {
		return fmt.Errorf("config: poll_interval must be at least 1ms, got %s", c.PollInterval)
	}
	if c.DefaultWaitTimeout < c.PollInterval {
		return fmt.Errorf("config: default_wait_timeout %s is shorter than poll_interval %s", c.DefaultWaitTimeout, c.PollInterval)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("config: unknown log format %q", c.Log.Format)
	}
	return nil
}
