package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 1000, cfg.MailboxCap)
	assert.Equal(t, 500, cfg.KnowledgeCap)
	assert.Equal(t, 50, cfg.KnowledgeQueryLimit)
	assert.Equal(t, Duration(100*time.Millisecond), cfg.PollInterval)
	assert.Equal(t, Duration(30*time.Second), cfg.DefaultWaitTimeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
mailbox_cap: 200
knowledge_cap: 50
poll_interval: 50ms
default_wait_timeout: 10s
log:
  level: debug
  format: text
`))
	require.NoError(t, err)
	assert.Equal(t, 200, cfg.MailboxCap)
	assert.Equal(t, 50, cfg.KnowledgeCap)
	assert.Equal(t, 50, cfg.KnowledgeQueryLimit, "unset fields keep their defaults")
	assert.Equal(t, Duration(50*time.Millisecond), cfg.PollInterval)
	assert.Equal(t, Duration(10*time.Second), cfg.DefaultWaitTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestParse_EmptyYieldsDefaults(t *testing.T) {
	cfg, err := Parse([]byte(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParse_Invalid(t *testing.T) {
	cases := map[string]string{
		"bad yaml":             "mailbox_cap: [",
		"negative mailbox cap": "mailbox_cap: -5",
		"negative knowledge":   "knowledge_cap: -1",
		"tiny poll interval":   "poll_interval: 10us",
		"malformed duration":   "poll_interval: soon",
		"wait below poll":      "poll_interval: 1s\ndefault_wait_timeout: 500ms",
		"unknown log level":    "log:\n  level: verbose",
		"unknown log format":   "log:\n  format: xml",
	}
	for name, yaml := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agenthub.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mailbox_cap: 42\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 42, cfg.MailboxCap)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
