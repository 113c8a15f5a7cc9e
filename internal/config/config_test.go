package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(configPathEnv, "")
	t.Setenv(mailUserEnv, "")
	t.Setenv(mailPasswordEnv, "")
	t.Setenv(mailRecipientEnv, "")

	cfg := Load()

	assert.Equal(t, 3, cfg.Aggregation.MinAcceptable)
	assert.Equal(t, 5, cfg.Aggregation.MaxResults)
	assert.Equal(t, time.Second, cfg.Aggregation.Pacing())
	assert.Equal(t, 10*time.Second, cfg.HTTP.Timeout())
	assert.NotEmpty(t, cfg.HTTP.UserAgent)
	assert.False(t, cfg.Mail.Configured())
	assert.Equal(t, "smtp.gmail.com", cfg.Mail.SMTPHost)

	require.Len(t, cfg.Topics, 2)
	assert.Equal(t, "semiconductor", cfg.Topics[0].Category)
	assert.Equal(t, "macroeconomy", cfg.Topics[1].Category)
	require.NotEmpty(t, cfg.Topics[0].Attempts)
	assert.Equal(t, "Yonhap News", cfg.Topics[0].Attempts[0].Source)

	require.Len(t, cfg.Sources, 3)
}

func TestLoadMergesYAMLFile(t *testing.T) {
	raw := `
logging:
  level: debug
aggregation:
  minAcceptable: 2
  maxResults: 4
sources:
  - name: Custom Feed
    kind: feed
    url: https://example.org/rss?q=%s
    limit: 3
topics:
  - category: semiconductor
    keywords: [chip]
    attempts:
      - source: Custom Feed
        query: chips
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))
	t.Setenv(configPathEnv, path)

	cfg := Load()

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 2, cfg.Aggregation.MinAcceptable)
	assert.Equal(t, 4, cfg.Aggregation.MaxResults)

	require.Len(t, cfg.Sources, 1)
	assert.Equal(t, "Custom Feed", cfg.Sources[0].Name)

	require.Len(t, cfg.Topics, 1)
	assert.Equal(t, []string{"chip"}, cfg.Topics[0].Keywords)

	// Unset fields keep their defaults.
	assert.Equal(t, 10*time.Second, cfg.HTTP.Timeout())
	assert.Equal(t, "smtp.gmail.com", cfg.Mail.SMTPHost)
}

func TestLoadAppliesMailEnvOverrides(t *testing.T) {
	t.Setenv(mailUserEnv, "digest@example.org")
	t.Setenv(mailPasswordEnv, "app-password")
	t.Setenv(mailRecipientEnv, "reader@example.org")

	cfg := Load()

	require.True(t, cfg.Mail.Configured())
	assert.Equal(t, "digest@example.org", cfg.Mail.Sender)
	assert.Equal(t, "app-password", cfg.Mail.Password)
	assert.Equal(t, "reader@example.org", cfg.Mail.Recipient)
}

func TestLoadIgnoresUnreadableConfigFile(t *testing.T) {
	t.Setenv(configPathEnv, filepath.Join(t.TempDir(), "missing.yaml"))

	cfg := Load()

	assert.Equal(t, 3, cfg.Aggregation.MinAcceptable)
	require.Len(t, cfg.Topics, 2)
}

func TestBindTimezoneFallsBackToUTC(t *testing.T) {
	cfg := defaultConfig()
	cfg.Scheduler.Timezone = "Not/AZone"
	cfg.bindTimezone()

	assert.Equal(t, time.UTC, cfg.Scheduler.Location())
}
