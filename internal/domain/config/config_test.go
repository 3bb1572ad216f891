package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	domainerr "pdsite/internal/domain/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	require.Equal(t, 15*time.Minute, cfg.Leads.RateLimit.Window)
	require.Equal(t, 3, cfg.Leads.RateLimit.MaxRequests)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	t.Setenv("SITE_URL", "")
	t.Setenv("EARLY_ACCESS_WEBHOOK_URL", "")

	path := writeConfig(t, `
site:
  site_url: https://example.com/
content:
  root: /srv/site
leads:
  rate_limit:
    window: 1m
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "https://example.com", cfg.Site.SiteURL)
	require.Equal(t, "/srv/site", cfg.Content.Root)
	require.Equal(t, time.Minute, cfg.Leads.RateLimit.Window)
	require.Equal(t, 3, cfg.Leads.RateLimit.MaxRequests)
	require.Equal(t, "Profit Discipline", cfg.Site.Name)
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Setenv("SITE_URL", "")
	path := writeConfig(t, `
site:
  site_url: not-a-url
leads:
  rate_limit:
    max_requests: 0
log:
  format: xml
`)
	_, err := Load(path)
	require.Error(t, err)
	require.True(t, errors.Is(err, domainerr.ErrInvalid))

	var ve domainerr.ValidationError
	require.True(t, errors.As(err, &ve))
	require.ElementsMatch(t, []string{
		"site.site_url: must be a valid absolute URL",
		"leads.rate_limit.max_requests: must be positive",
		"log.format: must be 'console', 'json' or 'pretty'",
	}, ve.Messages())
}

func TestLoadOrDefaultMissingFile(t *testing.T) {
	t.Setenv("SITE_URL", "https://marketing.example.com")
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.Equal(t, "https://marketing.example.com", cfg.Site.SiteURL)
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	env := map[string]string{
		"SITE_URL":                 "https://pd.example.com/",
		"EARLY_ACCESS_WEBHOOK_URL": "https://hooks.example.com/lead",
	}
	cfg.ApplyEnv(func(k string) string { return env[k] })
	require.Equal(t, "https://pd.example.com", cfg.Site.SiteURL)
	require.Equal(t, "https://hooks.example.com/lead", cfg.Leads.WebhookURL)
	require.NoError(t, cfg.Validate())
}
