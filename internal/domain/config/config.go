package config

import (
	"gopkg.in/yaml.v3"
	"net/url"
	"os"
	domainerr "pdsite/internal/domain/errors"
	"strings"
	"time"
)

type Config struct {
	Site    SiteConfig    `yaml:"site"`
	Content ContentConfig `yaml:"content"`
	Server  ServerConfig  `yaml:"server"`
	Leads   LeadsConfig   `yaml:"leads"`
	Log     LogConfig     `yaml:"log"`
}

type SiteConfig struct {
	Name               string `yaml:"name"`
	SiteURL            string `yaml:"site_url"`
	DefaultTitle       string `yaml:"default_title"`
	DefaultDescription string `yaml:"default_description"`
	AppLoginURL        string `yaml:"app_login_url"`
	EarlyAccessURL     string `yaml:"early_access_url"`
}

type ContentConfig struct {
	// Root is the directory holding content/01_pages and
	// content/03_domain_narratives.
	Root     string `yaml:"root"`
	ThemeDir string `yaml:"theme_dir"`
}

type ServerConfig struct {
	Addr      string `yaml:"addr"`
	DevReload bool   `yaml:"dev_reload"`
	StaticDir string `yaml:"static_dir"`
}

type LeadsConfig struct {
	DBPath         string          `yaml:"db_path"`
	WebhookURL     string          `yaml:"webhook_url"`
	WebhookTimeout time.Duration   `yaml:"webhook_timeout"`
	RateLimit      RateLimitConfig `yaml:"rate_limit"`
}

type RateLimitConfig struct {
	Window      time.Duration `yaml:"window"`
	MaxRequests int           `yaml:"max_requests"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Default() Config {
	return Config{
		Site: SiteConfig{
			Name:               "Profit Discipline",
			SiteURL:            "http://localhost:8080",
			DefaultTitle:       "Profit Discipline",
			DefaultDescription: "Margin and cash discipline for services businesses.",
			AppLoginURL:        "https://app.example.com/login",
			EarlyAccessURL:     "/en/early-access",
		},
		Content: ContentConfig{
			Root: ".",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Leads: LeadsConfig{
			DBPath:         ".pdsite/leads.db",
			WebhookTimeout: 5 * time.Second,
			RateLimit: RateLimitConfig{
				Window:      15 * time.Minute,
				MaxRequests: 3,
			},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// ApplyEnv overlays deployment environment variables on c.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if getenv == nil {
		getenv = os.Getenv
	}
	if v := strings.TrimSpace(getenv("SITE_URL")); v != "" {
		c.Site.SiteURL = v
	}
	if v := strings.TrimSpace(getenv("EARLY_ACCESS_WEBHOOK_URL")); v != "" {
		c.Leads.WebhookURL = v
	}
	if v := strings.TrimSpace(getenv("APP_LOGIN_URL")); v != "" {
		c.Site.AppLoginURL = v
	}
	if v := strings.TrimSpace(getenv("EARLY_ACCESS_URL")); v != "" {
		c.Site.EarlyAccessURL = v
	}
	c.Site.SiteURL = strings.TrimRight(c.Site.SiteURL, "/")
}

func (c Config) Validate() error {
	var ve domainerr.ValidationError

	if strings.TrimSpace(c.Site.Name) == "" {
		ve.Add("site.name", "must not be empty")
	}

	if strings.TrimSpace(c.Site.SiteURL) == "" {
		ve.Add("site.site_url", "must not be empty")
	} else if !isValidAbsURL(c.Site.SiteURL) {
		ve.Add("site.site_url", "must be a valid absolute URL")
	}

	if strings.TrimSpace(c.Content.Root) == "" {
		ve.Add("content.root", "must not be empty")
	}
	if strings.TrimSpace(c.Server.Addr) == "" {
		ve.Add("server.addr", "must not be empty")
	}

	if wh := strings.TrimSpace(c.Leads.WebhookURL); wh != "" && !isValidAbsURL(wh) {
		ve.Add("leads.webhook_url", "must be a valid absolute URL")
	}
	if c.Leads.WebhookTimeout < 0 {
		ve.Add("leads.webhook_timeout", "must not be negative")
	}
	if c.Leads.RateLimit.Window <= 0 {
		ve.Add("leads.rate_limit.window", "must be positive")
	}
	if c.Leads.RateLimit.MaxRequests <= 0 {
		ve.Add("leads.rate_limit.max_requests", "must be positive")
	}

	switch strings.ToLower(strings.TrimSpace(c.Log.Format)) {
	case "", "console", "json", "pretty":
	default:
		ve.Add("log.format", "must be 'console', 'json' or 'pretty'")
	}

	if ve.HasAny() {
		return ve
	}
	return nil
}

func isValidAbsURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != ""
}

func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	// fields present in the file override the defaults, the rest are kept
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	cfg.ApplyEnv(nil)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields the defaults.
func LoadOrDefault(path string) (Config, error) {
	cfg, err := Load(path)
	if err != nil && os.IsNotExist(err) {
		cfg = Default()
		cfg.ApplyEnv(nil)
		return cfg, cfg.Validate()
	}
	return cfg, err
}
