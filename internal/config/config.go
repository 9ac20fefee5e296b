package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// DefaultPath is the config file read when PORTFOLIO_CONFIG is unset.
const DefaultPath = "config.yaml"

// Path returns the config file to load: PORTFOLIO_CONFIG, else DefaultPath.
func Path() string {
	if p := os.Getenv("PORTFOLIO_CONFIG"); p != "" {
		return p
	}
	return DefaultPath
}

// EnvPrefix prefixes every environment override, e.g. PORTFOLIO_FORM_ENDPOINT.
const EnvPrefix = "PORTFOLIO_"

// Config is the site configuration.
type Config struct {
	Env      string `koanf:"env"`
	Port     int    `koanf:"port"`
	LogLevel string `koanf:"log_level"`
	BaseURL  string `koanf:"base_url"`

	TemplatesDir string `koanf:"templates_dir"`
	StaticDir    string `koanf:"static_dir"`
	ContentDir   string `koanf:"content_dir"`

	DatabaseURL string `koanf:"database_url"`
	RedisURL    string `koanf:"redis_url"`
	CacheTTL    int    `koanf:"cache_ttl_seconds"`

	// FormEndpoint is the hosted form service the contact form posts to.
	FormEndpoint string `koanf:"form_endpoint"`
	// ContactRelay makes the page post to /contact, which validates and
	// forwards to FormEndpoint.
	ContactRelay      bool `koanf:"contact_relay"`
	ContactRateLimit  int  `koanf:"contact_rate_limit"`
	ContactRateWindow int  `koanf:"contact_rate_window_seconds"`

	// TrustedProxies lists the CIDRs allowed to set X-Forwarded-For. Empty
	// means the client address is taken from the connection.
	TrustedProxies []string `koanf:"trusted_proxies"`

	WorkerIntervalSeconds int `koanf:"worker_interval_seconds"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() *Config {
	return &Config{
		Env:                   "development",
		Port:                  3000,
		LogLevel:              "info",
		BaseURL:               "http://localhost:3000",
		TemplatesDir:          "web/templates",
		StaticDir:             "web/static",
		ContentDir:            "content",
		CacheTTL:              600,
		ContactRateLimit:      5,
		ContactRateWindow:     3600,
		WorkerIntervalSeconds: 300,
	}
}

// Load reads .env (if present), then layers defaults, the YAML file at path
// (if present) and PORTFOLIO_* environment variables. A plain PORT variable
// overrides the port, as most hosting platforms set it. Plain DATABASE_URL
// and REDIS_URL fill in the connection strings when nothing else did.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.RedisURL == "" {
		cfg.RedisURL = os.Getenv("REDIS_URL")
	}

	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", port, err)
		}
		cfg.Port = p
	}

	return cfg, nil
}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.TemplatesDir == "" {
		return fmt.Errorf("templates_dir is required")
	}
	if c.StaticDir == "" {
		return fmt.Errorf("static_dir is required")
	}
	if c.FormEndpoint != "" {
		u, err := url.Parse(c.FormEndpoint)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid form_endpoint %q: must be an absolute URL", c.FormEndpoint)
		}
	}
	if c.ContactRelay && c.FormEndpoint == "" {
		return fmt.Errorf("contact_relay requires form_endpoint")
	}
	for _, cidr := range c.TrustedProxies {
		if _, _, err := net.ParseCIDR(cidr); err != nil {
			return fmt.Errorf("invalid trusted_proxies entry %q: %w", cidr, err)
		}
	}
	if c.ContactRateLimit < 0 || c.ContactRateWindow < 0 {
		return fmt.Errorf("contact rate limit values must not be negative")
	}
	return nil
}

// FormAction is the URL the contact form on the page posts to.
func (c *Config) FormAction() string {
	if c.ContactRelay {
		return "/contact"
	}
	return c.FormEndpoint
}

// Addr is the listen address.
func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}
