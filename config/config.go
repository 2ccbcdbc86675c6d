package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// ClosePolicy decides when the review modal closes relative to the PUT.
type ClosePolicy string

const (
	// CloseOptimistic closes the modal before the server answers.
	CloseOptimistic ClosePolicy = "optimistic"
	// CloseOnResponse keeps the modal open until the server answers.
	CloseOnResponse ClosePolicy = "on-response"
)

// UnmarshalText lets env parse the policy and reject unknown values.
func (p *ClosePolicy) UnmarshalText(text []byte) error {
	switch v := ClosePolicy(strings.ToLower(strings.TrimSpace(string(text)))); v {
	case CloseOptimistic, CloseOnResponse:
		*p = v
		return nil
	default:
		return fmt.Errorf("unknown close policy %q", string(text))
	}
}

// Dashboard configures the terminal dashboard.
type Dashboard struct {
	APIURL      string        `env:"NDA_API_URL" envDefault:"http://localhost:10007"`
	BasePath    string        `env:"NDA_API_BASE_PATH" envDefault:"/api/example/"`
	HTTPTimeout time.Duration `env:"NDA_HTTP_TIMEOUT" envDefault:"10s"`
	ClosePolicy ClosePolicy   `env:"NDA_CLOSE_POLICY" envDefault:"optimistic"`
	DemoMode    bool          `env:"NDA_DEMO_MODE"`
	LogFile     string        `env:"NDA_LOG_FILE"`
}

// Backend configures the in-memory demo backend.
type Backend struct {
	Addr     string   `env:"NDA_BACKEND_ADDR" envDefault:":10007"`
	BasePath string   `env:"NDA_API_BASE_PATH" envDefault:"/api/example/"`
	Node     string   `env:"NDA_BACKEND_NODE" envDefault:"O=PartyA,L=London,C=GB"`
	Peers    []string `env:"NDA_BACKEND_PEERS" envSeparator:";" envDefault:"O=PartyB,L=New York,C=US;O=PartyC,L=Paris,C=FR"`
	Seed     bool     `env:"NDA_BACKEND_SEED" envDefault:"true"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadDashboard parses the dashboard configuration and normalizes paths.
func LoadDashboard() (Dashboard, error) {
	var cfg Dashboard
	if err := ParseEnv(&cfg); err != nil {
		return Dashboard{}, err
	}
	cfg.BasePath = NormalizeBasePath(cfg.BasePath)
	return cfg, nil
}

// LoadBackend parses the backend configuration.
func LoadBackend() (Backend, error) {
	var cfg Backend
	if err := ParseEnv(&cfg); err != nil {
		return Backend{}, err
	}
	cfg.BasePath = NormalizeBasePath(cfg.BasePath)
	return cfg, nil
}

// NormalizeBasePath makes sure the path starts and ends with a slash.
func NormalizeBasePath(p string) string {
	p = strings.Trim(strings.TrimSpace(p), "/")
	if p == "" {
		return "/"
	}
	return "/" + p + "/"
}

// ValidateAPIURL checks that u is an absolute http(s) URL.
func ValidateAPIURL(u string) error {
	if strings.TrimSpace(u) == "" {
		return fmt.Errorf("API URL is required")
	}
	parsed, err := url.Parse(u)
	if err != nil {
		return fmt.Errorf("parse API URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("API URL must use http or https, got %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return fmt.Errorf("API URL %q has no host", u)
	}
	return nil
}
