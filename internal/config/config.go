package config

import (
	"bytes"
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// ServerConfig is the cotyledon server's config.toml. The signing secret is
// deliberately absent; it only comes from the environment.
type ServerConfig struct {
	Name            string          `toml:"name"`
	Addr            string          `toml:"addr"`
	CorsOrigins     []string        `toml:"cors_origins"`
	TrustedProxies  []string        `toml:"trusted_proxies"`
	CatalogPath     string          `toml:"catalog_path"`
	StrictEmptyPlot bool            `toml:"strict_empty_plot"`
	MetricsToken    string          `toml:"metrics_token"`
	RateLimit       RateLimitConfig `toml:"rate_limit"`
}

// RateLimitConfig is a per-client-IP token bucket. RPS 0 disables limiting.
type RateLimitConfig struct {
	RPS   float64 `toml:"rps"`
	Burst int     `toml:"burst"`
}

func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Name:           "cotyledon",
		Addr:           "127.0.0.1:8080",
		TrustedProxies: []string{"127.0.0.1", "::1"},
		RateLimit: RateLimitConfig{
			RPS:   10,
			Burst: 20,
		},
	}
}

// LoadServerConfig overlays the file at path on DefaultServerConfig.
func LoadServerConfig(path string) (ServerConfig, error) {
	cfg := DefaultServerConfig()
	if err := loadToml(path, &cfg); err != nil {
		return ServerConfig{}, err
	}
	cfg.Name = strings.TrimSpace(cfg.Name)
	cfg.Addr = strings.TrimSpace(cfg.Addr)
	cfg.CatalogPath = strings.TrimSpace(cfg.CatalogPath)
	if cfg.Name == "" {
		cfg.Name = "cotyledon"
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8080"
	}
	if err := ValidateServerConfig(cfg); err != nil {
		return ServerConfig{}, err
	}
	return cfg, nil
}

func loadToml(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return nil
}

func ValidateServerConfig(cfg ServerConfig) error {
	if strings.TrimSpace(cfg.Name) == "" {
		return fmt.Errorf("server config missing name")
	}
	if strings.TrimSpace(cfg.Addr) == "" {
		return fmt.Errorf("server config missing addr")
	}
	if _, _, err := net.SplitHostPort(cfg.Addr); err != nil {
		return fmt.Errorf("server config addr %q invalid: %w", cfg.Addr, err)
	}
	for i, origin := range cfg.CorsOrigins {
		if err := validateOrigin(origin); err != nil {
			return fmt.Errorf("cors_origins[%d] invalid: %w", i, err)
		}
	}
	for i, proxy := range cfg.TrustedProxies {
		if err := validateProxy(proxy); err != nil {
			return fmt.Errorf("trusted_proxies[%d] invalid: %w", i, err)
		}
	}
	if cfg.RateLimit.RPS < 0 {
		return fmt.Errorf("rate_limit.rps must not be negative")
	}
	if cfg.RateLimit.RPS > 0 && cfg.RateLimit.Burst < 1 {
		return fmt.Errorf("rate_limit.burst must be at least 1 when rps is set")
	}
	return nil
}

func validateOrigin(origin string) error {
	origin = strings.TrimSpace(origin)
	if origin == "*" {
		return nil
	}
	if !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
		return fmt.Errorf("origin %q must start with http:// or https://", origin)
	}
	return nil
}

func validateProxy(proxy string) error {
	proxy = strings.TrimSpace(proxy)
	if net.ParseIP(proxy) != nil {
		return nil
	}
	if _, _, err := net.ParseCIDR(proxy); err != nil {
		return fmt.Errorf("%q is neither an IP nor a CIDR", proxy)
	}
	return nil
}
