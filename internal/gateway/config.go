// internal/gateway/config.go
package gateway

import (
	"time"

	"github.com/paolomoz/vitamix-gensite-sub000/internal/common/config"
)

type Config struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	MaxRetries int
	Roles      map[string]config.RoleConfig
	Presets    map[string]map[string]string
}

// FromAppConfig converts the loaded application config into gateway settings.
func FromAppConfig(cfg config.GenAIConfig) *Config {
	return &Config{
		BaseURL:    cfg.BaseURL,
		APIKey:     cfg.APIKey,
		Timeout:    time.Duration(cfg.Timeout) * time.Millisecond,
		MaxRetries: cfg.MaxRetries,
		Roles:      cfg.Roles,
		Presets:    cfg.Presets,
	}
}

func (c *Config) roleFor(role Role, preset string) config.RoleConfig {
	rc := c.Roles[string(role)]
	if preset == "" {
		return rc
	}
	if overrides, ok := c.Presets[preset]; ok {
		if model, ok := overrides[string(role)]; ok && model != "" {
			rc.Model = model
		}
	}
	return rc
}
