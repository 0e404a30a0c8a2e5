// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App          AppConfig          `mapstructure:"app"`
	Server       ServerConfig       `mapstructure:"server"`
	Database     DatabaseConfig     `mapstructure:"database"`
	GenAI        GenAIConfig        `mapstructure:"genai"`
	Catalog      CatalogConfig      `mapstructure:"catalog"`
	ContextStore ContextStoreConfig `mapstructure:"context_store"`
	Logging      LoggingConfig      `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Address          string `mapstructure:"address"`
	ReadTimeout      int    `mapstructure:"read_timeout"`       // milliseconds
	StreamCloseDelay int    `mapstructure:"stream_close_delay"` // milliseconds, before closing after final event
}

type DatabaseConfig struct {
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type ElasticsearchConfig struct {
	Addresses  []string `mapstructure:"addresses"`
	Username   string   `mapstructure:"username"`
	Password   string   `mapstructure:"password"`
	SSLEnabled bool     `mapstructure:"ssl_enabled"`
	URL        string   `mapstructure:"url"` // Single URL for backwards compatibility
}

// GetURL returns the first address or the URL field
func (e ElasticsearchConfig) GetURL() string {
	if e.URL != "" {
		return e.URL
	}
	if len(e.Addresses) > 0 {
		return e.Addresses[0]
	}
	return ""
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// --- Model Gateway Configuration ---

// GenAIConfig holds provider settings for the model gateway, one role block
// per pipeline role plus named presets selectable per request.
type GenAIConfig struct {
	BaseURL    string                      `mapstructure:"base_url"`
	APIKey     string                      `mapstructure:"api_key"`
	Timeout    int                         `mapstructure:"timeout"`     // milliseconds
	MaxRetries int                         `mapstructure:"max_retries"` // per call
	Roles      map[string]RoleConfig       `mapstructure:"roles"`       // classification | reasoning | content
	Presets    map[string]map[string]string `mapstructure:"presets"`    // preset -> role -> model override
}

type RoleConfig struct {
	Model       string  `mapstructure:"model"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	Temperature float64 `mapstructure:"temperature"`
}

// RoleFor returns the role settings with any preset model override applied.
func (g GenAIConfig) RoleFor(role, preset string) RoleConfig {
	rc := g.Roles[role]
	if preset == "" {
		return rc
	}
	if overrides, ok := g.Presets[preset]; ok {
		if model, ok := overrides[role]; ok && model != "" {
			rc.Model = model
		}
	}
	return rc
}

// --- Catalog Configuration ---

type CatalogConfig struct {
	Indices RetrievalIndices `mapstructure:"indices"`
	Limits  RetrievalLimits  `mapstructure:"limits"`
	SiteURL string           `mapstructure:"site_url"` // absolute-URL base for relative image paths
}

type RetrievalIndices struct {
	Products string `mapstructure:"products"`
	Recipes  string `mapstructure:"recipes"`
	FAQs     string `mapstructure:"faqs"`
	Reviews  string `mapstructure:"reviews"`
	UseCases string `mapstructure:"usecases"`
	Articles string `mapstructure:"articles"`
}

type RetrievalLimits struct {
	Products int `mapstructure:"products"`
	Recipes  int `mapstructure:"recipes"`
	FAQs     int `mapstructure:"faqs"`
	Reviews  int `mapstructure:"reviews"`
	UseCases int `mapstructure:"usecases"`
	Articles int `mapstructure:"articles"`
}

// --- Context Store Configuration ---

type ContextStoreConfig struct {
	KeyPrefix  string `mapstructure:"key_prefix"`
	TTLSeconds int    `mapstructure:"ttl_seconds"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Address == "" {
		return fmt.Errorf("server.address is required")
	}
	if cfg.GenAI.BaseURL == "" {
		return fmt.Errorf("genai.base_url is required")
	}
	for _, role := range []string{"classification", "reasoning", "content"} {
		if _, ok := cfg.GenAI.Roles[role]; !ok {
			return fmt.Errorf("genai.roles.%s is required", role)
		}
	}
	return nil
}
