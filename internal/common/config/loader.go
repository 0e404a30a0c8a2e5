// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	loadEnvFile()

	// Base config
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	// Enable ENV override like GENAI_API_KEY
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	// Merge environment-specific overrides if present.
	envConfigFile := fmt.Sprintf("config.%s", env)
	viper.SetConfigName(envConfigFile)
	_ = viper.MergeInConfig()

	expandEnvVars(viper.GetViper())

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if cfg.Database.Elasticsearch.URL == "" && len(cfg.Database.Elasticsearch.Addresses) > 0 {
		cfg.Database.Elasticsearch.URL = cfg.Database.Elasticsearch.Addresses[0]
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// LoadFromFile loads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	expandEnvVars(viper.GetViper())

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func loadEnvFile() {
	// Try multiple paths (for running from different directories)
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// Find project root by looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		val := v.Get(key)

		if strVal, ok := val.(string); ok {
			if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
				expanded := os.ExpandEnv(strVal)
				if expanded != strVal && expanded != "" {
					v.Set(key, expanded)
				}
			}
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "gensite-server"
	}
	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8787"
	}
	if cfg.Server.StreamCloseDelay == 0 {
		cfg.Server.StreamCloseDelay = 100
	}
	if cfg.GenAI.Timeout == 0 {
		cfg.GenAI.Timeout = 30000
	}
	if cfg.GenAI.MaxRetries == 0 {
		cfg.GenAI.MaxRetries = 2
	}
	if cfg.GenAI.Roles == nil {
		cfg.GenAI.Roles = map[string]RoleConfig{}
	}
	for _, role := range []string{"classification", "reasoning", "content"} {
		rc := cfg.GenAI.Roles[role]
		if rc.MaxTokens == 0 {
			rc.MaxTokens = 2000
		}
		cfg.GenAI.Roles[role] = rc
	}

	if cfg.Catalog.Limits.Products == 0 {
		cfg.Catalog.Limits.Products = 6
	}
	if cfg.Catalog.Limits.Recipes == 0 {
		cfg.Catalog.Limits.Recipes = 4
	}
	if cfg.Catalog.Limits.FAQs == 0 {
		cfg.Catalog.Limits.FAQs = 5
	}
	if cfg.Catalog.Limits.Reviews == 0 {
		cfg.Catalog.Limits.Reviews = 4
	}
	if cfg.Catalog.Limits.UseCases == 0 {
		cfg.Catalog.Limits.UseCases = 4
	}
	if cfg.Catalog.Limits.Articles == 0 {
		cfg.Catalog.Limits.Articles = 3
	}
	if cfg.Catalog.Indices.Products == "" {
		cfg.Catalog.Indices.Products = "catalog-products"
	}
	if cfg.Catalog.Indices.Recipes == "" {
		cfg.Catalog.Indices.Recipes = "catalog-recipes"
	}
	if cfg.Catalog.Indices.FAQs == "" {
		cfg.Catalog.Indices.FAQs = "catalog-faqs"
	}
	if cfg.Catalog.Indices.Reviews == "" {
		cfg.Catalog.Indices.Reviews = "catalog-reviews"
	}
	if cfg.Catalog.Indices.UseCases == "" {
		cfg.Catalog.Indices.UseCases = "catalog-usecases"
	}
	if cfg.Catalog.Indices.Articles == "" {
		cfg.Catalog.Indices.Articles = "catalog-articles"
	}

	if cfg.ContextStore.KeyPrefix == "" {
		cfg.ContextStore.KeyPrefix = "gensite:ctx:"
	}
	if cfg.ContextStore.TTLSeconds == 0 {
		cfg.ContextStore.TTLSeconds = 3600
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}

// Direct override if config values are still empty after expansion
func overrideEmptyConfig(cfg *Config) {
	if cfg.GenAI.APIKey == "" {
		if val := os.Getenv("GENAI_API_KEY"); val != "" {
			cfg.GenAI.APIKey = val
		}
	}
	if cfg.GenAI.BaseURL == "" {
		if val := os.Getenv("GENAI_BASE_URL"); val != "" {
			cfg.GenAI.BaseURL = val
		}
	}
	if cfg.Database.Redis.Password == "" {
		if val := os.Getenv("REDIS_PASSWORD"); val != "" {
			cfg.Database.Redis.Password = val
		}
	}
	if cfg.Database.Elasticsearch.Password == "" {
		if val := os.Getenv("ELASTICSEARCH_PASSWORD"); val != "" {
			cfg.Database.Elasticsearch.Password = val
		}
	}
}
