package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// Config holds application configuration.
type Config struct {
	Port            string   `koanf:"port" validate:"required"`
	Env             string   `koanf:"env"`
	CORSAllowOrigin []string `koanf:"cors_allow_origins"`
	DatabaseURL     string   `koanf:"database_url"`

	LogLevel  string `koanf:"log_level" validate:"omitempty,oneof=debug info warn error disabled"`
	LogFormat string `koanf:"log_format" validate:"omitempty,oneof=json console"`

	LLMProvider     string `koanf:"llm_provider" validate:"omitempty,oneof=anthropic openai none"`
	LLMModel        string `koanf:"llm_model"`
	OpenAIAPIKey    string `koanf:"openai_api_key"`
	AnthropicAPIKey string `koanf:"anthropic_api_key"`

	PlacesProvider string        `koanf:"places_provider" validate:"oneof=google yelp"`
	GoogleAPIKey   string        `koanf:"google_api_key"`
	YelpAPIKey     string        `koanf:"yelp_api_key"`
	PlacesRPS      float64       `koanf:"places_rps" validate:"gte=0"`
	CacheDir       string        `koanf:"cache_dir"`
	CacheTTL       time.Duration `koanf:"cache_ttl"`

	NumRecommendations int `koanf:"num_recommendations" validate:"gte=1,lte=10"`

	RateLimitDefaultRPS        float64 `koanf:"rate_limit_default_rps" validate:"gte=0"`
	RateLimitDefaultBurst      int     `koanf:"rate_limit_default_burst" validate:"gte=0"`
	RateLimitRecommendRPS      float64 `koanf:"rate_limit_recommend_rps" validate:"gte=0"`
	RateLimitRecommendBurst    int     `koanf:"rate_limit_recommend_burst" validate:"gte=0"`
	RateLimitAutocompleteRPS   float64 `koanf:"rate_limit_autocomplete_rps" validate:"gte=0"`
	RateLimitAutocompleteBurst int     `koanf:"rate_limit_autocomplete_burst" validate:"gte=0"`
}

// ConfigPathEnvVar overrides the YAML config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

var defaultConfigPaths = []string{"config.yaml", "config.yml"}

// sliceKeys arrive from the environment as comma-separated strings.
var sliceKeys = []string{"cors_allow_origins"}

// Defaults returns the baseline configuration before any file or env overrides.
func Defaults() Config {
	return Config{
		Port:                       "8080",
		Env:                        "dev",
		CORSAllowOrigin:            []string{"http://localhost:5173"},
		LogLevel:                   "info",
		LogFormat:                  "json",
		LLMProvider:                "anthropic",
		PlacesProvider:             "google",
		PlacesRPS:                  10,
		CacheTTL:                   10 * time.Minute,
		NumRecommendations:         3,
		RateLimitDefaultRPS:        5,
		RateLimitDefaultBurst:      20,
		RateLimitRecommendRPS:      0.5,
		RateLimitRecommendBurst:    3,
		RateLimitAutocompleteRPS:   10,
		RateLimitAutocompleteBurst: 30,
	}
}

// Load reads configuration with precedence env > config file > defaults.
func Load() (Config, error) {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	k := koanf.New(".")
	if err := k.Load(structs.Provider(Defaults(), "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envKey), nil); err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}

	if err := splitSliceKeys(k); err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.Env = normalizeEnv(cfg.Env)
	cfg.PlacesProvider = strings.ToLower(strings.TrimSpace(cfg.PlacesProvider))
	cfg.LLMProvider = strings.ToLower(strings.TrimSpace(cfg.LLMProvider))

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field constraints and cross-field requirements.
func Validate(cfg Config) error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if cfg.Env == "production" && strings.TrimSpace(cfg.DatabaseURL) == "" {
		return fmt.Errorf("invalid config: DATABASE_URL is required in production")
	}
	return nil
}

// envKey maps an environment variable to a koanf key; unknown variables are skipped.
func envKey(key string) string {
	k := strings.ToLower(key)
	switch k {
	case "port", "env", "cors_allow_origins", "database_url",
		"log_level", "log_format",
		"llm_provider", "llm_model", "openai_api_key", "anthropic_api_key",
		"places_provider", "google_api_key", "yelp_api_key", "places_rps", "cache_dir", "cache_ttl",
		"num_recommendations",
		"rate_limit_default_rps", "rate_limit_default_burst",
		"rate_limit_recommend_rps", "rate_limit_recommend_burst",
		"rate_limit_autocomplete_rps", "rate_limit_autocomplete_burst":
		return k
	default:
		return ""
	}
}

func findConfigFile() string {
	if p := strings.TrimSpace(os.Getenv(ConfigPathEnvVar)); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range defaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func splitSliceKeys(k *koanf.Koanf) error {
	for _, key := range sliceKeys {
		raw, ok := k.Get(key).(string)
		if !ok {
			continue
		}
		parts := splitAndTrim(raw)
		if err := k.Set(key, parts); err != nil {
			return fmt.Errorf("set %s: %w", key, err)
		}
	}
	return nil
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

// IsDevLike reports whether env allows in-memory fallbacks.
func IsDevLike(env string) bool {
	switch normalizeEnv(env) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
