package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified path.
// A missing file is not an error: the gateway runs on defaults alone.
// It applies default values and validates the result; environment variables
// are not consulted. Use LoadConfigWithEnvOverrides for that.
func LoadConfig(path string) (*Config, error) {
	cfg, err := loadFile(path)
	if err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides.
//
// The loading sequence is:
// 1. Start from default values
// 2. Overlay the YAML file, if present
// 3. Apply the legacy deployment variables (PORT, HOST, TRUST_PROXY,
// ALLOWED_ORIGINS, OPENAI_API_KEY)
// 4. Apply FARMGENIUS_SECTION_FIELD overrides
// 5. Read secrets referenced by file
// 6. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := loadFile(path)
	if err != nil {
		return nil, err
	}

	applyLegacyEnv(cfg)
	applyEnvOverrides(cfg)

	if err := resolveSecretFiles(cfg); err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

func loadFile(path string) (*Config, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	// Explicit zeroes in the file fall back to defaults.
	ApplyDefaults(cfg)

	return cfg, nil
}

// applyLegacyEnv maps the variables existing deployments already set.
func applyLegacyEnv(cfg *Config) {
	host, port, err := net.SplitHostPort(cfg.Server.ListenAddress)
	if err != nil {
		host, port = DefaultHost, DefaultPort
	}
	changed := false
	if val := os.Getenv("HOST"); val != "" {
		host = val
		changed = true
	}
	if val := os.Getenv("PORT"); val != "" {
		port = val
		changed = true
	}
	if changed {
		cfg.Server.ListenAddress = net.JoinHostPort(host, port)
	}

	if val, ok := os.LookupEnv("TRUST_PROXY"); ok {
		cfg.Server.TrustProxy = val == "true"
	}
	if val := os.Getenv("ALLOWED_ORIGINS"); val != "" {
		cfg.CORS.AllowedOrigins = splitList(val)
	}
	if val := os.Getenv("OPENAI_API_KEY"); val != "" {
		cfg.Providers.Chat.APIKey = val
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables use the format FARMGENIUS_SECTION_FIELD.
func applyEnvOverrides(cfg *Config) {
	// Server overrides
	setString("FARMGENIUS_SERVER_LISTEN_ADDRESS", &cfg.Server.ListenAddress)
	setDuration("FARMGENIUS_SERVER_READ_TIMEOUT", &cfg.Server.ReadTimeout)
	setDuration("FARMGENIUS_SERVER_WRITE_TIMEOUT", &cfg.Server.WriteTimeout)
	setDuration("FARMGENIUS_SERVER_IDLE_TIMEOUT", &cfg.Server.IdleTimeout)
	setDuration("FARMGENIUS_SERVER_SHUTDOWN_TIMEOUT", &cfg.Server.ShutdownTimeout)
	setBool("FARMGENIUS_SERVER_TRUST_PROXY", &cfg.Server.TrustProxy)

	// CORS overrides
	if val := os.Getenv("FARMGENIUS_CORS_ALLOWED_ORIGINS"); val != "" {
		cfg.CORS.AllowedOrigins = splitList(val)
	}

	// Site overrides
	setString("FARMGENIUS_SITE_ROOT", &cfg.Site.Root)
	setString("FARMGENIUS_SITE_INDEX", &cfg.Site.Index)

	// Limits overrides
	if val := os.Getenv("FARMGENIUS_LIMITS_MAX_BODY_BYTES"); val != "" {
		if n, err := strconv.ParseInt(val, 10, 64); err == nil {
			cfg.Limits.MaxBodyBytes = n
		}
	}
	setInt("FARMGENIUS_LIMITS_REQUESTS_PER_WINDOW", &cfg.Limits.RequestsPerWindow)
	setDuration("FARMGENIUS_LIMITS_WINDOW", &cfg.Limits.Window)
	setDuration("FARMGENIUS_LIMITS_SWEEP_INTERVAL", &cfg.Limits.SweepInterval)
	setString("FARMGENIUS_LIMITS_STORE", &cfg.Limits.Store)
	setString("FARMGENIUS_LIMITS_REDIS_ADDR", &cfg.Limits.Redis.Addr)
	setString("FARMGENIUS_LIMITS_REDIS_PASSWORD", &cfg.Limits.Redis.Password)
	setInt("FARMGENIUS_LIMITS_REDIS_DB", &cfg.Limits.Redis.DB)

	// Provider overrides
	setString("FARMGENIUS_PROVIDERS_CHAT_BASE_URL", &cfg.Providers.Chat.BaseURL)
	setString("FARMGENIUS_PROVIDERS_CHAT_API_KEY", &cfg.Providers.Chat.APIKey)
	setString("FARMGENIUS_PROVIDERS_CHAT_API_KEY_FILE", &cfg.Providers.Chat.APIKeyFile)
	setString("FARMGENIUS_PROVIDERS_CHAT_MODEL", &cfg.Providers.Chat.Model)
	setInt("FARMGENIUS_PROVIDERS_CHAT_MAX_TOKENS", &cfg.Providers.Chat.MaxTokens)
	setDuration("FARMGENIUS_PROVIDERS_CHAT_TIMEOUT", &cfg.Providers.Chat.Timeout)
	setString("FARMGENIUS_PROVIDERS_TRANSLATE_BACKEND", &cfg.Providers.Translate.Backend)
	setString("FARMGENIUS_PROVIDERS_TRANSLATE_BASE_URL", &cfg.Providers.Translate.BaseURL)
	setDuration("FARMGENIUS_PROVIDERS_TRANSLATE_TIMEOUT", &cfg.Providers.Translate.Timeout)

	// Telemetry overrides
	setString("FARMGENIUS_TELEMETRY_LOGGING_LEVEL", &cfg.Telemetry.Logging.Level)
	setString("FARMGENIUS_TELEMETRY_LOGGING_FORMAT", &cfg.Telemetry.Logging.Format)
	setBool("FARMGENIUS_TELEMETRY_METRICS_ENABLED", &cfg.Telemetry.Metrics.Enabled)
	setBool("FARMGENIUS_TELEMETRY_TRACING_ENABLED", &cfg.Telemetry.Tracing.Enabled)
	setString("FARMGENIUS_TELEMETRY_TRACING_ENDPOINT", &cfg.Telemetry.Tracing.Endpoint)
}

// resolveSecretFiles fills credentials from their *_file references. An
// inline or environment value always wins over the file.
func resolveSecretFiles(cfg *Config) error {
	chat := &cfg.Providers.Chat
	if chat.APIKey != "" || chat.APIKeyFile == "" {
		return nil
	}
	data, err := os.ReadFile(chat.APIKeyFile)
	if err != nil {
		return fmt.Errorf("failed to read providers.chat.api_key_file: %w", err)
	}
	chat.APIKey = strings.TrimSpace(string(data))
	return nil
}

func setString(key string, dst *string) {
	if val := os.Getenv(key); val != "" {
		*dst = val
	}
}

func setInt(key string, dst *int) {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			*dst = n
		}
	}
}

func setBool(key string, dst *bool) {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			*dst = b
		}
	}
}

func setDuration(key string, dst *time.Duration) {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			*dst = d
		}
	}
}

// splitList splits a comma-separated list, trimming blanks.
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
