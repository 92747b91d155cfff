package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// clearLegacyEnv blanks the deployment variables so the host environment
// does not leak into assertions.
func clearLegacyEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PORT", "HOST", "ALLOWED_ORIGINS", "OPENAI_API_KEY"} {
		t.Setenv(key, "")
	}
	t.Setenv("TRUST_PROXY", "")
	os.Unsetenv("TRUST_PROXY")
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfig_ValidFile(t *testing.T) {
	path := writeConfig(t, `
server:
  listen_address: "127.0.0.1:8080"
  read_timeout: "10s"
cors:
  allowed_origins:
    - "https://farmgenius.app"
limits:
  requests_per_window: 5
  window: "30s"
providers:
  chat:
    api_key: "sk-test"
telemetry:
  logging:
    level: "debug"
    format: "text"
  metrics:
    enabled: false
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Server.ListenAddress != "127.0.0.1:8080" {
		t.Errorf("expected listen address %q, got %q", "127.0.0.1:8080", cfg.Server.ListenAddress)
	}
	if cfg.Server.ReadTimeout != 10*time.Second {
		t.Errorf("expected read timeout 10s, got %v", cfg.Server.ReadTimeout)
	}
	if len(cfg.CORS.AllowedOrigins) != 1 || cfg.CORS.AllowedOrigins[0] != "https://farmgenius.app" {
		t.Errorf("unexpected allowed origins %v", cfg.CORS.AllowedOrigins)
	}
	if cfg.Limits.RequestsPerWindow != 5 || cfg.Limits.Window != 30*time.Second {
		t.Errorf("unexpected limits %+v", cfg.Limits)
	}
	if cfg.Limits.MaxBodyBytes != DefaultMaxBodyBytes {
		t.Errorf("expected default max body bytes, got %d", cfg.Limits.MaxBodyBytes)
	}
	if cfg.Providers.Chat.APIKey != "sk-test" {
		t.Errorf("expected api key from file, got %q", cfg.Providers.Chat.APIKey)
	}
	if cfg.Telemetry.Metrics.Enabled {
		t.Error("expected metrics disabled by file")
	}
	if !cfg.Telemetry.Tracing.Insecure {
		t.Error("expected tracing insecure default to survive partial file")
	}
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing file should not fail: %v", err)
	}

	if cfg.Server.ListenAddress != DefaultListenAddress {
		t.Errorf("expected %q, got %q", DefaultListenAddress, cfg.Server.ListenAddress)
	}
	if cfg.Limits.MaxBodyBytes != 10000 {
		t.Errorf("expected 10000, got %d", cfg.Limits.MaxBodyBytes)
	}
	if cfg.Limits.RequestsPerWindow != 10 || cfg.Limits.Window != time.Minute {
		t.Errorf("unexpected limiter defaults %+v", cfg.Limits)
	}
	if cfg.Providers.Chat.Model != DefaultChatModel || cfg.Providers.Chat.MaxTokens != 300 {
		t.Errorf("unexpected chat defaults %+v", cfg.Providers.Chat)
	}
	if cfg.Server.TrustProxy {
		t.Error("trust proxy must default to false")
	}
	if len(cfg.CORS.AllowedOrigins) != 0 {
		t.Errorf("expected empty allow-list, got %v", cfg.CORS.AllowedOrigins)
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "server: [unterminated")

	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadConfig_ValidationFailure(t *testing.T) {
	path := writeConfig(t, `
limits:
  store: "etcd"
`)

	_, err := LoadConfig(path)
	if err == nil {
		t.Fatal("expected validation error")
	}
	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if verr.Errors[0].Field != "limits.store" {
		t.Errorf("expected limits.store error, got %q", verr.Errors[0].Field)
	}
}

func TestLoadConfigWithEnvOverrides_LegacyVariables(t *testing.T) {
	clearLegacyEnv(t)
	t.Setenv("PORT", "8081")
	t.Setenv("TRUST_PROXY", "true")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("OPENAI_API_KEY", "sk-legacy")

	cfg, err := LoadConfigWithEnvOverrides("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.ListenAddress != "0.0.0.0:8081" {
		t.Errorf("expected 0.0.0.0:8081, got %q", cfg.Server.ListenAddress)
	}
	if !cfg.Server.TrustProxy {
		t.Error("expected trust proxy enabled")
	}
	want := []string{"https://a.example", "https://b.example"}
	if len(cfg.CORS.AllowedOrigins) != len(want) {
		t.Fatalf("expected %v, got %v", want, cfg.CORS.AllowedOrigins)
	}
	for i := range want {
		if cfg.CORS.AllowedOrigins[i] != want[i] {
			t.Errorf("origin %d: expected %q, got %q", i, want[i], cfg.CORS.AllowedOrigins[i])
		}
	}
	if cfg.Providers.Chat.APIKey != "sk-legacy" {
		t.Errorf("expected legacy api key, got %q", cfg.Providers.Chat.APIKey)
	}
}

func TestLoadConfigWithEnvOverrides_TrustProxyExactValue(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"true", true},
		{"TRUE", false},
		{"1", false},
		{"yes", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			clearLegacyEnv(t)
			t.Setenv("TRUST_PROXY", tt.value)

			cfg, err := LoadConfigWithEnvOverrides("")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.Server.TrustProxy != tt.want {
				t.Errorf("TRUST_PROXY=%q: expected %v, got %v", tt.value, tt.want, cfg.Server.TrustProxy)
			}
		})
	}
}

func TestLoadConfigWithEnvOverrides_PrefixedWinsOverLegacy(t *testing.T) {
	clearLegacyEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-legacy")
	t.Setenv("FARMGENIUS_PROVIDERS_CHAT_API_KEY", "sk-prefixed")
	t.Setenv("FARMGENIUS_LIMITS_WINDOW", "2m")
	t.Setenv("FARMGENIUS_TELEMETRY_METRICS_ENABLED", "false")

	cfg, err := LoadConfigWithEnvOverrides("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Providers.Chat.APIKey != "sk-prefixed" {
		t.Errorf("expected prefixed key to win, got %q", cfg.Providers.Chat.APIKey)
	}
	if cfg.Limits.Window != 2*time.Minute {
		t.Errorf("expected 2m window, got %v", cfg.Limits.Window)
	}
	if cfg.Telemetry.Metrics.Enabled {
		t.Error("expected metrics disabled by env")
	}
}

func TestLoadConfigWithEnvOverrides_InvalidAfterOverride(t *testing.T) {
	clearLegacyEnv(t)
	t.Setenv("FARMGENIUS_TELEMETRY_LOGGING_LEVEL", "verbose")

	if _, err := LoadConfigWithEnvOverrides(""); err == nil {
		t.Fatal("expected validation error for invalid log level")
	}
}

func TestLoadConfigWithEnvOverrides_APIKeyFile(t *testing.T) {
	clearLegacyEnv(t)

	secret := filepath.Join(t.TempDir(), "openai_key")
	if err := os.WriteFile(secret, []byte("sk-from-file\n"), 0600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		env     string
		want    string
		wantErr bool
	}{
		{name: "read from file", want: "sk-from-file"},
		{name: "environment wins", env: "sk-from-env", want: "sk-from-env"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("OPENAI_API_KEY", tt.env)
			path := writeConfig(t, "providers:\n  chat:\n    api_key_file: \""+filepath.ToSlash(secret)+"\"\n")

			cfg, err := LoadConfigWithEnvOverrides(path)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.Providers.Chat.APIKey != tt.want {
				t.Errorf("APIKey = %q, want %q", cfg.Providers.Chat.APIKey, tt.want)
			}
		})
	}

	t.Run("missing file", func(t *testing.T) {
		path := writeConfig(t, "providers:\n  chat:\n    api_key_file: \"/nonexistent/key\"\n")
		if _, err := LoadConfigWithEnvOverrides(path); err == nil {
			t.Fatal("expected error for unreadable key file")
		}
	})
}
