package config

import "time"

// Config is the root configuration structure for the Farmer Genius gateway.
// It contains the HTTP server settings, the static site location, the request
// gating limits, backend providers and telemetry.
type Config struct {
	// Server contains HTTP server configuration including listen address,
	// timeouts and client identity derivation.
	Server ServerConfig `yaml:"server"`

	// CORS contains the explicit origin allow-list.
	CORS CORSConfig `yaml:"cors"`

	// Site contains the static site root served by the SPA responder.
	Site SiteConfig `yaml:"site"`

	// Limits contains the request size guard and rate limiter settings.
	Limits LimitsConfig `yaml:"limits"`

	// Providers contains the language-model and translation backends.
	Providers ProvidersConfig `yaml:"providers"`

	// Telemetry contains logging, metrics and tracing configuration.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ServerConfig contains configuration for the HTTP server.
type ServerConfig struct {
	// ListenAddress is the address and port to listen on.
	// Format: "host:port". The legacy HOST and PORT environment variables
	// are folded into this field.
	// Default: "0.0.0.0:5000"
	ListenAddress string `yaml:"listen_address"`

	// ReadTimeout is the maximum duration for reading the entire request.
	// Default: 30s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out response writes.
	// It must exceed the backend timeouts or slow replies are cut off.
	// Default: 45s
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// IdleTimeout is the keep-alive idle timeout.
	// Default: 120s
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// ShutdownTimeout bounds graceful shutdown.
	// Default: 15s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// MaxHeaderBytes limits request header size.
	// Default: 1048576 (1MB)
	MaxHeaderBytes int `yaml:"max_header_bytes"`

	// TrustProxy makes the first X-Forwarded-For entry the client identity.
	// Only enable behind a reverse proxy that overwrites the header.
	// Default: false
	TrustProxy bool `yaml:"trust_proxy"`
}

// CORSConfig contains Cross-Origin Resource Sharing configuration.
type CORSConfig struct {
	// AllowedOrigins is the explicit list of origins echoed back in
	// Access-Control-Allow-Origin. Empty means same-origin only.
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// SiteConfig locates the static site.
type SiteConfig struct {
	// Root is the directory holding the HTML, CSS and JS assets.
	// Default: "./public"
	Root string `yaml:"root"`

	// Index is the root document served for "/" and as SPA fallback.
	// Default: "index.html"
	Index string `yaml:"index"`
}

// LimitsConfig contains request gating configuration shared by both proxy endpoints.
type LimitsConfig struct {
	// MaxBodyBytes is the request body ceiling. Bodies larger than this
	// are rejected with 413 as soon as the ceiling is crossed.
	// Default: 10000
	MaxBodyBytes int64 `yaml:"max_body_bytes"`

	// RequestsPerWindow is the number of admitted requests per identity
	// within Window.
	// Default: 10
	RequestsPerWindow int `yaml:"requests_per_window"`

	// Window is the trailing rate limit window.
	// Default: 60s
	Window time.Duration `yaml:"window"`

	// SweepInterval is how often abandoned identities are reclaimed.
	// Default: 60s
	SweepInterval time.Duration `yaml:"sweep_interval"`

	// Store selects the limiter state backend.
	// Options: "memory", "redis"
	// Default: "memory"
	Store string `yaml:"store"`

	// Redis configures the shared store when Store is "redis".
	Redis RedisConfig `yaml:"redis"`
}

// RedisConfig contains connection settings for the Redis limiter store.
type RedisConfig struct {
	// Addr is the Redis address.
	// Default: "localhost:6379"
	Addr string `yaml:"addr"`

	// Password for AUTH, empty for none.
	Password string `yaml:"password"`

	// DB is the logical database number.
	DB int `yaml:"db"`

	// KeyPrefix namespaces limiter keys.
	// Default: "farmgenius:ratelimit:"
	KeyPrefix string `yaml:"key_prefix"`
}

// ProvidersConfig contains backend configuration.
type ProvidersConfig struct {
	// Chat is the OpenAI-compatible language-model backend.
	Chat ChatProviderConfig `yaml:"chat"`

	// Translate is the translation backend.
	Translate TranslateProviderConfig `yaml:"translate"`
}

// ChatProviderConfig configures the language-model backend.
type ChatProviderConfig struct {
	// BaseURL is the OpenAI-compatible API base.
	// Default: "https://openrouter.ai/api/v1"
	BaseURL string `yaml:"base_url"`

	// APIKey is the backend credential. When empty the chat endpoint
	// answers with a fixed degraded-service reply instead of failing.
	// The legacy OPENAI_API_KEY environment variable sets this field.
	APIKey string `yaml:"api_key"`

	// APIKeyFile names a file holding the credential, as mounted by Docker
	// or Kubernetes secrets. It is read at load time when APIKey is empty.
	APIKeyFile string `yaml:"api_key_file"`

	// Model is the model identifier sent with each request.
	// Default: "mistralai/mistral-7b-instruct:free"
	Model string `yaml:"model"`

	// MaxTokens caps the reply length.
	// Default: 300
	MaxTokens int `yaml:"max_tokens"`

	// Timeout bounds one backend call including retries.
	// Default: 20s
	Timeout time.Duration `yaml:"timeout"`

	// MaxRetries is the number of retries for transport errors and 5xx.
	// Default: 1
	MaxRetries int `yaml:"max_retries"`

	// Referer and Title are sent as HTTP-Referer and X-Title, which
	// OpenRouter uses for attribution.
	Referer string `yaml:"referer"`
	Title   string `yaml:"title"`
}

// TranslateProviderConfig configures the translation backend.
type TranslateProviderConfig struct {
	// Backend selects the translator.
	// Options: "google" (public translate endpoint), "llm" (chat model)
	// Default: "google"
	Backend string `yaml:"backend"`

	// BaseURL is the translate endpoint base for the google backend.
	// Default: "https://translate.googleapis.com"
	BaseURL string `yaml:"base_url"`

	// Timeout bounds one backend call.
	// Default: 20s
	Timeout time.Duration `yaml:"timeout"`

	// MaxRetries is the number of retries for transport errors and 5xx.
	// Default: 1
	MaxRetries int `yaml:"max_retries"`

	// RequestsPerSecond paces outbound calls so the public endpoint does not
	// throttle the whole process. Zero disables pacing.
	// Default: 5
	RequestsPerSecond float64 `yaml:"requests_per_second"`
}

// TelemetryConfig contains observability configuration.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains Prometheus metrics configuration.
	Metrics MetricsConfig `yaml:"metrics"`

	// Tracing contains OpenTelemetry tracing configuration.
	Tracing TracingConfig `yaml:"tracing"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text"
	// Default: "json"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains Prometheus metrics configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics are collected and exposed.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Path is the HTTP path of the metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace is the metric name prefix.
	// Default: "farmgenius"
	Namespace string `yaml:"namespace"`
}

// TracingConfig contains distributed tracing configuration.
type TracingConfig struct {
	// Enabled controls whether spans are exported.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Endpoint is the OTLP gRPC collector endpoint.
	// Default: "localhost:4317"
	Endpoint string `yaml:"endpoint"`

	// Insecure disables TLS towards the collector.
	// Default: true
	Insecure bool `yaml:"insecure"`

	// ServiceName is reported as service.name.
	// Default: "farmgenius-gateway"
	ServiceName string `yaml:"service_name"`

	// SampleRatio is the fraction of traces sampled (0.0 to 1.0).
	// Default: 1.0
	SampleRatio float64 `yaml:"sample_ratio"`
}
