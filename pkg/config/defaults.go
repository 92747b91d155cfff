package config

import "time"

// Default values for configuration fields.
const (
	// Server defaults
	DefaultHost            = "0.0.0.0"
	DefaultPort            = "5000"
	DefaultListenAddress   = DefaultHost + ":" + DefaultPort
	DefaultReadTimeout     = 30 * time.Second
	DefaultWriteTimeout    = 45 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
	DefaultShutdownTimeout = 15 * time.Second
	DefaultMaxHeaderBytes  = 1048576 // 1MB
	DefaultTrustProxy      = false

	// Site defaults
	DefaultSiteRoot  = "./public"
	DefaultSiteIndex = "index.html"

	// Limits defaults
	DefaultMaxBodyBytes      = int64(10000)
	DefaultRequestsPerWindow = 10
	DefaultWindow            = 60 * time.Second
	DefaultSweepInterval     = 60 * time.Second
	DefaultLimitStore        = "memory"
	DefaultRedisAddr         = "localhost:6379"
	DefaultRedisKeyPrefix    = "farmgenius:ratelimit:"

	// Chat provider defaults
	DefaultChatBaseURL    = "https://openrouter.ai/api/v1"
	DefaultChatModel      = "mistralai/mistral-7b-instruct:free"
	DefaultChatMaxTokens  = 300
	DefaultChatTitle      = "Farmer Genius"
	DefaultChatReferer    = "https://farmgenius.app"
	DefaultBackendTimeout = 20 * time.Second
	DefaultMaxRetries     = 1

	// Translate provider defaults
	DefaultTranslateBackend           = "google"
	DefaultTranslateBaseURL           = "https://translate.googleapis.com"
	DefaultTranslateRequestsPerSecond = 5.0

	// Telemetry defaults
	DefaultLogLevel           = "info"
	DefaultLogFormat          = "json"
	DefaultMetricsEnabled     = true
	DefaultMetricsPath        = "/metrics"
	DefaultMetricsNamespace   = "farmgenius"
	DefaultTracingEnabled     = false
	DefaultTracingEndpoint    = "localhost:4317"
	DefaultTracingInsecure    = true
	DefaultTracingServiceName = "farmgenius-gateway"
	DefaultTracingSampleRatio = 1.0
)

// Defaults returns a configuration populated entirely with default values.
// The loader unmarshals YAML over this value so booleans whose default is
// true can still be switched off from the file.
func Defaults() *Config {
	cfg := &Config{
		Server: ServerConfig{
			TrustProxy: DefaultTrustProxy,
		},
		Telemetry: TelemetryConfig{
			Metrics: MetricsConfig{
				Enabled: DefaultMetricsEnabled,
			},
			Tracing: TracingConfig{
				Enabled:  DefaultTracingEnabled,
				Insecure: DefaultTracingInsecure,
			},
		},
	}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills zero-valued fields with their defaults. Fields that
// were set explicitly are left untouched.
func ApplyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applySiteDefaults(&cfg.Site)
	applyLimitsDefaults(&cfg.Limits)
	applyChatDefaults(&cfg.Providers.Chat)
	applyTranslateDefaults(&cfg.Providers.Translate)
	applyTelemetryDefaults(&cfg.Telemetry)
}

func applyServerDefaults(cfg *ServerConfig) {
	if cfg.ListenAddress == "" {
		cfg.ListenAddress = DefaultListenAddress
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = DefaultReadTimeout
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.IdleTimeout == 0 {
		cfg.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.MaxHeaderBytes == 0 {
		cfg.MaxHeaderBytes = DefaultMaxHeaderBytes
	}
}

func applySiteDefaults(cfg *SiteConfig) {
	if cfg.Root == "" {
		cfg.Root = DefaultSiteRoot
	}
	if cfg.Index == "" {
		cfg.Index = DefaultSiteIndex
	}
}

func applyLimitsDefaults(cfg *LimitsConfig) {
	if cfg.MaxBodyBytes == 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if cfg.RequestsPerWindow == 0 {
		cfg.RequestsPerWindow = DefaultRequestsPerWindow
	}
	if cfg.Window == 0 {
		cfg.Window = DefaultWindow
	}
	if cfg.SweepInterval == 0 {
		cfg.SweepInterval = DefaultSweepInterval
	}
	if cfg.Store == "" {
		cfg.Store = DefaultLimitStore
	}
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = DefaultRedisAddr
	}
	if cfg.Redis.KeyPrefix == "" {
		cfg.Redis.KeyPrefix = DefaultRedisKeyPrefix
	}
}

func applyChatDefaults(cfg *ChatProviderConfig) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultChatBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultChatModel
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = DefaultChatMaxTokens
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultBackendTimeout
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	if cfg.Referer == "" {
		cfg.Referer = DefaultChatReferer
	}
	if cfg.Title == "" {
		cfg.Title = DefaultChatTitle
	}
}

func applyTranslateDefaults(cfg *TranslateProviderConfig) {
	if cfg.Backend == "" {
		cfg.Backend = DefaultTranslateBackend
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultTranslateBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultBackendTimeout
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	if cfg.RequestsPerSecond == 0 {
		cfg.RequestsPerSecond = DefaultTranslateRequestsPerSecond
	}
}

func applyTelemetryDefaults(cfg *TelemetryConfig) {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLogLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = DefaultLogFormat
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Tracing.Endpoint == "" {
		cfg.Tracing.Endpoint = DefaultTracingEndpoint
	}
	if cfg.Tracing.ServiceName == "" {
		cfg.Tracing.ServiceName = DefaultTracingServiceName
	}
	if cfg.Tracing.SampleRatio == 0 {
		cfg.Tracing.SampleRatio = DefaultTracingSampleRatio
	}
}
