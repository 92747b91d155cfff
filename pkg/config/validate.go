package config

import (
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "server.listen_address").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "configuration validation failed with %d errors:\n", len(e.Errors))
	for _, err := range e.Errors {
		fmt.Fprintf(&sb, "  - %s\n", err.Error())
	}
	return sb.String()
}

// Validate validates the entire configuration. All field errors are
// collected and returned together as a ValidationError.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateServer(&cfg.Server)...)
	errs = append(errs, validateCORS(&cfg.CORS)...)
	errs = append(errs, validateSite(&cfg.Site)...)
	errs = append(errs, validateLimits(&cfg.Limits)...)
	errs = append(errs, validateProviders(&cfg.Providers)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}

func validateServer(cfg *ServerConfig) []FieldError {
	var errs []FieldError

	if cfg.ListenAddress == "" {
		errs = append(errs, FieldError{
			Field:   "server.listen_address",
			Message: "listen address is required",
		})
	} else if _, _, err := net.SplitHostPort(cfg.ListenAddress); err != nil {
		errs = append(errs, FieldError{
			Field:   "server.listen_address",
			Message: fmt.Sprintf("invalid listen address %q: %v", cfg.ListenAddress, err),
		})
	}

	if cfg.ReadTimeout < 0 {
		errs = append(errs, FieldError{Field: "server.read_timeout", Message: "read timeout must be positive"})
	}
	if cfg.WriteTimeout < 0 {
		errs = append(errs, FieldError{Field: "server.write_timeout", Message: "write timeout must be positive"})
	}
	if cfg.IdleTimeout < 0 {
		errs = append(errs, FieldError{Field: "server.idle_timeout", Message: "idle timeout must be positive"})
	}
	if cfg.MaxHeaderBytes < 0 {
		errs = append(errs, FieldError{Field: "server.max_header_bytes", Message: "max header bytes must be non-negative"})
	}
	if cfg.MaxHeaderBytes > 10*1024*1024 {
		errs = append(errs, FieldError{
			Field:   "server.max_header_bytes",
			Message: "max header bytes exceeds reasonable limit (10MB)",
		})
	}

	return errs
}

func validateCORS(cfg *CORSConfig) []FieldError {
	var errs []FieldError

	for i, origin := range cfg.AllowedOrigins {
		field := fmt.Sprintf("cors.allowed_origins[%d]", i)
		if origin == "*" {
			errs = append(errs, FieldError{
				Field:   field,
				Message: "wildcard origin cannot be combined with credentials; list origins explicitly",
			})
			continue
		}
		u, err := url.Parse(origin)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, FieldError{
				Field:   field,
				Message: fmt.Sprintf("invalid origin %q: must be scheme://host[:port]", origin),
			})
		}
	}

	return errs
}

func validateSite(cfg *SiteConfig) []FieldError {
	var errs []FieldError

	if cfg.Root == "" {
		errs = append(errs, FieldError{Field: "site.root", Message: "site root is required"})
	}
	if cfg.Index == "" || strings.ContainsAny(cfg.Index, `/\`) {
		errs = append(errs, FieldError{
			Field:   "site.index",
			Message: "index must be a plain file name inside the site root",
		})
	}

	return errs
}

func validateLimits(cfg *LimitsConfig) []FieldError {
	var errs []FieldError

	if cfg.MaxBodyBytes <= 0 {
		errs = append(errs, FieldError{Field: "limits.max_body_bytes", Message: "max body bytes must be positive"})
	}
	if cfg.RequestsPerWindow <= 0 {
		errs = append(errs, FieldError{Field: "limits.requests_per_window", Message: "requests per window must be positive"})
	}
	if cfg.Window <= 0 {
		errs = append(errs, FieldError{Field: "limits.window", Message: "window must be positive"})
	}
	if cfg.SweepInterval <= 0 {
		errs = append(errs, FieldError{Field: "limits.sweep_interval", Message: "sweep interval must be positive"})
	}

	switch cfg.Store {
	case "memory":
	case "redis":
		if cfg.Redis.Addr == "" {
			errs = append(errs, FieldError{
				Field:   "limits.redis.addr",
				Message: "redis address is required when store is 'redis'",
			})
		}
		if cfg.Redis.DB < 0 {
			errs = append(errs, FieldError{Field: "limits.redis.db", Message: "redis db must be non-negative"})
		}
	default:
		errs = append(errs, FieldError{
			Field:   "limits.store",
			Message: fmt.Sprintf("invalid store %q: must be 'memory' or 'redis'", cfg.Store),
		})
	}

	return errs
}

func validateProviders(cfg *ProvidersConfig) []FieldError {
	var errs []FieldError

	errs = append(errs, validateBaseURL("providers.chat.base_url", cfg.Chat.BaseURL)...)
	if cfg.Chat.Model == "" {
		errs = append(errs, FieldError{Field: "providers.chat.model", Message: "model is required"})
	}
	if cfg.Chat.MaxTokens <= 0 {
		errs = append(errs, FieldError{Field: "providers.chat.max_tokens", Message: "max tokens must be positive"})
	}
	errs = append(errs, validateRetries("providers.chat", cfg.Chat.Timeout, cfg.Chat.MaxRetries)...)

	switch cfg.Translate.Backend {
	case "google":
		errs = append(errs, validateBaseURL("providers.translate.base_url", cfg.Translate.BaseURL)...)
	case "llm":
	default:
		errs = append(errs, FieldError{
			Field:   "providers.translate.backend",
			Message: fmt.Sprintf("invalid backend %q: must be 'google' or 'llm'", cfg.Translate.Backend),
		})
	}
	if cfg.Translate.RequestsPerSecond < 0 {
		errs = append(errs, FieldError{
			Field:   "providers.translate.requests_per_second",
			Message: "requests per second must be non-negative",
		})
	}
	errs = append(errs, validateRetries("providers.translate", cfg.Translate.Timeout, cfg.Translate.MaxRetries)...)

	return errs
}

func validateBaseURL(field, raw string) []FieldError {
	if raw == "" {
		return []FieldError{{Field: field, Message: "base URL is required"}}
	}
	u, err := url.Parse(raw)
	if err != nil {
		return []FieldError{{Field: field, Message: fmt.Sprintf("invalid URL format: %v", err)}}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return []FieldError{{Field: field, Message: fmt.Sprintf("unsupported scheme %q", u.Scheme)}}
	}
	return nil
}

func validateRetries(prefix string, timeout time.Duration, retries int) []FieldError {
	var errs []FieldError

	if timeout < 0 {
		errs = append(errs, FieldError{Field: prefix + ".timeout", Message: "timeout must be positive"})
	}
	if retries < 0 {
		errs = append(errs, FieldError{Field: prefix + ".max_retries", Message: "max retries must be non-negative"})
	}
	if retries > 10 {
		errs = append(errs, FieldError{Field: prefix + ".max_retries", Message: "max retries exceeds reasonable limit (10)"})
	}

	return errs
}

func validateTelemetry(cfg *TelemetryConfig) []FieldError {
	var errs []FieldError

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("invalid logging level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.Logging.Level),
		})
	}

	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[cfg.Logging.Format] {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("invalid logging format %q: must be 'json' or 'text'", cfg.Logging.Format),
		})
	}

	if cfg.Metrics.Enabled && !strings.HasPrefix(cfg.Metrics.Path, "/") {
		errs = append(errs, FieldError{
			Field:   "telemetry.metrics.path",
			Message: "metrics path must start with '/'",
		})
	}
	if strings.HasPrefix(cfg.Metrics.Path, "/api/") {
		errs = append(errs, FieldError{
			Field:   "telemetry.metrics.path",
			Message: "metrics path must not live under /api/",
		})
	}

	if cfg.Tracing.Enabled && cfg.Tracing.Endpoint == "" {
		errs = append(errs, FieldError{
			Field:   "telemetry.tracing.endpoint",
			Message: "tracing endpoint is required when tracing is enabled",
		})
	}
	if cfg.Tracing.SampleRatio < 0 || cfg.Tracing.SampleRatio > 1.0 {
		errs = append(errs, FieldError{
			Field:   "telemetry.tracing.sample_ratio",
			Message: "sample ratio must be between 0.0 and 1.0",
		})
	}

	return errs
}
