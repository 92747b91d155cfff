// Package config provides configuration management for the Farmer Genius gateway.
//
// Configuration is loaded from an optional YAML file, overlaid with
// environment variables and validated before use.
//
// # Configuration Precedence
//
// Values are applied in the following order (later overrides earlier):
//
//  1. Default values (defined in defaults.go)
//  2. Values from the YAML file, when it exists
//  3. Legacy deployment variables: PORT, HOST, TRUST_PROXY, ALLOWED_ORIGINS
//     and OPENAI_API_KEY
//  4. FARMGENIUS_SECTION_FIELD overrides, e.g. FARMGENIUS_LIMITS_WINDOW
//  5. Validation (fails fast if invalid)
//
// TRUST_PROXY enables proxy trust only for the exact value "true".
// ALLOWED_ORIGINS is a comma-separated list.
//
// # Hot Reload
//
// Watcher re-reads the file on change. A reload that fails validation is
// logged and discarded; the running configuration stays in place.
//
// # Example Configuration
//
//	server:
//	  listen_address: "0.0.0.0:5000"
//	  trust_proxy: false
//
//	cors:
//	  allowed_origins:
//	    - "https://farmgenius.app"
//
//	site:
//	  root: "./public"
//
//	limits:
//	  max_body_bytes: 10000
//	  requests_per_window: 10
//	  window: 60s
//	  store: memory
//
//	providers:
//	  chat:
//	    api_key: "sk-or-..."
//	  translate:
//	    backend: google
//
//	telemetry:
//	  logging:
//	    level: info
//	    format: json
package config
