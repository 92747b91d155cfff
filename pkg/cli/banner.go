package cli

import (
	"fmt"
	"strings"
	"time"
)

const bannerRule = "========================================"

// Banner is the startup summary printed by the run command.
type Banner struct {
	Version        string        `json:"version"`
	Address        string        `json:"address"`
	ChatConfigured bool          `json:"chat_configured"`
	ChatModel      string        `json:"chat_model,omitempty"`
	Translator     string        `json:"translator"`
	Origins        []string      `json:"allowed_origins"`
	TrustProxy     bool          `json:"trust_proxy"`
	RateLimit      int           `json:"rate_limit"`
	RateWindow     time.Duration `json:"rate_window"`
	LimitStore     string        `json:"limit_store"`
	SiteRoot       string        `json:"site_root"`
}

// Text implements Texter.
func (b Banner) Text() string {
	var sb strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&sb, format+"\n", args...)
	}

	line(bannerRule)
	line("🌾 Farmer Genius Server Started (%s)", b.Version)
	line(bannerRule)
	line("📍 URL: http://%s", b.Address)
	if b.ChatConfigured {
		line("🔑 Chat backend: ✅ Configured (%s)", b.ChatModel)
	} else {
		line("🔑 Chat backend: ❌ Not configured")
	}
	line("🈯 Translator: %s", b.Translator)
	line("🛡️  Rate limit: %d req / %s per client (%s store)", b.RateLimit, b.RateWindow, b.LimitStore)
	if len(b.Origins) > 0 {
		line("🌐 CORS: Enabled for %d origin(s)", len(b.Origins))
	} else {
		line("🌐 CORS: Same-origin only")
	}
	if b.TrustProxy {
		line("🔒 Client identity: Proxy mode (X-Forwarded-For)")
	} else {
		line("🔒 Client identity: Direct (socket)")
	}
	line("📁 Site root: %s", b.SiteRoot)
	line(bannerRule)

	return sb.String()
}
