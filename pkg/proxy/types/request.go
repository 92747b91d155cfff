package types

// Limits and defaults for proxied requests.
const (
	// MaxMessageLength is the chat message limit in characters.
	MaxMessageLength = 500

	// DefaultSourceLang is used when a translate request omits sourceLang.
	DefaultSourceLang = "en"
)

// ChatRequest is a validated POST /api/chat body.
type ChatRequest struct {
	Message string `json:"message"`
}

// TranslateRequest is a validated POST /api/translate body.
type TranslateRequest struct {
	Text       string `json:"text"`
	TargetLang string `json:"targetLang"`
	SourceLang string `json:"sourceLang,omitempty"`
}
