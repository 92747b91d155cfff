package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"
	"unicode/utf8"

	"farmgenius/gateway/pkg/providers"
	"farmgenius/gateway/pkg/proxy"
	"farmgenius/gateway/pkg/proxy/types"
	"farmgenius/gateway/pkg/telemetry/metrics"
	"farmgenius/gateway/pkg/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Chat endpoint messages.
const (
	MsgMessageRequired = "Message is required and must be a string"
	MsgMessageType     = "Message must be a string"
	MsgMessageEmpty    = "Message must not be empty"
	MsgMessageTooLong  = "Message too long. Maximum 500 characters."

	// MsgChatUnavailable is the 200 reply when no model credential is set.
	MsgChatUnavailable = "AI Assistant is currently unavailable. Please add the OPENAI_API_KEY to enable AI features. You can still use all the farming tools and resources on this website!"

	// MsgChatFailure is the 500 reply for every backend failure.
	MsgChatFailure = "Sorry, I'm having trouble right now. Please try asking me about crops, fertilizers, irrigation, or other farming topics!"
)

// SystemPrompt frames every chat request as farming advice for small and
// medium farms in India.
const SystemPrompt = `You are an expert agricultural AI assistant for Indian farmers. Your name is Farm AI Assistant. You help farmers with:
- Crop selection and planting advice
- Fertilizer and irrigation guidance
- Pest and disease management
- Soil health and testing
- Weather planning
- Government schemes and subsidies
- Market prices and selling tips
- Organic farming practices
- Farm technology and apps

Provide practical, actionable advice in simple language. Use relevant emojis. Keep responses concise but informative (2-4 sentences). Focus on solutions that work for small to medium farms in India.`

// ChatHandler serves POST /api/chat.
type ChatHandler struct {
	Backend providers.ChatBackend
	Metrics *metrics.Collector
	Tracer  *tracing.Tracer
	Logger  *slog.Logger
}

// Handler returns the gated handler for the chat route.
func (h *ChatHandler) Handler(gate *proxy.Gate) http.HandlerFunc {
	return proxy.Pipeline(gate, "chat", ParseChatRequest, h.Serve)
}

// ParseChatRequest validates the chat body. Length is counted in
// characters, not bytes.
func ParseChatRequest(f proxy.Fields) (types.ChatRequest, error) {
	message, state := f.String("message")
	switch state {
	case proxy.FieldMissing:
		return types.ChatRequest{}, proxy.BadRequest(MsgMessageRequired)
	case proxy.FieldWrongType:
		return types.ChatRequest{}, proxy.BadRequest(MsgMessageType)
	}
	if message == "" {
		return types.ChatRequest{}, proxy.BadRequest(MsgMessageEmpty)
	}
	if utf8.RuneCountInString(message) > types.MaxMessageLength {
		return types.ChatRequest{}, proxy.BadRequest(MsgMessageTooLong)
	}
	return types.ChatRequest{Message: message}, nil
}

// Serve answers a validated chat request. The model reply is returned
// verbatim; any failure becomes the static apology and the cause is only
// logged.
func (h *ChatHandler) Serve(ctx context.Context, req types.ChatRequest) (int, any) {
	model, ok := h.Backend.Model()
	if !ok {
		h.Metrics.RecordBackendCall("chat", "unconfigured", 0)
		return http.StatusOK, types.ChatResponse{Response: MsgChatUnavailable}
	}

	ctx, span := h.Tracer.Start(ctx, "backend.chat",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String(tracing.AttrBackend, model.Name()),
			attribute.Int(tracing.AttrMessageLen, utf8.RuneCountInString(req.Message)),
		),
	)
	defer span.End()

	start := time.Now()
	reply, err := model.Complete(ctx, SystemPrompt, req.Message)
	h.Metrics.RecordBackendCall("chat", backendOutcome(err), time.Since(start))

	if err != nil {
		tracing.RecordError(span, err)
		logger(h.Logger).ErrorContext(ctx, "chat backend failed",
			"backend", model.Name(),
			"error", err,
		)
		return http.StatusInternalServerError, types.NewErrorResponse(MsgChatFailure)
	}

	return http.StatusOK, types.ChatResponse{Response: reply}
}
