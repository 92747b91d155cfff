package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"farmgenius/gateway/pkg/providers/translate"
	"farmgenius/gateway/pkg/proxy"
	"farmgenius/gateway/pkg/proxy/types"
	"farmgenius/gateway/pkg/telemetry/metrics"
	"farmgenius/gateway/pkg/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Translate endpoint messages.
const (
	MsgTextRequired     = "Text is required and must be a string"
	MsgTargetRequired   = "Target language is required"
	MsgSourceType       = "Source language must be a string"
	MsgTranslateFailure = "Translation service temporarily unavailable. Please try again later."
)

// TranslateHandler serves POST /api/translate.
type TranslateHandler struct {
	Translator translate.Translator
	Metrics    *metrics.Collector
	Tracer     *tracing.Tracer
	Logger     *slog.Logger
}

// Handler returns the gated handler for the translate route.
func (h *TranslateHandler) Handler(gate *proxy.Gate) http.HandlerFunc {
	return proxy.Pipeline(gate, "translate", ParseTranslateRequest, h.Serve)
}

// ParseTranslateRequest validates the translate body. A missing or empty
// sourceLang means English.
func ParseTranslateRequest(f proxy.Fields) (types.TranslateRequest, error) {
	text, state := f.String("text")
	if state != proxy.FieldPresent || text == "" {
		return types.TranslateRequest{}, proxy.BadRequest(MsgTextRequired)
	}

	target, state := f.String("targetLang")
	if state != proxy.FieldPresent || target == "" {
		return types.TranslateRequest{}, proxy.BadRequest(MsgTargetRequired)
	}

	source, state := f.String("sourceLang")
	switch {
	case state == proxy.FieldWrongType:
		return types.TranslateRequest{}, proxy.BadRequest(MsgSourceType)
	case source == "":
		source = types.DefaultSourceLang
	}

	return types.TranslateRequest{Text: text, TargetLang: target, SourceLang: source}, nil
}

// Serve answers a validated translate request. Nothing is cached: every
// request reaches the backend.
func (h *TranslateHandler) Serve(ctx context.Context, req types.TranslateRequest) (int, any) {
	ctx, span := h.Tracer.Start(ctx, "backend.translate",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String(tracing.AttrBackend, h.Translator.Name()),
			attribute.String(tracing.AttrSourceLang, req.SourceLang),
			attribute.String(tracing.AttrTargetLang, req.TargetLang),
		),
	)
	defer span.End()

	start := time.Now()
	translated, err := h.Translator.Translate(ctx, req.Text, req.SourceLang, req.TargetLang)
	if err == nil && strings.TrimSpace(translated) == "" {
		err = errEmptyTranslation
	}
	h.Metrics.RecordBackendCall("translate", backendOutcome(err), time.Since(start))

	if err != nil {
		tracing.RecordError(span, err)
		logger(h.Logger).ErrorContext(ctx, "translate backend failed",
			"backend", h.Translator.Name(),
			"source_lang", req.SourceLang,
			"target_lang", req.TargetLang,
			"error", err,
		)
		return http.StatusInternalServerError, types.NewErrorResponse(MsgTranslateFailure)
	}

	return http.StatusOK, types.TranslateResponse{
		TranslatedText: translated,
		SourceLang:     req.SourceLang,
		TargetLang:     req.TargetLang,
	}
}
