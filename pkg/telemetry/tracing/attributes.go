package tracing

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys in the farmgenius namespace. Message text and client
// addresses are never recorded on spans.
const (
	AttrRoute      = "farmgenius.route"
	AttrRequestID  = "farmgenius.request_id"
	AttrOutcome    = "farmgenius.outcome"
	AttrStatus     = "http.response.status_code"
	AttrBackend    = "farmgenius.backend"
	AttrModel      = "farmgenius.model"
	AttrSourceLang = "farmgenius.translate.source"
	AttrTargetLang = "farmgenius.translate.target"
	AttrMessageLen = "farmgenius.message.length"
)

// SetStatus records the HTTP status written for the request, marking the
// span as failed for server errors.
func SetStatus(span trace.Span, status int) {
	span.SetAttributes(attribute.Int(AttrStatus, status))
	if status >= 500 {
		span.SetStatus(codes.Error, "server error")
	}
}

// RecordError records err on span and marks it failed.
func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
