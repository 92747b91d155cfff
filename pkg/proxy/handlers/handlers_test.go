package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"farmgenius/gateway/pkg/config"
	"farmgenius/gateway/pkg/limits/ratelimit"
	"farmgenius/gateway/pkg/providers"
	"farmgenius/gateway/pkg/proxy"
	"farmgenius/gateway/pkg/telemetry/metrics"
)

type fakeModel struct {
	reply      string
	err        error
	health     providers.ClientHealth
	lastSystem string
	lastUser   string
	calls      int
}

func (m *fakeModel) Complete(ctx context.Context, system, user string) (string, error) {
	m.calls++
	m.lastSystem = system
	m.lastUser = user
	return m.reply, m.err
}

func (m *fakeModel) Name() string { return "fake" }

func (m *fakeModel) Health() providers.ClientHealth { return m.health }

type fakeTranslator struct {
	out   string
	err   error
	calls int
	last  [3]string
}

func (f *fakeTranslator) Translate(ctx context.Context, text, source, target string) (string, error) {
	f.calls++
	f.last = [3]string{text, source, target}
	return f.out, f.err
}

func (f *fakeTranslator) Name() string { return "fake" }

func newTestGate() (*proxy.Gate, *metrics.Collector) {
	collector := metrics.NewCollector(&config.MetricsConfig{Enabled: true}, nil)
	limiter := ratelimit.NewLimiter(ratelimit.NewMemoryStore(), ratelimit.Config{Limit: 10, Window: time.Minute})
	return &proxy.Gate{
		Limiter:      limiter,
		MaxBodyBytes: config.DefaultMaxBodyBytes,
		Metrics:      collector,
	}, collector
}

func post(h http.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return v
}
