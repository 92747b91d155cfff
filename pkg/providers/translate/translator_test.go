package translate

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	testhelpers "farmgenius/gateway/internal/providers"
	"farmgenius/gateway/pkg/config"
	"farmgenius/gateway/pkg/providers"
)

func googleFor(t *testing.T, mock *testhelpers.MockServer) *GoogleTranslator {
	t.Helper()
	cfg := &config.TranslateProviderConfig{
		Backend:    BackendGoogle,
		BaseURL:    mock.URL(),
		Timeout:    2 * time.Second,
		MaxRetries: 1,
	}
	return newGoogleTranslator(cfg, providers.ClientConfig{
		Name:         BackendGoogle,
		Timeout:      cfg.Timeout,
		MaxRetries:   cfg.MaxRetries,
		RetryBackoff: time.Millisecond,
	})
}

func TestGoogleTranslator_Translate(t *testing.T) {
	mock := testhelpers.NewMockServer()
	defer mock.Close()
	mock.SetResponse("/translate_a/single", testhelpers.MockResponse{
		StatusCode: http.StatusOK,
		Body:       testhelpers.MockTranslateResponse("en", "नमस्ते ", "किसान"),
	})

	tr := googleFor(t, mock)
	got, err := tr.Translate(context.Background(), "Hello farmer", "en", "hi")
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if got != "नमस्ते किसान" {
		t.Errorf("unexpected translation %q", got)
	}

	req, _ := mock.LastRequest()
	checks := map[string]string{"client": "gtx", "sl": "en", "tl": "hi", "dt": "t", "q": "Hello farmer"}
	for key, want := range checks {
		if got := req.Query[key]; len(got) != 1 || got[0] != want {
			t.Errorf("query %s = %v, want %q", key, got, want)
		}
	}
}

func TestGoogleTranslator_Errors(t *testing.T) {
	tests := []struct {
		name     string
		response testhelpers.MockResponse
		check    func(error) bool
	}{
		{
			name:     "empty segments",
			response: testhelpers.MockResponse{StatusCode: http.StatusOK, Body: testhelpers.MockTranslateResponse("en")},
			check: func(err error) bool {
				var e *providers.EmptyResponseError
				return errors.As(err, &e)
			},
		},
		{
			name:     "null segments",
			response: testhelpers.MockResponse{StatusCode: http.StatusOK, Body: "[null,null,\"en\"]"},
			check: func(err error) bool {
				var e *providers.EmptyResponseError
				return errors.As(err, &e)
			},
		},
		{
			name:     "not json",
			response: testhelpers.MockResponse{StatusCode: http.StatusOK, Body: "<html>"},
			check: func(err error) bool {
				var e *providers.ParseError
				return errors.As(err, &e)
			},
		},
		{
			name:     "upstream throttled",
			response: testhelpers.MockRateLimitError(30),
			check: func(err error) bool {
				var e *providers.RateLimitError
				return errors.As(err, &e)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := testhelpers.NewMockServer()
			defer mock.Close()
			mock.SetResponse("/translate_a/single", tt.response)

			_, err := googleFor(t, mock).Translate(context.Background(), "Hello", "en", "hi")
			if err == nil {
				t.Fatal("expected error")
			}
			if !tt.check(err) {
				t.Errorf("unexpected error %T: %v", err, err)
			}
		})
	}
}

type fakeModel struct {
	reply  string
	err    error
	prompt string
}

func (f *fakeModel) Complete(ctx context.Context, system, user string) (string, error) {
	f.prompt = user
	return f.reply, f.err
}

func (f *fakeModel) Name() string                   { return "fake" }
func (f *fakeModel) Health() providers.ClientHealth { return providers.ClientHealth{IsHealthy: true} }

func TestModelTranslator(t *testing.T) {
	model := &fakeModel{reply: "  Hola  "}
	tr := NewModelTranslator(model)

	got, err := tr.Translate(context.Background(), "Hello", "en", "es")
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if got != "Hola" {
		t.Errorf("unexpected translation %q", got)
	}
	if !strings.Contains(model.prompt, "from en to es") {
		t.Errorf("prompt does not name languages: %q", model.prompt)
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		backend string
		chat    providers.ChatBackend
		want    string
		wantErr bool
	}{
		{"google", BackendGoogle, providers.Unconfigured(), BackendGoogle, false},
		{"llm with model", BackendModel, providers.Configured(&fakeModel{}), BackendModel, false},
		{"llm without model", BackendModel, providers.Unconfigured(), "", true},
		{"unknown", "deepl", providers.Unconfigured(), "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.TranslateProviderConfig{Backend: tt.backend, BaseURL: "https://translate.googleapis.com"}
			tr, err := New(cfg, tt.chat)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && tr.Name() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, tr.Name())
			}
		})
	}
}
