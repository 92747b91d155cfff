package proxy

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, io.ErrUnexpectedEOF }

func TestReadBody(t *testing.T) {
	const limit = 10000

	tests := []struct {
		name       string
		body       io.Reader
		wantLen    int
		wantStatus int
		wantAbort  bool
	}{
		{"empty", strings.NewReader(""), 0, 0, false},
		{"exactly at limit", strings.NewReader(strings.Repeat("a", limit)), limit, 0, false},
		{"one byte over with length", strings.NewReader(strings.Repeat("a", limit+1)), 0, http.StatusRequestEntityTooLarge, false},
		{"one byte over chunked", io.MultiReader(strings.NewReader(strings.Repeat("a", limit+1))), 0, http.StatusRequestEntityTooLarge, false},
		{"client disconnect", failingReader{}, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/chat", tt.body)
			rec := httptest.NewRecorder()

			data, err := ReadBody(rec, req, limit)

			switch {
			case tt.wantStatus != 0:
				var reqErr *RequestError
				if !errors.As(err, &reqErr) {
					t.Fatalf("expected RequestError, got %v", err)
				}
				if reqErr.Status != tt.wantStatus || reqErr.Message != MsgRequestTooLarge {
					t.Errorf("unexpected error %+v", reqErr)
				}
			case tt.wantAbort:
				if !errors.Is(err, ErrBodyAborted) {
					t.Fatalf("expected ErrBodyAborted, got %v", err)
				}
			default:
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if len(data) != tt.wantLen {
					t.Errorf("expected %d bytes, got %d", tt.wantLen, len(data))
				}
			}
		})
	}
}

func TestReadBody_DeclaredTooLargeClosesConnection(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(strings.Repeat("a", 20000)))
	rec := httptest.NewRecorder()

	if _, err := ReadBody(rec, req, 10000); err == nil {
		t.Fatal("expected an error for an oversized declared length")
	}
	if got := rec.Header().Get("Connection"); got != "close" {
		t.Errorf("Connection = %q, want close", got)
	}
}
