package site

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"farmgenius/gateway/pkg/config"
	"farmgenius/gateway/pkg/telemetry/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

const indexHTML = "<!doctype html><title>Farmer Genius</title>"

func writeSite(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func newResponder(t *testing.T, dir string, opts ...Option) *Responder {
	t.Helper()
	r, err := New(dir, "index.html", opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	// Set the path directly so ".." survives request construction.
	req.URL.Path = target
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestResponder(t *testing.T) {
	dir := writeSite(t, map[string]string{
		"index.html":         indexHTML,
		"styles.css":         "body{}",
		"script.js":          "console.log(1)",
		"img/logo.PNG":       "png",
		"site.webmanifest":   "{}",
		"data/crops.unknown": "raw",
	})
	r := newResponder(t, dir)

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantType   string
		wantBody   string
	}{
		{"root", "/", http.StatusOK, "text/html", indexHTML},
		{"css", "/styles.css", http.StatusOK, "text/css", "body{}"},
		{"js", "/script.js", http.StatusOK, "application/javascript", "console.log(1)"},
		{"upper case extension", "/img/logo.PNG", http.StatusOK, "image/png", "png"},
		{"manifest", "/site.webmanifest", http.StatusOK, "application/manifest+json", "{}"},
		{"unknown extension", "/data/crops.unknown", http.StatusOK, "application/octet-stream", "raw"},
		{"spa route", "/crops/wheat", http.StatusOK, "text/html", indexHTML},
		{"directory", "/img", http.StatusOK, "text/html", indexHTML},
		{"traversal", "/../../etc/passwd", http.StatusForbidden, "text/plain", "Forbidden"},
		{"inner traversal", "/img/../../secret", http.StatusForbidden, "text/plain", "Forbidden"},
		{"backslash traversal", `/..\..\secret`, http.StatusForbidden, "text/plain", "Forbidden"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(r, tt.path)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if ct := rec.Header().Get("Content-Type"); ct != tt.wantType {
				t.Errorf("Content-Type = %q, want %q", ct, tt.wantType)
			}
			if body := rec.Body.String(); body != tt.wantBody {
				t.Errorf("body = %q, want %q", body, tt.wantBody)
			}
		})
	}
}

func TestResponder_QueryIgnored(t *testing.T) {
	dir := writeSite(t, map[string]string{"index.html": indexHTML, "app.js": "x"})
	r := newResponder(t, dir)

	req := httptest.NewRequest(http.MethodGet, "/app.js?v=3", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || rec.Body.String() != "x" {
		t.Errorf("got %d %q, want 200 \"x\"", rec.Code, rec.Body.String())
	}
}

func TestResponder_MissingIndex(t *testing.T) {
	dir := writeSite(t, map[string]string{"app.js": "x"})
	r := newResponder(t, dir)

	rec := get(r, "/nowhere")

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if rec.Body.String() != "Server Error" {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestResponder_SymlinkEscape(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	outside := writeSite(t, map[string]string{"secret.txt": "secret"})
	dir := writeSite(t, map[string]string{"index.html": indexHTML})
	if err := os.Symlink(filepath.Join(outside, "secret.txt"), filepath.Join(dir, "leak.txt")); err != nil {
		t.Fatal(err)
	}
	r := newResponder(t, dir)

	rec := get(r, "/leak.txt")

	if rec.Body.String() == "secret" {
		t.Fatal("symlink outside the root was followed")
	}
}

func TestResponder_Metrics(t *testing.T) {
	dir := writeSite(t, map[string]string{"index.html": indexHTML, "a.css": "a"})
	collector := metrics.NewCollector(&config.MetricsConfig{Enabled: true}, nil)
	r := newResponder(t, dir, WithMetrics(collector))

	get(r, "/a.css")
	get(r, "/missing")
	get(r, "/../x")

	n, err := testutil.GatherAndCount(collector.Registry(), "farmgenius_static_responses_total")
	if err != nil {
		t.Fatalf("GatherAndCount() error = %v", err)
	}
	if n != 3 {
		t.Errorf("static series = %d, want 3", n)
	}
}

func TestNew_MissingRoot(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "absent"), "index.html"); err == nil {
		t.Fatal("expected error for missing root")
	}
}
