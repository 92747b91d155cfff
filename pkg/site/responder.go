package site

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"farmgenius/gateway/pkg/telemetry/metrics"
)

// Static response kinds recorded in metrics.
const (
	KindFile      = "file"
	KindFallback  = "fallback"
	KindForbidden = "forbidden"
	KindError     = "error"
)

const (
	forbiddenBody   = "Forbidden"
	serverErrorBody = "Server Error"
	fallbackType    = "text/html"
	defaultType     = "application/octet-stream"
)

var contentTypes = map[string]string{
	".html":        "text/html",
	".css":         "text/css",
	".js":          "application/javascript",
	".json":        "application/json",
	".png":         "image/png",
	".jpg":         "image/jpeg",
	".jpeg":        "image/jpeg",
	".gif":         "image/gif",
	".ico":         "image/x-icon",
	".svg":         "image/svg+xml",
	".webp":        "image/webp",
	".woff":        "font/woff",
	".woff2":       "font/woff2",
	".txt":         "text/plain",
	".webmanifest": "application/manifest+json",
}

// ContentType returns the response type for a file name. Unknown
// extensions are served as application/octet-stream.
func ContentType(name string) string {
	if ct, ok := contentTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return ct
	}
	return defaultType
}

// Responder serves files from the site root. Any path that does not name a
// regular file gets the index document so client-side routes resolve.
type Responder struct {
	root    *os.Root
	dir     string
	index   string
	metrics *metrics.Collector
	logger  *slog.Logger
}

// Option configures a Responder.
type Option func(*Responder)

// WithMetrics records every static response kind.
func WithMetrics(m *metrics.Collector) Option {
	return func(r *Responder) { r.metrics = m }
}

// WithLogger sets the logger for read failures.
func WithLogger(l *slog.Logger) Option {
	return func(r *Responder) { r.logger = l }
}

// New opens dir as the site root. Every file access goes through the
// opened root, so symlinks cannot lead outside it either.
func New(dir, index string, opts ...Option) (*Responder, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve site root %q: %w", dir, err)
	}
	root, err := os.OpenRoot(abs)
	if err != nil {
		return nil, fmt.Errorf("open site root %q: %w", abs, err)
	}

	r := &Responder{
		root:   root,
		dir:    abs,
		index:  index,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Dir returns the absolute site root.
func (s *Responder) Dir() string {
	return s.dir
}

// Close releases the site root.
func (s *Responder) Close() error {
	return s.root.Close()
}

// ServeHTTP implements http.Handler.
func (s *Responder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if HasDotDot(r.URL.Path) {
		s.forbidden(w)
		return
	}

	name, ok := s.resolve(r.URL.Path)
	if !ok {
		s.forbidden(w)
		return
	}

	info, err := s.root.Stat(name)
	switch {
	case err == nil && info.Mode().IsRegular():
		s.serveFile(w, r, name)
	case err == nil, errors.Is(err, fs.ErrNotExist):
		s.serveFallback(w, r)
	default:
		s.serverError(w, r, name, err)
	}
}

// resolve maps a URL path to a name relative to the root. The second
// result is false when the cleaned path would leave the root.
func (s *Responder) resolve(urlPath string) (string, bool) {
	if urlPath == "" || urlPath == "/" {
		return s.index, true
	}
	name := strings.TrimPrefix(path.Clean("/"+urlPath), "/")
	if name == "" {
		return s.index, true
	}
	name = filepath.FromSlash(name)
	if !filepath.IsLocal(name) {
		return "", false
	}
	return name, true
}

func (s *Responder) serveFile(w http.ResponseWriter, r *http.Request, name string) {
	content, err := s.root.ReadFile(name)
	if err != nil {
		s.serverError(w, r, name, err)
		return
	}
	w.Header().Set("Content-Type", ContentType(name))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(content)
	s.metrics.RecordStatic(KindFile)
}

func (s *Responder) serveFallback(w http.ResponseWriter, r *http.Request) {
	content, err := s.root.ReadFile(s.index)
	if err != nil {
		s.serverError(w, r, s.index, err)
		return
	}
	w.Header().Set("Content-Type", fallbackType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(content)
	s.metrics.RecordStatic(KindFallback)
}

func (s *Responder) forbidden(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusForbidden)
	_, _ = w.Write([]byte(forbiddenBody))
	s.metrics.RecordStatic(KindForbidden)
}

func (s *Responder) serverError(w http.ResponseWriter, r *http.Request, name string, err error) {
	s.logger.ErrorContext(r.Context(), "static read failed", "file", name, "error", err)
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte(serverErrorBody))
	s.metrics.RecordStatic(KindError)
}
