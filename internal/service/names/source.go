package names

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/zhouzirui/z-names/backend/internal/model/name"
)

const (
	// MaxNames caps how many records are taken from the source payload.
	MaxNames = 30

	// DefaultPath is the resource path of the names payload.
	DefaultPath = "/data/names.json"

	defaultTimeout = 10 * time.Second
)

// Source retrieves candidate names.
type Source interface {
	GetAll(ctx context.Context) ([]name.Name, error)
}

// TransportError reports a failed retrieval from the name source.
type TransportError struct {
	Op         string
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("name source %s %s: unexpected status %d", e.Op, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("name source %s %s: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// rawName mirrors one element of the source payload.
type rawName struct {
	UID      string `json:"uid"`
	FullName string `json:"full_name"`
}

// HTTPSource fetches names from a JSON endpoint.
type HTTPSource struct {
	baseURL string
	path    string
	client  *http.Client
}

var _ Source = (*HTTPSource)(nil)

// HTTPSourceConfig configures an HTTPSource.
type HTTPSourceConfig struct {
	BaseURL string
	Path    string
	Timeout time.Duration
	Client  *http.Client
}

// NewHTTPSource builds an HTTPSource. A nil Client gets a default one with Timeout applied.
func NewHTTPSource(cfg HTTPSourceConfig) *HTTPSource {
	path := cfg.Path
	if path == "" {
		path = DefaultPath
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	client := cfg.Client
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	return &HTTPSource{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		path:    path,
		client:  client,
	}
}

// URL returns the full resource address.
func (s *HTTPSource) URL() string {
	return s.baseURL + s.path
}

// GetAll fetches the payload and maps the first MaxNames records in source order.
// Records missing uid or full_name are kept with empty fields.
func (s *HTTPSource) GetAll(ctx context.Context) ([]name.Name, error) {
	url := s.URL()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &TransportError{Op: "build request", URL: url, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "GET", URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &TransportError{Op: "GET", URL: url, StatusCode: resp.StatusCode}
	}

	var raw []rawName
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, &TransportError{Op: "decode", URL: url, Err: err}
	}

	if len(raw) > MaxNames {
		raw = raw[:MaxNames]
	}

	out := make([]name.Name, 0, len(raw))
	incomplete := 0
	for _, item := range raw {
		if item.UID == "" || item.FullName == "" {
			incomplete++
		}
		out = append(out, name.Name{UID: item.UID, FullName: item.FullName})
	}

	if incomplete > 0 {
		log.Printf("[source] %d of %d records from %s missing uid or full_name", incomplete, len(out), url)
	}
	return out, nil
}
