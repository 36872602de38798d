package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"hwpx-mcp-go/internal/hwpx"
)

// HTTPConfig configures the remote backend.
type HTTPConfig struct {
	BaseURL   string
	Timeout   time.Duration
	AuthToken string
	// Headers are sent verbatim on every request.
	Headers map[string]string
}

// HTTP fetches and stores document bytes through a remote service that
// exposes GET and PUT on {base}/documents?path=<path>.
type HTTP struct {
	cfg    HTTPConfig
	client *http.Client
	log    *slog.Logger
}

// NewHTTP builds a remote backend. The base URL must not be empty.
func NewHTTP(cfg HTTPConfig, log *slog.Logger) (*HTTP, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, hwpx.InvalidArgumentError("http storage requires a base URL")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if log == nil {
		log = slog.Default()
	}
	return &HTTP{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		log:    log,
	}, nil
}

func (h *HTTP) documentURL(path string) string {
	base := strings.TrimRight(h.cfg.BaseURL, "/")
	return base + "/documents?path=" + url.QueryEscape(path)
}

func (h *HTTP) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, h.documentURL(path), body)
	if err != nil {
		return nil, hwpx.InvalidArgumentError("invalid document path %q: %v", path, err)
	}
	if h.cfg.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+h.cfg.AuthToken)
	}
	for name, value := range h.cfg.Headers {
		req.Header.Set(name, value)
	}
	return req, nil
}

func (h *HTTP) Load(ctx context.Context, path string) (*hwpx.Document, error) {
	if strings.TrimSpace(path) == "" {
		return nil, hwpx.InvalidArgumentError("path must not be empty")
	}
	req, err := h.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch document %q: %w", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, hwpx.NotFoundError(hwpx.CodeDocumentNotFound, "document not found: %s", path)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch document %q: unexpected status %s", path, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read document %q: %w", path, err)
	}
	doc, err := hwpx.FromBytes(data)
	if err != nil {
		return nil, err
	}
	h.log.Debug("document fetched", "path", path, "bytes", len(data))
	return doc, nil
}

func (h *HTTP) Save(ctx context.Context, doc *hwpx.Document, path string) error {
	if strings.TrimSpace(path) == "" {
		return hwpx.InvalidArgumentError("path must not be empty")
	}
	data, err := doc.Bytes()
	if err != nil {
		return err
	}
	req, err := h.newRequest(ctx, http.MethodPut, path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/hwp+zip")
	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("store document %q: %w", path, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("store document %q: unexpected status %s", path, resp.Status)
	}
	h.log.Debug("document stored", "path", path, "bytes", len(data))
	return nil
}
