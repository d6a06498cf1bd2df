package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/leapstack-labs/samplechart/pkg/core"
	"github.com/leapstack-labs/samplechart/pkg/source"
)

// Name is the registered source type.
const Name = "http"

// DefaultTimeout bounds a single dataset request when none is configured.
const DefaultTimeout = 10 * time.Second

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 64 << 20

// Source fetches datasets with GET {base}/datasets/{sampleSize}.
// The response body is the dataset JSON: {"xColumn":{"values":[...]},"yColumn":{"values":[...]}}.
type Source struct {
	base   *url.URL
	client *http.Client
	logger *slog.Logger
}

// New creates a remote source.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Source{logger: logger}
}

// Name returns the source type.
func (s *Source) Name() string { return Name }

// Open validates the base URL and builds the HTTP client.
func (s *Source) Open(_ context.Context, cfg source.Config) error {
	if cfg.URL == "" {
		return fmt.Errorf("source.url is required for the %s source", Name)
	}
	base, err := url.Parse(strings.TrimRight(cfg.URL, "/"))
	if err != nil {
		return fmt.Errorf("invalid source.url %q: %w", cfg.URL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return fmt.Errorf("invalid source.url %q: scheme must be http or https", cfg.URL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	s.base = base
	s.client = &http.Client{Timeout: timeout}
	return nil
}

// Close releases idle connections.
func (s *Source) Close() error {
	if s.client != nil {
		s.client.CloseIdleConnections()
	}
	return nil
}

// GetDataSet requests the dataset for sampleSize.
func (s *Source) GetDataSet(ctx context.Context, sampleSize string) (*core.Dataset, error) {
	if s.client == nil {
		return nil, fmt.Errorf("source not opened")
	}

	endpoint := s.base.JoinPath("datasets", sampleSize).String()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	s.logger.Debug("requesting dataset", slog.String("url", endpoint))

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownSampleSize, sampleSize)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("unexpected status %s: %s", resp.Status, strings.TrimSpace(string(snippet)))
	}

	return Decode(io.LimitReader(resp.Body, maxBodyBytes))
}

// wireDataset distinguishes a missing column from an empty one.
type wireDataset struct {
	XColumn *core.Column `json:"xColumn"`
	YColumn *core.Column `json:"yColumn"`
}

// Decode reads a dataset document from r.
func Decode(r io.Reader) (*core.Dataset, error) {
	var wire wireDataset
	if err := json.NewDecoder(r).Decode(&wire); err != nil {
		return nil, fmt.Errorf("malformed dataset: %w", err)
	}
	if wire.XColumn == nil {
		return nil, fmt.Errorf("%w: xColumn", core.ErrMissingColumn)
	}
	if wire.YColumn == nil {
		return nil, fmt.Errorf("%w: yColumn", core.ErrMissingColumn)
	}
	return &core.Dataset{XColumn: *wire.XColumn, YColumn: *wire.YColumn}, nil
}
