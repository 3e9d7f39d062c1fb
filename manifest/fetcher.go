package manifest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/abrtools/manifestkit/logging"
	"github.com/abrtools/manifestkit/manifest/common"
)

// HTTPConfig holds HTTP-related configuration for manifest fetching
type HTTPConfig struct {
	UserAgent         string            `json:"user_agent"`
	AcceptHeader      string            `json:"accept_header"`
	ConnectionTimeout time.Duration     `json:"connection_timeout"`
	ReadTimeout       time.Duration     `json:"read_timeout"`
	CustomHeaders     map[string]string `json:"custom_headers"`
	MaxBodySize       int64             `json:"max_body_size"`
}

// DefaultHTTPConfig returns the default fetcher configuration
func DefaultHTTPConfig() *HTTPConfig {
	return &HTTPConfig{
		UserAgent:         "manifestkit/1.0",
		AcceptHeader:      "application/vnd.apple.mpegurl, application/dash+xml, */*",
		ConnectionTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		CustomHeaders:     make(map[string]string),
		MaxBodySize:       8 << 20,
	}
}

// Fetcher downloads manifests over HTTP and hands them to ParseManifest
type Fetcher struct {
	client *http.Client
	config *HTTPConfig
	logger logging.Logger
}

// NewFetcher creates a new fetcher with default configuration
func NewFetcher() *Fetcher {
	return NewFetcherWithConfig(nil)
}

// NewFetcherWithConfig creates a new fetcher with custom configuration
func NewFetcherWithConfig(config *HTTPConfig) *Fetcher {
	if config == nil {
		config = DefaultHTTPConfig()
	}

	client := &http.Client{
		Timeout: config.ConnectionTimeout + config.ReadTimeout,
	}

	return &Fetcher{
		client: client,
		config: config,
		logger: logging.GetGlobalLogger(),
	}
}

// SetLogger sets a custom logger
func (f *Fetcher) SetLogger(logger logging.Logger) {
	f.logger = logger
}

// Fetch downloads the manifest at manifestURL and parses it. The final URL
// after redirects becomes the base for relative reference resolution.
func (f *Fetcher) Fetch(ctx context.Context, manifestURL string) (*common.ParsedManifest, error) {
	parsedURL, err := url.Parse(manifestURL)
	if err != nil {
		return nil, common.NewManifestError(common.FormatHLS, manifestURL,
			common.ErrCodeInvalidURL, "invalid manifest URL", err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return nil, common.NewManifestError(common.FormatHLS, manifestURL,
			common.ErrCodeInvalidURL, "unsupported URL scheme", nil)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, manifestURL, nil)
	if err != nil {
		return nil, common.NewManifestError(common.FormatHLS, manifestURL,
			common.ErrCodeConnection, "failed to build request", err)
	}

	req.Header.Set("User-Agent", f.config.UserAgent)
	req.Header.Set("Accept", f.config.AcceptHeader)
	for key, value := range f.config.CustomHeaders {
		req.Header.Set(key, value)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, common.NewManifestError(common.FormatHLS, manifestURL,
				common.ErrCodeTimeout, "manifest request canceled", err)
		}
		return nil, common.NewManifestError(common.FormatHLS, manifestURL,
			common.ErrCodeConnection, "manifest request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, common.NewManifestErrorWithFields(common.FormatHLS, manifestURL,
			common.ErrCodeConnection,
			fmt.Sprintf("unexpected status: %s", resp.Status), nil,
			logging.Fields{"status_code": resp.StatusCode})
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.config.MaxBodySize))
	if err != nil {
		return nil, common.NewManifestError(common.FormatHLS, manifestURL,
			common.ErrCodeConnection, "failed to read manifest body", err)
	}

	baseURL := manifestURL
	if resp.Request != nil && resp.Request.URL != nil {
		baseURL = resp.Request.URL.String()
	}

	f.logger.Debug("fetched manifest", logging.Fields{
		"url":   baseURL,
		"bytes": len(body),
	})

	return ParseManifest(string(body), baseURL)
}
