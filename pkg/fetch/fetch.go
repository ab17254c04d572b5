package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"tabworks/pxtab/pkg/telemetry/logging"

	"github.com/google/uuid"
)

const (
	// DefaultTimeout bounds a whole network fetch, connect through body.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxBodySize caps how many bytes a fetch will accept.
	DefaultMaxBodySize = 64 * 1024 * 1024 // 64MB

	// DefaultUserAgent identifies pxtab to PX servers.
	DefaultUserAgent = "pxtab"
)

// Config controls how documents are fetched.
type Config struct {
	// Timeout is the per-request timeout for network fetches.
	Timeout time.Duration

	// MaxBodySize caps the accepted document size in bytes.
	// Zero disables the cap.
	MaxBodySize int64

	// UserAgent is sent with every HTTP request.
	UserAgent string
}

// DefaultConfig returns the fetch configuration used when nothing is
// overridden.
func DefaultConfig() Config {
	return Config{
		Timeout:     DefaultTimeout,
		MaxBodySize: DefaultMaxBodySize,
		UserAgent:   DefaultUserAgent,
	}
}

// StatusError reports a non-success HTTP response for a document fetch.
type StatusError struct {
	// Locator is the URL that was fetched
	Locator string

	// StatusCode is the HTTP status code
	StatusCode int

	// Status is the full status line from the response
	Status string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch %q: unexpected status %s", e.Locator, e.Status)
}

// Fetcher retrieves PX documents over HTTP or from the filesystem.
// A Fetcher is safe for concurrent use.
type Fetcher struct {
	client      *http.Client
	maxBodySize int64
	userAgent   string
	logger      *slog.Logger
}

// New creates a Fetcher. Zero config fields fall back to the defaults.
func New(config Config) *Fetcher {
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}
	if config.UserAgent == "" {
		config.UserAgent = DefaultUserAgent
	}

	transport := &http.Transport{
		MaxIdleConns:      10,
		IdleConnTimeout:   90 * time.Second,
		ForceAttemptHTTP2: true,
	}

	return &Fetcher{
		client: &http.Client{
			Transport: transport,
			Timeout:   config.Timeout,
		},
		maxBodySize: config.MaxBodySize,
		userAgent:   config.UserAgent,
		logger:      slog.Default().With("component", "fetch"),
	}
}

// Fetch retrieves the document at locator and decodes it from charset to
// UTF-8 text. URLs are fetched over the network, everything else is read
// from the filesystem. An empty charset means the bytes are already UTF-8.
func (f *Fetcher) Fetch(ctx context.Context, locator, charset string) (string, error) {
	// Reuse the caller's request ID so one catalog refresh keeps a
	// single ID across its fetch, parse and store log lines.
	requestID := logging.GetRequestID(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}

	log := f.logger.With(
		"request_id", requestID,
		"locator", logging.RedactLocator(locator),
	)

	var (
		raw []byte
		err error
	)
	switch Classify(locator) {
	case KindURL:
		raw, err = f.fetchURL(ctx, locator, log)
	default:
		raw, err = f.readFile(locator, log)
	}
	if err != nil {
		return "", err
	}

	text, err := DecodeCharset(raw, charset)
	if err != nil {
		return "", fmt.Errorf("decode %q: %w", locator, err)
	}
	return text, nil
}

func (f *Fetcher) fetchURL(ctx context.Context, locator string, log *slog.Logger) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, locator, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %q: %w", locator, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	start := time.Now()
	log.Debug("fetching document")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %q: %w", locator, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Warn("fetch returned error status", "status", resp.StatusCode)
		return nil, &StatusError{
			Locator:    locator,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
		}
	}

	body, err := f.readBody(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", locator, err)
	}

	log.Debug("document fetched",
		"bytes", len(body),
		"duration", time.Since(start),
	)
	return body, nil
}

func (f *Fetcher) readBody(r io.Reader) ([]byte, error) {
	if f.maxBodySize <= 0 {
		return io.ReadAll(r)
	}
	body, err := io.ReadAll(io.LimitReader(r, f.maxBodySize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > f.maxBodySize {
		return nil, fmt.Errorf("document exceeds %d byte limit", f.maxBodySize)
	}
	return body, nil
}

func (f *Fetcher) readFile(locator string, log *slog.Logger) ([]byte, error) {
	log.Debug("reading document")

	body, err := os.ReadFile(locator)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", locator, err)
	}
	if f.maxBodySize > 0 && int64(len(body)) > f.maxBodySize {
		return nil, fmt.Errorf("document %q exceeds %d byte limit", locator, f.maxBodySize)
	}
	return body, nil
}
