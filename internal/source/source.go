// Package source resolves document source arguments: local file
// paths, stdin via "-", and http(s) URLs. Every resolution hands back
// a ReadCloser so callers control the release scope.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/salmonumbrella/org-cli/internal/logger"
)

// DefaultTimeout bounds a single remote fetch.
const DefaultTimeout = 30 * time.Second

// Error types for specific acquisition failures.
type (
	// AuthenticationError indicates the remote rejected the token.
	AuthenticationError struct{ Message string }
	// NotFoundError indicates the remote source does not exist.
	NotFoundError struct{ Message string }
	// HTTPError wraps any other non-success response.
	HTTPError struct {
		StatusCode int
		Message    string
	}
)

func (e AuthenticationError) Error() string { return e.Message }
func (e NotFoundError) Error() string       { return e.Message }
func (e HTTPError) Error() string           { return e.Message }

// Fetcher resolves source arguments, carrying the HTTP client and
// bearer token used for remote ones.
type Fetcher struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        *logger.Logger
}

// Option is a function that configures a Fetcher
type Option func(*Fetcher)

// WithBaseURL sets a base URL used to resolve relative source names
// that do not exist locally
func WithBaseURL(base string) Option {
	return func(f *Fetcher) {
		f.baseURL = strings.TrimRight(base, "/")
	}
}

// WithTimeout sets a custom timeout for remote fetches
func WithTimeout(timeout time.Duration) Option {
	return func(f *Fetcher) {
		f.httpClient.Timeout = timeout
	}
}

// WithToken sets the bearer token sent with remote fetches
func WithToken(token string) Option {
	return func(f *Fetcher) {
		f.token = token
	}
}

// WithLogger replaces the logger used for fetch timing
func WithLogger(l *logger.Logger) Option {
	return func(f *Fetcher) {
		f.log = l
	}
}

// WithDebug switches the fetcher to a debug-level logger
func WithDebug(debug bool) Option {
	return func(f *Fetcher) {
		if debug {
			f.log = logger.NewWithLevel(os.Stderr, log.DebugLevel)
		}
	}
}

// NewFetcher creates a Fetcher with the default timeout.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		log:        logger.Default,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// IsRemote reports whether the source argument is an http(s) URL.
func IsRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Open resolves a source argument to a ReadCloser. "-" yields stdin,
// http(s) URLs fetch remotely, anything else opens a local file.
// Callers own the returned handle and must close it; file and fetch
// failures propagate with the original error in the chain.
func (f *Fetcher) Open(ctx context.Context, source string, stdin io.Reader) (io.ReadCloser, error) {
	trimmed := strings.TrimSpace(source)
	if trimmed == "" {
		return nil, fmt.Errorf("empty input source")
	}

	if trimmed == "-" {
		if stdin == nil {
			stdin = os.Stdin
		}
		return io.NopCloser(stdin), nil
	}

	if IsRemote(trimmed) {
		return f.fetch(ctx, trimmed)
	}

	file, err := os.Open(trimmed)
	if err != nil {
		// A relative name that is missing locally may still resolve
		// against the configured base URL.
		if f.baseURL != "" && errors.Is(err, fs.ErrNotExist) && !filepath.IsAbs(trimmed) {
			if remote, jerr := url.JoinPath(f.baseURL, trimmed); jerr == nil {
				return f.fetch(ctx, remote)
			}
		}
		return nil, fmt.Errorf("failed to open %s: %w", trimmed, err)
	}
	return file, nil
}

// Read resolves source and reads it fully, releasing the handle
// before returning.
func (f *Fetcher) Read(ctx context.Context, source string, stdin io.Reader) (string, error) {
	r, err := f.Open(ctx, source, stdin)
	if err != nil {
		return "", err
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", source, err)
	}
	return string(data), nil
}

func (f *Fetcher) fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/plain")
	if f.token != "" {
		req.Header.Set("Authorization", "Bearer "+f.token)
	}

	start := time.Now()
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	f.log.FetchCompleted(url, resp.StatusCode, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		switch resp.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return nil, AuthenticationError{Message: fmt.Sprintf("access denied: %s", url)}
		case http.StatusNotFound:
			return nil, NotFoundError{Message: fmt.Sprintf("source not found: %s", url)}
		default:
			return nil, HTTPError{
				StatusCode: resp.StatusCode,
				Message:    fmt.Sprintf("fetch %s: status %d: %s", url, resp.StatusCode, strings.TrimSpace(string(body))),
			}
		}
	}

	return resp.Body, nil
}

// HasData reports whether r has piped input rather than an interactive
// terminal. A nil reader checks os.Stdin.
func HasData(r io.Reader) bool {
	if r == nil {
		r = os.Stdin
	}
	if file, ok := r.(*os.File); ok {
		stat, err := file.Stat()
		if err != nil {
			return false
		}
		return (stat.Mode() & os.ModeCharDevice) == 0
	}
	return true
}
