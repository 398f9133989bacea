//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/oshokin/installer-helpers/internal/logger"
)

// ProgressFunc receives the number of bytes copied so far and the expected
// total, which is -1 when the server does not announce a length.
type ProgressFunc func(written, total int64)

// Client wraps http.Client with the defaults both tools need.
type Client struct {
	// http performs the requests.
	http *http.Client
	// userAgent is sent with every request.
	userAgent string

	// callTimeout bounds page and index requests.
	callTimeout time.Duration
	// downloadTimeout bounds the wait for response headers of downloads.
	downloadTimeout time.Duration
}

// Option configures client behaviour.
type Option func(*Client)

// Defaults for requests without explicit options.
const (
	DefaultCallTimeout     = 60 * time.Second
	DefaultDownloadTimeout = 120 * time.Second
)

// ErrBadHTTPStatus is returned for any response other than 200 OK.
var ErrBadHTTPStatus = errors.New("unexpected http status")

// WithCallTimeout sets a default timeout for page requests.
func WithCallTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.callTimeout = timeout
		}
	}
}

// WithDownloadTimeout sets how long a download may wait for response headers.
func WithDownloadTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.downloadTimeout = timeout
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.http = httpClient
		}
	}
}

// NewClient creates a client with the provided options applied.
func NewClient(opts ...Option) *Client {
	client := &Client{
		http:            new(http.Client),
		callTimeout:     DefaultCallTimeout,
		downloadTimeout: DefaultDownloadTimeout,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// GetText fetches url and returns the body as a string.
func (c *Client) GetText(ctx context.Context, url string) (string, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.do(callCtx, http.MethodGet, url)
	if err != nil {
		return "", err
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", url, err)
	}

	return string(body), nil
}

// Exists reports whether a HEAD request for url answers 200 OK.
func (c *Client) Exists(ctx context.Context, url string) bool {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.do(callCtx, http.MethodHead, url)
	if err != nil {
		logger.DebugKV(ctx, "HEAD failed", "url", url, "error", err)
		return false
	}

	_ = resp.Body.Close()

	return true
}

// Download streams url into w. Only the wait for response headers is
// bounded so that large images are not cut off.
func (c *Client) Download(ctx context.Context, url string, w io.Writer, progress ProgressFunc) (int64, error) {
	headerCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	timer := time.AfterFunc(c.downloadTimeout, cancel)

	resp, err := c.do(headerCtx, http.MethodGet, url)
	timer.Stop()

	if err != nil {
		return 0, err
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	reader := &progressReader{
		reader:     resp.Body,
		total:      resp.ContentLength,
		onProgress: progress,
	}

	written, err := io.Copy(w, reader)
	if err != nil {
		return written, fmt.Errorf("download %s: %w", url, err)
	}

	return written, nil
}

func (c *Client) do(ctx context.Context, method, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, http.NoBody)
	if err != nil {
		return nil, err
	}

	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	logger.Infof(ctx, "%s %s", method, url)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, url, err)
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%s %s, %s: %w", method, url, resp.Status, ErrBadHTTPStatus)
	}

	return resp, nil
}

// callContext returns a context with the client's call timeout if configured,
// otherwise a cancellable child context without a deadline.
func (c *Client) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.callTimeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, c.callTimeout)
}

// progressReader wraps a reader and reports progress.
type progressReader struct {
	reader     io.Reader
	total      int64
	written    int64
	onProgress ProgressFunc
}

func (r *progressReader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	r.written += int64(n)

	if r.onProgress != nil && n > 0 {
		r.onProgress(r.written, r.total)
	}

	return n, err
}
