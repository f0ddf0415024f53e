package solar

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/ptxxdxxd/ascii-telescope/internal/render"
)

// Some of the imagery hosts reject requests without a browser-looking
// User-Agent.
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// maxImageBytes caps a single download. The largest source image is
// about 1 MiB; anything past this is not a solar image.
const maxImageBytes = 32 << 20

// Result is one successful fetch: the decoded grid, the source that
// produced it, and the original encoded bytes for optional archiving.
// Attempts lists the higher-priority sources that failed before the
// winning one; empty when the preferred source answered.
type Result struct {
	Grid      *render.Grid
	Source    Source
	Raw       []byte
	FetchedAt time.Time
	Attempts  []Attempt
}

// Fetcher is the fetch pipeline seen by the refresh loop. Client
// implements it; tests provide mocks.
type Fetcher interface {
	Fetch(ctx context.Context, sources []Source, perSource time.Duration) (*Result, error)
}

var _ Fetcher = (*Client)(nil)

// Client downloads and decodes solar images. It holds no state between
// calls and is safe to reuse across cycles.
type Client struct {
	http      *http.Client
	userAgent string
	logger    *slog.Logger
}

// NewClient wraps an http.Client. The http.Client's own timeout is left
// alone; Fetch applies a per-source deadline via context.
func NewClient(httpClient *http.Client, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		http:      httpClient,
		userAgent: defaultUserAgent,
		logger:    logger,
	}
}

// Fetch tries each source in order and returns the first that downloads
// and decodes, short-circuiting the rest. Each source gets one attempt
// with its own perSource deadline; there is no retry, backoff, or
// parallel racing — the catalog is ordered by fidelity and these are
// public endpoints.
//
// If every source fails, the returned error is a *FetchFailure listing
// one error per source in catalog order.
func (c *Client) Fetch(ctx context.Context, sources []Source, perSource time.Duration) (*Result, error) {
	if len(sources) == 0 {
		return nil, errors.New("no sources configured")
	}

	attempts := make([]Attempt, 0, len(sources))
	for _, src := range sources {
		res, err := c.fetchOne(ctx, src, perSource)
		if err == nil {
			res.Attempts = attempts
			c.logger.Info("fetched solar image", "source", src.Name, "width", res.Grid.W, "height", res.Grid.H)
			return res, nil
		}
		attempts = append(attempts, Attempt{Source: src, Err: err})
		c.logger.Warn("source failed, trying next", "source", src.Name, "error", err)

		if ctx.Err() != nil {
			break
		}
	}
	return nil, &FetchFailure{Attempts: attempts}
}

func (c *Client) fetchOne(ctx context.Context, src Source, timeout time.Duration) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return nil, &NetworkError{URL: src.URL, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: src.URL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &NetworkError{URL: src.URL, Status: resp.StatusCode, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, &NetworkError{URL: src.URL, Err: err}
	}

	grid, err := render.Decode(data)
	if err != nil {
		return nil, &DecodeError{URL: src.URL, Err: err}
	}

	return &Result{
		Grid:      grid,
		Source:    src,
		Raw:       data,
		FetchedAt: time.Now().UTC(),
	}, nil
}
