// Package fetch downloads puzzle inputs and descriptions from the puzzle service.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jonathan/aoc-start/internal/puzzle"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "start_solve/1.0 (+https://github.com/jonathan/aoc-start)"

// SessionCookie is the name of the cookie carrying the session token.
const SessionCookie = "session"

// Result holds the body and metadata of a fetched page.
type Result struct {
	URL         string
	Body        string
	ContentType string
	StatusCode  int
}

// Error represents an error during a fetch. StatusCode is zero when no
// response was received.
type Error struct {
	URL        string
	Message    string
	StatusCode int
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures the fetch behavior.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	Client    *http.Client // optional; overrides Timeout when set
}

// DefaultOptions returns sensible defaults for fetching.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// InputURL returns the input URL for a puzzle. The day is not zero-padded.
func InputURL(base string, d puzzle.Date) string {
	return PuzzleURL(base, d) + "/input"
}

// PuzzleURL returns the description page URL for a puzzle.
func PuzzleURL(base string, d puzzle.Date) string {
	return fmt.Sprintf("%s/%d/day/%d", strings.TrimRight(base, "/"), d.Year, d.Day)
}

// Input downloads the puzzle input for d using the session token.
// Any non-2xx status is returned as an *Error; the body is not returned then.
func Input(ctx context.Context, base string, d puzzle.Date, session string, opts *Options) (*Result, error) {
	return Get(ctx, InputURL(base, d), session, opts)
}

// Get issues an authenticated GET and requires a 2xx response.
func Get(ctx context.Context, urlStr, session string, opts *Options) (*Result, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	// Validate URL
	parsedURL, err := url.Parse(urlStr)
	if err != nil || parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, &Error{
			URL:     urlStr,
			Message: "invalid URL",
			Cause:   err,
		}
	}

	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, &Error{
			URL:     urlStr,
			Message: "failed to create request",
			Cause:   err,
		}
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	req.Header.Set("User-Agent", userAgent)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: session})

	resp, err := client.Do(req)
	if err != nil {
		return nil, &Error{
			URL:     urlStr,
			Message: "HTTP request failed",
			Cause:   err,
		}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// The service explains the failure in a short plain-text body.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		msg := fmt.Sprintf("HTTP status %d", resp.StatusCode)
		if s := strings.TrimSpace(string(snippet)); s != "" && !strings.HasPrefix(s, "<") {
			msg += ": " + s
		}
		return nil, &Error{
			URL:        urlStr,
			Message:    msg,
			StatusCode: resp.StatusCode,
		}
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{
			URL:        urlStr,
			Message:    "failed to read response body",
			StatusCode: resp.StatusCode,
			Cause:      err,
		}
	}

	return &Result{
		URL:         urlStr,
		Body:        string(bodyBytes),
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
	}, nil
}
