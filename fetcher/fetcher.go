// Package fetcher acquires HTML documents over plain HTTP or through a
// headless Chrome that records which elements have a layout box.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// FetchResult contains the fetched HTML and metadata.
type FetchResult struct {
	HTML        string
	FinalURL    string // URL after following redirects
	UsedBrowser bool
	// Marked is the number of elements stamped hidden by the browser.
	Marked    int
	FetchTime time.Duration
}

// Options configures the fetcher behavior.
type Options struct {
	UserAgent      string
	TimeoutSeconds int
	ChromePath     string // Path to Chrome binary (empty = auto-detect)
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		UserAgent:      "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		TimeoutSeconds: 30,
	}
}

// Package-level options (set via Configure)
var opts = DefaultOptions()

// Configure sets the package-level options.
func Configure(o Options) {
	if o.UserAgent != "" {
		opts.UserAgent = o.UserAgent
	}
	if o.TimeoutSeconds > 0 {
		opts.TimeoutSeconds = o.TimeoutSeconds
	}
	opts.ChromePath = o.ChromePath // Can be empty
}

// Timeout returns the currently configured timeout duration.
func Timeout() time.Duration {
	return time.Duration(opts.TimeoutSeconds) * time.Second
}

// Simple fetches a URL using standard HTTP. Visibility is not known for
// documents fetched this way.
func Simple(ctx context.Context, url string) (*FetchResult, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", opts.UserAgent)

	client := &http.Client{Timeout: Timeout()}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("fetching %s: %s", url, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	return &FetchResult{
		HTML:      string(body),
		FinalURL:  resp.Request.URL.String(),
		FetchTime: time.Since(start),
	}, nil
}

// IsBlockedResponse checks if the HTML indicates a blocked/challenged page.
func IsBlockedResponse(html string) (bool, string) {
	lower := strings.ToLower(html)
	switch {
	case strings.Contains(lower, "unusual traffic from your computer"):
		return true, "CAPTCHA"
	case strings.Contains(lower, "recaptcha") && len(html) < 10000:
		return true, "reCAPTCHA challenge"
	case strings.Contains(lower, "just a moment..."),
		strings.Contains(lower, "checking your browser"),
		strings.Contains(lower, "cf-browser-verification"):
		return true, "Cloudflare challenge"
	case strings.Contains(lower, "captcha-delivery.com"), strings.Contains(lower, "datadome"):
		return true, "DataDome bot protection"
	case strings.Contains(lower, "perimeterx"), strings.Contains(lower, "px-captcha"):
		return true, "PerimeterX bot protection"
	}
	return false, ""
}

// Fetch uses the browser when asked to, otherwise plain HTTP with a browser
// fallback for challenge pages.
func Fetch(ctx context.Context, url string, browser bool) (*FetchResult, error) {
	if browser {
		return WithBrowser(ctx, url)
	}
	result, err := Simple(ctx, url)
	if err != nil {
		return nil, err
	}
	if blocked, _ := IsBlockedResponse(result.HTML); !blocked {
		return result, nil
	}

	result, err = WithBrowser(ctx, url)
	if err != nil {
		return nil, err
	}
	if blocked, reason := IsBlockedResponse(result.HTML); blocked {
		return result, fmt.Errorf("blocked: %s", reason)
	}
	return result, nil
}
