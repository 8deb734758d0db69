// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package capture fetches candidate payloads over HTTP. It is the
// collaborator feeding the engine: it knows nothing about table shapes,
// only how to collect non-markup resources politely and skip the
// tracking/analytics endpoints that never carry data.
package capture

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/pdiddy/pollscan/internal/httputil"
	"github.com/pdiddy/pollscan/pkg/types"
)

// excludedURLPatterns deny-lists tracking and analytics endpoints before
// any fetch happens.
var excludedURLPatterns = []*regexp.Regexp{
	regexp.MustCompile(`googletagmanager\.com`),
	regexp.MustCompile(`google-analytics\.com`),
	regexp.MustCompile(`doubleclick\.net`),
	regexp.MustCompile(`facebook\.(com|net)/tr`),
	regexp.MustCompile(`connect\.facebook\.net`),
	regexp.MustCompile(`hotjar\.com`),
	regexp.MustCompile(`segment\.(io|com)`),
	regexp.MustCompile(`\bgtag/js\b`),
	regexp.MustCompile(`[?&]utm_`),
}

// ShouldSkipURL reports whether a URL is on the tracking deny-list.
func ShouldSkipURL(url string) bool {
	for _, p := range excludedURLPatterns {
		if p.MatchString(url) {
			return true
		}
	}
	return false
}

// Result holds the captured payload pool plus the URLs filtered out
// upstream, so the engine's caller can report what was excluded.
type Result struct {
	Payloads []types.RawPayload
	Excluded []string
}

const defaultMaxBodyBytes = 8 << 20

// Fetch retrieves each URL in order, skipping deny-listed URLs and markup
// responses, and returns the payload pool. Individual fetch failures are
// reported to w and excluded; only a fully failed client setup is an
// error. A delay between fetches keeps the load polite.
func Fetch(ctx context.Context, urls []string, cfg types.CaptureConfig, w io.Writer) (Result, error) {
	client := &http.Client{Timeout: cfg.Timeout}
	if client.Timeout == 0 {
		client.Timeout = 30 * time.Second
	}
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = defaultMaxBodyBytes
	}

	var res Result
	for i, url := range urls {
		if ShouldSkipURL(url) {
			fmt.Fprintf(w, "excluded %s (tracking)\n", url)
			res.Excluded = append(res.Excluded, url)
			continue
		}

		if i > 0 && cfg.FetchDelay > 0 {
			select {
			case <-ctx.Done():
				return res, ctx.Err()
			case <-time.After(cfg.FetchDelay):
			}
		}

		payload, err := fetchOne(ctx, client, url, cfg, maxBody)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", url, err)
			continue
		}
		if payload == nil {
			fmt.Fprintf(w, "skipped %s (markup)\n", url)
			res.Excluded = append(res.Excluded, url)
			continue
		}

		fmt.Fprintf(w, "fetched %s (%d bytes, %s)\n", url, len(payload.Body), payload.ContentType)
		res.Payloads = append(res.Payloads, *payload)
	}

	return res, nil
}

// fetchOne retrieves a single URL. A nil payload with nil error means the
// response was markup and was skipped.
func fetchOne(ctx context.Context, client *http.Client, url string, cfg types.CaptureConfig, maxBody int64) (*types.RawPayload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if cfg.UserAgent != "" {
		req.Header.Set("User-Agent", cfg.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, cfg.MaxRetries)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if isMarkup(contentType) {
		return nil, nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}

	return &types.RawPayload{
		URL:         url,
		ContentType: contentType,
		Body:        string(body),
	}, nil
}

// isMarkup reports whether the declared content type is an HTML page.
// Markup never reaches the engine; the dataset hides in the page's
// secondary resources, not the page itself.
func isMarkup(contentType string) bool {
	ct := strings.ToLower(contentType)
	return strings.Contains(ct, "text/html") || strings.Contains(ct, "application/xhtml")
}
