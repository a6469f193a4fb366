package fetcher

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"bookmark-preview/internal/netsafe"
	"bookmark-preview/internal/usecase/preview"
)

// readChunkSize is the buffer size for the incremental body read.
const readChunkSize = 32 * 1024

// HTTPFetcher implements the preview.PageFetcher interface.
//
// It follows redirects manually: the HTTP client never auto-follows, and each
// hop target is resolved against the current URL and re-validated with the
// full DNS-aware SSRF check before being contacted. A single context deadline
// covers the entire multi-hop attempt, and the body is read in chunks so the
// byte cap can abort the transfer without ever materializing an oversized
// payload in memory.
//
// HTTPFetcher holds no per-request state and performs no retries; it is safe
// for concurrent use.
type HTTPFetcher struct {
	client     *http.Client
	classifier *netsafe.Classifier
	config     Config
}

// NewHTTPFetcher creates an HTTPFetcher with the given configuration and
// destination classifier.
func NewHTTPFetcher(cfg Config, classifier *netsafe.Classifier) *HTTPFetcher {
	return &HTTPFetcher{
		classifier: classifier,
		config:     cfg,
		client: &http.Client{
			// Redirects are handled by the hop loop in FetchPage so that every
			// target passes validation before being contacted.
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
				TLSClientConfig: &tls.Config{
					MinVersion: tls.VersionTLS12,
				},
			},
		},
	}
}

// FetchPage fetches rawURL and returns the final HTML, the final URL, and the
// number of redirects followed.
//
// State machine per hop: validate → request → redirect (re-validate, loop) or
// terminal success/failure. Failure modes map to the preview sentinel errors:
//   - preview.ErrInvalidURL / ErrPrivateDestination: validation (any hop)
//   - preview.ErrTimeout: the overall deadline elapsed
//   - preview.ErrConnectionFailed: the server could not be reached
//   - preview.ErrTooManyRedirects: hop counter exceeded the cap
//   - preview.ErrFetchFailed: non-2xx, non-redirect status
//   - preview.ErrNotHTML: content type without text/html
//   - preview.ErrBodyTooLarge: byte cap exceeded mid-stream
func (f *HTTPFetcher) FetchPage(ctx context.Context, rawURL string) (*preview.FetchResult, error) {
	// One deadline for the whole attempt, redirects included.
	ctx, cancel := context.WithTimeout(ctx, f.config.Timeout)
	defer cancel()

	current := rawURL
	hops := 0

	for {
		target, err := validateURL(ctx, f.classifier, current, f.config.DenyPrivateIPs)
		if err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", preview.ErrInvalidURL, err)
		}
		req.Header.Set("User-Agent", f.config.UserAgent)
		req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

		resp, err := f.client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%w: deadline of %v exceeded", preview.ErrTimeout, f.config.Timeout)
			}
			return nil, fmt.Errorf("%w: %v", preview.ErrConnectionFailed, err)
		}

		// Redirect hop: count it, re-validate the new target, continue.
		if isRedirect(resp.StatusCode) && resp.Header.Get("Location") != "" {
			loc, locErr := resp.Location()
			closeBody(resp)
			if locErr != nil {
				return nil, fmt.Errorf("%w: unusable redirect location: %v", preview.ErrFetchFailed, locErr)
			}
			hops++
			if hops > f.config.MaxRedirects {
				return nil, fmt.Errorf("%w: more than %d hops", preview.ErrTooManyRedirects, f.config.MaxRedirects)
			}
			current = loc.String()
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			closeBody(resp)
			return nil, fmt.Errorf("%w: HTTP %d", preview.ErrFetchFailed, resp.StatusCode)
		}

		contentType := resp.Header.Get("Content-Type")
		if !strings.Contains(contentType, "text/html") {
			closeBody(resp)
			return nil, fmt.Errorf("%w: got %q", preview.ErrNotHTML, contentType)
		}

		body, err := readBounded(resp.Body, f.config.MaxBodyBytes)
		closeBody(resp)
		if err != nil {
			if errors.Is(err, preview.ErrBodyTooLarge) {
				return nil, err
			}
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%w: deadline of %v exceeded", preview.ErrTimeout, f.config.Timeout)
			}
			return nil, fmt.Errorf("%w: reading body: %v", preview.ErrConnectionFailed, err)
		}

		return &preview.FetchResult{
			HTML:          string(body),
			FinalURL:      target.String(),
			RedirectCount: hops,
		}, nil
	}
}

// readBounded reads r incrementally, failing with preview.ErrBodyTooLarge the
// moment the running total would exceed limit. At most limit bytes are ever held.
func readBounded(r io.Reader, limit int64) ([]byte, error) {
	var buf bytes.Buffer
	chunk := make([]byte, readChunkSize)
	var total int64

	for {
		n, err := r.Read(chunk)
		if n > 0 {
			total += int64(n)
			if total > limit {
				return nil, fmt.Errorf("%w: body exceeds %d bytes", preview.ErrBodyTooLarge, limit)
			}
			buf.Write(chunk[:n])
		}
		if err == io.EOF {
			return buf.Bytes(), nil
		}
		if err != nil {
			return nil, err
		}
	}
}

func isRedirect(status int) bool {
	return status >= 300 && status <= 399
}

func closeBody(resp *http.Response) {
	_ = resp.Body.Close()
}
