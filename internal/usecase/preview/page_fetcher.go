package preview

import "context"

// FetchResult is the outcome of a successful bounded fetch.
type FetchResult struct {
	// HTML is the response body decoded as UTF-8 text.
	HTML string

	// FinalURL is the URL of the last hop, after any redirects.
	FinalURL string

	// RedirectCount is the number of redirects followed (0 when none).
	RedirectCount int
}

// PageFetcher retrieves an HTML page under strict security and resource bounds.
//
// Implementations MUST:
//   - validate the URL (scheme and private-network classification) before any
//     network I/O, and re-validate the target of every redirect hop with the
//     same DNS-aware check — never a weaker literal-only one
//   - enforce a single overall deadline across the whole multi-hop attempt
//   - enforce the byte cap incrementally while streaming the body, aborting
//     the read without ever buffering past the cap
//   - require a text/html content type
//   - perform no retries; retry policy belongs to the caller
type PageFetcher interface {
	// FetchPage fetches url and returns the final HTML, final URL, and hop
	// count, or one of the package sentinel errors.
	FetchPage(ctx context.Context, url string) (*FetchResult, error)
}
