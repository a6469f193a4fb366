// Package preview provides the use case for building link previews.
// It orchestrates URL validation, bounded page fetching, metadata extraction,
// and URL normalization into a single request-scoped pipeline.
package preview

import "errors"

// Sentinel errors for preview operations.
// These errors allow callers to distinguish between failure modes; the HTTP
// handler maps every one of them to 400 Bad Request with the message intact,
// while unclassified errors become a generic 500.
var (
	// ErrMissingInput indicates the request carried neither a URL nor raw HTML.
	ErrMissingInput = errors.New("either url or raw_html is required")

	// ErrInvalidURL indicates the URL cannot be parsed or uses a scheme other
	// than http/https.
	//
	// Example:
	//   - "ftp://example.com" → ErrInvalidURL
	//   - "javascript:alert(1)" → ErrInvalidURL
	ErrInvalidURL = errors.New("invalid URL or unsupported scheme")

	// ErrPrivateDestination indicates the destination classifies as private,
	// loopback, link-local, or reserved address space. This applies to the
	// initial URL and to every redirect target (SSRF prevention).
	ErrPrivateDestination = errors.New("destination is on a private network")

	// ErrTooManyRedirects indicates the redirect chain exceeded the hop cap.
	ErrTooManyRedirects = errors.New("too many redirects")

	// ErrBodyTooLarge indicates the response body would exceed the byte cap.
	// The transfer is aborted mid-stream; the oversized body is never buffered.
	ErrBodyTooLarge = errors.New("content too large")

	// ErrTimeout indicates the overall fetch deadline elapsed. The deadline
	// covers the whole multi-hop attempt, not a single request.
	ErrTimeout = errors.New("request timed out")

	// ErrConnectionFailed indicates the remote server could not be reached.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrFetchFailed indicates the server answered with a non-success,
	// non-redirect status.
	ErrFetchFailed = errors.New("fetch failed")

	// ErrNotHTML indicates the response content type does not contain
	// text/html. Previews are only built from HTML documents.
	ErrNotHTML = errors.New("content type is not text/html")
)

// FailureReason returns a short label for err, used as a metrics dimension.
// Unrecognized errors are labeled "internal".
func FailureReason(err error) string {
	switch {
	case errors.Is(err, ErrMissingInput):
		return "missing_input"
	case errors.Is(err, ErrInvalidURL):
		return "invalid_url"
	case errors.Is(err, ErrPrivateDestination):
		return "private_destination"
	case errors.Is(err, ErrTooManyRedirects):
		return "too_many_redirects"
	case errors.Is(err, ErrBodyTooLarge):
		return "body_too_large"
	case errors.Is(err, ErrTimeout):
		return "timeout"
	case errors.Is(err, ErrConnectionFailed):
		return "connection_failed"
	case errors.Is(err, ErrNotHTML):
		return "not_html"
	case errors.Is(err, ErrFetchFailed):
		return "http_status"
	default:
		return "internal"
	}
}

// IsClientError reports whether err is one of the preview sentinel errors,
// i.e. a validation, network, or content failure caused by the request rather
// than by this service.
func IsClientError(err error) bool {
	return FailureReason(err) != "internal"
}
