// Package fetcher provides the bounded, SSRF-safe page retrieval implementation.
package fetcher

import (
	"context"
	"fmt"
	"net/url"

	"bookmark-preview/internal/netsafe"
	"bookmark-preview/internal/usecase/preview"
)

// validateURL validates a URL for security before any network contact.
// It prevents Server-Side Request Forgery (SSRF) attacks by:
//   - Checking the URL scheme (only http/https allowed)
//   - Classifying the destination host, resolving DNS for non-literal hosts
//   - Refusing loopback, private, link-local, multicast, and reserved space
//
// The exact same check runs on the initial URL and on every redirect target.
// Validating only the first hop, or downgrading redirect hops to a
// literal-only check, would reopen the hole this function exists to close.
func validateURL(ctx context.Context, classifier *netsafe.Classifier, rawURL string, denyPrivateIPs bool) (*url.URL, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: parse error: %v", preview.ErrInvalidURL, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: scheme %q not allowed (only http/https)", preview.ErrInvalidURL, u.Scheme)
	}

	hostname := u.Hostname()
	if hostname == "" {
		return nil, fmt.Errorf("%w: empty hostname", preview.ErrInvalidURL)
	}

	if !denyPrivateIPs {
		return u, nil
	}

	if classifier.Classify(ctx, hostname) == netsafe.Private {
		return nil, fmt.Errorf("%w: host %q", preview.ErrPrivateDestination, hostname)
	}

	return u, nil
}
