// Package urlnorm canonicalizes URLs for display and de-duplication.
//
// Normalization lowercases the hostname, removes the fragment, and strips
// known tracking parameters. Two URLs with the same normalized form identify
// the same bookmark, so the output must be a deterministic function of the
// input. The bookmarking client uses the normalized form as its storage key.
package urlnorm

import (
	"net/url"
	"strings"
)

// trackingPrefix matches any parameter key in the utm_* family, covering
// campaign keys not present in the fixed list.
const trackingPrefix = "utm_"

// Normalizer removes tracking parameters from URLs using a configurable key set.
// The zero value is not usable; construct with New.
type Normalizer struct {
	tracking map[string]struct{}
}

// New creates a Normalizer that strips the default tracking parameter set
// plus any extra keys supplied by configuration. Keys are matched
// case-sensitively, as query parameter keys are case-sensitive.
func New(extraKeys ...string) *Normalizer {
	tracking := make(map[string]struct{}, len(defaultTrackingParams)+len(extraKeys))
	for _, k := range defaultTrackingParams {
		tracking[k] = struct{}{}
	}
	for _, k := range extraKeys {
		if k != "" {
			tracking[k] = struct{}{}
		}
	}
	return &Normalizer{tracking: tracking}
}

// Normalize returns the canonical form of raw:
//   - hostname folded to lowercase
//   - fragment removed
//   - tracking parameters removed (fixed set plus any utm_* key)
//   - no "?" when the query becomes empty
//
// Normalize never fails: if raw cannot be parsed it is returned unchanged.
// The function is idempotent: Normalize(Normalize(u)) == Normalize(u).
func (n *Normalizer) Normalize(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	u.RawFragment = ""

	if u.RawQuery != "" {
		q := u.Query()
		for key := range q {
			if n.isTracking(key) {
				q.Del(key)
			}
		}
		// Encode returns "" for an empty Values, which drops the "?" entirely.
		u.RawQuery = q.Encode()
	}

	return u.String()
}

// isTracking reports whether key belongs to the tracking parameter set.
func (n *Normalizer) isTracking(key string) bool {
	if strings.HasPrefix(key, trackingPrefix) {
		return true
	}
	_, ok := n.tracking[key]
	return ok
}

// defaultNormalizer backs the package-level Normalize function.
var defaultNormalizer = New()

// Normalize canonicalizes raw using the default tracking parameter set.
func Normalize(raw string) string {
	return defaultNormalizer.Normalize(raw)
}
