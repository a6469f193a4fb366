package preview

// RequestDTO is the request body for the preview endpoint.
// Exactly one of URL and RawHTML should be supplied; when both are present,
// RawHTML wins and URL is ignored.
type RequestDTO struct {
	URL     string `json:"url,omitempty"`
	RawHTML string `json:"raw_html,omitempty"`
}
