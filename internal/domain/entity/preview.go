// Package entity defines the core domain entities for the bookmark preview service.
package entity

// Preview holds the normalized link-preview metadata extracted from a page.
// Every field is optional: extraction is best-effort and an empty field is a
// normal outcome, not an error. Fields not determined are omitted from JSON output.
type Preview struct {
	// Title is the page title (og:title, twitter:title, <title>, or first <h1>).
	Title string `json:"title,omitempty"`

	// Description is a short page summary (og:description, twitter:description,
	// meta description, or a readability excerpt), truncated for display.
	Description string `json:"description,omitempty"`

	// Image is the preview image URL, resolved to absolute form when possible.
	Image string `json:"image,omitempty"`

	// Price is the product price as found on the page, verbatim.
	Price string `json:"price,omitempty"`

	// Currency is the ISO currency code matching Price (e.g. "USD").
	Currency string `json:"currency,omitempty"`

	// SiteName is the site display name (og:site_name, twitter:site, or the
	// hostname of the source URL).
	SiteName string `json:"siteName,omitempty"`

	// SourceURL is the canonical, normalized URL the preview was built from.
	// The client uses the same normalized form as its de-duplication key.
	SourceURL string `json:"sourceUrl,omitempty"`
}
