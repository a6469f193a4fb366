// Package extractor parses HTML and produces normalized link-preview metadata.
//
// Extraction is best-effort by contract: malformed or unexpected HTML never
// fails the request. Every field is resolved through an ordered fallback chain
// and an empty field is a normal outcome.
package extractor

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"bookmark-preview/internal/domain/entity"
)

// maxDescriptionRunes bounds the description field for display.
const maxDescriptionRunes = 200

// metaAttrs is the attribute lookup order for meta tags. For each candidate
// name, selectors are tried in this order before moving to the next name.
var metaAttrs = []string{"name", "property", "itemprop", "http-equiv"}

// metaValueAttrs is the value attribute order within a matching element.
var metaValueAttrs = []string{"content", "value", "charset"}

// Extractor implements the preview.Extractor interface using goquery.
// It is stateless and safe for concurrent use.
type Extractor struct{}

// New creates an Extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extract builds a Preview from html. sourceURL, when non-empty, is the
// canonical URL the HTML came from; it is copied into the result unmodified
// and used for hostname and relative-URL resolution fallbacks.
//
// Field fallback chains, each stopping at the first hit:
//   - title: og:title → twitter:title → <title> → first <h1>
//   - image: og:image → twitter:image → first <img src>
//   - siteName: og:site_name → twitter:site → hostname of sourceURL
//   - description: og:description → twitter:description → meta description →
//     readability excerpt
//   - price/currency: product:price:amount (+ optional product:price:currency)
//     verbatim, else the ordered visible-text patterns in price.go
func (e *Extractor) Extract(html string, sourceURL string) entity.Preview {
	p := entity.Preview{SourceURL: sourceURL}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return p
	}

	base := parseBase(sourceURL)

	p.Title = firstNonEmpty(
		metaLookup(doc, "og:title", "twitter:title"),
		elementText(doc, "title"),
		elementText(doc, "h1"),
	)

	p.Image = firstNonEmpty(
		metaLookup(doc, "og:image", "twitter:image"),
		firstImageSrc(doc),
	)
	p.Image = resolveRef(base, p.Image)

	p.SiteName = metaLookup(doc, "og:site_name", "twitter:site")
	if p.SiteName == "" && base != nil {
		p.SiteName = base.Hostname()
	}

	p.Description = metaLookup(doc, "og:description", "twitter:description", "description")
	if p.Description == "" {
		p.Description = readabilityExcerpt(html, base)
	}
	p.Description = truncateRunes(p.Description, maxDescriptionRunes)

	if amount := metaLookup(doc, "product:price:amount"); amount != "" {
		p.Price = amount
		p.Currency = metaLookup(doc, "product:price:currency")
	} else {
		// Pattern scan runs over visible text only, so strip the non-visible
		// elements. This mutates doc and therefore happens last.
		doc.Find("script, style, noscript, template").Remove()
		p.Price, p.Currency = scanPrice(doc.Text())
	}

	return p
}

// metaLookup tries each candidate name in order against the name, property,
// itemprop, and http-equiv attributes, and returns the first non-empty of the
// matching element's content, value, or charset attributes (trimmed). The
// first hit across all candidates and selectors wins.
func metaLookup(doc *goquery.Document, names ...string) string {
	for _, name := range names {
		for _, attr := range metaAttrs {
			var found string
			doc.Find(fmt.Sprintf("meta[%s=%q]", attr, name)).EachWithBreak(func(_ int, s *goquery.Selection) bool {
				for _, valueAttr := range metaValueAttrs {
					if v, ok := s.Attr(valueAttr); ok {
						if v = strings.TrimSpace(v); v != "" {
							found = v
							return false
						}
					}
				}
				return true
			})
			if found != "" {
				return found
			}
		}
	}
	return ""
}

// elementText returns the trimmed text of the first element matching sel.
func elementText(doc *goquery.Document, sel string) string {
	return strings.TrimSpace(doc.Find(sel).First().Text())
}

// firstImageSrc returns the src of the first <img> in document order.
func firstImageSrc(doc *goquery.Document) string {
	src, _ := doc.Find("img[src]").First().Attr("src")
	return strings.TrimSpace(src)
}

// readabilityExcerpt extracts a short article excerpt as the last-resort
// description source. Readability failures simply yield an empty string.
func readabilityExcerpt(html string, base *url.URL) string {
	article, err := readability.FromReader(strings.NewReader(html), base)
	if err != nil {
		return ""
	}
	if excerpt := strings.TrimSpace(article.Excerpt); excerpt != "" {
		return excerpt
	}
	return strings.TrimSpace(article.TextContent)
}

// resolveRef resolves ref against base, returning ref unchanged when it is
// already absolute, empty, or cannot be resolved.
func resolveRef(base *url.URL, ref string) string {
	if ref == "" || base == nil {
		return ref
	}
	u, err := url.Parse(ref)
	if err != nil || u.IsAbs() {
		return ref
	}
	return base.ResolveReference(u).String()
}

func parseBase(sourceURL string) *url.URL {
	if sourceURL == "" {
		return nil
	}
	u, err := url.Parse(sourceURL)
	if err != nil {
		return nil
	}
	return u
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
