package extractor

import "regexp"

// pricePattern pairs a visible-text pattern with the currency it implies.
type pricePattern struct {
	re       *regexp.Regexp
	currency string
}

// pricePatterns is the ordered pattern table for the visible-text price scan.
// The order is part of the contract: the first matching pattern wins and no
// later pattern is tried, so "$12.99 (11.50 EUR)" reports USD.
var pricePatterns = []pricePattern{
	{regexp.MustCompile(`\$\s?(\d+(?:\.\d{1,2})?)`), "USD"},
	{regexp.MustCompile(`(\d+(?:\.\d{1,2})?)\s?USD`), "USD"},
	{regexp.MustCompile(`(\d+(?:\.\d{1,2})?)\s?EUR`), "EUR"},
	{regexp.MustCompile(`£\s?(\d+(?:\.\d{1,2})?)`), "GBP"},
	{regexp.MustCompile(`€\s?(\d+(?:\.\d{1,2})?)`), "EUR"},
}

// scanPrice scans visible page text against the pattern table and returns the
// amount and currency of the first match, or empty strings when nothing
// matches.
func scanPrice(text string) (price, currency string) {
	for _, p := range pricePatterns {
		if m := p.re.FindStringSubmatch(text); m != nil {
			return m[1], p.currency
		}
	}
	return "", ""
}
