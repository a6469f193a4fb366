package preview

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"bookmark-preview/internal/domain/entity"
	"bookmark-preview/internal/observability/metrics"
	"bookmark-preview/pkg/urlnorm"
)

// Extractor produces preview metadata from an HTML document.
// sourceURL is the canonical URL the HTML came from; it may be empty when the
// client supplied raw HTML directly. Extraction never fails: malformed input
// degrades to a partial (possibly empty) Preview.
type Extractor interface {
	Extract(html string, sourceURL string) entity.Preview
}

// Service implements the preview use case.
//
// Control flow: raw HTML, when present, bypasses validation and fetching
// entirely. Otherwise the URL is fetched through the PageFetcher (which owns
// validation and re-validation per hop), the final URL is normalized into the
// canonical sourceUrl, and the HTML is handed to the Extractor.
//
// The service holds no per-request state and performs no retries; concurrent
// requests are fully independent.
type Service struct {
	Fetcher    PageFetcher
	Extractor  Extractor
	Normalizer *urlnorm.Normalizer
	Logger     *slog.Logger
}

// Preview builds a link preview from the request inputs.
// Exactly one of rawHTML and rawURL is meaningful: non-empty rawHTML wins and
// rawURL is ignored. When both are empty, ErrMissingInput is returned.
func (s Service) Preview(ctx context.Context, rawHTML, rawURL string) (entity.Preview, error) {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if strings.TrimSpace(rawHTML) != "" {
		p := s.Extractor.Extract(rawHTML, "")
		metrics.PreviewRequestsTotal.WithLabelValues("raw_html", "success").Inc()
		return p, nil
	}

	if strings.TrimSpace(rawURL) == "" {
		metrics.PreviewRequestsTotal.WithLabelValues("none", "failure").Inc()
		return entity.Preview{}, ErrMissingInput
	}

	start := time.Now()
	result, err := s.Fetcher.FetchPage(ctx, rawURL)
	metrics.FetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.PreviewRequestsTotal.WithLabelValues("url", "failure").Inc()
		metrics.FetchErrorsTotal.WithLabelValues(FailureReason(err)).Inc()
		logger.Info("page fetch failed",
			slog.String("url", rawURL),
			slog.String("reason", FailureReason(err)),
			slog.Any("error", err))
		return entity.Preview{}, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	metrics.FetchSize.Observe(float64(len(result.HTML)))

	sourceURL := s.normalize(result.FinalURL)
	p := s.Extractor.Extract(result.HTML, sourceURL)

	metrics.PreviewRequestsTotal.WithLabelValues("url", "success").Inc()
	logger.Debug("preview built",
		slog.String("source_url", sourceURL),
		slog.Int("redirects", result.RedirectCount),
		slog.Int("html_bytes", len(result.HTML)),
		slog.Bool("has_title", p.Title != ""),
		slog.Bool("has_image", p.Image != ""),
		slog.Bool("has_price", p.Price != ""))
	return p, nil
}

// CanonicalURL returns the normalized form of rawURL, the same form used as
// the client's de-duplication key.
func (s Service) CanonicalURL(rawURL string) string {
	return s.normalize(rawURL)
}

func (s Service) normalize(rawURL string) string {
	if s.Normalizer != nil {
		return s.Normalizer.Normalize(rawURL)
	}
	return urlnorm.Normalize(rawURL)
}
