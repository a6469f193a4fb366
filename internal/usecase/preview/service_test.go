package preview_test

import (
	"context"
	"errors"
	"testing"

	"bookmark-preview/internal/domain/entity"
	"bookmark-preview/internal/usecase/preview"
)

/* ───────── スタブ実装 ───────── */

// stubFetcher records whether it was called and returns a canned result.
type stubFetcher struct {
	called bool
	result *preview.FetchResult
	err    error
}

func (s *stubFetcher) FetchPage(_ context.Context, _ string) (*preview.FetchResult, error) {
	s.called = true
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

// stubExtractor echoes back the inputs it received.
type stubExtractor struct {
	gotHTML      string
	gotSourceURL string
}

func (s *stubExtractor) Extract(html, sourceURL string) entity.Preview {
	s.gotHTML = html
	s.gotSourceURL = sourceURL
	return entity.Preview{Title: "stub", SourceURL: sourceURL}
}

func TestPreviewRawHTMLBypassesFetch(t *testing.T) {
	fetcher := &stubFetcher{err: errors.New("must not be called")}
	extractor := &stubExtractor{}
	svc := preview.Service{Fetcher: fetcher, Extractor: extractor}

	// raw_html があれば URL は無視される
	p, err := svc.Preview(context.Background(), "<html><title>t</title></html>", "http://127.0.0.1/ignored")
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if fetcher.called {
		t.Error("fetcher was called despite raw HTML input")
	}
	if extractor.gotSourceURL != "" {
		t.Errorf("sourceURL = %q, want empty for raw HTML input", extractor.gotSourceURL)
	}
	if p.Title != "stub" {
		t.Errorf("Title = %q, want %q", p.Title, "stub")
	}
}

func TestPreviewMissingInput(t *testing.T) {
	svc := preview.Service{Fetcher: &stubFetcher{}, Extractor: &stubExtractor{}}

	_, err := svc.Preview(context.Background(), "", "   ")
	if !errors.Is(err, preview.ErrMissingInput) {
		t.Errorf("err = %v, want ErrMissingInput", err)
	}
}

func TestPreviewNormalizesFinalURL(t *testing.T) {
	fetcher := &stubFetcher{result: &preview.FetchResult{
		HTML:          "<html></html>",
		FinalURL:      "https://Shop.Example.com/item?utm_source=ad&sku=7#top",
		RedirectCount: 1,
	}}
	extractor := &stubExtractor{}
	svc := preview.Service{Fetcher: fetcher, Extractor: extractor}

	p, err := svc.Preview(context.Background(), "", "https://shop.example.com/item")
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}

	want := "https://shop.example.com/item?sku=7"
	if extractor.gotSourceURL != want {
		t.Errorf("extractor sourceURL = %q, want %q", extractor.gotSourceURL, want)
	}
	if p.SourceURL != want {
		t.Errorf("SourceURL = %q, want %q", p.SourceURL, want)
	}
}

func TestPreviewPropagatesFetchErrors(t *testing.T) {
	sentinels := []error{
		preview.ErrInvalidURL,
		preview.ErrPrivateDestination,
		preview.ErrTooManyRedirects,
		preview.ErrBodyTooLarge,
		preview.ErrTimeout,
		preview.ErrNotHTML,
		preview.ErrFetchFailed,
	}

	for _, sentinel := range sentinels {
		fetcher := &stubFetcher{err: sentinel}
		svc := preview.Service{Fetcher: fetcher, Extractor: &stubExtractor{}}

		_, err := svc.Preview(context.Background(), "", "https://example.com")
		if !errors.Is(err, sentinel) {
			t.Errorf("err = %v, want wrapped %v", err, sentinel)
		}
	}
}

func TestFailureReason(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{preview.ErrMissingInput, "missing_input"},
		{preview.ErrInvalidURL, "invalid_url"},
		{preview.ErrPrivateDestination, "private_destination"},
		{preview.ErrTooManyRedirects, "too_many_redirects"},
		{preview.ErrBodyTooLarge, "body_too_large"},
		{preview.ErrTimeout, "timeout"},
		{preview.ErrConnectionFailed, "connection_failed"},
		{preview.ErrNotHTML, "not_html"},
		{preview.ErrFetchFailed, "http_status"},
		{errors.New("database exploded"), "internal"},
	}

	for _, tt := range tests {
		if got := preview.FailureReason(tt.err); got != tt.want {
			t.Errorf("FailureReason(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestIsClientError(t *testing.T) {
	if !preview.IsClientError(preview.ErrPrivateDestination) {
		t.Error("sentinel error should be a client error")
	}
	if preview.IsClientError(errors.New("boom")) {
		t.Error("unknown error should not be a client error")
	}
	// ラップされたエラーも判定できること
	wrapped := errors.Join(errors.New("fetch https://x"), preview.ErrTimeout)
	if !preview.IsClientError(wrapped) {
		t.Error("wrapped sentinel should be a client error")
	}
}
