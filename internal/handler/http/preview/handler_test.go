package preview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookmark-preview/internal/domain/entity"
	prevUC "bookmark-preview/internal/usecase/preview"
)

/* ───────── スタブ実装 ───────── */

type stubService struct {
	preview entity.Preview
	err     error

	gotHTML string
	gotURL  string
}

func (s *stubService) Preview(_ context.Context, rawHTML, rawURL string) (entity.Preview, error) {
	s.gotHTML = rawHTML
	s.gotURL = rawURL
	return s.preview, s.err
}

func doPost(t *testing.T, svc Service, body string) *httptest.ResponseRecorder {
	t.Helper()
	mux := http.NewServeMux()
	Register(mux, svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/preview", strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestPostHandlerSuccess(t *testing.T) {
	svc := &stubService{preview: entity.Preview{
		Title:     "Running Shoes",
		Price:     "59.90",
		Currency:  "EUR",
		SourceURL: "https://shop.example.com/shoes",
	}}

	rec := doPost(t, svc, `{"url":"https://shop.example.com/shoes?utm_source=mail"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://shop.example.com/shoes?utm_source=mail", svc.gotURL)

	var got entity.Preview
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Running Shoes", got.Title)
	assert.Equal(t, "59.90", got.Price)
	assert.Equal(t, "EUR", got.Currency)
}

func TestPostHandlerOmitsEmptyFields(t *testing.T) {
	svc := &stubService{preview: entity.Preview{Title: "only a title"}}

	rec := doPost(t, svc, `{"url":"https://example.com/"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "title")
	assert.NotContains(t, body, "price")
	assert.NotContains(t, body, "image")
	assert.NotContains(t, body, "siteName")
}

func TestPostHandlerRawHTML(t *testing.T) {
	svc := &stubService{preview: entity.Preview{Title: "T"}}

	rec := doPost(t, svc, `{"raw_html":"<html><title>T</title></html>"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<html><title>T</title></html>", svc.gotHTML)
	assert.Empty(t, svc.gotURL)
}

func TestPostHandlerMalformedJSON(t *testing.T) {
	rec := doPost(t, &stubService{}, `{"url": `)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "valid JSON")
}

func TestPostHandlerClientErrors(t *testing.T) {
	// フェッチ系の失敗はリクエスト側の問題として 400 を返す
	sentinels := []error{
		prevUC.ErrMissingInput,
		prevUC.ErrInvalidURL,
		prevUC.ErrPrivateDestination,
		prevUC.ErrTooManyRedirects,
		prevUC.ErrBodyTooLarge,
		prevUC.ErrTimeout,
		prevUC.ErrConnectionFailed,
		prevUC.ErrNotHTML,
		prevUC.ErrFetchFailed,
	}

	for _, sentinel := range sentinels {
		t.Run(sentinel.Error(), func(t *testing.T) {
			svc := &stubService{err: fmt.Errorf("fetch https://x.test: %w", sentinel)}
			rec := doPost(t, svc, `{"url":"https://x.test"}`)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), sentinel.Error())
		})
	}
}

func TestPostHandlerInternalError(t *testing.T) {
	svc := &stubService{err: errors.New("extractor exploded: secret detail")}
	rec := doPost(t, svc, `{"url":"https://x.test"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "internal server error")
	assert.NotContains(t, rec.Body.String(), "secret detail")
}

func TestPostHandlerMethodNotAllowed(t *testing.T) {
	mux := http.NewServeMux()
	Register(mux, &stubService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/preview", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
