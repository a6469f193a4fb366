package respond

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusCreated, map[string]string{"ok": "yes"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "yes", decodeBody(t, rec)["ok"])
}

func TestJSONNilBody(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusNoContent, nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Zero(t, rec.Body.Len())
}

func TestError(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, http.StatusBadRequest, errors.New("url is invalid"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "url is invalid", decodeBody(t, rec)["error"])
}

func TestSafeError(t *testing.T) {
	t.Run("client errors pass through", func(t *testing.T) {
		rec := httptest.NewRecorder()
		SafeError(rec, http.StatusUnprocessableEntity, errors.New("url is required"))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, "url is required", decodeBody(t, rec)["error"])
	})

	t.Run("server errors are masked", func(t *testing.T) {
		rec := httptest.NewRecorder()
		SafeError(rec, http.StatusInternalServerError, errors.New("dial tcp 10.0.0.5:5432 refused"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "internal server error", body["error"])
		assert.NotContains(t, rec.Body.String(), "10.0.0.5")
	})

	t.Run("nil error writes nothing", func(t *testing.T) {
		rec := httptest.NewRecorder()
		SafeError(rec, http.StatusInternalServerError, nil)
		assert.Zero(t, rec.Body.Len())
	})
}
