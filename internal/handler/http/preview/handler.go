// Package preview provides the HTTP handler for the link preview endpoint.
package preview

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"bookmark-preview/internal/domain/entity"
	"bookmark-preview/internal/handler/http/requestid"
	"bookmark-preview/internal/handler/http/respond"
	prevUC "bookmark-preview/internal/usecase/preview"
)

// Service is the use case surface the handler depends on.
type Service interface {
	Preview(ctx context.Context, rawHTML, rawURL string) (entity.Preview, error)
}

// PostHandler handles preview generation requests.
type PostHandler struct {
	Svc    Service
	Logger *slog.Logger
}

// ServeHTTP decodes the request, runs the preview use case, and writes either
// the preview document or a sanitized error. Fetch and validation failures are
// client errors: the requested page being unreachable or forbidden is a fact
// about the request, not a fault of this service.
func (h PostHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req RequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, errors.New("request body must be valid JSON"))
		return
	}

	p, err := h.Svc.Preview(r.Context(), req.RawHTML, req.URL)
	if err != nil {
		if prevUC.IsClientError(err) {
			respond.Error(w, http.StatusBadRequest, err)
			return
		}
		h.logger().Error("preview failed",
			slog.String("request_id", requestid.FromContext(r.Context())),
			slog.String("url", req.URL),
			slog.Any("error", err))
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	respond.JSON(w, http.StatusOK, p)
}

func (h PostHandler) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}
