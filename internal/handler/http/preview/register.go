package preview

import (
	"log/slog"
	"net/http"
)

// Register registers the preview endpoint with the given mux.
func Register(mux *http.ServeMux, svc Service, logger *slog.Logger) {
	mux.Handle("POST /preview", PostHandler{Svc: svc, Logger: logger})
}
