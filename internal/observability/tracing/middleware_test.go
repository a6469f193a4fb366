package tracing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestMiddlewareCreatesSpan(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
	)
	otel.SetTracerProvider(tp)
	defer otel.SetTracerProvider(sdktrace.NewTracerProvider())

	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))

	req := httptest.NewRequest(http.MethodPost, "/preview", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	_ = tp.ForceFlush(context.Background())

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}

	span := spans[0]
	if span.Name != "POST /preview" {
		t.Errorf("span name = %q, want %q", span.Name, "POST /preview")
	}

	var gotStatus int64 = -1
	for _, attr := range span.Attributes {
		if attr.Key == "http.status_code" {
			gotStatus = attr.Value.AsInt64()
		}
	}
	if gotStatus != http.StatusBadRequest {
		t.Errorf("http.status_code = %d, want %d", gotStatus, http.StatusBadRequest)
	}
}

func TestMiddlewareAddsTraceIDToResponse(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	otel.SetTracerProvider(tp)
	defer otel.SetTracerProvider(sdktrace.NewTracerProvider())

	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Header().Get("X-Trace-Id") == "" {
		t.Error("X-Trace-Id header not set")
	}
}

func TestInitProviderShutdown(t *testing.T) {
	shutdown := InitProvider("bookmark-preview-test", "test")
	defer otel.SetTracerProvider(sdktrace.NewTracerProvider())

	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}
