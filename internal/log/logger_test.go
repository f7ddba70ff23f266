package log

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"Warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestJSONLoggerCarriesComponentOnce(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelInfo, Format: FormatJSON, Output: &buf, Component: ComponentLedger})
	logger.Info("hello", FieldKey, "expenses")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decode %q: %v", buf.String(), err)
	}
	if rec[FieldComponent] != ComponentLedger || rec[FieldKey] != "expenses" {
		t.Fatalf("unexpected record: %v", rec)
	}
	if strings.Count(buf.String(), `"component"`) != 1 {
		t.Fatalf("component repeated: %s", buf.String())
	}
}

func TestPrettyLoggerWrites(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelDebug, Format: FormatPretty, Output: &buf})
	logger.Debug("pretty line")
	if !strings.Contains(buf.String(), "pretty line") {
		t.Fatalf("missing message: %q", buf.String())
	}
}

func TestLogErrorFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Format: FormatJSON, Output: &buf})
	logger.LogError(context.Background(), "persist failed", errors.New("disk full"), OpPersist, NewFields().WithExpense(3, "Taxi", 90, "travel"))

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec[FieldError] != "disk full" || rec[FieldOperation] != OpPersist || rec[FieldExpenseDesc] != "Taxi" {
		t.Fatalf("unexpected record: %v", rec)
	}
}

func TestMiddlewareInjectsLogger(t *testing.T) {
	logger := Discard().WithComponent(ComponentHTTP)
	var got *Logger
	var gotID string
	h := Middleware(logger)(RequestIDMiddleware(func(*http.Request) string { return "req-1" })(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = FromContext(r.Context())
			gotID = RequestIDFromContext(r.Context())
		}),
	))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if got == nil || got.Component() != ComponentHTTP {
		t.Fatalf("logger not propagated: %+v", got)
	}
	if gotID != "req-1" {
		t.Fatalf("request id = %q", gotID)
	}
	if FromContext(context.Background()).Component() != "unknown" {
		t.Fatalf("expected fallback logger")
	}
}

func TestWithComponentReplacesComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Format: FormatJSON, Output: &buf, Component: ComponentApp}).
		With(FieldRequestID, "abc").
		WithComponent(ComponentStorage)
	logger.Info("switched")

	if strings.Count(buf.String(), `"component"`) != 1 {
		t.Fatalf("component repeated: %s", buf.String())
	}
	if !strings.Contains(buf.String(), `"component":"storage"`) || !strings.Contains(buf.String(), `"request_id":"abc"`) {
		t.Fatalf("unexpected record: %s", buf.String())
	}
	if logger.Component() != ComponentStorage {
		t.Fatalf("Component() = %q", logger.Component())
	}
}
