package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"splitter/internal/notify"
)

func TestHTMXResponseBuilder_Triggers(t *testing.T) {
	rr := httptest.NewRecorder()
	NewHTMXResponse().
		TriggerExpenseCreated(3).
		TriggerFormReset("Alice", "Bob").
		TriggerNotification(notify.SeveritySuccess, "Expense added successfully!", 3*time.Second).
		Write(rr)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}

	var got map[string]map[string]any
	if err := json.Unmarshal([]byte(rr.Header().Get("HX-Trigger")), &got); err != nil {
		t.Fatalf("decode HX-Trigger: %v", err)
	}
	if got[EventExpenseCreated]["id"] != float64(3) {
		t.Errorf("expense:created = %v", got[EventExpenseCreated])
	}
	if got[EventFormReset]["friend1"] != "Alice" || got[EventFormReset]["friend2"] != "Bob" {
		t.Errorf("form:reset = %v", got[EventFormReset])
	}
	n := got[EventShowNotification]
	if n["type"] != "success" || n["message"] != "Expense added successfully!" || n["duration"] != float64(3000) {
		t.Errorf("show-notification = %v", n)
	}
}

func TestHTMXResponseBuilder_NoTriggers(t *testing.T) {
	rr := httptest.NewRecorder()
	NewHTMXResponse().Status(http.StatusAccepted).Header("X-Test", "1").Write(rr)

	if rr.Code != http.StatusAccepted {
		t.Errorf("status = %d", rr.Code)
	}
	if rr.Header().Get("HX-Trigger") != "" {
		t.Error("unexpected HX-Trigger header")
	}
	if rr.Header().Get("X-Test") != "1" {
		t.Error("custom header missing")
	}
}

func TestErrorResponses(t *testing.T) {
	tests := []struct {
		name string
		b    *HTMXResponseBuilder
		code int
	}{
		{"bad request", BadRequestError("<bad>"), http.StatusBadRequest},
		{"unprocessable", UnprocessableEntityError("<bad>"), http.StatusUnprocessableEntity},
		{"internal", InternalServerError("<bad>"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			tt.b.Write(rr)
			if rr.Code != tt.code {
				t.Errorf("status = %d, want %d", rr.Code, tt.code)
			}
			if !strings.Contains(rr.Body.String(), "&lt;bad&gt;") {
				t.Errorf("message not escaped: %s", rr.Body.String())
			}
			if !strings.HasPrefix(rr.Header().Get("Content-Type"), "text/html") {
				t.Errorf("content type = %q", rr.Header().Get("Content-Type"))
			}
		})
	}
}

func TestErrorResponseWithNotification(t *testing.T) {
	rr := httptest.NewRecorder()
	UnprocessableEntityError("Please fill in all required fields").
		TriggerErrorNotification("Please fill in all required fields").
		Write(rr)

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", rr.Code)
	}
	if !strings.Contains(rr.Header().Get("HX-Trigger"), `"type":"error"`) {
		t.Errorf("HX-Trigger = %s", rr.Header().Get("HX-Trigger"))
	}
}
