package http

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"splitter/internal/core"
	"splitter/internal/ledger"
)

func TestParseViewParams(t *testing.T) {
	tests := []struct {
		name         string
		query        url.Values
		wantCategory core.Category
		wantSort     ledger.SortKey
	}{
		{"defaults", url.Values{}, "", ledger.SortDateDesc},
		{"food by amount", url.Values{"category": {"food"}, "sort": {"amount-asc"}}, core.CategoryFood, ledger.SortAmountAsc},
		{"unknown category shows all", url.Values{"category": {"groceries"}}, "", ledger.SortDateDesc},
		{"unknown sort falls back", url.Values{"sort": {"name"}}, "", ledger.SortDateDesc},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseViewParams(tt.query)
			if got.Category != tt.wantCategory {
				t.Errorf("Category = %q, want %q", got.Category, tt.wantCategory)
			}
			if got.Sort != tt.wantSort {
				t.Errorf("Sort = %q, want %q", got.Sort, tt.wantSort)
			}
		})
	}
}

func newParser(t *testing.T, contentType, body string) *RequestBodyParser {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	p := NewRequestBodyParser(req)
	if err := p.Parse(); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return p
}

func TestRequestBodyParser_Form(t *testing.T) {
	p := newParser(t, "application/x-www-form-urlencoded",
		"description=+Dinner+&amount=300&date=2024-01-10&category=food&friend1=Alice&friend2=Bob&notes=tip%00")

	if p.IsJSON() {
		t.Fatal("form body parsed as JSON")
	}
	in := p.ExpenseInput()
	want := core.ExpenseInput{
		Description: "Dinner",
		Amount:      "300",
		Date:        "2024-01-10",
		Category:    "food",
		Friend1:     "Alice",
		Friend2:     "Bob",
		Notes:       "tip",
	}
	if in != want {
		t.Errorf("ExpenseInput() = %+v, want %+v", in, want)
	}
}

func TestRequestBodyParser_JSON(t *testing.T) {
	p := newParser(t, "application/json", `{"id": 7, "confirm": true, "amount": 12.5}`)

	if !p.IsJSON() {
		t.Fatal("expected JSON body")
	}
	if got := p.Get("amount"); got != "12.5" {
		t.Errorf("amount = %q", got)
	}
	id, err := p.ExpenseID()
	if err != nil || id != 7 {
		t.Errorf("ExpenseID() = %d, %v", id, err)
	}
	if !p.Confirmer()(ledger.PromptDelete) {
		t.Error("confirm=true should approve")
	}
	if p.Get("missing") != "" {
		t.Error("missing key should be empty")
	}
}

func TestRequestBodyParser_InvalidJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"id":`))
	req.Header.Set("Content-Type", "application/json")

	if _, resp := ParseBodyOrFail(req); resp == nil {
		t.Fatal("expected a 400 response builder")
	}
}

func TestRequestBodyParser_Confirmer(t *testing.T) {
	tests := []struct {
		body string
		want bool
	}{
		{"confirm=yes", true},
		{"confirm=YES", true},
		{"confirm=on", true},
		{"confirm=1", true},
		{"confirm=no", false},
		{"confirm=", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			p := newParser(t, "application/x-www-form-urlencoded", tt.body)
			if got := p.Confirmer()(ledger.PromptClearAll); got != tt.want {
				t.Errorf("Confirmer() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRequestBodyParser_ExpenseID(t *testing.T) {
	if _, err := newParser(t, "", "").ExpenseID(); err == nil {
		t.Error("expected error for missing id")
	}
	if _, err := newParser(t, "", "id=abc").ExpenseID(); err == nil {
		t.Error("expected error for non-numeric id")
	}
	if id, err := newParser(t, "", "id=42").ExpenseID(); err != nil || id != 42 {
		t.Errorf("ExpenseID() = %d, %v", id, err)
	}
}

func TestRequireMethod(t *testing.T) {
	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	if RequireMethod(req, http.MethodPost, http.MethodDelete) != nil {
		t.Error("DELETE should be allowed")
	}

	resp := RequirePOST(httptest.NewRequest(http.MethodGet, "/", nil))
	if resp == nil {
		t.Fatal("GET should be rejected")
	}
	rr := httptest.NewRecorder()
	resp.Write(rr)
	if rr.Code != http.StatusMethodNotAllowed || rr.Header().Get("Allow") != http.MethodPost {
		t.Errorf("got %d Allow=%q", rr.Code, rr.Header().Get("Allow"))
	}

	if RequireGET(httptest.NewRequest(http.MethodHead, "/", nil)) != nil {
		t.Error("HEAD should pass RequireGET")
	}
}

func TestSanitizeInput(t *testing.T) {
	tests := []struct{ in, want string }{
		{"  Dinner  ", "Dinner"},
		{"a\x00b\x07c", "abc"},
		{"line\nbreak", "line\nbreak"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := sanitizeInput(tt.in); got != tt.want {
			t.Errorf("sanitizeInput(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
