// Package http provides HTTP server and handler implementations.
//
// This file implements utilities for parsing and validating HTTP request data.
// Handlers accept both form-encoded bodies (HTMX default) and JSON bodies.

package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"splitter/internal/core"
	"splitter/internal/ledger"
)

// maxBodyBytes caps request bodies; the largest form is a few hundred bytes.
const maxBodyBytes = 64 << 10

var errMissingID = errors.New("missing expense id")

// ViewParams holds the list filter and sort order from a query string.
type ViewParams struct {
	Category core.Category
	Sort     ledger.SortKey
}

// ParseViewParams reads category and sort from query. An unknown category
// selects every category; an unknown sort selects date-desc.
func ParseViewParams(query url.Values) ViewParams {
	params := ViewParams{Sort: ledger.ParseSortKey(query.Get("sort"))}
	if c, err := core.ParseCategory(query.Get("category")); err == nil {
		params.Category = c
	}
	return params
}

// RequestBodyParser handles different content types for request body parsing.
type RequestBodyParser struct {
	body        []byte
	contentType string
	jsonData    map[string]any
	formData    url.Values
	parsed      bool
	err         error
}

// NewRequestBodyParser creates a parser for the given request.
// It reads the body once and stores it for subsequent parsing.
func NewRequestBodyParser(r *http.Request) *RequestBodyParser {
	p := &RequestBodyParser{
		contentType: r.Header.Get("Content-Type"),
	}
	p.body, p.err = io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	return p
}

// Parse attempts to parse the body as JSON or form data.
func (p *RequestBodyParser) Parse() error {
	if p.parsed {
		return p.err
	}
	p.parsed = true

	if p.err != nil {
		return p.err
	}

	if len(p.body) == 0 {
		p.formData = url.Values{}
		return nil
	}

	if p.IsJSONContent() || p.body[0] == '{' {
		p.jsonData = make(map[string]any)
		if err := json.Unmarshal(p.body, &p.jsonData); err != nil {
			p.jsonData = nil
			p.err = err
			return err
		}
		return nil
	}

	p.formData, p.err = url.ParseQuery(string(p.body))
	return p.err
}

// Get returns a sanitized string value from the parsed data (JSON or form).
func (p *RequestBodyParser) Get(key string) string {
	if p.jsonData != nil {
		if val, ok := p.jsonData[key]; ok {
			return sanitizeInput(stringValue(val))
		}
		return ""
	}
	if p.formData != nil {
		return sanitizeInput(p.formData.Get(key))
	}
	return ""
}

// IsJSONContent reports whether the request declared a JSON body.
func (p *RequestBodyParser) IsJSONContent() bool {
	return strings.Contains(p.contentType, "application/json")
}

// IsJSON returns true if the parsed content was JSON.
func (p *RequestBodyParser) IsJSON() bool {
	return p.jsonData != nil
}

// ExpenseInput collects the entry-form fields.
func (p *RequestBodyParser) ExpenseInput() core.ExpenseInput {
	return core.ExpenseInput{
		Description: p.Get("description"),
		Amount:      p.Get("amount"),
		Date:        p.Get("date"),
		Category:    p.Get("category"),
		Friend1:     p.Get("friend1"),
		Friend2:     p.Get("friend2"),
		Notes:       p.Get("notes"),
	}
}

// Confirmer turns the confirm field into a ledger.Confirmer. Only an
// explicit yes/true/1 approves.
func (p *RequestBodyParser) Confirmer() ledger.Confirmer {
	switch strings.ToLower(p.Get("confirm")) {
	case "yes", "true", "1", "on":
		return ledger.Confirmed
	default:
		return ledger.Declined
	}
}

// ExpenseID reads the id field.
func (p *RequestBodyParser) ExpenseID() (int64, error) {
	raw := p.Get("id")
	if raw == "" {
		return 0, errMissingID
	}
	return strconv.ParseInt(raw, 10, 64)
}

// stringValue converts a decoded JSON value to string.
func stringValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

// RequireMethod checks if the request method matches the expected method(s).
// Returns an error response builder if the method doesn't match.
func RequireMethod(r *http.Request, methods ...string) *HTMXResponseBuilder {
	for _, m := range methods {
		if r.Method == m {
			return nil
		}
	}
	return MethodNotAllowedError(strings.Join(methods, ", "))
}

// RequirePOST is a convenience function for POST-only handlers.
func RequirePOST(r *http.Request) *HTMXResponseBuilder {
	return RequireMethod(r, http.MethodPost)
}

// RequireGET is a convenience function for read-only handlers.
func RequireGET(r *http.Request) *HTMXResponseBuilder {
	return RequireMethod(r, http.MethodGet, http.MethodHead)
}

// ParseBodyOrFail reads and parses the request body, returning an error
// response on failure.
func ParseBodyOrFail(r *http.Request) (*RequestBodyParser, *HTMXResponseBuilder) {
	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		return nil, BadRequestError("Invalid request format")
	}
	return p, nil
}
