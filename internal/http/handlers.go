package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"splitter/internal/core"
	"splitter/internal/kv"
	"splitter/internal/ledger"
)

// handleHealth performs basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":    "ok",
		"timestamp": s.now().Format(time.RFC3339),
		"uptime":    s.now().Sub(s.startedAt).String(),
	})
}

// handleReady verifies templates are parsed and the store answers reads.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := "ready"
	httpStatus := http.StatusOK
	checks := make(map[string]any)

	if s.templates == nil {
		checks["templates"] = "failed: templates not loaded"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["templates"] = "ok"
	}

	if s.store == nil {
		checks["store"] = "not_configured"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else if _, err := s.store.Get(ctx, kv.KeySavedFriends); err != nil && !errors.Is(err, kv.ErrNotFound) {
		checks["store"] = "failed: " + err.Error()
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["store"] = "ok"
	}

	if s.ledger != nil {
		checks["ledger"] = map[string]any{"expenses": s.ledger.Len(), "next_id": s.ledger.NextID()}
	}
	checks["rate_limiter"] = map[string]any{"active_clients": s.limiter.activeClients()}

	w.WriteHeader(httpStatus)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":    status,
		"timestamp": s.now().Format(time.RFC3339),
		"checks":    checks,
	})
}

// pageData feeds index.html.
type pageData struct {
	Today      string
	Friends    ledger.Friends
	Categories []core.Category
	SortKeys   []ledger.SortKey
	Params     ViewParams
	View       ledger.View
	Totals     ledger.Totals
	Prompts    prompts
}

type prompts struct {
	Delete   string
	ClearAll string
}

var defaultPrompts = prompts{Delete: ledger.PromptDelete, ClearAll: ledger.PromptClearAll}

// listData feeds the expenses partial.
type listData struct {
	View    ledger.View
	Prompts prompts
}

// summaryData feeds the summary partial.
type summaryData struct {
	Totals  ledger.Totals
	Prompts prompts
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}

	params := ParseViewParams(r.URL.Query())
	f1, f2 := s.savedFriends()
	view := s.ledger.View(params.Category, params.Sort)
	s.render(w, r, "index.html", pageData{
		Today:      core.DateOf(s.now()).String(),
		Friends:    ledger.Friends{Friend1: f1, Friend2: f2},
		Categories: core.Categories(),
		SortKeys:   ledger.SortKeys(),
		Params:     params,
		View:       view,
		Totals:     view.Totals,
		Prompts:    defaultPrompts,
	})
}

func (s *Server) handleExpenseList(w http.ResponseWriter, r *http.Request) {
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}
	params := ParseViewParams(r.URL.Query())
	s.render(w, r, "expenses", listData{
		View:    s.ledger.View(params.Category, params.Sort),
		Prompts: defaultPrompts,
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}
	s.render(w, r, "summary", summaryData{Totals: s.ledger.Totals(), Prompts: defaultPrompts})
}

// handleNotification renders the notification currently on screen, or 204
// when it has been dismissed.
func (s *Server) handleNotification(w http.ResponseWriter, r *http.Request) {
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}
	n, ok := s.notifier.Current()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	s.render(w, r, "notification", n)
}

// errorMessage turns a rejected entry form into the user-facing text.
func errorMessage(verr *core.ValidationError) string {
	if verr.MissingFields() {
		return msgRequiredFields
	}
	switch verr.Field {
	case "amount":
		return "Please enter a valid positive amount"
	case "date":
		return "Please enter a valid date"
	case "category":
		return "Please choose a category"
	default:
		return "Please check the " + verr.Field + " field"
	}
}

// User-facing notification texts.
const (
	msgRequiredFields = "Please fill in all required fields"
	msgExpenseAdded   = "Expense added successfully!"
	msgExpenseDeleted = "Expense deleted successfully!"
	msgNothingToClear = "No expenses to clear!"
	msgAllCleared     = "All expenses cleared!"
	msgSaveFailed     = "Could not save to local storage. Changes will be lost on restart."
)
