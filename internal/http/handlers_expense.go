package http

import (
	"errors"
	"net/http"
	"strconv"

	"splitter/internal/core"
	"splitter/internal/export"
	"splitter/internal/ledger"
	"splitter/internal/log"
	"splitter/internal/notify"
)

// handleCreateExpense appends the submitted entry form to the ledger.
func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	p, resp := ParseBodyOrFail(r)
	if resp != nil {
		resp.Write(w)
		return
	}
	ctx := r.Context()
	logger := log.FromContext(ctx)

	e, err := s.ledger.Append(ctx, p.ExpenseInput())

	var verr *core.ValidationError
	if errors.As(err, &verr) {
		msg := errorMessage(verr)
		s.notify(UnprocessableEntityError(msg), notify.SeverityError, msg).Write(w)
		return
	}

	b := NewHTMXResponse().
		TriggerExpenseCreated(e.ID).
		TriggerFormReset(s.savedFriends())

	var perr *core.PersistenceError
	switch {
	case errors.As(err, &perr):
		s.notify(b, notify.SeverityError, msgSaveFailed)
	case err != nil:
		logger.LogError(ctx, "Expense append failed", err, log.OpAppend, nil)
		s.notify(InternalServerError("Could not add expense"), notify.SeverityError, "Could not add expense").Write(w)
		return
	default:
		s.notify(b, notify.SeveritySuccess, msgExpenseAdded)
	}

	logger.InfoContext(ctx, "Expense created via form",
		log.NewFields().WithExpense(e.ID, e.Description, e.Amount, e.Category.String()).ToSlice()...)
	b.Write(w)
}

// handleDeleteExpense removes one expense once the client confirmed.
func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if resp := RequireMethod(r, http.MethodPost, http.MethodDelete); resp != nil {
		resp.Write(w)
		return
	}
	p, resp := ParseBodyOrFail(r)
	if resp != nil {
		resp.Write(w)
		return
	}
	id, err := p.ExpenseID()
	if err != nil {
		BadRequestError("Missing or invalid expense id").Write(w)
		return
	}

	removed, err := s.ledger.Remove(r.Context(), id, p.Confirmer())
	if !removed && err == nil {
		// Declined, or already gone: nothing changed.
		w.WriteHeader(http.StatusNoContent)
		return
	}

	b := NewHTMXResponse().TriggerExpenseDeleted(id)
	var perr *core.PersistenceError
	if errors.As(err, &perr) {
		s.notify(b, notify.SeverityError, msgSaveFailed)
	} else {
		s.notify(b, notify.SeveritySuccess, msgExpenseDeleted)
	}
	b.Write(w)
}

// handleClearExpenses empties the ledger once the client confirmed.
func (s *Server) handleClearExpenses(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	p, resp := ParseBodyOrFail(r)
	if resp != nil {
		resp.Write(w)
		return
	}

	cleared, err := s.ledger.Clear(r.Context(), p.Confirmer())
	if errors.Is(err, ledger.ErrNothingToClear) {
		s.notify(NewHTMXResponse(), notify.SeverityError, msgNothingToClear).Write(w)
		return
	}
	if !cleared && err == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	b := NewHTMXResponse().TriggerLedgerCleared()
	var perr *core.PersistenceError
	if errors.As(err, &perr) {
		s.notify(b, notify.SeverityError, msgSaveFailed)
	} else {
		s.notify(b, notify.SeveritySuccess, msgAllCleared)
	}
	b.Write(w)
}

// handleExport streams the current projection as an .xlsx workbook.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}
	ctx := r.Context()
	params := ParseViewParams(r.URL.Query())
	view := s.ledger.View(params.Category, params.Sort)

	f, err := export.Workbook(view)
	if err != nil {
		log.FromContext(ctx).LogError(ctx, "Export failed", err, log.OpExport, nil)
		InternalServerError("Could not build export").Write(w)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename(s.now(), params.Category)+`"`)
	if err := f.Write(w); err != nil {
		log.FromContext(ctx).LogError(ctx, "Export write failed", err, log.OpExport,
			log.NewFields().With("rows", len(view.Items)))
	}
}

// handleSaveFriend records a friend name as soon as its field loses focus.
func (s *Server) handleSaveFriend(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	p, resp := ParseBodyOrFail(r)
	if resp != nil {
		resp.Write(w)
		return
	}
	slot, err := strconv.Atoi(p.Get("slot"))
	if err != nil {
		BadRequestError("Missing or invalid friend slot").Write(w)
		return
	}

	err = s.prefs.RecordFriend(r.Context(), slot, p.Get("name"))
	var verr *core.ValidationError
	var perr *core.PersistenceError
	switch {
	case errors.As(err, &verr):
		UnprocessableEntityError("Friend slot must be 1 or 2").Write(w)
	case errors.As(err, &perr):
		s.notify(NewHTMXResponse(), notify.SeverityError, msgSaveFailed).Write(w)
	case err != nil:
		InternalServerError("Could not save friend").Write(w)
	default:
		NewHTMXResponse().TriggerFriendsSaved(slot).Write(w)
	}
}

func (s *Server) savedFriends() (string, string) {
	if s.prefs == nil {
		return "", ""
	}
	f := s.prefs.RestoreFriends()
	return f.Friend1, f.Friend2
}
