// Package ledger holds the expense collection, derives filtered and sorted
// views of it, and remembers the last friend names typed into the form.
//
// A Ledger is an explicit context object: it owns its collection, its id
// counter and the byte store it mirrors into. Every exported method runs to
// completion under the ledger's lock, so concurrent HTTP handlers see the
// same one-event-at-a-time behaviour as a browser event loop.
package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"splitter/internal/core"
	"splitter/internal/kv"
	"splitter/internal/log"
)

// ErrNothingToClear is returned by Clear on an empty ledger.
var ErrNothingToClear = errors.New("no expenses to clear")

type Ledger struct {
	mu       sync.Mutex
	store    kv.Store
	items    []core.Expense
	next     int64
	clock    func() time.Time
	logger   *log.Logger
	observer Observer
}

// Load restores the collection persisted under kv.KeyExpenses. Missing,
// unreadable or malformed data yields an empty ledger; Load never fails.
func Load(ctx context.Context, store kv.Store, opts ...Option) *Ledger {
	o := buildOptions(log.ComponentLedger, opts)
	l := &Ledger{
		store:    store,
		clock:    o.clock,
		logger:   o.logger,
		observer: o.observer,
	}

	l.items = l.read(ctx)
	l.next = nextID(l.items)

	l.logger.InfoContext(ctx, "Ledger loaded",
		log.FieldLedgerSize, len(l.items),
		"next_id", l.next)
	return l
}

func (l *Ledger) read(ctx context.Context) []core.Expense {
	raw, err := l.store.Get(ctx, kv.KeyExpenses)
	if errors.Is(err, kv.ErrNotFound) {
		return []core.Expense{}
	}
	if err != nil {
		l.logger.WarnContext(ctx, "Ledger read failed, starting empty",
			log.FieldOperation, log.OpLoad,
			log.FieldKey, kv.KeyExpenses,
			log.FieldError, err)
		return []core.Expense{}
	}

	var items []core.Expense
	if err := json.Unmarshal(raw, &items); err != nil {
		l.logger.WarnContext(ctx, "Persisted ledger is malformed, starting empty",
			log.FieldOperation, log.OpLoad,
			log.FieldKey, kv.KeyExpenses,
			log.FieldBytes, len(raw),
			log.FieldError, err)
		return []core.Expense{}
	}
	if items == nil {
		items = []core.Expense{}
	}
	return items
}

// nextID seeds the counter from the highest stored id.
func nextID(items []core.Expense) int64 {
	var maxID int64
	for _, e := range items {
		maxID = max(maxID, e.ID)
	}
	return maxID + 1
}

// Append validates in, assigns the next id and persists the whole
// collection. A *core.ValidationError leaves the ledger untouched. A
// *core.PersistenceError is returned together with the created expense:
// the in-memory append is kept.
func (l *Ledger) Append(ctx context.Context, in core.ExpenseInput) (core.Expense, error) {
	draft, err := in.Validate()
	if err != nil {
		l.logger.InfoContext(ctx, "Expense rejected",
			log.FieldOperation, log.OpValidate,
			log.FieldError, err)
		l.mu.Lock()
		l.observer.Observe(Event{Kind: EventRejected, Size: len(l.items)})
		l.mu.Unlock()
		return core.Expense{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	e := draft.Expense(l.next, l.clock())
	l.next++
	l.items = append(l.items, e)
	l.observer.Observe(Event{Kind: EventAdded, Size: len(l.items)})

	l.logger.InfoContext(ctx, "Expense added",
		log.NewFields().
			WithExpense(e.ID, e.Description, e.Amount, e.Category.String()).
			WithOperation(log.OpAppend).
			ToSlice()...)

	return e, l.persist(ctx)
}

// Remove deletes the expense with the given id once confirm approves.
// A declined confirmation or an unknown id is a no-op and reports false.
func (l *Ledger) Remove(ctx context.Context, id int64, confirm Confirmer) (bool, error) {
	if !confirm.ask(PromptDelete) {
		return false, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	i := slices.IndexFunc(l.items, func(e core.Expense) bool { return e.ID == id })
	if i < 0 {
		l.logger.DebugContext(ctx, "Remove of unknown expense ignored", log.FieldExpenseID, id)
		return false, nil
	}
	l.items = slices.Delete(l.items, i, i+1)
	l.observer.Observe(Event{Kind: EventRemoved, Size: len(l.items)})

	l.logger.InfoContext(ctx, "Expense removed",
		log.FieldOperation, log.OpRemove,
		log.FieldExpenseID, id,
		log.FieldLedgerSize, len(l.items))

	return true, l.persist(ctx)
}

// Clear empties the ledger once confirm approves and restarts the id
// counter at 1. An empty ledger restarts the counter too, then returns
// ErrNothingToClear without asking.
func (l *Ledger) Clear(ctx context.Context, confirm Confirmer) (bool, error) {
	l.mu.Lock()
	empty := len(l.items) == 0
	if empty {
		l.next = 1
	}
	l.mu.Unlock()
	if empty {
		return false, ErrNothingToClear
	}
	if !confirm.ask(PromptClearAll) {
		return false, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	n := len(l.items)
	l.items = []core.Expense{}
	l.next = 1
	l.observer.Observe(Event{Kind: EventCleared, Size: 0})

	l.logger.InfoContext(ctx, "Ledger cleared",
		log.FieldOperation, log.OpClear,
		"removed", n)

	return true, l.persist(ctx)
}

// Persist writes the full collection to the store.
func (l *Ledger) Persist(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.persist(ctx)
}

func (l *Ledger) persist(ctx context.Context) error {
	items := l.items
	if items == nil {
		items = []core.Expense{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return l.persistFailed(ctx, &core.PersistenceError{Op: "encode", Key: kv.KeyExpenses, Err: err})
	}
	if err := l.store.Set(ctx, kv.KeyExpenses, raw); err != nil {
		return l.persistFailed(ctx, &core.PersistenceError{Op: "write", Key: kv.KeyExpenses, Err: err})
	}
	l.logger.DebugContext(ctx, "Ledger persisted",
		log.FieldKey, kv.KeyExpenses,
		log.FieldBytes, len(raw),
		log.FieldLedgerSize, len(items))
	return nil
}

func (l *Ledger) persistFailed(ctx context.Context, perr *core.PersistenceError) error {
	l.observer.Observe(Event{Kind: EventPersistFailed, Key: perr.Key, Size: len(l.items)})
	l.logger.LogError(ctx, "Ledger persistence failed, keeping in-memory state", perr, log.OpPersist,
		log.NewFields().With(log.FieldLedgerSize, len(l.items)))
	return perr
}

// All returns a copy of the collection in insertion order.
func (l *Ledger) All() []core.Expense {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.items)
}

// Len returns the number of stored expenses.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

// Get looks up one expense by id.
func (l *Ledger) Get(id int64) (core.Expense, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.items {
		if e.ID == id {
			return e, true
		}
	}
	return core.Expense{}, false
}

// NextID reports the id the next Append will assign.
func (l *Ledger) NextID() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.next
}

func (l *Ledger) String() string {
	return fmt.Sprintf("ledger(%d expenses, next id %d)", l.Len(), l.NextID())
}
