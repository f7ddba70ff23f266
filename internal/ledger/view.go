package ledger

import (
	"cmp"
	"slices"
	"strings"

	"splitter/internal/core"
)

// SortKey orders a projection.
type SortKey string

const (
	SortDateDesc   SortKey = "date-desc"
	SortDateAsc    SortKey = "date-asc"
	SortAmountDesc SortKey = "amount-desc"
	SortAmountAsc  SortKey = "amount-asc"
)

// SortKeys returns every sort key, default first.
func SortKeys() []SortKey {
	return []SortKey{SortDateDesc, SortDateAsc, SortAmountDesc, SortAmountAsc}
}

// ParseSortKey maps UI text to a SortKey. Unknown or empty text selects
// SortDateDesc.
func ParseSortKey(s string) SortKey {
	k := SortKey(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(SortKeys(), k) {
		return k
	}
	return SortDateDesc
}

// Totals summarises the whole ledger.
type Totals struct {
	Total     float64
	YourShare float64
	Count     int
}

// View is one rendered state: the projection plus ledger-wide totals.
type View struct {
	Category core.Category
	Sort     SortKey
	Items    []core.Expense
	Totals   Totals
}

// Empty reports whether the projection has nothing to show.
func (v View) Empty() bool {
	return len(v.Items) == 0
}

// Project returns a filtered, sorted copy of items. An empty category keeps
// everything. Sorting is stable, so ties keep insertion order. items is
// never modified.
func Project(items []core.Expense, category core.Category, key SortKey) []core.Expense {
	out := make([]core.Expense, 0, len(items))
	for _, e := range items {
		if category == "" || e.Category == category {
			out = append(out, e)
		}
	}
	slices.SortStableFunc(out, comparator(key))
	return out
}

func comparator(key SortKey) func(a, b core.Expense) int {
	switch key {
	case SortDateAsc:
		return func(a, b core.Expense) int { return a.Date.Compare(b.Date.Time) }
	case SortAmountDesc:
		return func(a, b core.Expense) int { return cmp.Compare(b.Amount, a.Amount) }
	case SortAmountAsc:
		return func(a, b core.Expense) int { return cmp.Compare(a.Amount, b.Amount) }
	default:
		return func(a, b core.Expense) int { return b.Date.Compare(a.Date.Time) }
	}
}

// Aggregate sums amounts and split shares over items. Callers pass the
// whole ledger, not a projection.
func Aggregate(items []core.Expense) Totals {
	var t Totals
	for _, e := range items {
		t.Total += e.Amount
		t.YourShare += e.SplitAmount
	}
	t.Count = len(items)
	return t
}

// View projects the ledger and aggregates it in one consistent snapshot.
func (l *Ledger) View(category core.Category, key SortKey) View {
	l.mu.Lock()
	defer l.mu.Unlock()
	return View{
		Category: category,
		Sort:     key,
		Items:    Project(l.items, category, key),
		Totals:   Aggregate(l.items),
	}
}

// Totals aggregates the whole ledger.
func (l *Ledger) Totals() Totals {
	l.mu.Lock()
	defer l.mu.Unlock()
	return Aggregate(l.items)
}
