package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"splitter/internal/core"
	"splitter/internal/kv"
	"splitter/internal/log"
)

// Friends are the last participant names typed into the entry form.
type Friends struct {
	Friend1 string `json:"friend1"`
	Friend2 string `json:"friend2"`
}

// Preferences persists Friends under kv.KeySavedFriends, independently of
// the expense collection.
type Preferences struct {
	mu       sync.Mutex
	store    kv.Store
	saved    Friends
	logger   *log.Logger
	observer Observer
}

// LoadPreferences restores saved names. Missing or malformed data yields
// empty names.
func LoadPreferences(ctx context.Context, store kv.Store, opts ...Option) *Preferences {
	o := buildOptions(log.ComponentPreferences, opts)
	p := &Preferences{store: store, logger: o.logger, observer: o.observer}

	raw, err := store.Get(ctx, kv.KeySavedFriends)
	switch {
	case errors.Is(err, kv.ErrNotFound):
	case err != nil:
		p.logger.WarnContext(ctx, "Preferences read failed", log.FieldError, err)
	default:
		if err := json.Unmarshal(raw, &p.saved); err != nil {
			p.saved = Friends{}
			p.logger.WarnContext(ctx, "Saved friends are malformed, ignoring", log.FieldError, err)
		}
	}
	return p
}

// RecordFriend stores name for slot 1 or 2 and persists immediately.
func (p *Preferences) RecordFriend(ctx context.Context, slot int, name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	next := p.saved
	switch slot {
	case 1:
		next.Friend1 = name
	case 2:
		next.Friend2 = name
	default:
		return &core.ValidationError{Field: "slot", Reason: "must be 1 or 2"}
	}
	p.saved = next

	raw, err := json.Marshal(next)
	if err != nil {
		return &core.PersistenceError{Op: "encode", Key: kv.KeySavedFriends, Err: err}
	}
	if err := p.store.Set(ctx, kv.KeySavedFriends, raw); err != nil {
		perr := &core.PersistenceError{Op: "write", Key: kv.KeySavedFriends, Err: err}
		p.observer.Observe(Event{Kind: EventPersistFailed, Key: kv.KeySavedFriends})
		p.logger.LogError(ctx, "Saving friend name failed", perr, log.OpRecord, log.NewFields().With(log.FieldSlot, slot))
		return perr
	}
	p.observer.Observe(Event{Kind: EventFriendSaved, Key: kv.KeySavedFriends})
	p.logger.DebugContext(ctx, "Friend name saved", log.FieldSlot, slot)
	return nil
}

// RestoreFriends returns the last saved names, empty when never set.
func (p *Preferences) RestoreFriends() Friends {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.saved
}
