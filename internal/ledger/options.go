package ledger

import (
	"time"

	"splitter/internal/log"
)

// EventKind names a ledger state change reported to an Observer.
type EventKind string

const (
	EventAdded         EventKind = "added"
	EventRemoved       EventKind = "removed"
	EventCleared       EventKind = "cleared"
	EventRejected      EventKind = "rejected"
	EventPersistFailed EventKind = "persist_failed"
	EventFriendSaved   EventKind = "friend_saved"
)

// Event describes one state change. Size is the ledger length after it.
type Event struct {
	Kind EventKind
	Key  string
	Size int
}

// Observer receives ledger events synchronously, under the ledger lock.
// Implementations must not call back into the ledger.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

func (f ObserverFunc) Observe(e Event) { f(e) }

type options struct {
	clock    func() time.Time
	logger   *log.Logger
	observer Observer
}

// Option customises Load and LoadPreferences.
type Option func(*options)

// WithClock overrides the creation timestamp source.
func WithClock(clock func() time.Time) Option {
	return func(o *options) { o.clock = clock }
}

// WithLogger sets the logger; the component is replaced per facet.
func WithLogger(logger *log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithObserver registers an observer for state changes.
func WithObserver(obs Observer) Option {
	return func(o *options) { o.observer = obs }
}

func buildOptions(component string, opts []Option) options {
	o := options{clock: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.Default(component)
	} else {
		o.logger = o.logger.WithComponent(component)
	}
	if o.observer == nil {
		o.observer = ObserverFunc(func(Event) {})
	}
	return o
}
