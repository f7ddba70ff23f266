// Package notify keeps the single transient notification shown to the user.
//
// One slot, latest message wins. Every Show replaces the visible text and
// restarts the auto-dismiss timer; nothing is queued.
package notify

import (
	"sync"
	"time"

	"splitter/internal/log"
)

// DefaultDuration is how long a notification stays visible.
const DefaultDuration = 3 * time.Second

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notification is the message currently on screen.
type Notification struct {
	Message  string    `json:"message"`
	Severity Severity  `json:"type"`
	Shown    time.Time `json:"-"`
}

// Notifier owns the single notification slot and its dismissal timer.
type Notifier struct {
	mu       sync.Mutex
	duration time.Duration
	current  Notification
	visible  bool
	timer    *time.Timer
	gen      uint64
	logger   *log.Logger
}

// New returns a Notifier that dismisses after duration, or DefaultDuration
// when duration is not positive.
func New(duration time.Duration, logger *log.Logger) *Notifier {
	if duration <= 0 {
		duration = DefaultDuration
	}
	if logger == nil {
		logger = log.Default(log.ComponentNotify)
	}
	return &Notifier{duration: duration, logger: logger}
}

// Duration reports the auto-dismiss interval.
func (n *Notifier) Duration() time.Duration {
	return n.duration
}

// Success shows msg with SeveritySuccess.
func (n *Notifier) Success(msg string) Notification { return n.Show(msg, SeveritySuccess) }

// Error shows msg with SeverityError.
func (n *Notifier) Error(msg string) Notification { return n.Show(msg, SeverityError) }

// Show replaces the visible notification and restarts the dismissal timer.
func (n *Notifier) Show(msg string, sev Severity) Notification {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.current = Notification{Message: msg, Severity: sev, Shown: time.Now()}
	n.visible = true
	n.gen++
	gen := n.gen

	if n.timer != nil {
		n.timer.Stop()
	}
	// A callback from a stopped timer may still be running; gen keeps it
	// from hiding a newer message.
	n.timer = time.AfterFunc(n.duration, func() { n.dismiss(gen) })

	n.logger.Debug("Notification shown", "severity", string(sev), "message", msg)
	return n.current
}

// Current returns the visible notification, if any.
func (n *Notifier) Current() (Notification, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current, n.visible
}

// Dismiss hides the current notification. Hiding nothing is a no-op.
func (n *Notifier) Dismiss() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.visible = false
}

func (n *Notifier) dismiss(gen uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if gen == n.gen {
		n.visible = false
	}
}

// Stop cancels the pending dismissal. The current notification is left as
// is.
func (n *Notifier) Stop() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
}
