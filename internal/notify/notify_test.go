package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"splitter/internal/log"
)

func TestShowThenAutoDismiss(t *testing.T) {
	n := New(20*time.Millisecond, log.Discard())
	defer n.Stop()

	n.Success("Expense added successfully!")
	cur, ok := n.Current()
	require.True(t, ok)
	assert.Equal(t, "Expense added successfully!", cur.Message)
	assert.Equal(t, SeveritySuccess, cur.Severity)

	assert.Eventually(t, func() bool {
		_, ok := n.Current()
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestLatestMessageWins(t *testing.T) {
	n := New(time.Hour, log.Discard())
	defer n.Stop()

	n.Success("first")
	n.Error("second")

	cur, ok := n.Current()
	require.True(t, ok)
	assert.Equal(t, "second", cur.Message)
	assert.Equal(t, SeverityError, cur.Severity)
}

func TestShowRestartsTimer(t *testing.T) {
	n := New(80*time.Millisecond, log.Discard())
	defer n.Stop()

	n.Success("first")
	time.Sleep(50 * time.Millisecond)
	n.Success("second")
	time.Sleep(50 * time.Millisecond)

	// The first timer would have fired by now.
	cur, ok := n.Current()
	require.True(t, ok)
	assert.Equal(t, "second", cur.Message)
}

func TestDismissIsIdempotent(t *testing.T) {
	n := New(time.Hour, log.Discard())
	defer n.Stop()

	n.Dismiss()
	_, ok := n.Current()
	assert.False(t, ok)

	n.Success("hello")
	n.Dismiss()
	n.Dismiss()
	_, ok = n.Current()
	assert.False(t, ok)
}

func TestDefaultDuration(t *testing.T) {
	assert.Equal(t, 3*time.Second, New(0, log.Discard()).Duration())
}

func TestStopKeepsNotificationVisible(t *testing.T) {
	n := New(20*time.Millisecond, log.Discard())
	n.Success("stay")
	n.Stop()
	time.Sleep(40 * time.Millisecond)
	_, ok := n.Current()
	assert.True(t, ok)
}
