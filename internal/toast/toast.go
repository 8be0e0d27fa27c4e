// Package toast implements a single-slot notification with auto-dismissal.
//
// Showing a message replaces whatever is displayed and restarts the dismiss
// timer. A replaced message is never dismissed by its own, stale timer.
package toast

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultDelay is how long a message stays visible.
const DefaultDelay = 3 * time.Second

// Kind distinguishes success from failure messages.
type Kind int

const (
	KindSuccess Kind = iota
	KindFailure
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Message is one displayed notification. ID increases with every Show.
type Message struct {
	ID   uint64
	Kind Kind
	Text string
}

// Notifier holds at most one visible message.
type Notifier struct {
	mu        sync.Mutex
	clock     clockwork.Clock
	delay     time.Duration
	current   *Message
	timer     clockwork.Timer
	seq       uint64
	onShow    func(Message)
	onDismiss func(Message)
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithClock sets the clock driving dismissal. Tests pass a fake clock.
func WithClock(c clockwork.Clock) Option {
	return func(n *Notifier) {
		n.clock = c
	}
}

// WithDelay sets how long a message stays visible.
// Panics if d <= 0.
func WithDelay(d time.Duration) Option {
	if d <= 0 {
		panic("toast: delay must be positive")
	}
	return func(n *Notifier) {
		n.delay = d
	}
}

// OnShow registers a callback invoked after a message becomes visible.
func OnShow(fn func(Message)) Option {
	return func(n *Notifier) {
		n.onShow = fn
	}
}

// OnDismiss registers a callback invoked when a message times out.
// It is not called for messages replaced by a newer one.
func OnDismiss(fn func(Message)) Option {
	return func(n *Notifier) {
		n.onDismiss = fn
	}
}

// New creates a Notifier using the real clock and DefaultDelay unless overridden.
func New(opts ...Option) *Notifier {
	n := &Notifier{
		clock: clockwork.NewRealClock(),
		delay: DefaultDelay,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Show replaces the current message and restarts the dismiss timer.
func (n *Notifier) Show(kind Kind, text string) Message {
	n.mu.Lock()
	if n.timer != nil {
		n.timer.Stop()
	}
	n.seq++
	msg := Message{ID: n.seq, Kind: kind, Text: text}
	n.current = &msg
	id := msg.ID
	n.timer = n.clock.AfterFunc(n.delay, func() { n.expire(id) })
	onShow := n.onShow
	n.mu.Unlock()

	if onShow != nil {
		onShow(msg)
	}
	return msg
}

// Success shows a success message.
func (n *Notifier) Success(text string) {
	n.Show(KindSuccess, text)
}

// Failure shows a failure message.
func (n *Notifier) Failure(text string) {
	n.Show(KindFailure, text)
}

// Current returns the visible message, if any.
func (n *Notifier) Current() (Message, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current == nil {
		return Message{}, false
	}
	return *n.current, true
}

// Close stops the pending timer and clears the slot without firing OnDismiss.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	n.current = nil
}

// expire clears the slot only if it still holds message id.
func (n *Notifier) expire(id uint64) {
	n.mu.Lock()
	if n.current == nil || n.current.ID != id {
		n.mu.Unlock()
		return
	}
	msg := *n.current
	n.current = nil
	n.timer = nil
	onDismiss := n.onDismiss
	n.mu.Unlock()

	if onDismiss != nil {
		onDismiss(msg)
	}
}
