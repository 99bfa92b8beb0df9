package wizard

import (
	"context"
	"errors"
	"sync"
	"time"
)

// DefaultResetDelay is how long the success panel stays before the draft is cleared.
const DefaultResetDelay = 3000 * time.Millisecond

var (
	ErrIncomplete       = errors.New("title, fiscal year, source and grant type are required")
	ErrSubmitInProgress = errors.New("a submission is already in progress")
	ErrNotSubmittable   = errors.New("submit is only available on the document step")
	ErrClosed           = errors.New("wizard is closed")
)

// Submitter sends a finished draft. Implementations must not retain d.
type Submitter interface {
	Submit(ctx context.Context, d Draft) error
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, d Draft) error

func (f SubmitterFunc) Submit(ctx context.Context, d Draft) error { return f(ctx, d) }

// Timer is the cancellation handle of a scheduled callback.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d, like time.AfterFunc.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// Option configures a Machine.
type Option func(*Machine)

// WithResetDelay overrides DefaultResetDelay.
func WithResetDelay(d time.Duration) Option {
	return func(m *Machine) { m.resetDelay = d }
}

// WithAfterFunc replaces the scheduler used for the delayed reset.
func WithAfterFunc(f AfterFunc) Option {
	return func(m *Machine) { m.afterFunc = f }
}

// WithOnChange registers a callback that receives new states. It is called
// without the machine lock held, on the goroutine that made the change or on
// the reset timer goroutine. Each change is numbered under the lock and a
// state older than one already handed to f is dropped, so f never moves
// backwards. Calls from different goroutines may overlap.
func WithOnChange(f func(State)) Option {
	return func(m *Machine) { m.onChange = f }
}

// UserMessage is implemented by submission errors that carry a message meant for the user.
type UserMessage interface {
	UserMessage() string
}

// NoticeFor turns a submission error into the notice text. Every failure
// kind collapses into the same path: the carried message, else the fallback.
func NoticeFor(err error) string {
	var um UserMessage
	if errors.As(err, &um) {
		if msg := um.UserMessage(); msg != "" {
			return msg
		}
	}
	return GenericFailureMessage
}

// Machine owns one wizard State and serializes every change to it.
type Machine struct {
	mu         sync.Mutex
	state      State
	submitter  Submitter
	resetDelay time.Duration
	afterFunc  AfterFunc
	onChange   func(State)

	// seq numbers state changes under mu; delivered is the newest seq passed to onChange.
	seq       uint64
	notifyMu  sync.Mutex
	delivered uint64

	// timer is the pending reset; gen invalidates callbacks of replaced or stopped timers.
	timer  Timer
	gen    uint64
	closed bool
}

// New returns a Machine in the Initial state.
func New(sub Submitter, opts ...Option) *Machine {
	m := &Machine{
		state:      Initial(),
		submitter:  sub,
		resetDelay: DefaultResetDelay,
		afterFunc:  realAfterFunc,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// State returns a snapshot of the current state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.clone()
}

// Dispatch applies a through Reduce and returns the new state.
// A Reset also cancels a pending delayed reset.
func (m *Machine) Dispatch(a Action) State {
	m.mu.Lock()
	if _, ok := a.(Reset); ok {
		m.cancelResetLocked()
	}
	m.state = Reduce(m.state, a)
	s, seq := m.snapshotLocked()
	m.mu.Unlock()

	m.notify(s, seq)
	return s
}

// Next advances to the document step, or returns ErrIncomplete.
func (m *Machine) Next() error {
	m.mu.Lock()
	if m.state.Step == StepMetadata && !m.state.Draft.CanAdvance() {
		m.mu.Unlock()
		return ErrIncomplete
	}
	m.mu.Unlock()
	m.Dispatch(Next{})
	return nil
}

// Previous returns to the metadata step, keeping the draft.
func (m *Machine) Previous() {
	m.Dispatch(Previous{})
}

// Submit sends the draft and blocks until the submitter returns. On success
// the draft is cleared after the reset delay; on failure it is kept and the
// notice is set. The submitter's error is returned unchanged.
func (m *Machine) Submit(ctx context.Context) error {
	m.mu.Lock()
	switch {
	case m.closed:
		m.mu.Unlock()
		return ErrClosed
	case m.state.Submitting:
		m.mu.Unlock()
		return ErrSubmitInProgress
	case !m.state.CanSubmit():
		m.mu.Unlock()
		return ErrNotSubmittable
	}
	m.state = Reduce(m.state, SubmitStarted{})
	draft := m.state.Draft.Clone()
	s, seq := m.snapshotLocked()
	m.mu.Unlock()
	m.notify(s, seq)

	err := m.submitter.Submit(ctx, draft)

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return err
	}
	if err != nil {
		m.state = Reduce(m.state, SubmitFailed{Message: NoticeFor(err)})
	} else {
		m.state = Reduce(m.state, SubmitSucceeded{})
		m.scheduleResetLocked()
	}
	s, seq = m.snapshotLocked()
	m.mu.Unlock()
	m.notify(s, seq)

	return err
}

// Close stops a pending reset. The machine ignores late results afterwards.
func (m *Machine) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.cancelResetLocked()
}

func (m *Machine) scheduleResetLocked() {
	m.cancelResetLocked()
	gen := m.gen
	m.timer = m.afterFunc(m.resetDelay, func() { m.fireReset(gen) })
}

func (m *Machine) cancelResetLocked() {
	m.gen++
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}

func (m *Machine) fireReset(gen uint64) {
	m.mu.Lock()
	if m.closed || gen != m.gen {
		m.mu.Unlock()
		return
	}
	m.timer = nil
	m.state = Initial()
	s, seq := m.snapshotLocked()
	m.mu.Unlock()

	m.notify(s, seq)
}

func (m *Machine) snapshotLocked() (State, uint64) {
	m.seq++
	return m.state.clone(), m.seq
}

func (m *Machine) notify(s State, seq uint64) {
	if m.onChange == nil {
		return
	}
	m.notifyMu.Lock()
	if seq <= m.delivered {
		m.notifyMu.Unlock()
		return
	}
	m.delivered = seq
	m.notifyMu.Unlock()

	m.onChange(s)
}
