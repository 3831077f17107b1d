// Package handoff provides an unbounded, non-blocking queue that hands values
// from background goroutines to a polling consumer.
package handoff

import (
	"errors"
	"sync"
	"sync/atomic"
)

var (
	// ErrEmpty is returned by TryReceive when nothing is queued yet.
	ErrEmpty = errors.New("handoff: queue is empty")
	// ErrClosed is returned by TryReceive once every sender is closed and the
	// queue is drained. Nothing will ever arrive again.
	ErrClosed = errors.New("handoff: all senders closed")
	// ErrDisconnected is returned by Send once the receiver is closed.
	ErrDisconnected = errors.New("handoff: receiver closed")
)

// shared is the state both ends point to.
type shared[T any] struct {
	mu           sync.Mutex
	queue        []T
	head         int
	senders      int
	receiverGone bool
}

// Sender is the producing end. Use Clone for additional producers.
type Sender[T any] struct {
	q      *shared[T]
	closed atomic.Bool
}

// Receiver is the consuming end. It must be used from a single goroutine.
type Receiver[T any] struct {
	q *shared[T]
}

// New creates a connected sender/receiver pair.
func New[T any]() (*Sender[T], *Receiver[T]) {
	q := &shared[T]{senders: 1}
	return &Sender[T]{q: q}, &Receiver[T]{q: q}
}

// Send enqueues v without blocking. It fails only when the receiver is closed
// or this sender was closed.
func (s *Sender[T]) Send(v T) error {
	if s.closed.Load() {
		return ErrDisconnected
	}

	s.q.mu.Lock()
	defer s.q.mu.Unlock()
	if s.q.receiverGone {
		return ErrDisconnected
	}
	s.q.queue = append(s.q.queue, v)
	return nil
}

// Clone returns a new sender on the same queue. The queue reports ErrClosed
// only after every sender is closed.
func (s *Sender[T]) Clone() *Sender[T] {
	s.q.mu.Lock()
	s.q.senders++
	s.q.mu.Unlock()
	return &Sender[T]{q: s.q}
}

// Close releases this sender. Calling it more than once has no effect.
func (s *Sender[T]) Close() {
	if !s.closed.CompareAndSwap(false, true) {
		return
	}
	s.q.mu.Lock()
	s.q.senders--
	s.q.mu.Unlock()
}

// TryReceive returns the oldest queued value without blocking.
// It returns ErrEmpty when nothing is queued and senders remain, and ErrClosed
// when nothing is queued and every sender is closed.
func (r *Receiver[T]) TryReceive() (T, error) {
	var zero T

	r.q.mu.Lock()
	defer r.q.mu.Unlock()

	if r.q.head < len(r.q.queue) {
		v := r.q.queue[r.q.head]
		r.q.queue[r.q.head] = zero
		r.q.head++
		if r.q.head == len(r.q.queue) {
			r.q.queue = r.q.queue[:0]
			r.q.head = 0
		}
		return v, nil
	}
	if r.q.receiverGone || r.q.senders <= 0 {
		return zero, ErrClosed
	}
	return zero, ErrEmpty
}

// Len returns the number of queued values.
func (r *Receiver[T]) Len() int {
	r.q.mu.Lock()
	defer r.q.mu.Unlock()
	return len(r.q.queue) - r.q.head
}

// Close disconnects the receiver and drops anything still queued.
// Senders observe ErrDisconnected on their next Send.
func (r *Receiver[T]) Close() {
	r.q.mu.Lock()
	defer r.q.mu.Unlock()
	r.q.receiverGone = true
	r.q.queue = nil
	r.q.head = 0
}
