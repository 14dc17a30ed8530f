// Package queue provides an ordered, closable FIFO channel with unbounded
// capacity.
//
// Chan decouples a synchronous producer from an asynchronous consumer: Send
// never blocks and never drops, Recv blocks while the channel is open and
// empty, and Close makes Recv drain the remaining items before reporting
// end-of-stream.
//
// Usage:
//
//	ch := queue.NewChan[string]()
//	ch.Send("hello")
//	ch.Close()
//	v, err := ch.Recv(ctx) // "hello", nil
//	_, err = ch.Recv(ctx)  // zero value, queue.ErrClosed
package queue

import (
	"context"
	"errors"
	"sync"
)

// ErrClosed is returned by Send on a closed channel, and by Recv once the
// channel is closed and all items have been drained.
var ErrClosed = errors.New("queue: channel closed")

// Chan is an ordered FIFO channel with unbounded capacity and a closed flag.
//
// Unlike a native Go channel, Send cannot block the producer, so the producer
// may run arbitrarily far ahead of the consumer. Items are delivered in Send
// order, exactly once.
type Chan[T any] struct {
	mu     sync.Mutex
	items  []T
	closed bool
	wake   chan struct{} // closed and replaced on every Send/Close
}

// NewChan creates an open, empty channel.
func NewChan[T any]() *Chan[T] {
	return &Chan[T]{
		wake: make(chan struct{}),
	}
}

// Send enqueues v. It never blocks and never drops; the only failure is
// sending on a closed channel.
func (c *Chan[T]) Send(v T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	c.items = append(c.items, v)
	c.broadcast()
	return nil
}

// Recv returns the next item in Send order. It blocks while the channel is
// open and empty. Once the channel is closed it keeps returning buffered
// items until they run out, then returns ErrClosed.
//
// If ctx is cancelled while waiting, Recv returns ctx.Err() and no item is
// consumed; a later Recv still observes it.
func (c *Chan[T]) Recv(ctx context.Context) (T, error) {
	var zero T
	for {
		c.mu.Lock()
		if len(c.items) > 0 {
			v := c.items[0]
			c.items = c.items[1:]
			c.mu.Unlock()
			return v, nil
		}
		if c.closed {
			c.mu.Unlock()
			return zero, ErrClosed
		}
		wake := c.wake
		c.mu.Unlock()

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-wake:
		}
	}
}

// Close marks the channel closed. Items already sent remain receivable.
// Closing an already-closed channel is a no-op.
func (c *Chan[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	c.broadcast()
}

// Closed reports whether Close has been called.
func (c *Chan[T]) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Len returns the number of items sent but not yet received.
func (c *Chan[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// broadcast wakes every pending Recv. Callers must hold mu.
func (c *Chan[T]) broadcast() {
	close(c.wake)
	c.wake = make(chan struct{})
}
