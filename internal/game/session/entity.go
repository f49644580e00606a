// Package session tracks connected players and delivers combat narration to
// them. The Manager implements the combat engine's Sink; per-player bridge
// entities decouple the engine's critical section from slow client writes.
package session

import (
	"fmt"
	"sync"
)

// BridgeEntity routes narration lines to a buffered channel the transport
// layer drains. Pushes never block the caller.
type BridgeEntity struct {
	uid    string
	lines  chan string
	mu     sync.Mutex
	closed bool
}

// NewBridgeEntity creates a BridgeEntity for the given entity ID.
//
// Precondition: uid must be non-empty.
func NewBridgeEntity(uid string, bufferSize int) *BridgeEntity {
	if bufferSize <= 0 {
		bufferSize = 64
	}
	return &BridgeEntity{
		uid:   uid,
		lines: make(chan string, bufferSize),
	}
}

// UID returns the entity's unique identifier.
func (e *BridgeEntity) UID() string {
	return e.uid
}

// Push enqueues a narration line.
//
// Postcondition: the line is enqueued, or an error when the entity is closed
// or its buffer is full. Never blocks.
func (e *BridgeEntity) Push(line string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return fmt.Errorf("entity %s is closed", e.uid)
	}
	select {
	case e.lines <- line:
		return nil
	default:
		return fmt.Errorf("entity %s line buffer full", e.uid)
	}
}

// Lines returns the read-only line channel the transport goroutine drains.
func (e *BridgeEntity) Lines() <-chan string {
	return e.lines
}

// Close marks the entity closed and closes the line channel.
//
// Postcondition: further Push calls return an error. Idempotent.
func (e *BridgeEntity) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.closed {
		e.closed = true
		close(e.lines)
	}
	return nil
}

// IsClosed reports whether the entity has been closed.
func (e *BridgeEntity) IsClosed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closed
}
