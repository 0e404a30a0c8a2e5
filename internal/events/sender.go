// internal/events/sender.go
package events

import (
	"errors"
	"sync"
)

// ErrClosed is returned by a sender after Close; stages treat it as a
// signal to stop producing, not as a failure.
var ErrClosed = errors.New("event stream closed")

// Sender delivers events in emission order.
type Sender interface {
	Send(Event) error
}

// ChanSender bridges pipeline stages to a transport goroutine over a
// buffered channel. Send after Close returns ErrClosed without panicking;
// Close is idempotent.
type ChanSender struct {
	ch     chan Event
	mu     sync.Mutex
	closed bool
}

func NewChanSender(buffer int) *ChanSender {
	return &ChanSender{ch: make(chan Event, buffer)}
}

// Events is the receive side for the transport.
func (s *ChanSender) Events() <-chan Event {
	return s.ch
}

func (s *ChanSender) Send(e Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.ch <- e
	return nil
}

// Close stops the stream. The receive channel is closed so the transport's
// range loop terminates.
func (s *ChanSender) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.ch)
}

// CaptureSender records every event for test assertions.
type CaptureSender struct {
	mu     sync.Mutex
	events []Event
}

func (s *CaptureSender) Send(e Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
	return nil
}

// Events returns a copy of everything sent so far.
func (s *CaptureSender) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}

// Types returns the ordered event type sequence.
func (s *CaptureSender) Types() []Type {
	s.mu.Lock()
	defer s.mu.Unlock()
	types := make([]Type, len(s.events))
	for i, e := range s.events {
		types[i] = e.Type
	}
	return types
}
