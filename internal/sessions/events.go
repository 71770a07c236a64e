package sessions

import (
	"sync"

	"github.com/vovakirdan/merge2048/internal/games/t2048"
)

// EventKind describes what happened to a hosted game.
type EventKind int

const (
	EventCreated EventKind = iota
	EventMoved
	EventWon
	EventOver
	EventClosed
)

func (k EventKind) String() string {
	switch k {
	case EventCreated:
		return "created"
	case EventMoved:
		return "moved"
	case EventWon:
		return "won"
	case EventOver:
		return "over"
	case EventClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Event is published to subscribers after each state change.
type Event struct {
	Session  ID
	Kind     EventKind
	Snapshot t2048.Snapshot
}

// Subscription receives events for every game hosted by a Manager.
type Subscription struct {
	events   chan Event
	done     chan struct{}
	doneOnce sync.Once
}

func newSubscription(bufferSize int) *Subscription {
	if bufferSize < 1 {
		bufferSize = 64
	}
	return &Subscription{
		events: make(chan Event, bufferSize),
		done:   make(chan struct{}),
	}
}

// Events returns the channel to receive events from.
func (s *Subscription) Events() <-chan Event {
	return s.events
}

// Done returns a channel that closes when the subscription ends.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

func (s *Subscription) close() {
	s.doneOnce.Do(func() {
		close(s.done)
	})
}

// send never blocks: when the buffer is full the oldest event is dropped.
func (s *Subscription) send(evt Event) {
	select {
	case <-s.done:
		return
	default:
	}

	select {
	case s.events <- evt:
	default:
		select {
		case <-s.events:
		default:
		}
		select {
		case s.events <- evt:
		default:
		}
	}
}
