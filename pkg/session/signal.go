package session

import (
	"sync"

	"github.com/grafov/bcast"
)

// signal is the zero-payload authorization-changed event. Listeners must
// treat it purely as "re-read the store now".
type signal struct{}

// Bus broadcasts the authorization-changed signal to any number of
// subscribers within the same process. It carries no payload: every writer
// of the session store must call Notify in the same synchronous turn as
// the write, so a subscriber never observes a signal before the write it
// describes is visible.
type Bus struct {
	group *bcast.Group
}

// NewBus creates a bus and starts its broadcast loop.
func NewBus() *Bus {
	group := bcast.NewGroup()
	go group.Broadcast(0)
	return &Bus{group: group}
}

// Notify broadcasts the authorization-changed signal to all subscribers.
func (b *Bus) Notify() {
	b.group.Send(signal{})
}

// Subscribe joins the bus. The caller owns the subscription and must
// Close it when done listening, or the member leaks across remounts.
func (b *Bus) Subscribe() *Subscription {
	sub := &Subscription{
		C:      make(chan struct{}, 1),
		member: b.group.Join(),
		quit:   make(chan struct{}),
	}
	go sub.pump()
	return sub
}

// Close shuts the bus down. Notify and Subscribe must not be called after
// Close.
func (b *Bus) Close() {
	b.group.Close()
}

// Subscription is one listener's membership on the Bus.
type Subscription struct {
	// C receives one value per pending signal and closes when the
	// subscription does. Bursts coalesce: a signal that arrives while C
	// already holds one is dropped, because the pending re-read subsumes
	// it.
	C chan struct{}

	member *bcast.Member
	quit   chan struct{}
	once   sync.Once
}

// pump forwards broadcasts from the group member onto C.
func (s *Subscription) pump() {
	defer close(s.C)
	for {
		select {
		case <-s.quit:
			return
		case <-s.member.Read:
			select {
			case s.C <- struct{}{}:
			default:
			}
		}
	}
}

// Close leaves the bus and stops forwarding. Safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		close(s.quit)
		s.member.Close()
	})
}
