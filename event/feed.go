// Package event implements the observer surface spec.md §9 describes: "the
// source pattern of multicast delegates maps to an observer interface: a
// list of subscribers invoked synchronously in subscription order". It is
// grounded on go-ethereum's event.Feed/event.Subscription shape, narrowed
// to the synchronous, typed, in-order delivery this module's branch driver
// needs — no backpressure or fan-out channel plumbing, since every
// subscriber here runs on the driver's own goroutine.
package event

import (
	"fmt"
	"sync"
)

// Feed multicasts values of type T to every subscriber, in subscription
// order, on the caller's goroutine.
type Feed[T any] struct {
	mu   sync.Mutex
	subs []*subscription[T]
	next int
}

type subscription[T any] struct {
	id     int
	fn     func(T) error
	closed bool
}

// Subscription lets a caller stop receiving events from the Feed that
// created it.
type Subscription interface {
	Unsubscribe()
}

func (s *subscription[T]) Unsubscribe() {
	s.closed = true
}

// Subscribe registers fn to be called, in order, for every value sent on
// the feed until the returned Subscription is unsubscribed. fn must not
// mutate world state (spec.md §9); if it returns an error or panics, Send
// reports that as the event's failure and stops notifying later
// subscribers for that value.
func (f *Feed[T]) Subscribe(fn func(T) error) Subscription {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.next++
	sub := &subscription[T]{id: f.next, fn: fn}
	f.subs = append(f.subs, sub)
	return sub
}

// Send delivers v to every live subscriber in subscription order,
// synchronously, returning the first error (including a recovered panic,
// converted to an error) any subscriber produces. Per spec.md §9, an
// observer exception aborts the branch — the branch driver treats a
// non-nil return from Send as a fatal failure and restores its checkpoint.
func (f *Feed[T]) Send(v T) (n int, err error) {
	f.mu.Lock()
	live := make([]*subscription[T], 0, len(f.subs))
	for _, sub := range f.subs {
		if !sub.closed {
			live = append(live, sub)
		}
	}
	f.subs = live
	snapshot := append([]*subscription[T](nil), live...)
	f.mu.Unlock()

	for _, sub := range snapshot {
		if sub.closed {
			continue
		}
		if callErr := callSafely(sub.fn, v); callErr != nil {
			return n, callErr
		}
		n++
	}
	return n, nil
}

func callSafely[T any](fn func(T) error, v T) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("event subscriber panicked: %v", r)
		}
	}()
	return fn(v)
}
