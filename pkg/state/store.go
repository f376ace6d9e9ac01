package state

import (
	"github.com/go-drift/weft/pkg/core"
	"github.com/go-drift/weft/pkg/key"
)

// Store is retained state of type T updated by messages of type M.
//
// Messages pushed during a pass are queued and folded into the state, in
// push order, at the start of the next pass that reaches the store. Content
// therefore never observes a half-applied queue.
type Store[T, M any] struct {
	state T
	queue []M
}

// State returns the current state. Callers must not modify it; push a
// message instead.
func (s *Store[T, M]) State() T { return s.state }

// Push queues msg for the reducer.
func (s *Store[T, M]) Push(msg M) {
	s.queue = append(s.queue, msg)
}

// Pending returns the number of queued messages.
func (s *Store[T, M]) Pending() int { return len(s.queue) }

func (s *Store[T, M]) drain(reduce func(state *T, msg M)) {
	for len(s.queue) > 0 {
		msg := s.queue[0]
		s.queue = s.queue[1:]
		reduce(&s.state, msg)
	}
	s.queue = nil
}

// UseStore retains a [Store] initialized with init. Each pass first applies
// every queued message through reduce, then runs content.
//
// Pushing a message does not by itself schedule a pass. Pushes normally
// happen in response to an action returned by [core.Build], and consuming an
// action already causes another pass.
func UseStore[T, M any](cx *core.Cx, init func() T, reduce func(state *T, msg M), content func(cx *core.Cx, store *Store[T, M])) {
	UseStoreAt(cx, key.Caller(1), init, reduce, content)
}

// UseStoreAt is [UseStore] at an explicit position.
func UseStoreAt[T, M any](cx *core.Cx, pos key.Position, init func() T, reduce func(state *T, msg M), content func(cx *core.Cx, store *Store[T, M])) {
	core.UseState(cx, pos, func() Store[T, M] {
		return Store[T, M]{state: init()}
	}, func(cx *core.Cx, s *Store[T, M]) {
		s.drain(reduce)
		content(cx, s)
	})
}
