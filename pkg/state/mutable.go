// Package state provides the two common shapes of retained state on top of
// [core.UseState]: a mutable cell and a store with a reducer.
//
// Both are keyed by the call position of the hook, so a hook called from a
// loop should use the At variant with a position that carries a local
// discriminator:
//
//	for _, item := range items {
//	    state.UseMutableAt(cx, key.Caller(0).With(item.ID), func() bool { return false },
//	        func(cx *core.Cx, open *bool) { ... })
//	}
package state

import (
	"github.com/go-drift/weft/pkg/core"
	"github.com/go-drift/weft/pkg/key"
)

// UseMutable retains a value of type T, initialized to its zero value, and
// passes a pointer to it to content. Writes through the pointer are seen by
// the next build pass.
func UseMutable[T any](cx *core.Cx, content func(cx *core.Cx, value *T)) {
	UseMutableAt(cx, key.Caller(1), func() T {
		var zero T
		return zero
	}, content)
}

// UseMutableWith is like [UseMutable] but initializes the value with init
// the first time the hook is reached.
func UseMutableWith[T any](cx *core.Cx, init func() T, content func(cx *core.Cx, value *T)) {
	UseMutableAt(cx, key.Caller(1), init, content)
}

// UseMutableAt is [UseMutableWith] at an explicit position.
func UseMutableAt[T any](cx *core.Cx, pos key.Position, init func() T, content func(cx *core.Cx, value *T)) {
	core.UseState(cx, pos, init, content)
}
