// Package key identifies nodes and state slots across build passes.
//
// A [Position] names the place in the description that produced an entry:
// the source location of the call plus an optional caller-supplied
// discriminator. A [Key] pairs a position with the structural type stored
// there. Two descriptions that reach the same position on consecutive passes
// refer to the same retained entry.
package key

import (
	"fmt"
	"path/filepath"
	"reflect"
	"runtime"
)

// Position is a call position token.
//
// Local must be comparable. Calls inside a loop share a source location, so
// callers that want per-iteration identity set Local (typically the loop
// variable or a domain id) with [Position.With].
type Position struct {
	File  string
	Line  int
	Local any
}

// Caller returns the position of the function that is skip frames above the
// caller of Caller. Caller(0) names the line that called Caller.
func Caller(skip int) Position {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return Position{File: "unknown"}
	}
	return Position{File: file, Line: line}
}

// At builds an explicit position.
func At(file string, line int) Position {
	return Position{File: file, Line: line}
}

// Named builds a position from a symbolic name rather than a source location.
func Named(name string) Position {
	return Position{File: name}
}

// With returns p with its local discriminator set to local.
// A nil local leaves p unchanged.
func (p Position) With(local any) Position {
	if local == nil {
		return p
	}
	p.Local = local
	return p
}

// IsZero reports whether p is the zero position.
func (p Position) IsZero() bool {
	return p == Position{}
}

func (p Position) String() string {
	s := filepath.Base(p.File)
	if p.Line > 0 {
		s = fmt.Sprintf("%s:%d", s, p.Line)
	}
	if p.Local != nil {
		s = fmt.Sprintf("%s[%v]", s, p.Local)
	}
	return s
}

// Key is a position together with the structural type stored there.
type Key struct {
	Pos  Position
	Type reflect.Type
}

// Of returns the key for a value of type T at pos.
func Of[T any](pos Position) Key {
	return Key{Pos: pos, Type: reflect.TypeFor[T]()}
}

// TypeName returns a printable name for the stored type.
func (k Key) TypeName() string {
	if k.Type == nil {
		return "<nil>"
	}
	return k.Type.String()
}

func (k Key) String() string {
	return fmt.Sprintf("%s(%s)", k.TypeName(), k.Pos)
}
