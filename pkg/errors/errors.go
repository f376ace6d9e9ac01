// Package errors provides structured error handling for weft.
//
// Programming errors in the description (an identity collision, a layout
// request before the first build) are raised as panics carrying one of the
// typed errors below. Recoverable conditions are reported through the global
// [ErrorHandler].
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindIdentity indicates two different structural types claimed the same call position.
	KindIdentity
	// KindMissingRoot indicates a phase ran before the tree had a root node.
	KindMissingRoot
	// KindConvergence indicates the build loop exceeded its configured pass limit.
	KindConvergence
	// KindExtraRoots indicates the description built more than one top-level node.
	KindExtraRoots
	// KindPanic indicates a recovered panic.
	KindPanic
	// KindConfig indicates invalid configuration.
	KindConfig
)

func (k ErrorKind) String() string {
	switch k {
	case KindIdentity:
		return "identity"
	case KindMissingRoot:
		return "missing_root"
	case KindConvergence:
		return "convergence"
	case KindExtraRoots:
		return "extra_roots"
	case KindPanic:
		return "panic"
	case KindConfig:
		return "config"
	default:
		return "unknown"
	}
}

// WeftError represents a structured error reported by the engine.
type WeftError struct {
	// Op is the operation that failed (e.g., "engine.Frame").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *WeftError) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *WeftError) Unwrap() error {
	return e.Err
}

// IdentityError is raised when a retained entry at a matched position holds
// a different structural type than the description expects.
type IdentityError struct {
	// Position is the call position that collided, formatted as file:line.
	Position string
	// Expected is the type the current description asked for.
	Expected string
	// Actual is the type already retained at that position.
	Actual string
}

func (e *IdentityError) Error() string {
	return fmt.Sprintf("identity collision at %s: expected %s, found %s", e.Position, e.Expected, e.Actual)
}

// MissingRootError is raised when event, layout or paint runs on a tree that
// was never built.
type MissingRootError struct {
	Op string
}

func (e *MissingRootError) Error() string {
	return fmt.Sprintf("%s: tree has no root node", e.Op)
}

// ExtraRootsError reports a description that built more than one top-level
// node. Only the first one takes part in event, layout and paint.
type ExtraRootsError struct {
	Count int
}

func (e *ExtraRootsError) Error() string {
	return fmt.Sprintf("description built %d top-level nodes; only the first is used", e.Count)
}

// ConvergenceError reports a frame whose build loop hit the pass limit.
type ConvergenceError struct {
	// Passes is the number of passes that ran.
	Passes int
	// Limit is the configured maximum.
	Limit int
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("build did not converge after %d passes (limit %d)", e.Passes, e.Limit)
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "engine.HandleEvent").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap exposes the panic value when it is itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// ErrorHandler receives errors reported by the engine.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *WeftError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
