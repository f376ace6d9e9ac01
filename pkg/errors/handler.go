package errors

import (
	"fmt"
	"runtime"
	"strings"
	"sync/atomic"
	"time"
)

// handlerBox lets an interface value live in an atomic.Pointer.
type handlerBox struct{ h ErrorHandler }

var current atomic.Pointer[handlerBox]

// SetHandler installs h as the process-wide error handler. A nil handler
// restores the default, a [LogHandler] writing through slog.Default().
func SetHandler(h ErrorHandler) {
	if h == nil {
		current.Store(nil)
		return
	}
	current.Store(&handlerBox{h: h})
}

// Handler returns the installed error handler.
func Handler() ErrorHandler {
	if b := current.Load(); b != nil {
		return b.h
	}
	return defaultHandler
}

var defaultHandler = &LogHandler{}

// Report stamps err with the current time if unset and passes it to the
// installed handler.
func Report(err *WeftError) {
	if err == nil {
		return
	}
	stamp(&err.Timestamp)
	Handler().HandleError(err)
}

// ReportPanic is [Report] for recovered panics.
func ReportPanic(err *PanicError) {
	if err == nil {
		return
	}
	stamp(&err.Timestamp)
	Handler().HandlePanic(err)
}

func stamp(ts *time.Time) {
	if ts.IsZero() {
		*ts = time.Now()
	}
}

// Recover reports a panic in progress as a [PanicError]. It must be called
// directly by a deferred statement:
//
//	defer errors.Recover("engine.dispatch")
func Recover(op string) {
	if r := recover(); r != nil {
		reportRecovered(op, r)
	}
}

// RecoverWithCallback is [Recover] followed by callback(r).
func RecoverWithCallback(op string, callback func(r any)) {
	if r := recover(); r != nil {
		reportRecovered(op, r)
		if callback != nil {
			callback(r)
		}
	}
}

// reportRecovered reports an identity collision as a [WeftError] of kind
// [KindIdentity] and any other value as a [PanicError].
func reportRecovered(op string, r any) {
	if ie, ok := r.(*IdentityError); ok {
		Report(&WeftError{
			Op:         op,
			Kind:       KindIdentity,
			Err:        ie,
			StackTrace: CaptureStack(),
		})
		return
	}
	ReportPanic(&PanicError{
		Op:         op,
		Value:      r,
		StackTrace: CaptureStack(),
		Timestamp:  time.Now(),
	})
}

// maxStackDepth bounds the frames CaptureStack records.
const maxStackDepth = 32

// CaptureStack formats the calling goroutine's stack, one "function\n\tfile:line"
// entry per frame, starting at the caller of CaptureStack's caller.
func CaptureStack() string {
	var pcs [maxStackDepth]uintptr
	n := runtime.Callers(3, pcs[:])
	if n == 0 {
		return ""
	}

	var sb strings.Builder
	frames := runtime.CallersFrames(pcs[:n])
	for {
		f, more := frames.Next()
		fmt.Fprintf(&sb, "%s\n\t%s:%d\n", f.Function, f.File, f.Line)
		if !more {
			return sb.String()
		}
	}
}
