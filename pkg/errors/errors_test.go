package errors

import (
	"bytes"
	stderrors "errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestWeftErrorString(t *testing.T) {
	err := &WeftError{
		Op:   "engine.Frame",
		Kind: KindConvergence,
		Err:  &ConvergenceError{Passes: 8, Limit: 8},
	}
	want := "engine.Frame [convergence]: build did not converge after 8 passes (limit 8)"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	var conv *ConvergenceError
	if !stderrors.As(err, &conv) || conv.Passes != 8 {
		t.Errorf("errors.As did not unwrap ConvergenceError: %v", conv)
	}
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindIdentity, "identity"},
		{KindMissingRoot, "missing_root"},
		{KindConvergence, "convergence"},
		{KindExtraRoots, "extra_roots"},
		{KindPanic, "panic"},
		{KindConfig, "config"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestIdentityErrorString(t *testing.T) {
	err := &IdentityError{Position: "app.go:12", Expected: "*widgets.Button", Actual: "*widgets.Label"}
	want := "identity collision at app.go:12: expected *widgets.Button, found *widgets.Label"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestPanicErrorString(t *testing.T) {
	err := &PanicError{Value: "test panic", Timestamp: time.Now()}
	if got, want := err.Error(), "panic: test panic"; got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}

	withOp := &PanicError{Op: "engine.HandleEvent", Value: &MissingRootError{Op: "layout"}}
	if got, want := withOp.Error(), "panic in engine.HandleEvent: layout: tree has no root node"; got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}
	var missing *MissingRootError
	if !stderrors.As(withOp, &missing) {
		t.Error("PanicError should unwrap an error panic value")
	}
}

func TestReport(t *testing.T) {
	var captured *WeftError
	handler := &testHandler{onError: func(err *WeftError) { captured = err }}

	SetHandler(handler)
	defer SetHandler(nil)

	Report(&WeftError{Op: "test.op", Kind: KindConfig, Err: stderrors.New("boom")})

	if captured == nil {
		t.Fatal("expected error to be captured")
	}
	if captured.Op != "test.op" {
		t.Errorf("Op = %q, want %q", captured.Op, "test.op")
	}
	if captured.Timestamp.IsZero() {
		t.Error("expected Timestamp to be set")
	}
}

func TestRecover(t *testing.T) {
	var captured *PanicError
	handler := &testHandler{onPanic: func(err *PanicError) { captured = err }}

	SetHandler(handler)
	defer SetHandler(nil)

	func() {
		defer Recover("test.recover")
		panic("intentional test panic")
	}()

	if captured == nil {
		t.Fatal("expected panic to be recovered and captured")
	}
	if captured.Value != "intentional test panic" {
		t.Errorf("Value = %v, want %q", captured.Value, "intentional test panic")
	}
	if captured.Op != "test.recover" {
		t.Errorf("Op = %q, want %q", captured.Op, "test.recover")
	}
	if captured.StackTrace == "" {
		t.Error("expected a stack trace")
	}
}

func TestRecoverIdentityCollision(t *testing.T) {
	var reported *WeftError
	var panicked bool
	SetHandler(&testHandler{
		onError: func(err *WeftError) { reported = err },
		onPanic: func(*PanicError) { panicked = true },
	})
	defer SetHandler(nil)

	collision := &IdentityError{Position: "app.go:3", Expected: "*a", Actual: "*b"}
	func() {
		defer Recover("engine.dispatch")
		panic(collision)
	}()

	if panicked {
		t.Error("identity collision was reported as a panic")
	}
	if reported == nil || reported.Kind != KindIdentity {
		t.Fatalf("reported = %+v, want kind identity", reported)
	}
	var ie *IdentityError
	if !stderrors.As(reported, &ie) || ie != collision {
		t.Errorf("reported error does not wrap the collision: %v", reported)
	}
	if reported.StackTrace == "" {
		t.Error("expected a stack trace")
	}
}

func TestExtraRootsErrorString(t *testing.T) {
	err := &ExtraRootsError{Count: 3}
	if got, want := err.Error(), "description built 3 top-level nodes; only the first is used"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestRecoverWithCallback(t *testing.T) {
	SetHandler(&testHandler{})
	defer SetHandler(nil)

	var got any
	func() {
		defer RecoverWithCallback("test.callback", func(r any) { got = r })
		panic(42)
	}()
	if got != 42 {
		t.Errorf("callback value = %v, want 42", got)
	}
}

func TestSetHandlerNil(t *testing.T) {
	SetHandler(&testHandler{})
	if _, ok := Handler().(*testHandler); !ok {
		t.Fatalf("Handler() = %T after SetHandler", Handler())
	}
	SetHandler(nil)
	if _, ok := Handler().(*LogHandler); !ok {
		t.Errorf("SetHandler(nil) should restore LogHandler, got %T", Handler())
	}
}

func TestLogHandler(t *testing.T) {
	var buf bytes.Buffer
	h := &LogHandler{Logger: slog.New(slog.NewTextHandler(&buf, nil))}

	h.HandleError(&WeftError{Op: "engine.Frame", Kind: KindConvergence, Err: stderrors.New("stuck")})
	h.HandlePanic(&PanicError{Op: "engine.Paint", Value: "bad"})

	out := buf.String()
	for _, want := range []string{"op=engine.Frame", "kind=convergence", "err=stuck", "op=engine.Paint", "value=bad"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

type testHandler struct {
	onError func(*WeftError)
	onPanic func(*PanicError)
}

func (h *testHandler) HandleError(err *WeftError) {
	if h.onError != nil {
		h.onError(err)
	}
}

func (h *testHandler) HandlePanic(err *PanicError) {
	if h.onPanic != nil {
		h.onPanic(err)
	}
}
