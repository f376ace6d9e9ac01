package key

import (
	"strings"
	"testing"
)

func callerLine() Position {
	return Caller(1)
}

func TestCallerIsStablePerSite(t *testing.T) {
	var got []Position
	for i := 0; i < 3; i++ {
		got = append(got, callerLine())
	}
	if got[0] != got[1] || got[1] != got[2] {
		t.Errorf("same call site produced different positions: %v", got)
	}

	a := callerLine()
	b := callerLine()
	if a == b {
		t.Errorf("different call sites produced the same position %v", a)
	}
	if !strings.HasSuffix(a.File, "key_test.go") {
		t.Errorf("File = %q, want key_test.go", a.File)
	}
}

func TestWithDiscriminator(t *testing.T) {
	base := At("app.go", 10)
	if base.With(1) == base.With(2) {
		t.Error("distinct locals compared equal")
	}
	if base.With(1) != base.With(1) {
		t.Error("equal locals compared unequal")
	}
	if base.With(nil) != base {
		t.Error("With(nil) should leave the position unchanged")
	}
	if got, want := base.With("row").String(), "app.go:10[row]"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestKeyOf(t *testing.T) {
	pos := Named("root")
	a := Of[int](pos)
	b := Of[string](pos)
	if a.Pos != b.Pos {
		t.Fatal("positions should match")
	}
	if a.Type == b.Type {
		t.Error("different types produced equal keys")
	}
	if got := a.String(); got != "int(root)" {
		t.Errorf("String() = %q", got)
	}
}
