package bitparallel

import (
	"strings"
	"testing"

	"github.com/coregx/ecmaregex/bytecode"
	"github.com/coregx/ecmaregex/parser"
	"github.com/coregx/ecmaregex/vm"
)

func mustCompile(t *testing.T, pattern string, flags bytecode.Flags) *bytecode.Program {
	t.Helper()
	prog, err := parser.Compile(pattern, flags)
	if err != nil {
		t.Fatalf("parser.Compile(%q) error = %v", pattern, err)
	}
	return prog
}

func TestCanHandleRejectsLoopRegisters(t *testing.T) {
	prog := mustCompile(t, `a{2,4}`, 0)
	if CanHandle(prog) {
		t.Fatal("CanHandle() = true for a counted repeat using loop registers")
	}
}

func TestCanHandleRejectsBackreferences(t *testing.T) {
	prog := mustCompile(t, `(a)\1`, 0)
	if CanHandle(prog) {
		t.Fatal("CanHandle() = true for a pattern with a backreference")
	}
}

func TestCanHandleRejectsOversizedProgram(t *testing.T) {
	prog := mustCompile(t, strings.Repeat("a?", 200), 0)
	if CanHandle(prog) {
		t.Fatal("CanHandle() = true for a program over MaxStates")
	}
}

func TestCanHandleAcceptsSimpleCaptures(t *testing.T) {
	prog := mustCompile(t, `(a)(b)c`, 0)
	if !CanHandle(prog) {
		t.Fatal("CanHandle() = false for a small capturing pattern")
	}
}

func TestExecPlainLiteral(t *testing.T) {
	prog := mustCompile(t, `hello`, 0)
	m := New(prog)
	cur := vm.NewByteCursor([]byte("say hello there"))

	res, caps := m.Exec(cur, 4)
	if res != vm.Match {
		t.Fatalf("Exec() = %v, want Match", res)
	}
	if caps[0] != 4 || caps[1] != 9 {
		t.Fatalf("caps = %v, want [4 9]", caps)
	}
}

func TestExecAnchoredMismatch(t *testing.T) {
	prog := mustCompile(t, `hello`, 0)
	m := New(prog)
	cur := vm.NewByteCursor([]byte("say hello there"))

	res, _ := m.Exec(cur, 0)
	if res != vm.NoMatch {
		t.Fatalf("Exec() = %v, want NoMatch", res)
	}
}

func TestExecAlternationPriority(t *testing.T) {
	prog := mustCompile(t, `a|ab`, 0)
	m := New(prog)
	cur := vm.NewByteCursor([]byte("ab"))

	res, caps := m.Exec(cur, 0)
	if res != vm.Match {
		t.Fatalf("Exec() = %v, want Match", res)
	}
	if caps[0] != 0 || caps[1] != 1 {
		t.Fatalf("caps = %v, want [0 1] (first alternative wins)", caps)
	}
}

func TestExecCaptureGroups(t *testing.T) {
	prog := mustCompile(t, `(a)(b)c`, 0)
	m := New(prog)
	cur := vm.NewByteCursor([]byte("abc"))

	res, caps := m.Exec(cur, 0)
	if res != vm.Match {
		t.Fatalf("Exec() = %v, want Match", res)
	}
	want := []int{0, 3, 0, 1, 1, 2}
	if len(caps) != len(want) {
		t.Fatalf("caps = %v, want %v", caps, want)
	}
	for i := range want {
		if caps[i] != want[i] {
			t.Fatalf("caps = %v, want %v", caps, want)
		}
	}
}

func TestExecLineAnchors(t *testing.T) {
	prog := mustCompile(t, `^line2$`, bytecode.FlagMultiline)
	m := New(prog)
	cur := vm.NewByteCursor([]byte("line1\nline2\nline3"))

	res, caps := m.Exec(cur, 6)
	if res != vm.Match || caps[0] != 6 || caps[1] != 11 {
		t.Fatalf("Exec() = %v caps %v, want Match [6 11]", res, caps)
	}
}
