package strategy

import (
	"testing"

	"github.com/coregx/ecmaregex/bytecode"
	"github.com/coregx/ecmaregex/vm"
)

func TestFindMultiStringAlternation(t *testing.T) {
	e, err := Compile("cat|dog|bird", 0)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	cur := vm.NewByteCursor([]byte("I have a dog at home"))
	start, end, ok := e.Find(cur)
	if !ok {
		t.Fatal("Find() = false, want true")
	}
	if got := string(cur.Slice(start, end)); got != "dog" {
		t.Fatalf("match = %q, want \"dog\"", got)
	}
}

func TestFindPlainLiteral(t *testing.T) {
	e, err := Compile("hello", 0)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	cur := vm.NewByteCursor([]byte("say hello world"))
	start, end, ok := e.Find(cur)
	if !ok || string(cur.Slice(start, end)) != "hello" {
		t.Fatalf("Find() = (%d, %d, %v), want a match on \"hello\"", start, end, ok)
	}
}

func TestFindNoMatch(t *testing.T) {
	e, err := Compile("xyz", 0)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	cur := vm.NewByteCursor([]byte("abc def"))
	if _, _, ok := e.Find(cur); ok {
		t.Fatal("Find() = true, want false")
	}
}

func TestCapturesGroups(t *testing.T) {
	e, err := Compile("(a+)(b+)", 0)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	cur := vm.NewByteCursor([]byte("xx aaabb yy"))
	caps, ok := e.Captures(cur)
	if !ok {
		t.Fatal("Captures() = false, want true")
	}
	if got := string(cur.Slice(caps[0], caps[1])); got != "aaabb" {
		t.Fatalf("whole match = %q, want \"aaabb\"", got)
	}
	if got := string(cur.Slice(caps[2], caps[3])); got != "aaa" {
		t.Fatalf("group 1 = %q, want \"aaa\"", got)
	}
	if got := string(cur.Slice(caps[4], caps[5])); got != "bb" {
		t.Fatalf("group 2 = %q, want \"bb\"", got)
	}
}

func TestIsMatch(t *testing.T) {
	e, err := Compile("[0-9]+", 0)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if !e.IsMatch(vm.NewByteCursor([]byte("room 42"))) {
		t.Fatal("IsMatch() = false, want true")
	}
	if e.IsMatch(vm.NewByteCursor([]byte("no digits here"))) {
		t.Fatal("IsMatch() = true, want false")
	}
}

func TestStickyRequiresMatchAtPosition(t *testing.T) {
	e, err := Compile("ab", bytecode.FlagSticky)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	cur := vm.NewByteCursor([]byte("xab"))
	if _, _, _, ok := e.FindAt(cur, 0, nil); ok {
		t.Fatal("sticky FindAt(0) = true, want false since \"ab\" starts at index 1")
	}
	start, end, _, ok := e.FindAt(cur, 1, nil)
	if !ok || start != 1 || end != 3 {
		t.Fatalf("sticky FindAt(1) = (%d, %d, %v), want (1, 3, true)", start, end, ok)
	}
}

func TestFindIterNonOverlapping(t *testing.T) {
	e, err := Compile("[0-9]+", 0)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	cur := vm.NewByteCursor([]byte("a1 b22 c333"))
	it := e.FindIter(cur, nil)

	var matches []string
	for {
		start, end, _, ok := it.Next()
		if !ok {
			break
		}
		matches = append(matches, string(cur.Slice(start, end)))
	}
	want := []string{"1", "22", "333"}
	if len(matches) != len(want) {
		t.Fatalf("matches = %v, want %v", matches, want)
	}
	for i := range want {
		if matches[i] != want[i] {
			t.Fatalf("matches = %v, want %v", matches, want)
		}
	}
}

func TestFindIterZeroWidthAdvances(t *testing.T) {
	e, err := Compile("a*", 0)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	cur := vm.NewByteCursor([]byte("ba"))
	it := e.FindIter(cur, nil)

	seen := 0
	for i := 0; i < 10; i++ {
		_, _, _, ok := it.Next()
		if !ok {
			break
		}
		seen++
	}
	if seen == 0 {
		t.Fatal("FindIter() produced no matches for \"a*\" against \"ba\"")
	}
	if seen > 3 {
		t.Fatalf("FindIter() produced %d matches, iteration failed to terminate as expected", seen)
	}
}
