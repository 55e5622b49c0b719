package ecmaregex

import "testing"

func TestFindIterNonOverlapping(t *testing.T) {
	re := MustCompile(`[0-9]+`, "")
	it := re.FindIter("a1 b22 c333")

	var matches []string
	for {
		m, _, ok := it.Next()
		if !ok {
			break
		}
		matches = append(matches, m)
	}

	want := []string{"1", "22", "333"}
	if len(matches) != len(want) {
		t.Fatalf("FindIter produced %v, want %v", matches, want)
	}
	for i := range want {
		if matches[i] != want[i] {
			t.Fatalf("FindIter produced %v, want %v", matches, want)
		}
	}
}

func TestFindIterGroups(t *testing.T) {
	re := MustCompile(`(\w)=(\d)`, "")
	it := re.FindIter("a=1 b=2")

	m, groups, ok := it.Next()
	if !ok {
		t.Fatal("expected a first match")
	}
	if m != "a=1" || groups[0] != "a" || groups[1] != "1" {
		t.Fatalf("first match = %q groups %v, want \"a=1\" [a 1]", m, groups)
	}

	m, groups, ok = it.Next()
	if !ok {
		t.Fatal("expected a second match")
	}
	if m != "b=2" || groups[0] != "b" || groups[1] != "2" {
		t.Fatalf("second match = %q groups %v, want \"b=2\" [b 2]", m, groups)
	}

	if _, _, ok = it.Next(); ok {
		t.Fatal("expected iterator to be exhausted")
	}
}

func TestFindIterZeroWidthAdvances(t *testing.T) {
	re := MustCompile(`a*`, "")
	it := re.FindIter("ba")

	seen := 0
	for {
		_, _, ok := it.NextIndex()
		if !ok {
			break
		}
		seen++
		if seen > 10 {
			t.Fatal("iterator did not terminate on zero-width matches")
		}
	}
	if seen == 0 {
		t.Fatal("expected at least one match")
	}
}

func TestFindUTF16Iter(t *testing.T) {
	re := MustCompile(`[0-9]+`, "")
	// "a1 b22" as UTF-16 code units.
	input := []uint16{'a', '1', ' ', 'b', '2', '2'}
	it := re.FindUTF16Iter(input, false)

	start, end, _, ok := it.NextIndex()
	if !ok || start != 1 || end != 2 {
		t.Fatalf("first match = (%d,%d,%v), want (1,2,true)", start, end, ok)
	}
	start, end, _, ok = it.NextIndex()
	if !ok || start != 4 || end != 6 {
		t.Fatalf("second match = (%d,%d,%v), want (4,6,true)", start, end, ok)
	}
	if _, _, _, ok = it.NextIndex(); ok {
		t.Fatal("expected iterator to be exhausted")
	}
}
