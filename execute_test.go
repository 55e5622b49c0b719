package ecmaregex

import (
	"reflect"
	"testing"

	"github.com/coregx/ecmaregex/vm"
)

func TestMatchUTF16(t *testing.T) {
	re := MustCompile(`[0-9]+`, "")
	input := []uint16{'a', 'g', 'e', ' ', '4', '2'}
	if !re.MatchUTF16(input, false) {
		t.Fatal("MatchUTF16() = false, want true")
	}
	noDigits := []uint16{'n', 'o', 'n', 'e'}
	if re.MatchUTF16(noDigits, false) {
		t.Fatal("MatchUTF16() = true, want false")
	}
}

func TestFindUTF16(t *testing.T) {
	re := MustCompile(`[0-9]+`, "")
	input := []uint16{'a', 'g', 'e', ' ', '4', '2'}
	start, end, ok := re.FindUTF16(input, false)
	if !ok || start != 4 || end != 6 {
		t.Fatalf("FindUTF16() = (%d,%d,%v), want (4,6,true)", start, end, ok)
	}
}

func TestFindUTF16SubmatchIndex(t *testing.T) {
	re := MustCompile(`(\w)=(\d)`, "")
	input := []uint16{'a', '=', '1'}
	got := re.FindUTF16SubmatchIndex(input, false)
	want := []int{0, 3, 0, 1, 2, 3}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("FindUTF16SubmatchIndex() = %v, want %v", got, want)
	}
}

func TestFindUTF16SubmatchIndexNoMatch(t *testing.T) {
	re := MustCompile(`[0-9]+`, "")
	input := []uint16{'n', 'o', 'n', 'e'}
	if got := re.FindUTF16SubmatchIndex(input, false); got != nil {
		t.Fatalf("FindUTF16SubmatchIndex() = %v, want nil", got)
	}
}

func TestExecuteAtByteCursor(t *testing.T) {
	re := MustCompile(`ab`, "")
	cur := vm.NewByteCursor([]byte("xabxab"))

	start, end, _, ok := re.ExecuteAt(cur, 0)
	if !ok || start != 1 || end != 3 {
		t.Fatalf("ExecuteAt(0) = (%d,%d,%v), want (1,3,true)", start, end, ok)
	}

	start, end, _, ok = re.ExecuteAt(cur, 2)
	if !ok || start != 4 || end != 6 {
		t.Fatalf("ExecuteAt(2) = (%d,%d,%v), want (4,6,true)", start, end, ok)
	}
}

func TestExecuteAtUCS2Cursor(t *testing.T) {
	re := MustCompile(`[0-9]+`, "")
	cur := vm.NewUCS2Cursor([]uint16{'x', '4', '2', 'y'})

	start, end, _, ok := re.ExecuteAt(cur, 0)
	if !ok || start != 1 || end != 3 {
		t.Fatalf("ExecuteAt(0) = (%d,%d,%v), want (1,3,true)", start, end, ok)
	}
}
