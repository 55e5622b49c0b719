package bytecode

import "testing"

func TestBufferAppendAndRead(t *testing.T) {
	b := NewBuffer(0)
	b.PutByte(0x7f)
	b.PutU16(0x1234)
	b.PutU32(0xdeadbeef)
	if b.Len() != 1+2+4 {
		t.Fatalf("len = %d", b.Len())
	}
	if got := b.U16At(1); got != 0x1234 {
		t.Fatalf("U16At = %#x", got)
	}
	if got := b.U32At(3); got != 0xdeadbeef {
		t.Fatalf("U32At = %#x", got)
	}
	if b.HasError() {
		t.Fatal("unexpected error")
	}
}

func TestBufferBackpatch(t *testing.T) {
	b := NewBuffer(0)
	b.PutByte(byte(OpGoto))
	patchAt := b.Len()
	b.PutU32(0) // placeholder relative offset
	b.PutByte(byte(OpMatch))
	target := int32(b.Len() - patchAt - 4)
	b.SetU32At(patchAt, uint32(target))
	if got := int32(b.U32At(patchAt)); got != target {
		t.Fatalf("backpatched offset = %d, want %d", got, target)
	}
}

func TestBufferInsertZeros(t *testing.T) {
	b := NewBuffer(0)
	b.PutBytes([]byte{1, 2, 3, 4})
	b.InsertZeros(2, 2)
	want := []byte{1, 2, 0, 0, 3, 4}
	got := b.Bytes()
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("byte %d = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestBufferTruncate(t *testing.T) {
	b := NewBuffer(0)
	b.PutBytes([]byte{1, 2, 3, 4, 5})
	b.Truncate(2)
	if b.Len() != 2 {
		t.Fatalf("len = %d", b.Len())
	}
}

func TestBufferOutOfRangeSetsError(t *testing.T) {
	b := NewBuffer(0)
	b.PutByte(1)
	b.SetU32At(10, 1) // well past the end
	if !b.HasError() {
		t.Fatal("expected HasError after out-of-range write")
	}
}
