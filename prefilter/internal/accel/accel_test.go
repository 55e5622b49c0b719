package accel

import "testing"

func TestIndexByte(t *testing.T) {
	cases := []struct {
		name string
		s    string
		b    byte
		want int
	}{
		{"empty", "", 'a', -1},
		{"not found short", "xyz", 'q', -1},
		{"found short", "xyz", 'y', 1},
		{"found at chunk boundary", "abcdefgh", 'h', 7},
		{"found across chunks", "abcdefghijklmnop", 'n', 13},
		{"not found long", "abcdefghijklmnopqrstuvwxyz", '0', -1},
		{"first byte", "zzzzzzzzzz", 'z', 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IndexByte([]byte(tc.s), tc.b); got != tc.want {
				t.Fatalf("IndexByte(%q, %q) = %d, want %d", tc.s, tc.b, got, tc.want)
			}
		})
	}
}

func TestHasZeroByte(t *testing.T) {
	if hasZeroByte(0x0102030405060708) {
		t.Fatal("expected no zero byte")
	}
	if !hasZeroByte(0x0102030400060708) {
		t.Fatal("expected a zero byte to be detected")
	}
}

func TestIndex(t *testing.T) {
	cases := []struct {
		name      string
		s, needle string
		want      int
	}{
		{"empty needle", "abc", "", 0},
		{"needle longer than haystack", "ab", "abc", -1},
		{"single byte needle", "abcabc", "c", 2},
		{"exact match at start", "hello world", "hello", 0},
		{"match in middle", "the quick brown fox", "brown", 10},
		{"no match", "the quick brown fox", "slow", -1},
		{"overlapping candidates", "aaaaab", "aab", 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Index([]byte(tc.s), []byte(tc.needle)); got != tc.want {
				t.Fatalf("Index(%q, %q) = %d, want %d", tc.s, tc.needle, got, tc.want)
			}
		})
	}
}
