// Package accel provides byte and substring search accelerated with the
// SWAR (SIMD-within-a-register) technique, falling back to a scalar loop on
// platforms or inputs too small to benefit. Adapted from the teacher's
// simd.memchrGeneric/memmemShort (simd/memchr_generic_impl.go,
// simd/memmem.go): that package dispatches to hand-written AVX2 assembly on
// amd64 and a SWAR fallback everywhere else. This module ports only the
// portable SWAR half — there is no assembly here — and uses
// golang.org/x/sys/cpu purely to choose between the chunked and the
// byte-at-a-time loop, not to pick an asm
// routine, since no .s file accompanies this package.
package accel

import (
	"encoding/binary"

	"golang.org/x/sys/cpu"
)

// HasFastUnalignedWords reports whether the host is known to tolerate
// unaligned 64-bit loads cheaply, which is what makes the chunked SWAR loop
// below worth its setup cost. cpu.X86 fields read zero on non-x86 builds, so
// this also serves as a cheap "are we even on x86" check without a
// per-arch build-tag split.
var HasFastUnalignedWords = cpu.X86.HasSSE2

// IndexByte returns the index of the first occurrence of b in s, or -1.
func IndexByte(s []byte, b byte) int {
	n := len(s)
	if n == 0 {
		return -1
	}
	if n < 8 || !HasFastUnalignedWords {
		for i := 0; i < n; i++ {
			if s[i] == b {
				return i
			}
		}
		return -1
	}
	mask := uint64(b) * 0x0101010101010101
	i := 0
	for ; i+8 <= n; i += 8 {
		chunk := binary.LittleEndian.Uint64(s[i:])
		xor := chunk ^ mask
		if hasZeroByte(xor) {
			for j := i; j < i+8; j++ {
				if s[j] == b {
					return j
				}
			}
		}
	}
	for ; i < n; i++ {
		if s[i] == b {
			return i
		}
	}
	return -1
}

// hasZeroByte reports whether any byte lane of v is zero (Hacker's Delight
// zero-byte-detection formula).
func hasZeroByte(v uint64) bool {
	return (v-0x0101010101010101)&^v&0x8080808080808080 != 0
}

// Index returns the index of the first occurrence of needle in s, or -1.
// Uses a rare-byte heuristic: scan for needle's last byte with IndexByte,
// then verify the full needle at each candidate, avoiding a byte-by-byte
// comparison of the whole needle at every haystack position.
func Index(s, needle []byte) int {
	n, m := len(s), len(needle)
	if m == 0 {
		return 0
	}
	if m > n {
		return -1
	}
	if m == 1 {
		return IndexByte(s, needle[0])
	}
	last := needle[m-1]
	pos := 0
	for pos+m <= n {
		idx := indexByteInWindow(s, last, pos+m-1, n)
		if idx < 0 {
			return -1
		}
		start := idx - (m - 1)
		if bytesEqual(s[start:start+m], needle) {
			return start
		}
		pos = start + 1
	}
	return -1
}

func indexByteInWindow(s []byte, b byte, from, to int) int {
	if from >= to {
		return -1
	}
	rel := IndexByte(s[from:to], b)
	if rel < 0 {
		return -1
	}
	return from + rel
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
