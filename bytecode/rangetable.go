package bytecode

import "encoding/binary"

// RangeContains tests codepoint membership in the interval table a
// range/range32 instruction carries (spec §4.4: "binary-search over an
// inline sorted interval table"). table is the raw payload from
// Reader.RangeTable: a little-endian (lo, hi) pair per interval, 16-bit
// wide for range/range_i, 32-bit for range32/range32_i. Both bounds are
// inclusive: a 16-bit hi of 0xFFFF covers through 0xFFFF, the top of the
// BMP, and a 32-bit hi of 0xFFFFFFFF is read as 0x10FFFF, the last
// codepoint. Shared by every matcher backend (vm,
// pike) that needs to test a decoded codepoint against a compiled class.
func RangeContains(table []byte, wide bool, r rune) bool {
	width := 4
	if wide {
		width = 8
	}
	n := len(table) / width
	lo, hi := 0, n-1
	for lo <= hi {
		mid := (lo + hi) / 2
		ivLo, ivHi := readInterval(table, mid, wide)
		switch {
		case r < ivLo:
			hi = mid - 1
		case r > ivHi:
			lo = mid + 1
		default:
			return true
		}
	}
	return false
}

func readInterval(table []byte, i int, wide bool) (lo, hi rune) {
	if wide {
		off := i * 8
		loV := binary.LittleEndian.Uint32(table[off:])
		hiV := binary.LittleEndian.Uint32(table[off+4:])
		if hiV == 0xFFFFFFFF {
			return rune(loV), 0x10FFFF
		}
		return rune(loV), rune(hiV)
	}
	off := i * 4
	loV := binary.LittleEndian.Uint16(table[off:])
	hiV := binary.LittleEndian.Uint16(table[off+2:])
	if hiV == 0xFFFF {
		return rune(loV), 0xFFFF // BMP ceiling; range's 16-bit storage can't address past it anyway
	}
	return rune(loV), rune(hiV)
}
