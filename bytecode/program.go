package bytecode

import "errors"

// Header field offsets and sizes, per spec §3.
const (
	HeaderLen = 8

	offFlags        = 0 // u16 LE
	offCaptureCount = 2 // u8
	offRegisterCount = 3 // u8
	offBytecodeLen  = 4 // u32 LE
)

// Flags is the bit set compiled into a Program's header.
type Flags uint16

const (
	FlagIgnoreCase Flags = 1 << 0
	FlagMultiline  Flags = 1 << 1
	FlagDotAll     Flags = 1 << 2
	FlagUnicode    Flags = 1 << 3
	FlagSticky     Flags = 1 << 4
	_              Flags = 1 << 5 // reserved (bit 6 in spec's 1-indexed table)
	FlagNamedGroups Flags = 1 << 6
	FlagUnicodeSets Flags = 1 << 7
)

// Has reports whether all bits in want are set.
func (f Flags) Has(want Flags) bool { return f&want == want }

// GroupName records one capture's name-table entry (spec §3: group-name
// table, one tuple per capture, unused slots carry an empty name).
type GroupName struct {
	Name  string
	Scope byte
}

// Program is an immutable compiled bytecode program: the header, the
// instruction stream, and the optional group-name table, all produced by
// package parser and consumed by every matcher in this module.
type Program struct {
	flags         Flags
	captureCount  int
	registerCount int
	code          []byte // instruction stream only (header and name table stripped)
	names         []GroupName
}

var (
	// ErrTruncated is returned when a byte sequence is too short to be a
	// valid Program (header or bytecode length fields exceed the buffer).
	ErrTruncated = errors.New("bytecode: truncated program")
)

// New constructs a Program from its parts. Used by package parser once
// emission, register fixup, and group-name collection are complete.
func New(flags Flags, captureCount, registerCount int, code []byte, names []GroupName) *Program {
	return &Program{
		flags:         flags,
		captureCount:  captureCount,
		registerCount: registerCount,
		code:          code,
		names:         names,
	}
}

// Flags returns the compiled flag set.
func (p *Program) Flags() Flags { return p.flags }

// CaptureCount returns the number of capture slots, including group 0
// (the whole match). Always >= 1.
func (p *Program) CaptureCount() int { return p.captureCount }

// RegisterCount returns the number of scratch registers counted quantifiers
// need on the backtracker's stack.
func (p *Program) RegisterCount() int { return p.registerCount }

// Code returns the raw instruction stream (header and name table excluded).
func (p *Program) Code() []byte { return p.code }

// Len returns the length of the instruction stream in bytes.
func (p *Program) Len() int { return len(p.code) }

// GroupNames returns the capture name table. Index 0 is always the
// unnamed entry for the whole match.
func (p *Program) GroupNames() []GroupName { return p.names }

// NameToIndex resolves a named capture to its index, honoring the scope
// rule from spec §3: duplicate names are permitted across disjoint
// alternation scopes, so a name can map to more than one index. NameToIndex
// returns the first (lowest-index) match, which is what back-references
// compiled before parsing completes name scopes will have bound to.
func (p *Program) NameToIndex(name string) (int, bool) {
	for i, gn := range p.names {
		if gn.Name == name {
			return i, true
		}
	}
	return 0, false
}

// Marshal encodes the program into the wire format described by spec §3:
// an 8-byte header, the instruction stream, then the group-name table (if
// any named capture exists).
func (p *Program) Marshal() []byte {
	buf := NewBuffer(HeaderLen + len(p.code) + 64)
	buf.PutU16(uint16(p.flags))
	buf.PutByte(byte(p.captureCount))
	buf.PutByte(byte(p.registerCount))
	buf.PutU32(uint32(len(p.code)))
	buf.PutBytes(p.code)
	if p.flags.Has(FlagNamedGroups) {
		for _, gn := range p.names {
			buf.PutBytes([]byte(gn.Name))
			buf.PutByte(0)
			buf.PutByte(gn.Scope)
			buf.PutByte(0)
		}
	}
	return buf.Bytes()
}

// Unmarshal decodes a Program from its wire format, round-tripping what
// Marshal produced (spec §8: "round-trip on compiled bytecode").
func Unmarshal(raw []byte) (*Program, error) {
	if len(raw) < HeaderLen {
		return nil, ErrTruncated
	}
	flags := Flags(uint16(raw[offFlags]) | uint16(raw[offFlags+1])<<8)
	captureCount := int(raw[offCaptureCount])
	registerCount := int(raw[offRegisterCount])
	bcLen := int(uint32(raw[offBytecodeLen]) | uint32(raw[offBytecodeLen+1])<<8 |
		uint32(raw[offBytecodeLen+2])<<16 | uint32(raw[offBytecodeLen+3])<<24)
	if HeaderLen+bcLen > len(raw) {
		return nil, ErrTruncated
	}
	code := raw[HeaderLen : HeaderLen+bcLen]
	var names []GroupName
	if flags.Has(FlagNamedGroups) {
		rest := raw[HeaderLen+bcLen:]
		names = make([]GroupName, 0, captureCount)
		for len(rest) > 0 && len(names) < captureCount {
			nul := indexByte(rest, 0)
			if nul < 0 || nul+3 > len(rest) {
				return nil, ErrTruncated
			}
			names = append(names, GroupName{Name: string(rest[:nul]), Scope: rest[nul+1]})
			rest = rest[nul+3:]
		}
	}
	return &Program{
		flags:         flags,
		captureCount:  captureCount,
		registerCount: registerCount,
		code:          code,
		names:         names,
	}, nil
}

func indexByte(b []byte, c byte) int {
	for i, v := range b {
		if v == c {
			return i
		}
	}
	return -1
}
