package vm

import (
	"github.com/coregx/ecmaregex/bytecode"
	"github.com/coregx/ecmaregex/charclass"
)

// rangeContains delegates to bytecode.RangeContains, the shared interval
// table membership test every matcher backend uses.
func rangeContains(table []byte, wide bool, r rune) bool {
	return bytecode.RangeContains(table, wide, r)
}

// isWordChar reports whether r counts as a \w word character for word
// boundary and \w/\W testing. foldExtra additionally counts U+017F and
// U+212A as word-equivalent, matching their case-fold orbit with 's' and
// 'k' (spec §4.7).
func isWordChar(r rune, foldExtra bool) bool {
	if foldExtra {
		return charclass.IsWordCharFold(r)
	}
	return charclass.IsWordChar(r)
}

// isLineTerminator reports whether r is one of the four ECMAScript line
// terminators LF/CR/LS/PS, used by the multiline ^/$ and DotAll-off '.'.
func isLineTerminator(r rune) bool { return charclass.IsLineTerminator(r) }

// isSpace reports \s membership (ECMAScript WhiteSpace + LineTerminator).
func isSpace(r rune) bool { return charclass.IsSpace(r) }

// foldEq reports whether a and b are case-fold equivalent under the given
// Unicode mode, using the same canonical-representative comparison the
// compiler uses to fold literals at compile time (charclass.Canonicalize).
func foldEq(a, b rune, unicode bool) bool {
	if a == b {
		return true
	}
	return charclass.Canonicalize(a, unicode) == charclass.Canonicalize(b, unicode)
}

// opIsIgnoreCaseVariant reports whether op is the "_i" case-folded member
// of a char/char32/range/range32/backref family pair, used by the VM's
// opcode dispatch to decide whether to fold before comparing.
func opIsIgnoreCaseVariant(op bytecode.Op) bool {
	switch op {
	case bytecode.OpCharI, bytecode.OpChar32I, bytecode.OpRangeI, bytecode.OpRange32I,
		bytecode.OpBackrefI, bytecode.OpBackrefBackI,
		bytecode.OpWordBoundaryI, bytecode.OpNotWordBoundaryI:
		return true
	default:
		return false
	}
}
