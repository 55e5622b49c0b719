package charclass

import "unicode"

// Canonicalize returns the representative codepoint of r's simple
// case-fold equivalence class. Under non-Unicode mode, folding is
// ASCII-biased (letter case only); under Unicode mode, the full Unicode
// simple case-fold relation applies, which is broader (e.g. it folds
// U+017F and U+212A onto 's' and 'k').
//
// Under Unicode mode the representative is the smallest codepoint in the
// fold orbit, obtained by walking unicode.SimpleFold's cycle; under
// non-Unicode mode it is the lowercase letter for an ASCII letter and the
// codepoint itself otherwise. Either way Canonicalize is idempotent and two
// codepoints fold to the same value iff they are fold-equivalent under that
// mode's rule, which is what both char comparison (OpCharI) and range
// canonicalization need.
func Canonicalize(r rune, isUnicode bool) rune {
	if !isUnicode {
		switch {
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		case r >= 'a' && r <= 'z':
			return r
		default:
			// ASCII-biased fold only touches ASCII letters; anything
			// else (including non-ASCII letters) is left as-is when
			// Unicode mode is off, matching the narrower ECMAScript
			// non-unicode IgnoreCase semantics.
			return r
		}
	}
	return simpleFoldRepresentative(r)
}

func simpleFoldRepresentative(r rune) rune {
	min := r
	for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
		if f < min {
			min = f
		}
	}
	return min
}

// FoldOrbit calls visit for every codepoint that folds to the same
// equivalence class as r (including r itself), using the Unicode mode
// rule selected by isUnicode.
func FoldOrbit(r rune, isUnicode bool, visit func(rune)) {
	visit(r)
	if !isUnicode {
		switch {
		case r >= 'A' && r <= 'Z':
			visit(r + ('a' - 'A'))
		case r >= 'a' && r <= 'z':
			visit(r - ('a' - 'A'))
		}
		return
	}
	for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
		visit(f)
	}
}

// CanonicalizeForIgnoreCase returns the case-fold closure of s: every
// codepoint of s together with every member of its case-fold equivalence
// class (FoldOrbit), normalized. The original members stay in the result;
// the set is not reduced to one representative per class. The broader
// Unicode folding relation is used when isUnicode is true.
func (s *Set) CanonicalizeForIgnoreCase(isUnicode bool) *Set {
	out := NewSet()
	for _, iv := range s.Intervals() {
		for v := iv[0]; v < iv[1]; v++ {
			FoldOrbit(v, isUnicode, func(f rune) { out.AddPoint(f) })
		}
	}
	return out
}
