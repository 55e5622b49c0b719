package ecmaregex

import "github.com/coregx/ecmaregex/vm"

// ExecuteAt runs the unified find_at(pos) contract of spec §6 against an
// arbitrary input cursor: a byte buffer (vm.NewByteCursor), a UTF-16
// code-unit buffer (vm.NewUTF16Cursor), or a fixed-width UCS-2 buffer
// (vm.NewUCS2Cursor). It is the low-level entry point the string- and
// []byte-oriented methods on Regex are built from; callers matching
// against JavaScript's native UTF-16 string representation should prefer
// this over converting to UTF-8 first, since conversion can change
// surrogate-pair boundaries that anchors and lookaround care about.
func (r *Regex) ExecuteAt(cur vm.Cursor, pos int) (start, end int, caps []int, ok bool) {
	return r.engine.FindAt(cur, pos, nil)
}

// MatchUTF16 reports whether u, a UTF-16 code-unit buffer, contains a
// match. unicode selects whether surrogate pairs join into one codepoint
// (the pattern's `u`/`v` flag) or are read as independent code units.
func (r *Regex) MatchUTF16(u []uint16, unicode bool) bool {
	return r.engine.IsMatch(vm.NewUTF16Cursor(u, unicode))
}

// FindUTF16 returns the [start, end) code-unit offsets of the leftmost
// match in u, or ok=false if there is none.
func (r *Regex) FindUTF16(u []uint16, unicode bool) (start, end int, ok bool) {
	return r.engine.Find(vm.NewUTF16Cursor(u, unicode))
}

// FindUTF16SubmatchIndex returns the capture-index array (same layout as
// FindSubmatchIndex) for the leftmost match in u, or nil if there is none.
func (r *Regex) FindUTF16SubmatchIndex(u []uint16, unicode bool) []int {
	caps, ok := r.engine.Captures(vm.NewUTF16Cursor(u, unicode))
	if !ok {
		return nil
	}
	return caps
}
