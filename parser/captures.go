package parser

import "strings"

// namedGroup records one (?<name>...) declaration found during the name
// prescan: its name and the alternation "scope path" it was written under.
type namedGroup struct {
	name  string
	path  []int
	index int
}

// prescanNames walks the raw pattern once, before compilation proper,
// collecting every named group left to right together with the branch path
// of the alternation tree it sits in, and the capture index it will be
// assigned once the real compile pass reaches it (capture indices are
// handed out strictly left to right over every capturing group, named or
// not, so this can be predicted without compiling the body).
//
// path is a snapshot of the branch-index stack at the point the group is
// opened: one entry per enclosing disjunction (the top-level pattern counts
// as depth 0), each entry counting '|' alternatives seen so far at that
// depth. Two groups sharing a name are permitted only when their paths
// diverge — differ at some shared depth — which is exactly spec's "disjoint
// alternation branches" rule: they sit in mutually exclusive branches and
// can never both be live.
//
// The returned map gives, for each declared name, the capture index of its
// first (lowest-index) occurrence — what \k<name> resolves to regardless of
// which branch ends up matching, matching Program.NameToIndex's rule.
func prescanNames(pattern string) (map[string]int, error) {
	src := []rune(pattern)
	var groups []namedGroup
	branchStack := []int{0}
	inClass := false
	captureIndex := 0

	for i := 0; i < len(src); i++ {
		r := src[i]
		switch {
		case r == '\\':
			i++ // skip escaped character, including inside classes
		case inClass:
			if r == ']' {
				inClass = false
			}
		case r == '[':
			inClass = true
		case r == '|':
			branchStack[len(branchStack)-1]++
		case r == '(':
			if i+1 < len(src) && src[i+1] == '?' {
				if named, start := namedGroupTagStart(src, i); named {
					name, end, err := scanGroupName(src, start)
					if err != nil {
						return nil, err
					}
					captureIndex++
					groups = append(groups, namedGroup{name: name, path: append([]int(nil), branchStack...), index: captureIndex})
					i = end
					branchStack = append(branchStack, 0)
					continue
				}
				// (?:...), (?=...), (?!...), (?<=...), (?<!...): no
				// capture slot, just a nested alternation scope.
				branchStack = append(branchStack, 0)
				continue
			}
			captureIndex++
			branchStack = append(branchStack, 0)
		case r == ')':
			if len(branchStack) > 1 {
				branchStack = branchStack[:len(branchStack)-1]
			}
		}
	}

	byName := make(map[string][]namedGroup)
	for _, g := range groups {
		byName[g.name] = append(byName[g.name], g)
	}
	index := make(map[string]int, len(byName))
	for name, occs := range byName {
		for a := 0; a < len(occs); a++ {
			for b := a + 1; b < len(occs); b++ {
				if !pathsDiverge(occs[a].path, occs[b].path) {
					return nil, &SyntaxError{Message: diagDuplicateName + ": " + name}
				}
			}
		}
		first := occs[0].index
		for _, g := range occs[1:] {
			if g.index < first {
				first = g.index
			}
		}
		index[name] = first
	}
	return index, nil
}

// namedGroupTagStart reports whether the group opening at '(' index i is a
// named group ((?<name>...) or the legacy (?P<name>...) spelling) and, if
// so, the index of its '<' so the caller can hand it to scanGroupName.
func namedGroupTagStart(src []rune, i int) (bool, int) {
	if i+2 >= len(src) {
		return false, 0
	}
	if src[i+2] == '<' && i+3 < len(src) && src[i+3] != '=' && src[i+3] != '!' {
		return true, i + 2
	}
	if src[i+2] == 'P' && i+3 < len(src) && src[i+3] == '<' {
		return true, i + 3
	}
	return false, 0
}

// pathsDiverge reports whether a and b differ at some shared depth, i.e.
// they were written in mutually exclusive alternation branches.
func pathsDiverge(a, b []int) bool {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return true
		}
	}
	return false
}

// scanGroupName reads a <name> tag starting at the '<' rune index and
// returns the name and the index of the closing '>'.
func scanGroupName(src []rune, lt int) (string, int, error) {
	var sb strings.Builder
	i := lt + 1
	for i < len(src) && src[i] != '>' {
		sb.WriteRune(src[i])
		i++
	}
	if i >= len(src) {
		return "", 0, &SyntaxError{Message: diagUnterminatedGroup}
	}
	if sb.Len() == 0 {
		return "", 0, &SyntaxError{Message: diagInvalidGroup}
	}
	return sb.String(), i, nil
}

// captureScope tracks the same branch-path bookkeeping as prescanNames but
// during the real compile pass, where it is used only for diagnostics
// (duplicate names are already rejected by the prescan) and for picking the
// GroupName.Scope byte recorded in the compiled program.
type captureScope struct {
	branchStack []int
}

func newCaptureScope() *captureScope {
	return &captureScope{branchStack: []int{0}}
}

func (s *captureScope) enterGroup() { s.branchStack = append(s.branchStack, 0) }

func (s *captureScope) leaveGroup() {
	if len(s.branchStack) > 1 {
		s.branchStack = s.branchStack[:len(s.branchStack)-1]
	}
}

func (s *captureScope) alternate() { s.branchStack[len(s.branchStack)-1]++ }

// scopeByte folds the current branch path into a single byte for the
// program's name table. Collisions beyond 255 distinct paths are harmless:
// the byte is an informational tag, not used to resolve references (that
// happens earlier, against the rune-index name table built during parsing).
func (s *captureScope) scopeByte() byte {
	h := byte(0)
	for _, v := range s.branchStack {
		h = h*31 + byte(v)
	}
	return h
}
