package ecmaregex

import "github.com/coregx/ecmaregex/vm"

// Match reports whether b contains any match of the pattern.
func (r *Regex) Match(b []byte) bool {
	return r.engine.IsMatch(vm.NewByteCursor(b))
}

// MatchString reports whether s contains any match of the pattern.
func (r *Regex) MatchString(s string) bool {
	return r.Match([]byte(s))
}

// Find returns the leftmost match in b, or nil if there is none.
func (r *Regex) Find(b []byte) []byte {
	start, end, ok := r.engine.Find(vm.NewByteCursor(b))
	if !ok {
		return nil
	}
	return b[start:end]
}

// FindString returns the leftmost match in s, or "" if there is none.
// Use FindStringIndex to distinguish "no match" from an empty match.
func (r *Regex) FindString(s string) string {
	m := r.Find([]byte(s))
	if m == nil {
		return ""
	}
	return string(m)
}

// FindIndex returns the [start, end) byte offsets of the leftmost match in
// b, or nil if there is none.
func (r *Regex) FindIndex(b []byte) []int {
	start, end, ok := r.engine.Find(vm.NewByteCursor(b))
	if !ok {
		return nil
	}
	return []int{start, end}
}

// FindStringIndex is FindIndex for a string input.
func (r *Regex) FindStringIndex(s string) []int {
	return r.FindIndex([]byte(s))
}

// FindSubmatchIndex returns the index pairs of the leftmost match and its
// capture groups: result[2*i:2*i+2] is group i's [start, end), or [-1, -1]
// if group i did not participate in the match. A nil result means no match.
func (r *Regex) FindSubmatchIndex(b []byte) []int {
	caps, ok := r.engine.Captures(vm.NewByteCursor(b))
	if !ok {
		return nil
	}
	return caps
}

// FindStringSubmatchIndex is FindSubmatchIndex for a string input.
func (r *Regex) FindStringSubmatchIndex(s string) []int {
	return r.FindSubmatchIndex([]byte(s))
}

// FindSubmatch returns the leftmost match and its capture groups.
// result[0] is the whole match; result[i] is group i's text, or nil if
// group i did not participate. A nil result means no match.
func (r *Regex) FindSubmatch(b []byte) [][]byte {
	idx := r.FindSubmatchIndex(b)
	if idx == nil {
		return nil
	}
	out := make([][]byte, len(idx)/2)
	for i := range out {
		s, e := idx[2*i], idx[2*i+1]
		if s < 0 || e < 0 {
			continue
		}
		out[i] = b[s:e]
	}
	return out
}

// FindStringSubmatch is FindSubmatch for a string input.
func (r *Regex) FindStringSubmatch(s string) []string {
	idx := r.FindStringSubmatchIndex(s)
	if idx == nil {
		return nil
	}
	out := make([]string, len(idx)/2)
	for i := range out {
		start, end := idx[2*i], idx[2*i+1]
		if start < 0 || end < 0 {
			continue
		}
		out[i] = s[start:end]
	}
	return out
}

// FindAll returns every non-overlapping match in b, in order. n caps the
// number of matches returned; n < 0 means unlimited.
func (r *Regex) FindAll(b []byte, n int) [][]byte {
	idxs := r.FindAllIndex(b, n)
	if idxs == nil {
		return nil
	}
	out := make([][]byte, len(idxs))
	for i, idx := range idxs {
		out[i] = b[idx[0]:idx[1]]
	}
	return out
}

// FindAllString is FindAll for a string input.
func (r *Regex) FindAllString(s string, n int) []string {
	b := []byte(s)
	matches := r.FindAll(b, n)
	if matches == nil {
		return nil
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = string(m)
	}
	return out
}

// FindAllIndex returns the [start, end) offsets of every non-overlapping
// match in b, in order. n caps the number of matches returned; n < 0 means
// unlimited.
func (r *Regex) FindAllIndex(b []byte, n int) [][]int {
	if n == 0 {
		return nil
	}
	cur := vm.NewByteCursor(b)
	it := r.engine.FindIter(cur, nil)
	var out [][]int
	for {
		start, end, _, ok := it.Next()
		if !ok {
			break
		}
		out = append(out, []int{start, end})
		if n > 0 && len(out) >= n {
			break
		}
	}
	return out
}

// FindAllStringIndex is FindAllIndex for a string input.
func (r *Regex) FindAllStringIndex(s string, n int) [][]int {
	return r.FindAllIndex([]byte(s), n)
}

// FindAllSubmatchIndex returns the capture-index arrays (same layout as
// FindSubmatchIndex) of every non-overlapping match in b, in order. n caps
// the number of matches returned; n < 0 means unlimited.
func (r *Regex) FindAllSubmatchIndex(b []byte, n int) [][]int {
	if n == 0 {
		return nil
	}
	cur := vm.NewByteCursor(b)
	it := r.engine.FindIter(cur, nil)
	var out [][]int
	for {
		_, _, caps, ok := it.Next()
		if !ok {
			break
		}
		out = append(out, caps)
		if n > 0 && len(out) >= n {
			break
		}
	}
	return out
}

// FindAllStringSubmatch is FindAllSubmatchIndex for a string input,
// materialized into group text the way FindStringSubmatch does for a
// single match.
func (r *Regex) FindAllStringSubmatch(s string, n int) [][]string {
	idxs := r.FindAllSubmatchIndex([]byte(s), n)
	if idxs == nil {
		return nil
	}
	out := make([][]string, len(idxs))
	for i, idx := range idxs {
		groups := make([]string, len(idx)/2)
		for g := range groups {
			start, end := idx[2*g], idx[2*g+1]
			if start < 0 || end < 0 {
				continue
			}
			groups[g] = s[start:end]
		}
		out[i] = groups
	}
	return out
}
