// Package charclass implements the character-range algebra of spec §4.2:
// sorted half-open codepoint interval lists with union, intersection,
// subtraction, xor, and complement, plus a string-set extension for
// \p{...} sequence properties and \q{...} class strings in UnicodeSets
// mode (spec §3 "String-set entity").
//
// Unicode property/category/script data and case-fold tables are treated
// as the external collaborator spec §6 describes ("consumed via the
// interfaces in §6... Unicode property table data" is explicitly listed as
// out of scope for this module's own code). Package stdlib unicode is used
// as that collaborator's backing data — see unicode.go and DESIGN.md.
package charclass

import "sort"

// MaxCodePoint is one past the last valid Unicode scalar value, used as
// the universe for Invert (spec §3: "strictly increasing, even length...
// last endpoint ≤ 0x110000").
const MaxCodePoint = 0x110000

// Set is a sorted list of half-open interval endpoints
// [p0, p1), [p2, p3), ... — an even-length, strictly increasing slice of
// codepoints. The zero value is the empty set.
type Set struct {
	points []rune
}

// NewSet returns an empty Set.
func NewSet() *Set { return &Set{} }

// FromIntervals builds a Set from (lo, hiExclusive) pairs, normalizing
// (sorting and merging overlaps) regardless of input order.
func FromIntervals(pairs ...[2]rune) *Set {
	s := NewSet()
	for _, p := range pairs {
		s.AddInterval(p[0], p[1])
	}
	return s
}

// AddPoint adds the single codepoint v to the set.
func (s *Set) AddPoint(v rune) { s.AddInterval(v, v+1) }

// AddInterval adds the half-open interval [lo, hi) to the set. lo and hi
// need not be in order relative to existing content; the set is re-sorted
// and merged after every addition.
func (s *Set) AddInterval(lo, hi rune) {
	if hi <= lo {
		return
	}
	s.points = append(s.points, lo, hi)
	s.normalize()
}

// normalize sorts intervals and merges overlapping or touching ones.
func (s *Set) normalize() {
	n := len(s.points) / 2
	if n <= 1 {
		return
	}
	type iv struct{ lo, hi rune }
	ivs := make([]iv, n)
	for i := 0; i < n; i++ {
		ivs[i] = iv{s.points[2*i], s.points[2*i+1]}
	}
	sort.Slice(ivs, func(i, j int) bool { return ivs[i].lo < ivs[j].lo })
	out := ivs[:0]
	for _, cur := range ivs {
		if len(out) > 0 && cur.lo <= out[len(out)-1].hi {
			if cur.hi > out[len(out)-1].hi {
				out[len(out)-1].hi = cur.hi
			}
			continue
		}
		out = append(out, cur)
	}
	s.points = s.points[:0]
	for _, v := range out {
		s.points = append(s.points, v.lo, v.hi)
	}
}

// IsEmpty reports whether the set has no codepoints.
func (s *Set) IsEmpty() bool { return len(s.points) == 0 }

// Intervals returns the set's normalized (lo, hi) pairs.
func (s *Set) Intervals() [][2]rune {
	out := make([][2]rune, 0, len(s.points)/2)
	for i := 0; i+1 < len(s.points); i += 2 {
		out = append(out, [2]rune{s.points[i], s.points[i+1]})
	}
	return out
}

// Contains reports whether v falls in one of the set's intervals.
func (s *Set) Contains(v rune) bool {
	pts := s.points
	// Binary search for the first hi > v; v is in the set iff that
	// interval's lo <= v.
	lo, hi := 0, len(pts)/2
	for lo < hi {
		mid := (lo + hi) / 2
		if pts[2*mid+1] <= v {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo < len(pts)/2 && pts[2*lo] <= v
}

// merge runs a linear sweep over the interval boundaries of a and b,
// calling combine(inA, inB) for every run between adjacent boundaries and
// keeping the runs for which it returns true.
func merge(a, b *Set, combine func(inA, inB bool) bool) *Set {
	out := NewSet()
	boundary := map[rune]struct{}{}
	for _, p := range a.points {
		boundary[p] = struct{}{}
	}
	for _, p := range b.points {
		boundary[p] = struct{}{}
	}
	pts := make([]rune, 0, len(boundary))
	for p := range boundary {
		pts = append(pts, p)
	}
	sort.Slice(pts, func(i, j int) bool { return pts[i] < pts[j] })
	for i := 0; i+1 < len(pts); i++ {
		lo, hi := pts[i], pts[i+1]
		if lo >= hi {
			continue
		}
		if combine(a.Contains(lo), b.Contains(lo)) {
			out.AddInterval(lo, hi)
		}
	}
	return out
}

// Union returns the union of s and other.
func (s *Set) Union(other *Set) *Set {
	return merge(s, other, func(inA, inB bool) bool { return inA || inB })
}

// Intersect returns the intersection of s and other.
func (s *Set) Intersect(other *Set) *Set {
	return merge(s, other, func(inA, inB bool) bool { return inA && inB })
}

// Subtract returns s minus other.
func (s *Set) Subtract(other *Set) *Set {
	return merge(s, other, func(inA, inB bool) bool { return inA && !inB })
}

// Xor returns the symmetric difference of s and other.
func (s *Set) Xor(other *Set) *Set {
	return merge(s, other, func(inA, inB bool) bool { return inA != inB })
}

// Invert returns the complement of s against [0, MaxCodePoint).
func (s *Set) Invert() *Set {
	out := NewSet()
	prev := rune(0)
	for _, iv := range s.Intervals() {
		if iv[0] > prev {
			out.AddInterval(prev, iv[0])
		}
		prev = iv[1]
	}
	if prev < MaxCodePoint {
		out.AddInterval(prev, MaxCodePoint)
	}
	return out
}

// Clone returns an independent copy of s.
func (s *Set) Clone() *Set {
	c := &Set{points: make([]rune, len(s.points))}
	copy(c.points, s.points)
	return c
}
