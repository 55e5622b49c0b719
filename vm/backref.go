package vm

// matchBackrefForward compares the input starting at pos against the
// capture slot idx's recorded span, reading both forward. An unset group
// (start or end still -1, i.e. never entered) matches the empty string per
// ECMAScript semantics rather than failing.
func matchBackrefForward(cur Cursor, pos int, captures []int, idx int, fold, unicode bool) (newPos int, ok bool) {
	slot := idx * 2
	start, end := captures[slot], captures[slot+1]
	if start < 0 || end < 0 {
		return pos, true
	}
	sp, p := start, pos
	for sp < end {
		want, w1 := cur.ReadForward(sp)
		if w1 == 0 {
			return 0, false
		}
		got, w2 := cur.ReadForward(p)
		if w2 == 0 {
			return 0, false
		}
		if fold {
			if !foldEq(want, got, unicode) {
				return 0, false
			}
		} else if want != got {
			return 0, false
		}
		sp += w1
		p += w2
	}
	return p, true
}

// matchBackrefBackward compares the captured span against the input ending
// at pos, walking both backward — used when the VM is executing in reverse
// (inside a lookbehind body compiled to run right-to-left).
func matchBackrefBackward(cur Cursor, pos int, captures []int, idx int, fold, unicode bool) (newPos int, ok bool) {
	slot := idx * 2
	start, end := captures[slot], captures[slot+1]
	if start < 0 || end < 0 {
		return pos, true
	}
	sp, p := end, pos
	for sp > start {
		want, w1 := cur.ReadBackward(sp)
		if w1 == 0 {
			return 0, false
		}
		got, w2 := cur.ReadBackward(p)
		if w2 == 0 {
			return 0, false
		}
		if fold {
			if !foldEq(want, got, unicode) {
				return 0, false
			}
		} else if want != got {
			return 0, false
		}
		sp -= w1
		p -= w2
	}
	return p, true
}
