package ecmaregex_test

import (
	"fmt"

	"github.com/coregx/ecmaregex"
)

// Alternation + prefilter: the multi-string dispatcher strategy recognizes
// a top-level literal-only alternation and scans for all three names at
// once instead of trying each branch in turn.
func Example_alternationPrefilter() {
	re := ecmaregex.MustCompile(`Sherlock Holmes|John Watson|Irene Adler`, "")
	for _, idx := range re.FindAllStringIndex("Irene Adler and John Watson met Sherlock Holmes today.", -1) {
		fmt.Println(idx[0], idx[1])
	}
	// Output:
	// 0 11
	// 16 27
	// 32 47
}

// Greedy quantifier with boundary: "+" consumes as much as it can while
// still letting the rest of the pattern match, so "singing" is returned
// whole rather than stopping at the shorter "sing".
func Example_greedyQuantifier() {
	re := ecmaregex.MustCompile(`[a-z]+ing`, "")
	fmt.Println(re.FindString("singing loudly"))
	// Output:
	// singing
}

// Bounded repeat: {4}/{2} require an exact number of repetitions.
func Example_boundedRepeat() {
	re := ecmaregex.MustCompile(`\d{4}-\d{2}-\d{2}`, "")
	for _, m := range re.FindAllString("Events on 2024-01-15, 2024-12-25", -1) {
		fmt.Println(m)
	}
	// Output:
	// 2024-01-15
	// 2024-12-25
}

// Named capture + back-reference: \k<w> must match the same text the
// named group captured, not just the same pattern.
func Example_namedCaptureBackreference() {
	re := ecmaregex.MustCompile(`(?<w>\w+) \k<w>`, "")
	m := re.FindStringSubmatch("hello hello world")
	fmt.Println(m[0])
	fmt.Println(m[1])
	// Output:
	// hello hello
	// hello
}

// Lookaround: a trailing lookahead constrains the match without being
// consumed by it.
func Example_lookahead() {
	re := ecmaregex.MustCompile(`\w+(?=ing\b)`, "")
	fmt.Println(re.FindString("singing"))
	// Output:
	// sing
}

// Case-insensitive + Unicode: U+212A (KELVIN SIGN) shares its case-fold
// orbit with 'K'/'k', so it matches the leading 'K' in "KELVIN" under the
// IgnoreCase+Unicode flags.
func Example_caseInsensitiveUnicode() {
	re := ecmaregex.MustCompile(`KELVIN`, "iu")
	start, end, ok := re.FindUTF16([]uint16{0x212A, 'E', 'L', 'V', 'I', 'N'}, true)
	fmt.Println(start, end, ok)
	// Output:
	// 0 6 true
}
