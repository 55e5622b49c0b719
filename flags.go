package ecmaregex

import "github.com/coregx/ecmaregex/bytecode"

// ParseFlags decodes a JavaScript regex flag string (e.g. "gi", "msu") into
// the compiler's bit set. Unknown letters or a letter repeated more than
// once are rejected, mirroring the SyntaxError a JS engine throws for
// `new RegExp(pattern, flags)` with a malformed flag string. The "g"
// (global) and "d" (indices) letters are accepted for source compatibility
// but carry no bytecode.Flags bit: this module always returns every match
// through FindAll/FindIter rather than mutating a stateful lastIndex, so
// "g" has nothing to gate.
func ParseFlags(flags string) (bytecode.Flags, error) {
	var out bytecode.Flags
	var seen [256]bool
	for _, r := range flags {
		if r > 255 || seen[r] {
			return 0, &FlagError{Flags: flags, Rune: r}
		}
		seen[r] = true
		switch r {
		case 'i':
			out |= bytecode.FlagIgnoreCase
		case 'm':
			out |= bytecode.FlagMultiline
		case 's':
			out |= bytecode.FlagDotAll
		case 'u':
			out |= bytecode.FlagUnicode
		case 'y':
			out |= bytecode.FlagSticky
		case 'v':
			out |= bytecode.FlagUnicodeSets
		case 'g', 'd':
			// accepted, no bytecode effect (see doc comment above)
		default:
			return 0, &FlagError{Flags: flags, Rune: r}
		}
	}
	return out, nil
}

// FlagError reports an invalid or duplicated flag letter.
type FlagError struct {
	Flags string
	Rune  rune
}

func (e *FlagError) Error() string {
	return "ecmaregex: invalid regular expression flags \"" + e.Flags + "\": unknown or duplicate flag " + string(e.Rune)
}
