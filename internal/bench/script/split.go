// Package script splits multi-statement SQL scripts into individually
// executable statements.
package script

import "strings"

// Split breaks a script on the `;` character, keeping the delimiter as part
// of each produced statement and trimming surrounding whitespace. A fragment
// that trims to the empty string is still returned; callers execute it as a
// no-op. There is no SQL-dialect awareness: a `;` inside a string literal or
// comment splits too. Known limitation.
func Split(s string) []string {
	pieces := splitInclusive(s)
	for i, p := range pieces {
		pieces[i] = strings.TrimSpace(p)
	}
	return pieces
}

// splitInclusive splits s after every `;`, keeping the delimiter in the
// preceding piece. A script ending exactly on `;` yields no trailing piece.
func splitInclusive(s string) []string {
	var pieces []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == ';' {
			pieces = append(pieces, s[start:i+1])
			start = i + 1
		}
	}
	if start < len(s) {
		pieces = append(pieces, s[start:])
	}
	return pieces
}
