// Package avatar derives a stable visual identity from a user's display name:
// a deterministic background color and one or two initials. The derivation is
// pure, so the same name always produces the same badge, with no stored state.
package avatar

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// FallbackInitials is shown when a name does not split into two usable tokens
// (fewer than two space-separated parts, or an empty part from stray spaces).
const FallbackInitials = "UU"

// Label is the derived identity for one display name.
type Label struct {
	// Color is a 7-character lowercase hex color, e.g. "#a55c80".
	Color string
	// Initials is either two uppercased characters or FallbackInitials.
	Initials string
}

// Derive maps a display name to its avatar label. It is total: every input,
// including the empty string, yields a label without error.
func Derive(name string) Label {
	return Label{
		Color:    HashColor(name),
		Initials: initials(name),
	}
}

// HashColor maps a string to a stable "#rrggbb" color. It runs the classic
// 31-multiplier rolling string hash (h = code + (h<<5) - h) with wrapping
// 32-bit arithmetic and uses the low three bytes as the color channels.
// The empty string hashes to "#000000".
func HashColor(s string) string {
	var hash int32
	for _, r := range s {
		hash = int32(r) + (hash<<5 - hash)
	}

	var b strings.Builder
	b.Grow(7)
	b.WriteByte('#')
	for i := 0; i < 3; i++ {
		fmt.Fprintf(&b, "%02x", (hash>>(i*8))&0xff)
	}
	return b.String()
}

// initials takes the first character of the first two space-separated tokens,
// uppercased. A missing or empty token means the name has no usable word pair,
// so the fixed fallback is returned instead of a partial initial.
func initials(name string) string {
	tokens := strings.Split(name, " ")

	first := tokens[0]
	var last string
	if len(tokens) > 1 {
		last = tokens[1]
	}
	if first == "" || last == "" {
		return FallbackInitials
	}

	fr, _ := utf8.DecodeRuneInString(first)
	lr, _ := utf8.DecodeRuneInString(last)
	return string(unicode.ToUpper(fr)) + string(unicode.ToUpper(lr))
}
