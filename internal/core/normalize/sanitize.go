package normalize

import (
	"strings"
	"unicode/utf8"
)

// Sanitize rewrites bytes/runes we never want inside a prompt line:
// - ASCII controls including NUL, tab and line breaks become a space
// - DEL (0x7F) and C1 controls U+0080..U+009F become a space
// - invalid UTF-8 bytes are dropped
// Fast path returns s unchanged when no cleaning is needed.
func Sanitize(s string) string {
	if s == "" {
		return s
	}

	n := len(s)
	i := 0

	// Fast path: scan until first "bad" byte/rune
	for i < n {
		b := s[i]
		if b < 0x20 || b == 0x7F {
			break
		}
		if b < 0x80 {
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			break
		}
		if r >= 0x80 && r <= 0x9F {
			break
		}
		i += size
	}
	if i == n {
		return s
	}

	var bldr strings.Builder
	bldr.Grow(n)
	bldr.WriteString(s[:i])

	for i < n {
		c := s[i]
		if c < 0x20 || c == 0x7F {
			bldr.WriteByte(' ')
			i++
			continue
		}
		if c < 0x80 {
			bldr.WriteByte(c)
			i++
			continue
		}

		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			i++
			continue
		}
		if r >= 0x80 && r <= 0x9F {
			bldr.WriteByte(' ')
			i += size
			continue
		}
		bldr.WriteString(s[i : i+size])
		i += size
	}

	return bldr.String()
}
