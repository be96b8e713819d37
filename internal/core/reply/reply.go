// Package reply turns a classifier's free text answer into flagged indices
package reply

import (
	"strconv"
	"strings"

	"golang.org/x/text/width"
)

const (
	// NoneSentinel is the exact reply meaning nothing was flagged
	NoneSentinel = "无"

	// noSpoilerPhrase anywhere in the reply also means nothing was flagged
	noSpoilerPhrase = "没有剧透"
)

// Parse extracts every maximal run of decimal digits from s, in order
// duplicates are preserved and runs too large for int are skipped
// it never fails; anything unrecognised simply yields no indices
func Parse(s string) []int {
	s = strings.TrimSpace(s)
	if s == "" || s == NoneSentinel || strings.Contains(s, noSpoilerPhrase) {
		return nil
	}
	if strings.Contains(strings.ToLower(s), "no spoiler") {
		return nil
	}

	// fullwidth digits are common in CJK replies
	s = width.Fold.String(s)

	var out []int
	start := -1
	flush := func(end int) {
		if start < 0 {
			return
		}
		if n, err := strconv.Atoi(s[start:end]); err == nil {
			out = append(out, n)
		}
		start = -1
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= '0' && c <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		flush(i)
	}
	flush(len(s))
	return out
}
