// Package normalize flattens free text into a single prompt safe line
// Pipeline order
// 1 control characters become spaces, invalid UTF-8 is dropped
// 2 Unicode NFKC normalization (also folds fullwidth ASCII)
// 3 Remove format characters such as zero widths, bidi marks and BOM
// 4 Collapse every whitespace run, line breaks included, to one space and trim
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// pool of fresh transformer chains
var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKC,
			runes.Remove(runes.In(unicode.Cf)),
		)
	},
}

// Line returns s as exactly one trimmed line of text
func Line(s string) string {
	if s == "" {
		return ""
	}

	s = Sanitize(s)

	tr := chainPool.Get().(transform.Transformer)
	ns, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		ns = s
	}

	return collapseSpaces(ns)
}

// collapseSpaces converts whitespace runs to a single ASCII space and trims the edges
func collapseSpaces(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	inWS := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inWS = true
			continue
		}
		if inWS && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inWS = false
		b.WriteRune(r)
	}
	return b.String()
}
