// Package batch partitions a comment stream into classifier sized windows
// and renders each window as the numbered listing the model answers against
package batch

import (
	"strconv"
	"strings"

	"spoilerguard/internal/core/normalize"
	"spoilerguard/internal/core/timecode"
)

// DefaultSize is the window size used when callers pass a non positive size
const DefaultSize = 150

// Entry is anything that can be listed in a prompt
type Entry interface {
	Text() string
	OffsetMs() int64
}

// Window is a contiguous slice of the input with its global start index
// windows are ephemeral and never persisted
type Window[T any] struct {
	Seq   int
	Start int
	Items []T
}

// Split cuts xs into ceil(len/size) windows in input order
// the last window holds the remainder
func Split[T any](xs []T, size int) []Window[T] {
	if size <= 0 {
		size = DefaultSize
	}
	if len(xs) == 0 {
		return nil
	}
	out := make([]Window[T], 0, (len(xs)+size-1)/size)
	for start, seq := 0, 0; start < len(xs); start, seq = start+size, seq+1 {
		end := min(start+size, len(xs))
		out = append(out, Window[T]{Seq: seq, Start: start, Items: xs[start:end:end]})
	}
	return out
}

// Lookup resolves a global index into the item it names
// indices outside the window report false
func (w Window[T]) Lookup(global int) (T, bool) {
	i := global - w.Start
	if i < 0 || i >= len(w.Items) {
		var zero T
		return zero, false
	}
	return w.Items[i], true
}

// End is one past the last global index covered by w
func (w Window[T]) End() int { return w.Start + len(w.Items) }

// Format renders items as "<start+i>. [m:ss] content" lines joined by newlines
// content is flattened so one item is always one line
func Format[T Entry](items []T, start int) string {
	var b strings.Builder
	b.Grow(len(items) * 32)
	for i, it := range items {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strconv.Itoa(start + i))
		b.WriteString(". [")
		b.WriteString(timecode.Format(it.OffsetMs()))
		b.WriteString("] ")
		b.WriteString(normalize.Line(it.Text()))
	}
	return b.String()
}
