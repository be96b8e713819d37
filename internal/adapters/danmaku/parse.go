package danmaku

import (
	"encoding/xml"
	"io"
	"math"
	"strconv"
	"strings"

	perr "spoilerguard/internal/platform/errors"
)

// Comment is one <d> element of a danmaku document
type Comment struct {
	ID         string
	Content    string
	ProgressMs int64
	Mode       int
	FontSize   int
	Color      int
	Timestamp  int64
	Pool       int
	UserHash   string
}

// p attribute field positions
const (
	fieldProgress = iota
	fieldMode
	fieldFontSize
	fieldColor
	fieldTimestamp
	fieldPool
	fieldUser
	fieldID
	minFields
)

// Parse streams a danmaku XML document and returns comments in document order
// elements with a malformed p attribute are skipped and counted
func Parse(r io.Reader) ([]Comment, int, error) {
	dec := xml.NewDecoder(r)
	dec.Strict = false

	var (
		out     []Comment
		skipped int
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return out, skipped, nil
		}
		if err != nil {
			return out, skipped, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "danmaku xml decode failed")
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "d" {
			continue
		}
		var el struct {
			P    string `xml:"p,attr"`
			Text string `xml:",chardata"`
		}
		if err := dec.DecodeElement(&el, &se); err != nil {
			return out, skipped, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "danmaku element decode failed")
		}
		c, ok := fromAttr(el.P, el.Text)
		if !ok {
			skipped++
			continue
		}
		out = append(out, c)
	}
}

// fromAttr maps the comma separated p attribute onto a Comment
func fromAttr(p, text string) (Comment, bool) {
	f := strings.Split(p, ",")
	if len(f) < minFields || strings.TrimSpace(f[fieldID]) == "" {
		return Comment{}, false
	}
	sec, err := strconv.ParseFloat(strings.TrimSpace(f[fieldProgress]), 64)
	if err != nil || sec < 0 || math.IsNaN(sec) || math.IsInf(sec, 0) {
		return Comment{}, false
	}
	return Comment{
		ID:         strings.TrimSpace(f[fieldID]),
		Content:    text,
		ProgressMs: int64(math.Floor(sec * 1000)),
		Mode:       atoi(f[fieldMode]),
		FontSize:   atoi(f[fieldFontSize]),
		Color:      atoi(f[fieldColor]),
		Timestamp:  int64(atoi(f[fieldTimestamp])),
		Pool:       atoi(f[fieldPool]),
		UserHash:   f[fieldUser],
	}, true
}

// atoi is lenient; display metadata is opaque so zero is an acceptable fallback
func atoi(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}
