// Package timecode renders playback offsets the way danmaku players display them
package timecode

import "strconv"

// Format renders ms as m:ss with zero padded seconds
// there is no hour field so an hour of playback reads 60:00
func Format(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	total := ms / 1000
	min, sec := total/60, total%60

	b := make([]byte, 0, 8)
	b = strconv.AppendInt(b, min, 10)
	b = append(b, ':')
	if sec < 10 {
		b = append(b, '0')
	}
	b = strconv.AppendInt(b, sec, 10)
	return string(b)
}
