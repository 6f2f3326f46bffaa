package view

import (
	"bytes"

	"toruslife/src/universe"
)

//renderField draws the first maxH rows and maxW columns of v, one string per cell.
//When the grid does not fit, the last drawn line is replaced by cropNote.
//The view is only read while renderField runs.
func renderField(v universe.View, maxW, maxH int, live, dead, cropNote string) string {
	var (
		b    bytes.Buffer
		w    = int(v.Width())
		h    = int(v.Height())
		crop = w > maxW || h > maxH
		last = min(h, maxH) - 1
	)
	for y := 0; y <= last; y++ {
		//line feed char
		if y != 0 {
			b.WriteByte(10)
		}
		if crop && y == last {
			b.WriteString(cropNote)
			break
		}
		for x := 0; x < w && x < maxW; x++ {
			if v.Alive(uint32(y), uint32(x)) {
				b.WriteString(live)
			} else {
				b.WriteString(dead)
			}
		}
	}
	return b.String()
}
