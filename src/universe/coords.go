package universe

import (
	"math"

	"github.com/pkg/errors"
)

//MaxCells bounds width*height so every cell index fits an int on any platform
const MaxCells = math.MaxInt32

//CheckDimensions rejects a zero dimension and grids larger than MaxCells
func CheckDimensions(width, height uint64) error {
	if width == 0 || height == 0 {
		return errors.Wrapf(ErrZeroDimension, "%vx%v", width, height)
	}
	if width > MaxCells || height > MaxCells/width {
		return errors.Wrapf(ErrTooLarge, "%vx%v", width, height)
	}
	return nil
}

//torus maps (row, col) pairs to linear cell indexes on a grid whose edges wrap
//both width and height are at least 1
type torus struct {
	width  uint32
	height uint32
}

//size returns the number of cells of the grid
func (t torus) size() int {
	return int(t.width) * int(t.height)
}

//index returns the linear index for (row, col)
func (t torus) index(row, col uint32) int {
	return int(row)*int(t.width) + int(col)
}

//coords is the inverse of index
func (t torus) coords(i int) (row, col uint32) {
	return uint32(i / int(t.width)), uint32(i % int(t.width))
}

//neighbours returns the indexes of the 8 cells around (row, col)
//rows and columns wrap, so on tiny grids the same index may appear more than once
func (t torus) neighbours(row, col uint32) [8]int {
	var (
		n    [8]int
		k    int
		h, w = uint64(t.height), uint64(t.width)
		r, c = uint64(row), uint64(col)
		//wrap in 64 bits, row+height may not fit an uint32
		up   = uint32((r + h - 1) % h)
		down = uint32((r + 1) % h)
		left = uint32((c + w - 1) % w)
		rght = uint32((c + 1) % w)
	)
	rows := [3]uint32{up, row, down}
	cols := [3]uint32{left, col, rght}
	for dr := 0; dr < 3; dr++ {
		for dc := 0; dc < 3; dc++ {
			if dr == 1 && dc == 1 {
				continue
			}
			n[k] = t.index(rows[dr], cols[dc])
			k++
		}
	}
	return n
}
