package universe

import "unsafe"

//View is a read-only loan of the current generation's packed cells.
//
//The words alias the engine's live buffer: no copy is made. A View is only
//valid until the next Tick or mutation of the engine it came from; Stale
//reports when that has happened. Bit i of the grid (i = row*Width+col) is
//bit i%64 of word i/64.
type View struct {
	words      []uint64
	width      uint32
	height     uint32
	generation uint64
	epoch      uint64
	current    *uint64
}

func newView(cells *Bitset, t torus, generation uint64, epoch *uint64) View {
	return View{
		words:      cells.Words(),
		width:      t.width,
		height:     t.height,
		generation: generation,
		epoch:      *epoch,
		current:    epoch,
	}
}

//Words returns the packed words. Callers must not modify them.
func (v View) Words() []uint64 { return v.words }

//Ptr returns the address of the first word, nil for an empty view
func (v View) Ptr() unsafe.Pointer {
	if len(v.words) == 0 {
		return nil
	}
	return unsafe.Pointer(&v.words[0])
}

//Len returns the number of words, ceil(Width*Height/64)
func (v View) Len() int { return len(v.words) }

//Width of the exported grid
func (v View) Width() uint32 { return v.width }

//Height of the exported grid
func (v View) Height() uint32 { return v.height }

//Generation the view was taken at
func (v View) Generation() uint64 { return v.generation }

//Stale reports whether the engine was ticked or mutated after the view was taken
func (v View) Stale() bool {
	return v.current == nil || *v.current != v.epoch
}

//Alive reports the state of (row, col), false outside the grid
func (v View) Alive(row, col uint32) bool {
	if row >= v.height || col >= v.width {
		return false
	}
	i := int(row)*int(v.width) + int(col)
	return v.words[i/WordBits]&(1<<(uint(i)%WordBits)) != 0
}

//Export lends the current generation to an external reader
func (u *Universe) Export() View {
	return newView(&u.cells, u.torus, u.generation, &u.epoch)
}

//CellsPtr returns the raw address of the packed current generation.
//The buffer holds CellsLen words and is valid until the next Tick or mutation.
func (u *Universe) CellsPtr() unsafe.Pointer {
	return u.Export().Ptr()
}

//CellsLen returns the number of 64-bit words behind CellsPtr
func (u *Universe) CellsLen() int {
	return len(u.cells.Words())
}
