package universe

//nextState applies B3/S23: a live cell survives with 2 or 3 live neighbours,
//a dead cell is born with exactly 3
func nextState(alive bool, neighbours int) bool {
	return neighbours == 3 || (alive && neighbours == 2)
}

//liveNeighbours counts the live cells among the 8 neighbours of (row, col) in cells
func (t torus) liveNeighbours(cells *Bitset, row, col uint32) int {
	live := 0
	for _, n := range t.neighbours(row, col) {
		if cells.Get(n) {
			live++
		}
	}
	return live
}

//Tick advances the universe by one generation.
//
//Only the cells that were hot are evaluated; every other cell keeps its value.
//A cell that flips heats itself and its neighbours for the next tick, so the
//result is identical to evaluating the whole grid.
func (u *Universe) Tick() TickStats {
	var st TickStats

	u.snapshot, u.hot = u.hot, u.snapshot
	u.hot.ClearAll()
	u.nextCells.CopyFrom(u.cells)

	u.snapshot.ForEach(func(i int) {
		st.Evaluated++
		row, col := u.coords(i)
		alive := u.cells.Get(i)
		next := nextState(alive, u.liveNeighbours(&u.cells, row, col))
		if next == alive {
			return
		}
		st.Changed++
		u.nextCells.Set(i, next)
		u.heat(row, col)
	})

	u.cells, u.nextCells = u.nextCells, u.cells
	u.generation++
	u.epoch++
	st.Hot = u.hot.Count()
	return st
}
