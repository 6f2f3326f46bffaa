package universe

import (
	"log"
	"math/bits"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

//NaiveStep evaluates B3/S23 over every cell of cur and returns the next generation.
//The grid is split into word aligned chunks computed in parallel, so no two
//workers ever write the same word.
func NaiveStep(width, height uint32, cur Bitset) Bitset {
	var (
		t          = torus{width: width, height: height}
		next       = NewBitset(cur.Len())
		eg         errgroup.Group
		words      = len(cur.Words())
		numWorkers = runtime.NumCPU()
		perWorker  = (words + numWorkers - 1) / numWorkers
	)
	for w := 0; w < words; w += perWorker {
		var (
			start = w * WordBits
			end   = min((w+perWorker)*WordBits, cur.Len())
		)
		eg.Go(func() error {
			for i := start; i < end; i++ {
				row, col := t.coords(i)
				if nextState(cur.Get(i), t.liveNeighbours(&cur, row, col)) {
					next.Insert(i)
				}
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		log.Panicln(err)
	}
	return next
}

//NaiveUniverse is an Engine that recomputes the whole grid on every tick.
//It is the reference the hot-set Universe is checked against.
type NaiveUniverse struct {
	torus
	cells      Bitset
	generation uint64
	epoch      uint64
}

//NewNaive creates a width x height NaiveUniverse filled by s
func NewNaive(width, height uint32, s Seeder) (*NaiveUniverse, error) {
	if err := CheckDimensions(uint64(width), uint64(height)); err != nil {
		return nil, errors.Wrap(err, "new naive")
	}
	n := &NaiveUniverse{}
	n.allocate(width, height)
	if s != nil {
		s.Seed(&n.cells, width, height)
	}
	return n, nil
}

func (n *NaiveUniverse) allocate(width, height uint32) {
	n.torus = torus{width: width, height: height}
	n.cells = NewBitset(n.size())
	n.epoch++
}

//Width returns the number of columns
func (n *NaiveUniverse) Width() uint32 { return n.width }

//Height returns the number of rows
func (n *NaiveUniverse) Height() uint32 { return n.height }

//Generation returns the number of ticks since creation
func (n *NaiveUniverse) Generation() uint64 { return n.generation }

func (n *NaiveUniverse) SetWidth(w uint32) error  { return n.Resize(w, n.height) }
func (n *NaiveUniverse) SetHeight(h uint32) error { return n.Resize(n.width, h) }

//Resize reallocates the grid with every cell dead
func (n *NaiveUniverse) Resize(w, h uint32) error {
	if err := CheckDimensions(uint64(w), uint64(h)); err != nil {
		return errors.Wrap(err, "resize naive")
	}
	n.allocate(w, h)
	return nil
}

//Tick replaces the grid with NaiveStep of itself
func (n *NaiveUniverse) Tick() TickStats {
	next := NaiveStep(n.width, n.height, n.cells)
	changed := 0
	for i, w := range next.Words() {
		changed += bits.OnesCount64(w ^ n.cells.words[i])
	}
	n.cells = next
	n.generation++
	n.epoch++
	return TickStats{Evaluated: n.size(), Changed: changed, Hot: n.size()}
}

func (n *NaiveUniverse) Alive(row, col uint32) bool {
	if row >= n.height || col >= n.width {
		return false
	}
	return n.cells.Get(n.index(row, col))
}

func (n *NaiveUniverse) ToggleCell(row, col uint32) {
	if row >= n.height || col >= n.width {
		return
	}
	n.cells.Flip(n.index(row, col))
	n.epoch++
}

func (n *NaiveUniverse) SetCell(row, col uint32, alive bool) {
	if row >= n.height || col >= n.width || n.Alive(row, col) == alive {
		return
	}
	n.ToggleCell(row, col)
}

func (n *NaiveUniverse) Clear() {
	n.cells.ClearAll()
	n.epoch++
}

func (n *NaiveUniverse) Seed(s Seeder) {
	n.cells.ClearAll()
	if s != nil {
		s.Seed(&n.cells, n.width, n.height)
	}
	n.epoch++
}

func (n *NaiveUniverse) LiveCells() int { return n.cells.Count() }

func (n *NaiveUniverse) Export() View {
	return newView(&n.cells, n.torus, n.generation, &n.epoch)
}

var (
	_ Engine = (*Universe)(nil)
	_ Engine = (*NaiveUniverse)(nil)
)
