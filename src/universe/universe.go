package universe

import "github.com/pkg/errors"

var (
	//ErrZeroDimension is returned when a grid would get a zero width or height
	ErrZeroDimension = errors.New("universe: width and height must be at least 1")
	//ErrTooLarge is returned when width*height exceeds MaxCells
	ErrTooLarge = errors.New("universe: grid exceeds MaxCells")
)

//Engine is the contract shared by the hot-set Universe and the full-rescan NaiveUniverse
type Engine interface {
	Width() uint32
	Height() uint32
	SetWidth(w uint32) error
	SetHeight(h uint32) error
	Resize(w, h uint32) error
	Tick() TickStats
	ToggleCell(row, col uint32)
	SetCell(row, col uint32, alive bool)
	Alive(row, col uint32) bool
	Clear()
	Seed(s Seeder)
	LiveCells() int
	Generation() uint64
	Export() View
}

//TickStats describes the work done by a single Tick
type TickStats struct {
	Evaluated int //cells whose rule was evaluated
	Changed   int //cells that flipped
	Hot       int //cells scheduled for the next tick
}

//Universe is a toroidal Game of Life grid stored as packed bits.
//
//Only hot cells are evaluated on a tick. A cell becomes hot when it or one of its
//8 neighbours changed, either by the rule or by a mutation. This is exact for
//B3/S23 because a change can only influence cells at distance 1 on the next
//generation; a rule with a larger neighbourhood would need a wider hot radius.
//
//A Universe is not safe for concurrent use.
type Universe struct {
	torus
	cells      Bitset
	nextCells  Bitset
	hot        Bitset
	snapshot   Bitset //hot set being consumed by Tick
	generation uint64
	epoch      uint64
}

//Option configures New
type Option func(*settings)

type settings struct {
	seeder Seeder
}

//WithSeeder replaces the default random fill
func WithSeeder(s Seeder) Option {
	return func(o *settings) {
		o.seeder = s
	}
}

//New creates a width x height universe, seeds it (random by default) and marks every cell hot
func New(width, height uint32, opts ...Option) (*Universe, error) {
	if err := CheckDimensions(uint64(width), uint64(height)); err != nil {
		return nil, errors.Wrap(err, "new")
	}
	s := settings{seeder: NewRandomSeeder(0, DefaultDensity)}
	for _, o := range opts {
		o(&s)
	}
	u := &Universe{}
	u.allocate(width, height)
	if s.seeder != nil {
		s.seeder.Seed(&u.cells, width, height)
	}
	return u, nil
}

//allocate sets the dimensions and replaces all three bitsets, every cell dead and hot
func (u *Universe) allocate(width, height uint32) {
	u.torus = torus{width: width, height: height}
	n := u.size()
	u.cells = NewBitset(n)
	u.nextCells = NewBitset(n)
	u.hot = NewBitset(n)
	u.hot.Fill()
	u.snapshot = NewBitset(n)
	u.epoch++
}

//Width returns the number of columns
func (u *Universe) Width() uint32 { return u.width }

//Height returns the number of rows
func (u *Universe) Height() uint32 { return u.height }

//Generation returns the number of ticks since creation
func (u *Universe) Generation() uint64 { return u.generation }

//SetWidth changes the number of columns. All cells become dead and hot.
func (u *Universe) SetWidth(w uint32) error {
	return u.Resize(w, u.height)
}

//SetHeight changes the number of rows. All cells become dead and hot.
func (u *Universe) SetHeight(h uint32) error {
	return u.Resize(u.width, h)
}

//Resize reallocates the grid, all cells dead and hot.
//A zero dimension or a grid over MaxCells is rejected and the universe is left untouched.
func (u *Universe) Resize(w, h uint32) error {
	if err := CheckDimensions(uint64(w), uint64(h)); err != nil {
		return errors.Wrap(err, "resize")
	}
	u.allocate(w, h)
	return nil
}

//Alive reports the state of (row, col), false outside the grid
func (u *Universe) Alive(row, col uint32) bool {
	if row >= u.height || col >= u.width {
		return false
	}
	return u.cells.Get(u.index(row, col))
}

//ToggleCell flips (row, col) and marks it and its neighbours hot.
//Coordinates outside the grid are ignored.
func (u *Universe) ToggleCell(row, col uint32) {
	if row >= u.height || col >= u.width {
		return
	}
	u.cells.Flip(u.index(row, col))
	u.heat(row, col)
	u.epoch++
}

//SetCell writes the state of (row, col); the hot set is only touched when the state changes
func (u *Universe) SetCell(row, col uint32, alive bool) {
	if row >= u.height || col >= u.width || u.Alive(row, col) == alive {
		return
	}
	u.ToggleCell(row, col)
}

//Clear kills every cell and marks every cell hot
func (u *Universe) Clear() {
	u.cells.ClearAll()
	u.nextCells.ClearAll()
	u.hot.Fill()
	u.epoch++
}

//Seed refills the grid with s and marks every cell hot
func (u *Universe) Seed(s Seeder) {
	u.cells.ClearAll()
	if s != nil {
		s.Seed(&u.cells, u.width, u.height)
	}
	u.hot.Fill()
	u.epoch++
}

//LiveCells returns the number of live cells
func (u *Universe) LiveCells() int { return u.cells.Count() }

//HotCells returns the number of cells scheduled for the next tick
func (u *Universe) HotCells() int { return u.hot.Count() }

//IsHot reports whether (row, col) will be evaluated on the next tick
func (u *Universe) IsHot(row, col uint32) bool {
	if row >= u.height || col >= u.width {
		return false
	}
	return u.hot.Get(u.index(row, col))
}

//heat marks (row, col) and its 8 neighbours hot
func (u *Universe) heat(row, col uint32) {
	u.hot.Insert(u.index(row, col))
	for _, n := range u.neighbours(row, col) {
		u.hot.Insert(n)
	}
}
