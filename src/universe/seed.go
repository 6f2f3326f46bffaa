package universe

import "math/rand/v2"

//DefaultDensity is the share of live cells produced by the default random fill
const DefaultDensity = 0.5

//Seeder fills a freshly cleared cells bitset of a width x height grid
type Seeder interface {
	Seed(cells *Bitset, width, height uint32)
}

//SeederFunc adapts a function to the Seeder interface
type SeederFunc func(cells *Bitset, width, height uint32)

//Seed calls f
func (f SeederFunc) Seed(cells *Bitset, width, height uint32) { f(cells, width, height) }

//EmptySeeder leaves every cell dead
type EmptySeeder struct{}

//Seed does nothing
func (EmptySeeder) Seed(*Bitset, uint32, uint32) {}

//RandomSeeder sets each cell alive with a fixed probability
type RandomSeeder struct {
	rng     *rand.Rand
	density float64
}

//NewRandomSeeder returns a deterministic seeder for a non-zero seed
//and a randomly seeded one for seed 0
func NewRandomSeeder(seed int64, density float64) *RandomSeeder {
	s := uint64(seed)
	if s == 0 {
		s = rand.Uint64()
	}
	return &RandomSeeder{rng: rand.New(rand.NewPCG(s, 0)), density: density}
}

//Seed fills the cells
func (r *RandomSeeder) Seed(cells *Bitset, width, height uint32) {
	n := int(width) * int(height)
	for i := 0; i < n; i++ {
		if r.rng.Float64() < r.density {
			cells.Insert(i)
		}
	}
}

//Point is a (row, col) grid position
type Point struct {
	Row uint32
	Col uint32
}

//Pattern is a list of live cells, placed with toroidal wrap
type Pattern []Point

//Seed sets every point of the pattern alive
func (p Pattern) Seed(cells *Bitset, width, height uint32) {
	t := torus{width: width, height: height}
	for _, pt := range p {
		cells.Insert(t.index(pt.Row%height, pt.Col%width))
	}
}

//Offset returns the pattern moved by (dr, dc)
func (p Pattern) Offset(dr, dc uint32) Pattern {
	moved := make(Pattern, len(p))
	for i, pt := range p {
		moved[i] = Point{Row: pt.Row + dr, Col: pt.Col + dc}
	}
	return moved
}

//well known patterns, anchored at (0, 0)
var (
	Blinker = Pattern{{0, 0}, {0, 1}, {0, 2}}
	Block   = Pattern{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
	Glider  = Pattern{{0, 1}, {1, 2}, {2, 0}, {2, 1}, {2, 2}}
	Beehive = Pattern{{0, 1}, {0, 2}, {1, 0}, {1, 3}, {2, 1}, {2, 2}}
	Toad    = Pattern{{0, 1}, {0, 2}, {0, 3}, {1, 0}, {1, 1}, {1, 2}}
)
