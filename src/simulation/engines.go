package simulation

import (
	"sort"

	"github.com/pkg/errors"

	"toruslife/src/universe"
)

//Engines holds the constructors of the available universe engines
var Engines = map[string]func(width, height uint32, s universe.Seeder) (universe.Engine, error){
	"hot": func(width, height uint32, s universe.Seeder) (universe.Engine, error) {
		return universe.New(width, height, universe.WithSeeder(s))
	},
	"naive": func(width, height uint32, s universe.Seeder) (universe.Engine, error) {
		return universe.NewNaive(width, height, s)
	},
}

//EngineNames returns the sorted names of Engines
func EngineNames() []string {
	names := make([]string, 0, len(Engines))
	for k := range Engines {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

//NewEngine builds the engine named by o.Engine with an empty grid
func NewEngine(o Options) (universe.Engine, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	name := o.Engine
	if name == "" {
		name = DefEngine
	}
	ctor, ok := Engines[name]
	if !ok {
		return nil, errors.Errorf("unknown engine %q", name)
	}
	return ctor(uint32(o.Width), uint32(o.Height), universe.EmptySeeder{})
}
