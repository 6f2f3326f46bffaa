package main

import (
	"log"
	"math"
	"os"
	"strings"

	"github.com/integrii/flaggy"
	"github.com/pkg/errors"

	"toruslife/src/simulation"
	"toruslife/src/universe"
	"toruslife/src/view"
)

var (
	testSample = universe.Pattern{
		{Row: 1, Col: 1}, {Row: 2, Col: 1},
		{Row: 1, Col: 2}, {Row: 2, Col: 2},
		{Row: 3, Col: 3},
		{Row: 2, Col: 4},
		{Row: 3, Col: 4},
		{Row: 3, Col: 5},
	}
)

type EnvOptions struct {
	interactive bool
	randomData  bool
	config      string
}

func main() {
	eo, flags := initOptions()

	uo, err := resolveOptions(eo.config, flags)
	if err != nil {
		flaggy.ShowHelpAndExit(err.Error())
	}

	e, err := simulation.NewEngine(uo)
	if err != nil {
		flaggy.ShowHelpAndExit(err.Error())
	}

	var stateCh chan simulation.Status

	if !eo.interactive {
		stateCh = make(chan simulation.Status, 10) //the buffered channel to getting the simulation status
	}

	s := simulation.New(e, &uo, stateCh)

	s.AddTemplate(
		simulation.Template{
			Name:    "testSample1",
			Descr:   "the test sample with 3 stable patterns",
			Pattern: testSample,
		})

	if eo.randomData {
		s.SettleWithRandomData()
	} else if err := s.SettleTemplate("testSample1"); err != nil {
		log.Fatal(err)
	}

	if eo.interactive {
		v := view.NewViewTerminal()
		s.RegisterViewer(v)
		v.Start()
		s.Close()
		return
	}

	c := view.NewConsoleOut(os.Stdout, true)
	s.RegisterViewer(c)
	c.Start()
	s.Run()
	for st := range stateCh {
		if st.RunningMode == simulation.RunningStateFinished {
			break
		}
	}
	s.Close()
	<-s.Done()
}

//initOptions binds the command line on top of the default options
//the returned flags hold only the options given on the command line, the others are unsetOptions
func initOptions() (eo *EnvOptions, flags simulation.Options) {
	uo := simulation.DefaultOptions
	eo = &EnvOptions{}
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	bindFlags(flaggy.DefaultParser, &uo, eo)

	flaggy.Parse()

	if !eo.interactive {
		flaggy.ShowHelp("")
	}

	flags, err := explicitFlags(os.Args[1:])
	if err != nil {
		flaggy.ShowHelpAndExit(err.Error())
	}
	return
}

//bindFlags declares the command line on p
func bindFlags(p *flaggy.Parser, uo *simulation.Options, eo *EnvOptions) {
	p.Int(&uo.Width, "x", "width", "Width of a simulation field")
	p.Int(&uo.Height, "y", "height", "Height of a simulation field")
	p.Duration(&uo.Interval, "i", "interval", "Simulation speed (interval between the steps) in format the number with 'ms' suffix, for example 150ms")
	p.Int(&uo.MaxSteps, "s", "maxSteps", "Limit the simulation to maxSteps")
	p.Float64(&uo.Density, "d", "density", "Share of live cells when settling with random data")
	p.Int64(&uo.Seed, "", "seed", "Seed of the random data, 0 picks a random one")
	p.String(&uo.Engine, "e", "engine", "Engine to use ["+strings.Join(simulation.EngineNames(), "|")+"]")
	p.Bool(&eo.interactive, "n", "interactive", "Start interactive mode")
	p.Bool(&eo.randomData, "r", "random", "Settle with random data")
	p.String(&eo.config, "c", "config", "JSON file with the simulation options")
}

//unsetOptions marks the options no flag was given for, none of the values can come from a command line
var unsetOptions = simulation.Options{
	Width:    math.MinInt,
	Height:   math.MinInt,
	Interval: math.MinInt64,
	MaxSteps: math.MinInt,
	Density:  math.Inf(-1),
	Seed:     math.MinInt64,
	Engine:   "\x00",
}

//explicitFlags parses args again on top of unsetOptions, so a flag given with its default value is still seen
func explicitFlags(args []string) (simulation.Options, error) {
	p := flaggy.NewParser("toruslife")
	p.ShowHelpOnUnexpected = false
	p.ShowHelpWithHFlag = false
	p.ShowVersionWithVersionFlag = false
	uo := unsetOptions
	bindFlags(p, &uo, &EnvOptions{})
	if err := p.ParseArgs(args); err != nil {
		return unsetOptions, errors.Wrap(err, "[explicitFlags] failed to parse the command line")
	}
	return uo, nil
}

//resolveOptions layers the options: defaults, config file, environment, then the flags given on the command line
func resolveOptions(config string, flags simulation.Options) (simulation.Options, error) {
	uo := simulation.DefaultOptions
	if config != "" {
		var err error
		if uo, err = simulation.LoadOptions(config); err != nil {
			return uo, err
		}
	}
	if err := simulation.ParseEnv(&uo); err != nil {
		return uo, err
	}
	overlay(&uo, flags, unsetOptions)
	return uo, uo.Validate()
}

//overlay copies every field of src that differs from unset into dst
func overlay(dst *simulation.Options, src, unset simulation.Options) {
	if src.Width != unset.Width {
		dst.Width = src.Width
	}
	if src.Height != unset.Height {
		dst.Height = src.Height
	}
	if src.Interval != unset.Interval {
		dst.Interval = src.Interval
	}
	if src.MaxSteps != unset.MaxSteps {
		dst.MaxSteps = src.MaxSteps
	}
	if src.Density != unset.Density {
		dst.Density = src.Density
	}
	if src.Seed != unset.Seed {
		dst.Seed = src.Seed
	}
	if src.Engine != unset.Engine {
		dst.Engine = src.Engine
	}
}
