package simulation

import (
	"encoding/json"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"

	"toruslife/src/universe"
)

//EnvPrefix is prepended to every environment variable read by ParseEnv
const EnvPrefix = "TORUSLIFE_"

//Options represents the simulation's configurable options
type Options struct {
	Width    int           `json:"width" env:"WIDTH"`
	Height   int           `json:"height" env:"HEIGHT"`
	Interval time.Duration `json:"interval" env:"INTERVAL"`
	MaxSteps int           `json:"max_steps" env:"MAX_STEPS"`
	Density  float64       `json:"density" env:"DENSITY"`
	Seed     int64         `json:"seed" env:"SEED"`
	Engine   string        `json:"engine" env:"ENGINE"`

	Advanced map[string]interface{} `json:"-"` //advanced options (engine specific)
}

//default options
const (
	DefSimulationInterval = time.Millisecond * 100
	DefMaxSteps           = 1000
	DefWidth              = 40
	DefHeight             = 15
	DefDensity            = 0.3
	DefEngine             = "hot"
)

var DefaultOptions = Options{
	Width:    DefWidth,
	Height:   DefHeight,
	Interval: DefSimulationInterval,
	MaxSteps: DefMaxSteps,
	Density:  DefDensity,
	Engine:   DefEngine,
}

//LoadOptions reads options from a JSON file on top of DefaultOptions
func LoadOptions(filename string) (Options, error) {
	o := DefaultOptions

	data, err := os.ReadFile(filename)
	if err != nil {
		return o, errors.Wrapf(err, "[LoadOptions] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &o); err != nil {
		return o, errors.Wrapf(err, "[LoadOptions] failed to unmarshal data from file: %+v", filename)
	}

	return o, nil
}

//ParseEnv overrides o with the TORUSLIFE_* environment variables that are set
func ParseEnv(o *Options) error {
	if err := env.ParseWithOptions(o, env.Options{Prefix: EnvPrefix}); err != nil {
		return errors.Wrap(err, "[ParseEnv] failed to parse environment")
	}
	return nil
}

//Validate checks the options can build a universe
func (o *Options) Validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return errors.Errorf("invalid dimension %vx%v: width and height must be at least 1", o.Width, o.Height)
	}
	if err := universe.CheckDimensions(uint64(o.Width), uint64(o.Height)); err != nil {
		return errors.Wrap(err, "invalid dimension")
	}
	if o.Density < 0 || o.Density > 1 {
		return errors.Errorf("invalid density %v: expected a value in [0, 1]", o.Density)
	}
	if o.MaxSteps < 0 {
		return errors.Errorf("invalid max steps %v", o.MaxSteps)
	}
	return nil
}
