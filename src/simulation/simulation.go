package simulation

import (
	"sync"
	"time"

	"github.com/pkg/errors"

	"toruslife/src/universe"
)

var (
	ErrUnknownTemplate = errors.New("unknown template")
	ErrClosed          = errors.New("simulation is closed")
)

//Status represents the status of the simulation at concrete moment
type Status struct {
	IterationNum  int
	RunningMode   RunningState
	LiveCells     int
	HotCells      int
	Changed       int
	IterationTime time.Duration
}

//Viewer is the interface to any Viewer - the object who can display simulation data or control the engine
//Refresh runs on the simulation goroutine: the view is only valid until Refresh returns
type Viewer interface {
	Refresh(v universe.View, st Status)
	Register(s *Simulation)
	Start()
}

//Template represent the seeding template which can used to settle the universe with predefined data
type Template struct {
	Name    string           //template name
	Descr   string           //template descr
	Pattern universe.Pattern //live cells
}

//The simulation running status at the concrete moment
type RunningState int

const (
	RunningStateManual   RunningState = 0x0
	RunningStateStep     RunningState = 0x1
	RunningStateRun      RunningState = 0x2
	RunningStateFinished RunningState = 0x3
)

func (s RunningState) String() string {
	switch s {
	case RunningStateManual:
		return "waiting"
	case RunningStateStep:
		return "do the step"
	case RunningStateRun:
		return "running"
	case RunningStateFinished:
		return "finished"
	}
	return "unknown"
}

//Simulation drives a universe.Engine: every access to the engine happens on one goroutine,
//commands are queued on the control channel and status changes are written to stateCh
type Simulation struct {
	options Options
	engine  universe.Engine
	state   struct {
		Status
		sync.Mutex
	}
	stateCh   chan Status
	views     []Viewer
	templates map[string]Template
	controlCh chan func()
	closeCh   chan bool
	runID     int //owned by the main loop
	done      chan struct{}
}

//New creates the Simulation around engine and starts its main loop
//stateCh may be nil when nobody listens for status updates
func New(engine universe.Engine, o *Options, stateCh chan Status) *Simulation {
	if o == nil {
		o = &DefaultOptions
	}
	s := Simulation{
		options:   *o,
		engine:    engine,
		controlCh: make(chan func(), 1),
		closeCh:   make(chan bool, 1),
		done:      make(chan struct{}),
		stateCh:   stateCh,
		templates: map[string]Template{},
	}
	s.options.Advanced = map[string]interface{}{}
	for k, v := range o.Advanced {
		s.options.Advanced[k] = v
	}
	if s.options.Engine == "" {
		s.options.Engine = DefEngine
	}
	s.options.Advanced["engine"] = s.options.Engine
	s.state.LiveCells = engine.LiveCells()
	go s.mainLoop()
	return &s
}

//AddTemplate adds the seeding template to the internal storage
//the universe can be populated with this template by call SettleTemplate
func (s *Simulation) AddTemplate(tmpl Template) {
	s.templates[tmpl.Name] = tmpl
}

//Settle places the pattern's live cells on top of the current ones, waits for completion
func (s *Simulation) Settle(p universe.Pattern) error {
	return s.exec(func() {
		s.settle(p)
	})
}

//SettleTemplate populates the universe with the seeding template, waits for completion
func (s *Simulation) SettleTemplate(name string) error {
	tmpl, ok := s.templates[name]
	if !ok {
		return errors.Wrapf(ErrUnknownTemplate, "settle %q", name)
	}
	return s.Settle(tmpl.Pattern)
}

//SettleWithRandomData replaces the cells with random data, returns immediately
//ignored while the simulation is running
func (s *Simulation) SettleWithRandomData() {
	if mode := s.runningMode(); mode == RunningStateManual || mode == RunningStateFinished {
		s.send(s.clear)
		s.send(func() {
			s.engine.Seed(universe.NewRandomSeeder(s.options.Seed, s.options.Density))
			s.setLiveCells()
			s.refreshView()
		})
	}
}

//InverseCell inverses the cell state at point x, y, waits for completion
func (s *Simulation) InverseCell(x int, y int) error {
	if x < 0 || y < 0 {
		return nil
	}
	return s.exec(func() {
		s.engine.ToggleCell(uint32(y), uint32(x))
		s.setLiveCells()
		s.refreshView()
	})
}

//Resize changes the universe dimension, all cells are killed
func (s *Simulation) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return errors.Wrapf(universe.ErrZeroDimension, "resize to %vx%v", width, height)
	}
	if err := universe.CheckDimensions(uint64(width), uint64(height)); err != nil {
		return errors.Wrap(err, "resize")
	}
	var err error
	if e := s.exec(func() {
		if err = s.engine.Resize(uint32(width), uint32(height)); err != nil {
			return
		}
		s.state.Lock()
		s.options.Width, s.options.Height = width, height
		s.state.Unlock()
		s.setLiveCells()
		s.refreshView()
	}); e != nil {
		return e
	}
	return err
}

//View lends the current generation to fn on the simulation goroutine
func (s *Simulation) View(fn func(v universe.View)) error {
	return s.exec(func() {
		fn(s.engine.Export())
	})
}

//RegisterViewer registers the viewer - the simulation will call the viewer when the state is changed
func (s *Simulation) RegisterViewer(v Viewer) {
	s.views = append(s.views, v)
	v.Register(s)
}

//StateCh returns the channel with the simulation's status updates
func (s *Simulation) StateCh() chan Status {
	return s.stateCh
}

//Status returns current simulation status represented by Status struct
func (s *Simulation) Status() Status {
	s.state.Lock()
	defer s.state.Unlock()
	return s.state.Status
}

//Options returns current simulation configuration represented by Options struct
func (s *Simulation) Options() Options {
	s.state.Lock()
	defer s.state.Unlock()
	return s.options
}

//Run starts the simulation, returns immediately
func (s *Simulation) Run() {
	s.send(s.run)
}

//Stop stops the simulation, returns immediately
//the Status struct will be written the stateCh on finish
func (s *Simulation) Stop() {
	s.send(s.stop)
}

//Step do one simulation step, returns immediately
//the Status struct will be written to the stateCh on start and on finish
func (s *Simulation) Step() {
	s.send(s.step)
}

//Clear clears the universe (kill all cells and reset all counters), returns immediately
//the Status struct will be written to the stateCh on finish
func (s *Simulation) Clear() {
	s.send(s.clear)
}

//Close stops the main loop, returns immediately
func (s *Simulation) Close() {
	select {
	case s.closeCh <- true:
	default:
	}
}

//Done is closed once the main loop has exited
func (s *Simulation) Done() <-chan struct{} {
	return s.done
}

//mainLoop - the main cycle, should start as a goroutine
//waits for command and executes
func (s *Simulation) mainLoop() {
	defer close(s.done)
	for {
		select {
		case cmd := <-s.controlCh:
			cmd()
		case <-s.closeCh:
			return
		}
	}
}

//send queues cmd on the control channel, dropped once the loop is closed
func (s *Simulation) send(cmd func()) bool {
	select {
	case s.controlCh <- cmd:
		return true
	case <-s.done:
		return false
	}
}

//exec queues cmd and waits until it has run
func (s *Simulation) exec(cmd func()) error {
	finished := make(chan struct{})
	if !s.send(func() {
		defer close(finished)
		cmd()
	}) {
		return ErrClosed
	}
	select {
	case <-finished:
		return nil
	case <-s.done:
		return ErrClosed
	}
}

//settle places live cells at the pattern points
func (s *Simulation) settle(p universe.Pattern) {
	w, h := s.engine.Width(), s.engine.Height()
	for _, pt := range p {
		s.engine.SetCell(pt.Row%h, pt.Col%w, true)
	}
	s.setLiveCells()
	s.refreshView()
}

func (s *Simulation) setLiveCells() {
	s.state.Lock()
	s.state.LiveCells = s.engine.LiveCells()
	s.state.Unlock()
}

func (s *Simulation) runningMode() RunningState {
	s.state.Lock()
	defer s.state.Unlock()
	return s.state.RunningMode
}

//switchRunningState switch the state of the simulation to RunningState
//also writes the new state to the stateCh to signal upper control software
func (s *Simulation) switchRunningState(to RunningState) {
	s.state.Lock()
	s.state.RunningMode = to
	st := s.state.Status
	s.state.Unlock()
	if s.stateCh != nil {
		s.stateCh <- st
	}
}

//run starts the simulation
//simulation will stop on Stop() calling or when the boundary conditions are reached
func (s *Simulation) run() {
	if s.state.RunningMode == RunningStateRun {
		return
	}
	s.runID++
	s.switchRunningState(RunningStateRun)
	go s.ticker(s.runID)
}

//ticker queues one step per interval while run id is the active run
func (s *Simulation) ticker(id int) {
	next := make(chan bool, 1)
	for {
		if !s.send(func() {
			if s.runID != id || s.state.RunningMode != RunningStateRun {
				next <- false
				return
			}
			s.step()
			next <- s.state.RunningMode == RunningStateRun
		}) {
			return
		}
		select {
		case more := <-next:
			if !more {
				return
			}
		case <-s.done:
			return
		}
		if s.options.Interval > 0 {
			time.Sleep(s.options.Interval)
		}
	}
}

//stop stops the simulation running cycle
func (s *Simulation) stop() {
	if s.runningMode() == RunningStateRun {
		s.switchRunningState(RunningStateManual)
	}
}

//step does the new one state calculation for entire universe
func (s *Simulation) step() {
	finished := false
	rm := s.runningMode()
	if rm == RunningStateFinished {
		rm = RunningStateManual
	}
	maxIter := s.options.MaxSteps
	defer func() {
		if finished {
			s.switchRunningState(RunningStateFinished)
		} else {
			s.switchRunningState(rm)
		}
		s.refreshView()
	}()

	if maxIter != 0 && s.state.IterationNum >= maxIter {
		finished = true
		return
	}
	s.switchRunningState(RunningStateStep)
	start := time.Now()
	st := s.engine.Tick()
	elapsed := time.Since(start)

	s.state.Lock()
	s.state.IterationNum++
	s.state.IterationTime = elapsed
	s.state.Changed = st.Changed
	s.state.HotCells = st.Hot
	s.state.LiveCells = s.engine.LiveCells()
	live := s.state.LiveCells
	s.state.Unlock()

	if live == 0 || st.Changed == 0 {
		finished = true
	}
}

//clear clears the universe data, reset all counters
func (s *Simulation) clear() {
	s.engine.Clear()
	s.state.Lock()
	s.state.IterationNum = 0
	s.state.LiveCells = 0
	s.state.HotCells = 0
	s.state.Changed = 0
	s.state.RunningMode = RunningStateManual
	s.state.Unlock()
	s.switchRunningState(RunningStateManual)
	s.refreshView()
}

//refreshView calls Refresh event for all registered views
//runs on the simulation goroutine, so the exported view can not change under the viewers
func (s *Simulation) refreshView() {
	if len(s.views) == 0 {
		return
	}
	v := s.engine.Export()
	st := s.Status()
	for _, view := range s.views {
		view.Refresh(v, st)
	}
}
