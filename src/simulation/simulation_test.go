package simulation

import (
	"testing"
	"time"

	"github.com/pkg/errors"

	"toruslife/src/universe"
)

func waitFor(t *testing.T, ch chan Status, modes ...RunningState) Status {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case st := <-ch:
			for _, m := range modes {
				if st.RunningMode == m {
					return st
				}
			}
		case <-timeout:
			t.Fatalf("timed out waiting for %v", modes)
		}
	}
}

func newBlinkerSimulation(t *testing.T, engine string, maxSteps int) *Simulation {
	t.Helper()
	o := DefaultOptions
	o.Width, o.Height = 5, 5
	o.Interval = 0
	o.MaxSteps = maxSteps
	o.Engine = engine
	e, err := NewEngine(o)
	if err != nil {
		t.Fatal(err)
	}
	s := New(e, &o, make(chan Status, 16))
	t.Cleanup(func() {
		s.Close()
		<-s.Done()
	})
	if err := s.Settle(universe.Blinker.Offset(2, 1)); err != nil {
		t.Fatal(err)
	}
	return s
}

func aliveCells(t *testing.T, s *Simulation) map[universe.Point]bool {
	t.Helper()
	alive := map[universe.Point]bool{}
	err := s.View(func(v universe.View) {
		for r := uint32(0); r < v.Height(); r++ {
			for c := uint32(0); c < v.Width(); c++ {
				if v.Alive(r, c) {
					alive[universe.Point{Row: r, Col: c}] = true
				}
			}
		}
	})
	if err != nil {
		t.Fatal(err)
	}
	return alive
}

func TestStepBlinker(t *testing.T) {
	for _, engine := range EngineNames() {
		t.Run(engine, func(t *testing.T) {
			s := newBlinkerSimulation(t, engine, 0)
			s.Step()
			st := waitFor(t, s.StateCh(), RunningStateManual, RunningStateFinished)
			if st.RunningMode != RunningStateManual {
				t.Fatalf("blinker should not finish, got %v", st.RunningMode)
			}
			if st.IterationNum != 1 || st.LiveCells != 3 || st.Changed != 4 {
				t.Fatalf("unexpected status %+v", st)
			}
			want := map[universe.Point]bool{{Row: 1, Col: 2}: true, {Row: 2, Col: 2}: true, {Row: 3, Col: 2}: true}
			got := aliveCells(t, s)
			if len(got) != len(want) {
				t.Fatalf("alive cells %v, want %v", got, want)
			}
			for p := range want {
				if !got[p] {
					t.Fatalf("cell %v should be alive, got %v", p, got)
				}
			}
		})
	}
}

func TestRunStopsAtMaxSteps(t *testing.T) {
	s := newBlinkerSimulation(t, "hot", 10)
	s.Run()
	st := waitFor(t, s.StateCh(), RunningStateFinished)
	if st.IterationNum != 10 {
		t.Fatalf("IterationNum = %v, want 10", st.IterationNum)
	}
}

func TestRunFinishesOnStillLife(t *testing.T) {
	s := newBlinkerSimulation(t, "hot", 0)
	s.Clear()
	waitFor(t, s.StateCh(), RunningStateManual)
	if err := s.Settle(universe.Block.Offset(1, 1)); err != nil {
		t.Fatal(err)
	}
	s.Run()
	st := waitFor(t, s.StateCh(), RunningStateFinished)
	if st.IterationNum != 1 || st.LiveCells != 4 || st.Changed != 0 {
		t.Fatalf("unexpected status %+v", st)
	}
}

func TestClear(t *testing.T) {
	s := newBlinkerSimulation(t, "hot", 0)
	s.Clear()
	st := waitFor(t, s.StateCh(), RunningStateManual)
	if st.LiveCells != 0 || st.IterationNum != 0 {
		t.Fatalf("unexpected status after clear %+v", st)
	}
	if got := aliveCells(t, s); len(got) != 0 {
		t.Fatalf("expected empty universe, got %v", got)
	}
}

func TestInverseCell(t *testing.T) {
	s := newBlinkerSimulation(t, "hot", 0)
	if err := s.InverseCell(0, 0); err != nil {
		t.Fatal(err)
	}
	if got := aliveCells(t, s); !got[universe.Point{}] || len(got) != 4 {
		t.Fatalf("cell (0,0) should be alive, got %v", got)
	}
	if st := s.Status(); st.LiveCells != 4 {
		t.Fatalf("LiveCells = %v, want 4", st.LiveCells)
	}
}

func TestSettleTemplate(t *testing.T) {
	s := newBlinkerSimulation(t, "hot", 0)
	if err := s.SettleTemplate("missing"); errors.Cause(err) != ErrUnknownTemplate {
		t.Fatalf("expected ErrUnknownTemplate, got %v", err)
	}
	s.AddTemplate(Template{Name: "block", Pattern: universe.Block})
	if err := s.SettleTemplate("block"); err != nil {
		t.Fatal(err)
	}
	if st := s.Status(); st.LiveCells != 7 {
		t.Fatalf("LiveCells = %v, want 7", st.LiveCells)
	}
}

func TestResize(t *testing.T) {
	s := newBlinkerSimulation(t, "hot", 0)
	if err := s.Resize(0, 3); errors.Cause(err) != universe.ErrZeroDimension {
		t.Fatalf("expected ErrZeroDimension, got %v", err)
	}
	if err := s.Resize(1<<16, 1<<16); errors.Cause(err) != universe.ErrTooLarge {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
	if o := s.Options(); o.Width != 5 || o.Height != 5 {
		t.Fatalf("rejected resize changed the options: %vx%v", o.Width, o.Height)
	}
	if err := s.Resize(8, 6); err != nil {
		t.Fatal(err)
	}
	if o := s.Options(); o.Width != 8 || o.Height != 6 {
		t.Fatalf("options not updated: %vx%v", o.Width, o.Height)
	}
	err := s.View(func(v universe.View) {
		if v.Width() != 8 || v.Height() != 6 || v.Len() != 1 {
			t.Errorf("unexpected view %vx%v len %v", v.Width(), v.Height(), v.Len())
		}
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := aliveCells(t, s); len(got) != 0 {
		t.Fatalf("resize should kill every cell, got %v", got)
	}
}

func TestClosed(t *testing.T) {
	s := newBlinkerSimulation(t, "hot", 0)
	s.Close()
	<-s.Done()
	if err := s.Settle(universe.Block); err != ErrClosed {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}

type recordingViewer struct {
	refreshes int
	live      int
	stale     bool
	s         *Simulation
}

func (r *recordingViewer) Refresh(v universe.View, st Status) {
	r.refreshes++
	r.live = st.LiveCells
	r.stale = v.Stale()
}
func (r *recordingViewer) Register(s *Simulation) { r.s = s }
func (r *recordingViewer) Start()                 {}

func TestViewerRefresh(t *testing.T) {
	s := newBlinkerSimulation(t, "hot", 0)
	r := &recordingViewer{}
	s.RegisterViewer(r)
	if r.s != s {
		t.Fatal("viewer not registered")
	}
	s.Step()
	waitFor(t, s.StateCh(), RunningStateManual)
	//sync with the main loop before reading the viewer
	if err := s.View(func(universe.View) {}); err != nil {
		t.Fatal(err)
	}
	if r.refreshes == 0 || r.live != 3 || r.stale {
		t.Fatalf("unexpected viewer state %+v", r)
	}
}
