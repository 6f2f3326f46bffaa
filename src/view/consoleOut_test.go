package view

import (
	"bytes"
	"strings"
	"testing"

	"toruslife/src/simulation"
	"toruslife/src/universe"
)

func TestConsoleOut(t *testing.T) {
	o := simulation.DefaultOptions
	o.Width, o.Height = 6, 6
	o.Interval = 0
	o.MaxSteps = 20
	e, err := simulation.NewEngine(o)
	if err != nil {
		t.Fatal(err)
	}
	s := simulation.New(e, &o, make(chan simulation.Status, 64))
	defer func() {
		s.Close()
		<-s.Done()
	}()

	var out bytes.Buffer
	c := NewConsoleOut(&out, false)
	s.RegisterViewer(c)
	c.Start()
	if err := s.Settle(universe.Blinker.Offset(2, 2)); err != nil {
		t.Fatal(err)
	}
	s.Run()
	for st := range s.StateCh() {
		if st.RunningMode == simulation.RunningStateFinished {
			break
		}
	}
	//sync with the main loop before reading the buffer
	if err := s.View(func(universe.View) {}); err != nil {
		t.Fatal(err)
	}

	got := out.String()
	for _, want := range []string{
		"Running configuration:",
		"Dimension: 6 x 6",
		"engine: hot",
		"Simulation started...",
		"Iterations done: 10",
		"Finished:",
		"Last iteration: 20",
		"Live cells: 3",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output misses %q:\n%s", want, got)
		}
	}
}
