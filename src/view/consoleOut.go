package view

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/logrusorgru/aurora"

	"toruslife/src/simulation"
	"toruslife/src/universe"
)

//ConsoleOut prints the progress of a non-interactive run
type ConsoleOut struct {
	s         *simulation.Simulation
	w         io.Writer
	colors    aurora.Aurora
	startTime time.Time
}

func NewConsoleOut(w io.Writer, colors bool) *ConsoleOut {
	return &ConsoleOut{w: w, colors: aurora.NewAurora(colors)}
}

func (c *ConsoleOut) Refresh(_ universe.View, st simulation.Status) {
	if st.RunningMode == simulation.RunningStateFinished {
		totalTime := time.Since(c.startTime).Round(time.Millisecond)
		resultData := map[string]interface{}{
			"Last iteration": st.IterationNum,
			"Total time":     totalTime,
			"Live cells":     st.LiveCells,
		}
		_, _ = fmt.Fprintln(c.w, c.colors.Red("\nFinished:"))
		c.printHashData(resultData)
	} else if st.RunningMode == simulation.RunningStateRun {
		if st.IterationNum%10 == 0 {
			_, _ = fmt.Fprintf(c.w, "  Iterations done: %v, hot cells: %v\n", st.IterationNum, st.HotCells)
		}
	}
}

func (c *ConsoleOut) Register(s *simulation.Simulation) {
	c.s = s
	o := c.s.Options()
	_, _ = fmt.Fprintln(c.w, c.colors.Green("Running configuration:"))
	_, _ = fmt.Fprintf(c.w, "  Dimension: %v x %v\n", o.Width, o.Height)
	_, _ = fmt.Fprintf(c.w, "  Interval: %v\n", o.Interval)
	_, _ = fmt.Fprintf(c.w, "  Max iterations: %v steps\n", o.MaxSteps)
	c.printHashData(o.Advanced)
}

func (c *ConsoleOut) Start() {
	c.startTime = time.Now()
	_, _ = fmt.Fprintln(c.w, "\nSimulation started...")
}

func (c *ConsoleOut) printHashData(d map[string]interface{}) {
	propNames := make([]string, 0, len(d))
	for k := range d {
		propNames = append(propNames, k)
	}
	sort.Strings(propNames)
	for _, propName := range propNames {
		_, _ = fmt.Fprintf(c.w, "  %s: %v\n", propName, d[propName])
	}
}
