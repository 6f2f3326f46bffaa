package view

import (
	"bytes"
	"fmt"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"

	"toruslife/src/simulation"
	"toruslife/src/universe"
)

type keyBindings struct {
	key      interface{}
	name     string
	descr    string
	handler  func(v *gocui.View) error
	viewName string
}

type ConsoleUI struct {
	s *simulation.Simulation
	g *gocui.Gui
	k []keyBindings

	liveFiller string
	deadFiller string
	//battlefield inner size, written by layout on the gui goroutine
	fieldW atomic.Int32
	fieldH atomic.Int32
}

var (
	runningStateDescr = map[simulation.RunningState]string{
		simulation.RunningStateManual:   aurora.Colorize(simulation.RunningStateManual, aurora.BlueFg).String(),
		simulation.RunningStateStep:     simulation.RunningStateStep.String(),
		simulation.RunningStateRun:      aurora.Colorize(simulation.RunningStateRun, aurora.CyanFg).String(),
		simulation.RunningStateFinished: aurora.Colorize(simulation.RunningStateFinished, aurora.RedFg).String(),
	}
	cropNote = aurora.Red("The field size is larger than the viewing area").BgBlack().String()
)

func NewViewTerminal() *ConsoleUI {

	var err error
	t := ConsoleUI{
		liveFiller: aurora.Green("█").BgBrightGreen().String(),
		deadFiller: "░",
	}

	t.g, err = gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		log.Panicln(err)
	}

	t.g.Mouse = true
	t.k = []keyBindings{
		{gocui.KeyCtrlC,
			"^C",
			"Exit",
			t.cmdQuit,
			""},
		{'n',
			"N",
			"Next step",
			t.cmdNextRound,
			""},
		{'r',
			"R",
			"Run",
			t.cmdRun,
			""},
		{'s',
			"S",
			"Stop",
			t.cmdStop,
			""},
		{'c',
			"C",
			"Clear",
			t.cmdClear,
			""},
		{'w',
			"W",
			"Settle with random",
			t.cmdSettleWithRandom,
			""},
		{'f',
			"F",
			"Fit to view",
			t.cmdFit,
			""},
		{gocui.MouseLeft,
			"MOUSE",
			"Settle the cell",
			t.cmdMouseClick,
			"battlefield"},
	}
	t.g.SetManagerFunc(t.layout)

	t.initKeyBindings(t.k)

	return &t
}

func (t *ConsoleUI) initKeyBindings(k []keyBindings) {
	for _, kb := range k {
		h := kb.handler
		if err := t.g.SetKeybinding(kb.viewName, kb.key, gocui.ModNone, func(gui *gocui.Gui, view *gocui.View) error { return h(view) }); err != nil {
			log.Panicln(err)
		}
	}
}

func (t *ConsoleUI) Register(s *simulation.Simulation) {
	t.s = s
}

func (t *ConsoleUI) Start() {
	if err := t.g.MainLoop(); err != nil && err != gocui.ErrQuit {
		log.Panicln(err)
	}
	t.g.Close()
}

//Refresh draws the field from the loaned view before returning,
//the gui only receives the rendered text
func (t *ConsoleUI) Refresh(v universe.View, st simulation.Status) {
	t.renderField(renderField(v, int(t.fieldW.Load()), int(t.fieldH.Load()), t.liveFiller, t.deadFiller, cropNote))
	t.renderConfiguration()
	t.renderStatus(st, v.Generation())
}

func (t *ConsoleUI) renderField(field string) {
	t.g.Update(func(g *gocui.Gui) error {
		v, e := g.View("battlefield")
		if e != nil {
			return e
		}
		//the entire field is redrawing at once now
		//this terminal driver allows to redraw only changed chars
		//there is an opportunity to speed up with a selective redraw
		v.Clear()
		_, _ = fmt.Fprint(v, field)
		return nil
	})
}

//refreshField asks the simulation for a fresh view, used when the layout changes
func (t *ConsoleUI) refreshField() {
	go func() {
		_ = t.s.View(func(v universe.View) {
			t.renderField(renderField(v, int(t.fieldW.Load()), int(t.fieldH.Load()), t.liveFiller, t.deadFiller, cropNote))
		})
	}()
}

func (t *ConsoleUI) renderStatus(s simulation.Status, generation uint64) {
	t.g.Update(func(g *gocui.Gui) error {
		if v, e := g.View("status"); e == nil {
			v.Clear()
			_, _ = fmt.Fprintln(v, t.renderProp("Step", "%v", s.IterationNum))
			_, _ = fmt.Fprintln(v, t.renderProp("Generation", "%v", generation))
			_, _ = fmt.Fprintln(v, t.renderProp("Live Cells", "%v", s.LiveCells))
			_, _ = fmt.Fprintln(v, t.renderProp("Hot Cells", "%v", s.HotCells))
			_, _ = fmt.Fprintln(v, t.renderProp("Changed", "%v", s.Changed))
			_, _ = fmt.Fprintln(v, t.renderProp("Evaluation time", "%v", s.IterationTime.Round(time.Microsecond)))
			_, _ = fmt.Fprintln(v, t.renderProp("Mode", "%v", runningStateDescr[s.RunningMode]))
		}
		return nil
	})
}

func (t *ConsoleUI) renderConfiguration() {
	//it needs to call Update when calls from goroutine
	t.g.Update(func(g *gocui.Gui) error {
		c := t.s.Options()
		if v, e := g.View("configuration"); e == nil {
			v.Clear()
			_, _ = fmt.Fprintln(v, t.renderProp("Dimension", "%v x %v", c.Width, c.Height))
			_, _ = fmt.Fprintln(v, t.renderProp("Interval", "%v", c.Interval))
			_, _ = fmt.Fprintln(v, t.renderProp("Iterations", "%v steps", c.MaxSteps))
		}
		return nil
	})
}

func (t *ConsoleUI) renderProp(name string, valueformat string, values ...interface{}) string {
	return fmt.Sprintf(" "+aurora.Colorize(name, aurora.GreenFg).String()+": "+valueformat, values...)
}

func (t *ConsoleUI) layout(g *gocui.Gui) error {

	maxX, maxY := g.Size()
	leftColumnWidth := 28
	minWindowHeight := 20

	if maxY < minWindowHeight {
		if _, err := t.headerLayout(g, maxY, "Terminal height too small"); err != nil {
			if err != gocui.ErrUnknownView {
				return err
			}
		}
		_ = g.DeleteView("configuration")
		_ = g.DeleteView("status")
		_ = g.DeleteView("battlefield")
		return nil

	} else {
		if _, err := t.headerLayout(g, 3, "toruslife: the Game of Life on a torus"); err != nil {
			if err != gocui.ErrUnknownView {
				return err
			}
		}
	}

	if v, err := g.SetView("configuration", 0, 3, leftColumnWidth, 3+(maxY-5-3)/2); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Configuration"
		v.Frame = true
		t.renderConfiguration()
	}

	if v, err := g.SetView("status", 0, 3+(maxY-5-3)/2+1, leftColumnWidth, maxY-5); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Status"
		v.Frame = true
		t.renderStatus(t.s.Status(), 0)
	}

	if v, err := g.SetView("battlefield", leftColumnWidth+1, 3, maxX-1, maxY-5); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Torus"
		v.Frame = true
		w, h := v.Size()
		t.fieldW.Store(int32(w))
		t.fieldH.Store(int32(h))
		t.refreshField()
	} else {
		w, h := v.Size()
		oldW, oldH := t.fieldW.Swap(int32(w)), t.fieldH.Swap(int32(h))
		if oldW != int32(w) || oldH != int32(h) {
			t.refreshField()
		}
	}

	if v, err := g.SetView("help", -1, maxY-5, maxX, maxY-3); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Frame = false
		b := bytes.Buffer{}
		b.WriteString("KEYBINDINGS: ")
		for i, k := range t.k {
			if i != 0 {
				b.WriteString(", ")
			}
			b.WriteString(aurora.Green(k.name).String())
			b.WriteString(": ")
			b.WriteString(k.descr)
		}
		_, _ = fmt.Fprintln(v, b.String())
	}

	return nil
}

func (t *ConsoleUI) headerLayout(g *gocui.Gui, height int, text string) (v *gocui.View, err error) {
	maxX, _ := g.Size()
	if v, err = g.SetView("header", -1, -1, maxX+1, height); err != nil {
		if err == gocui.ErrUnknownView && v != nil {
			v.Frame = false
			v.BgColor = gocui.ColorCyan
			v.FgColor = gocui.ColorBlack
		}
	}
	if v != nil {
		v.Clear()
		if maxX < len(text) {
			panic(fmt.Sprintf("Terminal width is too small: %v", maxX))
		}
		_, _ = fmt.Fprintln(v, strings.Repeat("\n", height/2+1)+strings.Repeat(" ", (maxX-len(text))/2)+text)
	}
	return
}

func (t *ConsoleUI) cmdQuit(_ *gocui.View) error {
	return gocui.ErrQuit
}

func (t *ConsoleUI) cmdNextRound(_ *gocui.View) error {
	t.s.Step()
	return nil
}

func (t *ConsoleUI) cmdRun(_ *gocui.View) error {
	t.s.Run()
	return nil
}

func (t *ConsoleUI) cmdStop(_ *gocui.View) error {
	t.s.Stop()
	return nil
}

func (t *ConsoleUI) cmdClear(_ *gocui.View) error {
	t.s.Clear()
	return nil
}

func (t *ConsoleUI) cmdSettleWithRandom(_ *gocui.View) error {
	t.s.SettleWithRandomData()
	return nil
}

//cmdFit resizes the universe to the visible field, every cell is killed
func (t *ConsoleUI) cmdFit(_ *gocui.View) error {
	w, h := int(t.fieldW.Load()), int(t.fieldH.Load())
	go func() {
		_ = t.s.Resize(w, h)
	}()
	return nil
}

func (t *ConsoleUI) cmdMouseClick(v *gocui.View) error {
	cx, cy := v.Cursor()
	go func() {
		_ = t.s.InverseCell(cx, cy)
	}()
	return nil
}
