//go:build js && wasm

//Command wasmhost exposes a Universe to a JavaScript renderer.
//
//The renderer reads the packed cells straight out of the module memory:
//
//	const cells = new BigUint64Array(memory.buffer, universeCellsPtr(), universeCellsLen())
//
//The array must be rebuilt after every universeTick, universeToggleCell or resize call.
package main

import (
	"log"
	"syscall/js"

	"github.com/pkg/errors"

	"toruslife/src/universe"
	"toruslife/src/wasmhost/jsnum"
)

var u *universe.Universe

func main() {
	var err error
	if u, err = universe.New(64, 64); err != nil {
		log.Fatal(err)
	}
	g := js.Global()
	g.Set("universeNew", js.FuncOf(newUniverse))
	g.Set("universeWidth", js.FuncOf(func(js.Value, []js.Value) any { return u.Width() }))
	g.Set("universeHeight", js.FuncOf(func(js.Value, []js.Value) any { return u.Height() }))
	g.Set("universeSetWidth", js.FuncOf(func(_ js.Value, args []js.Value) any {
		w, err := uint32Arg(args, 0)
		if err != nil {
			return err.Error()
		}
		return errString(u.SetWidth(w))
	}))
	g.Set("universeSetHeight", js.FuncOf(func(_ js.Value, args []js.Value) any {
		h, err := uint32Arg(args, 0)
		if err != nil {
			return err.Error()
		}
		return errString(u.SetHeight(h))
	}))
	g.Set("universeTick", js.FuncOf(func(js.Value, []js.Value) any { return u.Tick().Changed }))
	g.Set("universeToggleCell", js.FuncOf(func(_ js.Value, args []js.Value) any {
		row, err := uint32Arg(args, 0)
		if err != nil {
			return err.Error()
		}
		col, err := uint32Arg(args, 1)
		if err != nil {
			return err.Error()
		}
		u.ToggleCell(row, col)
		return nil
	}))
	g.Set("universeCellsPtr", js.FuncOf(func(js.Value, []js.Value) any { return uintptr(u.CellsPtr()) }))
	g.Set("universeCellsLen", js.FuncOf(func(js.Value, []js.Value) any { return u.CellsLen() }))
	g.Set("universeGeneration", js.FuncOf(func(js.Value, []js.Value) any { return u.Generation() }))
	select {}
}

//newUniverse replaces the universe: (width, height) for a random fill, (width, height, true) for an empty one
func newUniverse(_ js.Value, args []js.Value) any {
	if len(args) < 2 {
		return "universeNew expects width and height"
	}
	var opts []universe.Option
	if len(args) > 2 && args[2].Truthy() {
		opts = append(opts, universe.WithSeeder(universe.EmptySeeder{}))
	}
	w, err := uint32Arg(args, 0)
	if err != nil {
		return err.Error()
	}
	h, err := uint32Arg(args, 1)
	if err != nil {
		return err.Error()
	}
	next, err := universe.New(w, h, opts...)
	if err != nil {
		return err.Error()
	}
	u = next
	return nil
}

//uint32Arg reads args[i] as an uint32, negative or oversized numbers are rejected instead of wrapped
func uint32Arg(args []js.Value, i int) (uint32, error) {
	if i >= len(args) || args[i].Type() != js.TypeNumber {
		return 0, errors.Errorf("argument %v: expected a number", i)
	}
	v, err := jsnum.Uint32(args[i].Float())
	return v, errors.Wrapf(err, "argument %v", i)
}

func errString(err error) any {
	if err != nil {
		return err.Error()
	}
	return nil
}
