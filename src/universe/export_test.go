package universe

import (
	"testing"
	"unsafe"
)

func TestExportAliasesCells(t *testing.T) {
	u := newEmpty(t, 10, 13)
	u.ToggleCell(12, 9)
	v := u.Export()
	if v.Len() != 3 || u.CellsLen() != 3 {
		t.Fatalf("Len = %v, CellsLen = %v, want 3", v.Len(), u.CellsLen())
	}
	if v.Ptr() != unsafe.Pointer(&u.cells.Words()[0]) || u.CellsPtr() != v.Ptr() {
		t.Fatal("export must hand out the live buffer")
	}
	if !v.Alive(12, 9) || v.Alive(0, 0) || v.Alive(13, 0) {
		t.Fatal("view does not reflect the grid")
	}
	//bit 129 of the packed buffer
	if v.Words()[2] != 1<<1 {
		t.Fatalf("word 2 = %b", v.Words()[2])
	}
	if v.Width() != 10 || v.Height() != 13 || v.Generation() != 0 {
		t.Fatalf("unexpected view shape %vx%v gen %v", v.Width(), v.Height(), v.Generation())
	}
}

func TestExportStaleness(t *testing.T) {
	u := newEmpty(t, 5, 5)
	v := u.Export()
	if v.Stale() {
		t.Fatal("fresh view reported stale")
	}
	u.Tick()
	if !v.Stale() {
		t.Fatal("view must be stale after a tick")
	}
	v = u.Export()
	if v.Generation() != 1 {
		t.Fatalf("Generation = %v, want 1", v.Generation())
	}
	u.ToggleCell(1, 1)
	if !v.Stale() {
		t.Fatal("view must be stale after a toggle")
	}
	v = u.Export()
	if err := u.SetWidth(6); err != nil {
		t.Fatal(err)
	}
	if !v.Stale() {
		t.Fatal("view must be stale after a resize")
	}
	if (View{}).Stale() != true || (View{}).Ptr() != nil {
		t.Fatal("zero view must be stale and empty")
	}
}

func TestNaiveExport(t *testing.T) {
	n, err := NewNaive(4, 4, Block)
	if err != nil {
		t.Fatal(err)
	}
	v := n.Export()
	if !v.Alive(0, 0) || !v.Alive(1, 1) || v.Alive(2, 2) {
		t.Fatal("naive view does not reflect the grid")
	}
	n.Tick()
	if !v.Stale() {
		t.Fatal("naive view must be stale after a tick")
	}
}
