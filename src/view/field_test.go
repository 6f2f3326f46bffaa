package view

import (
	"testing"

	"toruslife/src/universe"
)

func TestRenderField(t *testing.T) {
	u, err := universe.New(4, 3, universe.WithSeeder(universe.Pattern{{Row: 0, Col: 0}, {Row: 2, Col: 3}}))
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name       string
		maxW, maxH int
		want       string
	}{
		{"fits", 10, 10, "#...\n....\n...#"},
		{"exact", 4, 3, "#...\n....\n...#"},
		{"too narrow", 2, 10, "#.\n..\n!"},
		{"too short", 10, 2, "#...\n!"},
		{"no room", 0, 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := renderField(u.Export(), tt.maxW, tt.maxH, "#", ".", "!"); got != tt.want {
				t.Fatalf("renderField() = %q, want %q", got, tt.want)
			}
		})
	}
}
