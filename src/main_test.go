package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"toruslife/src/simulation"
)

func TestOverlay(t *testing.T) {
	dst := simulation.DefaultOptions
	dst.Width = 80
	dst.Engine = "naive"

	flags := unsetOptions
	flags.Height = 50
	flags.Interval = time.Second
	overlay(&dst, flags, unsetOptions)

	if dst.Width != 80 || dst.Engine != "naive" {
		t.Fatalf("flags not given must not override: %+v", dst)
	}
	if dst.Height != 50 || dst.Interval != time.Second {
		t.Fatalf("given flags must override: %+v", dst)
	}
}

func TestExplicitFlags(t *testing.T) {
	flags, err := explicitFlags([]string{"-x", "40", "--seed", "0", "-r"})
	if err != nil {
		t.Fatal(err)
	}
	if flags.Width != 40 || flags.Seed != 0 {
		t.Fatalf("given flags lost: %+v", flags)
	}
	if flags.Height != unsetOptions.Height || flags.Engine != unsetOptions.Engine || flags.Density != unsetOptions.Density {
		t.Fatalf("flags not given must stay unset: %+v", flags)
	}

	//a flag given with its default value still beats the config file
	name := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(name, []byte(`{"width": 100, "seed": 9}`), 0o600); err != nil {
		t.Fatal(err)
	}
	uo, err := resolveOptions(name, flags)
	if err != nil {
		t.Fatal(err)
	}
	if uo.Width != simulation.DefWidth || uo.Seed != 0 {
		t.Fatalf("explicit default flags ignored: %+v", uo)
	}
}

func TestResolveOptions(t *testing.T) {
	name := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(name, []byte(`{"width": 20, "height": 10, "max_steps": 5}`), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(simulation.EnvPrefix+"HEIGHT", "11")
	t.Setenv(simulation.EnvPrefix+"MAX_STEPS", "6")

	flags := unsetOptions
	flags.MaxSteps = 7

	uo, err := resolveOptions(name, flags)
	if err != nil {
		t.Fatal(err)
	}
	//file < env < flags
	if uo.Width != 20 || uo.Height != 11 || uo.MaxSteps != 7 {
		t.Fatalf("unexpected options %+v", uo)
	}

	flags.Width = 0
	if _, err := resolveOptions("", flags); err == nil {
		t.Fatal("expected a zero width to be rejected")
	}
	if _, err := resolveOptions(filepath.Join(t.TempDir(), "missing.json"), flags); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}
