package cli

import "testing"

func TestParseArgsOptions(t *testing.T) {
	opts, err := parseArgs([]string{"rasterfx", "--seed", "7", "--max-dim", "640", "--quality", "75",
		"--webp-quality", "60", "--lossless", "--workers", "2", "--threads", "3", "apply", "in.png", "out.png", "invert"})
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if v, x := opts.argsSeed(); !x || v != 7 {
		t.Fatalf("seed: got %d %v", v, x)
	}
	if v, x := opts.argsThreads(); !x || v != 3 {
		t.Fatalf("threads: got %d %v", v, x)
	}
	if _, x := opts.argsParams(); x {
		t.Fatalf("params should be unset")
	}
	if n := opts.argsExtraLength(); n != 4 {
		t.Fatalf("extra arguments: got %d want 4", n)
	}
	if opts.argsExtraAt(0) != "apply" || opts.argsExtraAt(3) != "invert" || opts.argsExtraAt(9) != "" {
		t.Fatalf("extra arguments: got %v", opts.argsExtra)
	}

	cfg := DefaultConfig()
	opts.apply(&cfg)
	want := Config{MaxDim: 640, Seed: 7, Workers: 2, JPEGQuality: 75, WebPQuality: 60, Lossless: true}
	if cfg != want {
		t.Fatalf("config: got %+v want %+v", cfg, want)
	}
}

func TestParseArgsKeepsConfigWhenUnset(t *testing.T) {
	opts, err := parseArgs([]string{"rasterfx", "list"})
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	cfg := Config{MaxDim: 100, Seed: 3, JPEGQuality: 50, WebPQuality: 10, Verbose: true}
	before := cfg
	opts.apply(&cfg)
	if cfg != before {
		t.Fatalf("unset options changed config: %+v", cfg)
	}
}

func TestParseArgsVerboseSilent(t *testing.T) {
	opts, err := parseArgs([]string{"rasterfx", "--silent", "list"})
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if v, x := opts.argsVerbose(); !x || v {
		t.Fatalf("--silent: got %v %v", v, x)
	}
}

func TestParseArgsInvalidValues(t *testing.T) {
	for _, bad := range [][]string{
		{"rasterfx", "--quality", "0", "list"},
		{"rasterfx", "--quality", "abc", "list"},
		{"rasterfx", "--webp-quality", "101", "list"},
		{"rasterfx", "--threads", "0", "list"},
		{"rasterfx", "--seed", "x", "list"},
	} {
		if _, err := parseArgs(bad); err == nil {
			t.Fatalf("%v: expected error", bad)
		}
	}
}
