package main

import (
	"testing"
)

func TestScoreCmdFlags(t *testing.T) {
	cmd := newScoreCmd()
	f := cmd.Flags()

	// Test default output format
	outputFmt, _ := f.GetString("output")
	if outputFmt != "text" {
		t.Errorf("default output = %q, want text", outputFmt)
	}

	for _, flag := range []string{"config", "output"} {
		if f.Lookup(flag) == nil {
			t.Errorf("missing flag: %s", flag)
		}
	}
}

func TestSeedCmdFlags(t *testing.T) {
	cmd := newSeedCmd()
	f := cmd.Flags()

	customers, _ := f.GetInt("customers")
	if customers != 60 {
		t.Errorf("default customers = %d, want 60", customers)
	}

	for _, flag := range []string{"dsn", "customers", "reset", "seed"} {
		if f.Lookup(flag) == nil {
			t.Errorf("missing flag: %s", flag)
		}
	}
}

func TestReportCmdFlags(t *testing.T) {
	cmd := newReportCmd()
	f := cmd.Flags()

	for _, flag := range []string{"config", "dsn", "storage", "local-path", "bucket", "region", "endpoint"} {
		if f.Lookup(flag) == nil {
			t.Errorf("missing flag: %s", flag)
		}
	}
}
