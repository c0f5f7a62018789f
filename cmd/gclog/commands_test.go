package main

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseCommand(t *testing.T) {
	stdout, _, err := executeCommand(t, "parse", "testdata/g1.log")
	if err != nil {
		t.Fatalf("parse error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 8 {
		t.Errorf("parse printed %d lines, want 8", len(lines))
	}
}

func TestParseCommand_Filters(t *testing.T) {
	stdout, _, err := executeCommand(t, "parse", "testdata/g1.log", "--types", "pause", "--max", "10")
	if err != nil {
		t.Fatalf("parse error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 3 {
		t.Errorf("parse printed %d lines, want 3:\n%s", len(lines), stdout)
	}
}

func TestParseCommand_Config(t *testing.T) {
	stdout, _, err := executeCommand(t, "--config", "testdata/config.yaml", "parse", "testdata/g1.log")
	if err != nil {
		t.Fatalf("parse error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if lines[0] != strings.Join(csvHeader, ",") {
		t.Errorf("config format not applied, first line = %q", lines[0])
	}
	if len(lines) != 7 {
		t.Errorf("got %d csv lines, want header + 6 pauses", len(lines))
	}
}

func TestParseCommand_OutFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.json")
	stdout, _, err := executeCommand(t, "parse", "testdata/g1.log", "--format", "json", "--out", path)
	if err != nil {
		t.Fatalf("parse error = %v", err)
	}
	if stdout != "" {
		t.Errorf("stdout should be empty with --out, got %q", stdout)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "[") {
		t.Errorf("output file is not a JSON array: %.40q", data)
	}
}

func TestParseCommand_Dir(t *testing.T) {
	dir := t.TempDir()
	data, err := os.ReadFile("testdata/g1.log")
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "gc.log"), data, 0644); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := executeCommand(t, "parse", "--dir", dir, "--format", "pretty")
	if err != nil {
		t.Fatalf("parse error = %v", err)
	}
	if !strings.Contains(stdout, "Pause Full (G1 Compaction Pause) 250M->60M(256M) 45.8ms") {
		t.Errorf("pretty output missing full pause:\n%s", stdout)
	}
}

func TestParseCommand_MissingFile(t *testing.T) {
	_, _, err := executeCommand(t, "parse", "testdata/missing.log")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("parse error = %v, want fs.ErrNotExist", err)
	}
}

func TestParseCommand_InvalidConfig(t *testing.T) {
	_, _, err := executeCommand(t, "--config", "testdata/missing.yaml", "parse", "testdata/g1.log")
	if err == nil || !strings.Contains(err.Error(), "config") {
		t.Errorf("parse error = %v, want config error", err)
	}
}

func TestSummaryCommand(t *testing.T) {
	stdout, _, err := executeCommand(t, "summary", "testdata/g1.log")
	if err != nil {
		t.Fatalf("summary error = %v", err)
	}
	if !strings.Contains(stdout, "Pause") || !strings.Contains(stdout, "95 MiB") {
		t.Errorf("summary output:\n%s", stdout)
	}
}

func TestMetricsCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gc.prom")
	if _, _, err := executeCommand(t, "metrics", "testdata/g1.log", "--out", path); err != nil {
		t.Fatalf("metrics error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("metrics file not written: %v", err)
	}
}

func TestMetricsCommand_RequiresOut(t *testing.T) {
	if _, _, err := executeCommand(t, "metrics", "testdata/g1.log"); err == nil {
		t.Error("metrics without --out expected error")
	}
}

func TestCompletionCommand(t *testing.T) {
	stdout, _, err := executeCommand(t, "completion", "bash")
	if err != nil {
		t.Fatalf("completion error = %v", err)
	}
	if !strings.Contains(stdout, "gclog") {
		t.Error("bash completion should mention gclog")
	}

	if _, _, err := executeCommand(t, "completion", "tcsh"); err == nil {
		t.Error("completion tcsh expected error")
	}
}

func TestVerboseLogging(t *testing.T) {
	_, stderr, err := executeCommand(t, "--verbose", "parse", "testdata/g1.log")
	if err != nil {
		t.Fatalf("parse error = %v", err)
	}
	if !strings.Contains(stderr, "level=DEBUG") {
		t.Errorf("--verbose should log debug records, got %q", stderr)
	}
}
