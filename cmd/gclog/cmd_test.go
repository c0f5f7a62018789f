package main

import (
	"bytes"
	"testing"

	"github.com/spf13/pflag"

	"github.com/gclog/gclog-go/internal/config"
)

// resetCommands restores every flag and the loaded config to their defaults.
// Commands share package-level flag variables, so tests that execute rootCmd
// must not run in parallel.
func resetCommands(t *testing.T) {
	t.Helper()

	reset := func(fs *pflag.FlagSet) {
		fs.VisitAll(func(f *pflag.Flag) {
			if sv, ok := f.Value.(pflag.SliceValue); ok {
				_ = sv.Replace(nil)
			} else {
				_ = f.Value.Set(f.DefValue)
			}
			f.Changed = false
		})
	}
	reset(rootCmd.PersistentFlags())
	for _, c := range rootCmd.Commands() {
		reset(c.Flags())
	}
	cfg = config.Default()
}

// executeCommand runs rootCmd with args and returns stdout and stderr.
func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetCommands(t)
	t.Cleanup(func() { resetCommands(t) })

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}
