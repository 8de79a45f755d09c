package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/eykd/spicy-go/bdd"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestNewRootCmd_RegistersSubcommands(t *testing.T) {
	root := NewRootCmd()
	for _, name := range []string{"parse", "scaffold", "name"} {
		t.Run(name, func(t *testing.T) {
			var found bool
			for _, sub := range root.Commands() {
				if sub.Name() == name {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("expected %q subcommand registered on root command", name)
			}
		})
	}
}

func TestNewRootCmd_AllCommandsHaveRunE(t *testing.T) {
	root := NewRootCmd()
	for _, sub := range root.Commands() {
		c := sub
		t.Run(c.Name(), func(t *testing.T) {
			if c.RunE == nil {
				t.Errorf("command %q has nil RunE", c.Name())
			}
		})
	}
}

func TestNewRootCmd_HelpOutput(t *testing.T) {
	root := NewRootCmd()
	out := new(bytes.Buffer)
	root.SetOut(out)
	root.SetErr(new(bytes.Buffer))
	root.SetArgs([]string{})

	if err := root.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	for _, want := range []string{"spicy", "parse", "scaffold", "--debug"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("help output missing %q:\n%s", want, out.String())
		}
	}
}

func TestNewRootCmd_DebugFlagRunsSubcommand(t *testing.T) {
	root := NewRootCmd()
	out := new(bytes.Buffer)
	root.SetOut(out)
	root.SetErr(new(bytes.Buffer))
	root.SetArgs([]string{"--debug", "name", "Scenario_add_two_numbers"})

	if err := root.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if got := out.String(); got != "Add Two Numbers\n" {
		t.Errorf("output = %q", got)
	}
}

func TestNewRootCmd_BadEnvConfigIsNotFatal(t *testing.T) {
	t.Setenv(bdd.EnvConfig, "/nonexistent/spicy.yaml")

	root := NewRootCmd()
	out := new(bytes.Buffer)
	root.SetOut(out)
	root.SetErr(new(bytes.Buffer))
	root.SetArgs([]string{"name", "--prefix", "Scenario", "ScenarioFoo"})

	if err := root.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if got := out.String(); got != "Foo\n" {
		t.Errorf("output = %q", got)
	}
}

func TestNewCLILogger(t *testing.T) {
	log, err := newCLILogger(true)
	if err != nil {
		t.Fatalf("newCLILogger() error = %v", err)
	}
	if !log.Core().Enabled(zap.DebugLevel) {
		t.Error("--debug logger does not log at debug level")
	}

	log, err = newCLILogger(false)
	if err != nil {
		t.Fatalf("newCLILogger() error = %v", err)
	}
	if log.Core().Enabled(zap.DebugLevel) {
		t.Error("default logger logs at debug level")
	}
}

func TestLoggerFrom(t *testing.T) {
	if loggerFrom(nil) == nil { //nolint:staticcheck // nil context is handled
		t.Error("loggerFrom(nil) = nil")
	}
	log := zap.NewExample()
	if got := loggerFrom(withLogger(context.Background(), log)); got != log {
		t.Error("loggerFrom() did not return the stored logger")
	}
}
