package shell

import (
	"context"
	"strings"
	"sync"
)

// FakeRunner records every command and serves scripted results. Used by
// pipeline and upload tests; lives outside _test files so multiple packages
// can share it.
type FakeRunner struct {
	mu       sync.Mutex
	Commands []Command
	// Fail maps a substring of the rendered command line to the error
	// returned when a command matches it.
	Fail map[string]error
	// Outputs maps a substring of the rendered command line to the stdout
	// served for Output calls.
	Outputs map[string]string
	// Hook, when set, runs after each recorded command. Tests use it to
	// create the files a real tool would have produced.
	Hook func(cmd Command) error
}

func (f *FakeRunner) record(cmd Command) error {
	f.mu.Lock()
	f.Commands = append(f.Commands, cmd)
	f.mu.Unlock()
	line := cmd.String()
	for sub, err := range f.Fail {
		if strings.Contains(line, sub) {
			return err
		}
	}
	if f.Hook != nil {
		return f.Hook(cmd)
	}
	return nil
}

func (f *FakeRunner) Run(_ context.Context, cmd Command) error {
	return f.record(cmd)
}

func (f *FakeRunner) Output(_ context.Context, cmd Command) (string, error) {
	if err := f.record(cmd); err != nil {
		return "", err
	}
	line := cmd.String()
	for sub, out := range f.Outputs {
		if strings.Contains(line, sub) {
			return out, nil
		}
	}
	return "", nil
}

// CommandLines renders all recorded commands, for simple assertions.
func (f *FakeRunner) CommandLines() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	lines := make([]string, len(f.Commands))
	for i, c := range f.Commands {
		lines[i] = c.String()
	}
	return lines
}
