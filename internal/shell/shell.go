// Package shell runs the external collaborators: build toolchains,
// environment managers, package tools, and registry clients. Everything the
// pipeline shells out to goes through the Runner interface so stages can be
// exercised against a fake in tests.
package shell

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// Command describes one external invocation.
type Command struct {
	Name string
	Args []string
	Dir  string   // working directory; empty means inherit
	Env  []string // extra KEY=VALUE pairs appended to the parent environment
}

// String renders the command line for logs. Env values are elided: they may
// hold credentials.
func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Runner executes commands.
type Runner interface {
	// Run executes the command, streaming output to the parent process.
	Run(ctx context.Context, cmd Command) error
	// Output executes the command and captures stdout.
	Output(ctx context.Context, cmd Command) (string, error)
}

// ExecRunner is the production Runner backed by os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, cmd Command) error {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	c.Env = append(os.Environ(), cmd.Env...)
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	slog.Debug("running external command", slog.String("command", cmd.String()), slog.String("dir", cmd.Dir))
	if err := c.Run(); err != nil {
		return fmt.Errorf("%s failed: %w", cmd.Name, err)
	}
	return nil
}

func (ExecRunner) Output(ctx context.Context, cmd Command) (string, error) {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	c.Env = append(os.Environ(), cmd.Env...)
	var out bytes.Buffer
	c.Stdout = &out
	c.Stderr = os.Stderr
	slog.Debug("running external command", slog.String("command", cmd.String()), slog.String("dir", cmd.Dir))
	if err := c.Run(); err != nil {
		return "", fmt.Errorf("%s failed: %w", cmd.Name, err)
	}
	return out.String(), nil
}
