// Package commands wires the relforge CLI surface: each subcommand is a
// kong command struct with a Run method.
package commands

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
)

// Global context passed to subcommands if we need to share global state later.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags - used by commands that need access to root config.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"relforge.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Run      RunCmd      `cmd:"" help:"Run the full release pipeline: classify, build matrix, upload, docs"`
	Classify ClassifyCmd `cmd:"" help:"Classify a branch into its release channel"`
	Matrix   MatrixCmd   `cmd:"" help:"Print the expanded build matrix"`
	Upload   UploadCmd   `cmd:"" help:"Publish already-collected artifacts without rebuilding"`
	Docs     DocsCmd     `cmd:"" help:"Build and deploy the documentation site"`
	History  HistoryCmd  `cmd:"" help:"Show past pipeline runs from the journal"`
	Init     InitCmd     `cmd:"" help:"Initialize a new configuration file"`
	Daemon   DaemonCmd   `cmd:"" help:"Start daemon mode with scheduled nightly runs"`
}

// AfterApply runs after flag parsing; setup logging once.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}
