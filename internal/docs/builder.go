// Package docs builds the documentation site and deploys it to the hosting
// repository. The deploy target folder is derived from the release branch;
// deployment only happens when the pipeline actually uploaded something.
package docs

import (
	"context"
	"fmt"
	"strings"

	"git.home.luguber.info/inful/relforge/internal/config"
	"git.home.luguber.info/inful/relforge/internal/observability"
	"git.home.luguber.info/inful/relforge/internal/shell"
)

// Builder runs the external documentation build.
type Builder struct {
	cfg    config.DocsConfig
	runner shell.Runner
}

// NewBuilder creates a builder using the production command runner.
func NewBuilder(cfg config.DocsConfig) *Builder {
	return &Builder{cfg: cfg, runner: shell.ExecRunner{}}
}

// WithRunner swaps the command runner (fluent helper, used by tests).
func (b *Builder) WithRunner(r shell.Runner) *Builder { b.runner = r; return b }

// Build runs the configured build command in the docs source directory and
// returns the rendered site directory.
func (b *Builder) Build(ctx context.Context) (string, error) {
	name, args, err := splitCommand(b.cfg.BuildCommand)
	if err != nil {
		return "", err
	}
	observability.InfoContext(ctx, "building documentation site")
	if err := b.runner.Run(ctx, shell.Command{Name: name, Args: args, Dir: b.cfg.SourceDir}); err != nil {
		return "", fmt.Errorf("docs build: %w", err)
	}
	return b.cfg.OutputDir, nil
}

// splitCommand splits a configured command line on whitespace. Build
// commands with quoting needs should be wrapped in a script instead.
func splitCommand(line string) (string, []string, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil, fmt.Errorf("empty docs build command")
	}
	return fields[0], fields[1:], nil
}
