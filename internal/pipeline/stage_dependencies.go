package pipeline

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/relforge/internal/shell"
)

// stageDependencies installs the build toolchain into the cell environment
// and, on the portable linux platform, builds the configured static
// libraries so the produced wheel stays portable across differing system
// library versions.
func stageDependencies(ctx context.Context, cs *CellState) error {
	install := shell.Command{
		Name: cs.python(),
		Args: []string{"-m", "pip", "install", "--upgrade", "pip", "setuptools", "wheel", "build", "conda-build", "pytest"},
	}
	if err := cs.runner.Run(ctx, install); err != nil {
		return newFatalStageError(StageDependencies, fmt.Errorf("install build tooling: %w", err))
	}
	if !cs.Cell.IsPortableLinux() {
		return nil
	}
	for _, lib := range cs.Cfg.Build.StaticLibs {
		build := shell.Command{
			Name: "bash",
			Args: []string{"packaging/build_static.sh", lib},
			Env:  []string{"PREFIX=" + cs.Workspace},
		}
		if err := cs.runner.Run(ctx, build); err != nil {
			return newFatalStageError(StageDependencies, fmt.Errorf("build static %s: %w", lib, err))
		}
	}
	return nil
}
