package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/relforge/internal/shell"
)

// isWindows reports whether the cell's OS belongs to the family served by a
// native installer instead of the environment manager.
func (cs *CellState) isWindows() bool { return strings.HasPrefix(cs.Cell.OS, "windows") }

// python returns the interpreter path inside the acquired environment.
func (cs *CellState) python() string {
	if cs.isWindows() {
		return filepath.Join(cs.EnvDir, "python.exe")
	}
	return filepath.Join(cs.EnvDir, "bin", "python")
}

// stageEnvironment provisions an isolated runtime environment matching the
// cell's requested python version.
func stageEnvironment(ctx context.Context, cs *CellState) error {
	for _, dir := range []string{cs.Workspace, cs.WheelDir, cs.CondaDir} {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return newFatalStageError(StageEnvironment, fmt.Errorf("create cell workspace: %w", err))
		}
	}
	var cmd shell.Command
	if cs.isWindows() {
		cmd = shell.Command{
			Name: "choco",
			Args: []string{"install", "python3", "--version=" + cs.Cell.Python, "--install-arguments", "TargetDir=" + cs.EnvDir, "-y"},
		}
	} else {
		cmd = shell.Command{
			Name: "conda",
			Args: []string{"create", "-y", "-p", cs.EnvDir, "python=" + cs.Cell.Python},
		}
	}
	if err := cs.runner.Run(ctx, cmd); err != nil {
		return newFatalStageError(StageEnvironment, fmt.Errorf("acquire python %s environment: %w", cs.Cell.Python, err))
	}
	return nil
}
