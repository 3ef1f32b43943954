package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/relforge/internal/artifact"
	"git.home.luguber.info/inful/relforge/internal/shell"
)

// stageValidate inspects package metadata for every built wheel and, on the
// portable linux platform, runs the binary-compatibility repair that
// rewrites the platform tag to the portable baseline. Invalid artifacts are
// withheld: deleted from the output directory so collection cannot pick
// them up.
func stageValidate(ctx context.Context, cs *CellState) error {
	entries, err := os.ReadDir(cs.WheelDir)
	if err != nil {
		return newFatalStageError(StageValidate, fmt.Errorf("read wheel output: %w", err))
	}
	for _, entry := range entries {
		if entry.IsDir() || !artifact.IsWheelFile(entry.Name()) {
			continue
		}
		path := filepath.Join(cs.WheelDir, entry.Name())
		name, err := artifact.ParseWheelName(entry.Name())
		if err != nil {
			_ = os.Remove(path)
			return newFatalStageError(StageValidate, err)
		}
		md, err := artifact.ReadWheelMetadata(path)
		if err != nil {
			_ = os.Remove(path)
			return newFatalStageError(StageValidate, err)
		}
		if md.Name != cs.Cfg.Package.Name {
			_ = os.Remove(path)
			return newFatalStageError(StageValidate, fmt.Errorf("wheel %s: metadata names %q, expected %q", entry.Name(), md.Name, cs.Cfg.Package.Name))
		}
		if cs.Cell.IsPortableLinux() {
			if err := cs.repairWheel(ctx, path, name); err != nil {
				return newFatalStageError(StageValidate, err)
			}
		}
	}
	return nil
}

// repairWheel runs the external compatibility repair tool and relocates the
// repaired artifact into the canonical output directory, replacing the
// original.
func (cs *CellState) repairWheel(ctx context.Context, path string, name artifact.WheelName) error {
	repairDir := filepath.Join(cs.Workspace, "repaired")
	if err := os.MkdirAll(repairDir, 0o750); err != nil {
		return fmt.Errorf("create repair dir: %w", err)
	}
	cmd := shell.Command{
		Name: "auditwheel",
		Args: []string{"repair", path, "--plat", artifact.PortablePlatform(name.Platform), "-w", repairDir},
	}
	if err := cs.runner.Run(ctx, cmd); err != nil {
		return fmt.Errorf("compatibility repair: %w", err)
	}
	repaired := name.Repaired()
	repairedPath := filepath.Join(repairDir, repaired.String())
	if _, err := os.Stat(repairedPath); err != nil {
		return fmt.Errorf("repair produced no %s: %w", repaired.String(), err)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("remove unrepaired wheel: %w", err)
	}
	if err := os.Rename(repairedPath, filepath.Join(cs.WheelDir, repaired.String())); err != nil {
		return fmt.Errorf("relocate repaired wheel: %w", err)
	}
	return nil
}
