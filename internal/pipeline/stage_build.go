package pipeline

import (
	"context"
	"fmt"
	"strings"

	"git.home.luguber.info/inful/relforge/internal/artifact"
	"git.home.luguber.info/inful/relforge/internal/shell"
)

// buildEnv assembles the environment selecting the target runtime, the core
// dependency version, and the optional cloud-storage feature.
func (cs *CellState) buildEnv() []string {
	cloud := "0"
	if cs.Cfg.Build.CloudIntegration {
		cloud = "1"
	}
	env := []string{
		"PYTHON_VERSION=" + cs.Cell.Python,
		"BUILD_S3=" + cloud,
	}
	if cs.Params.CoreVersion != "" {
		key := strings.ToUpper(cs.Cfg.Package.CoreDependency) + "_VERSION"
		env = append(env, key+"="+cs.Params.CoreVersion)
	}
	return env
}

// stageBuildWheel invokes the native wheel build into the canonical output
// directory.
func stageBuildWheel(ctx context.Context, cs *CellState) error {
	cmd := shell.Command{
		Name: cs.python(),
		Args: []string{"-m", "build", "--wheel", "--outdir", cs.WheelDir},
		Env:  cs.buildEnv(),
	}
	if err := cs.runner.Run(ctx, cmd); err != nil {
		return newFatalStageError(StageBuildWheel, fmt.Errorf("wheel build: %w", err))
	}
	return nil
}

// stageBuildConda invokes the channel-style package build. Output lands
// under the per-platform subdirectory conda-build maintains itself.
func stageBuildConda(ctx context.Context, cs *CellState) error {
	cmd := shell.Command{
		Name: "conda",
		Args: []string{
			"build",
			"--python", cs.Cell.Python,
			"--output-folder", cs.CondaDir,
			"packaging/" + cs.Cfg.Package.Name,
		},
		Env: append(cs.buildEnv(), "CONDA_PLATFORM="+artifact.CondaPlatform(cs.Cell.OS)),
	}
	if err := cs.runner.Run(ctx, cmd); err != nil {
		return newFatalStageError(StageBuildConda, fmt.Errorf("conda build: %w", err))
	}
	return nil
}
