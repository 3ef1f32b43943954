package commands

import (
	"fmt"

	"git.home.luguber.info/inful/relforge/internal/config"
	"git.home.luguber.info/inful/relforge/internal/matrix"
)

// MatrixCmd implements the 'matrix' command: print the cells a run would
// build.
type MatrixCmd struct{}

func (m *MatrixCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cells := matrix.Expand(cfg.Matrix)
	for _, cell := range cells {
		fmt.Println(cell.String())
	}
	fmt.Printf("%d cells (%d oses x %d python versions, %d excluded)\n",
		len(cells), len(cfg.Matrix.OSes), len(cfg.Matrix.PythonVersions),
		len(cfg.Matrix.OSes)*len(cfg.Matrix.PythonVersions)-len(cells))
	return nil
}
