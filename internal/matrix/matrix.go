// Package matrix expands the build matrix: the cross-product of operating
// systems and python versions minus declared exclusions. Expansion is
// order-stable, side-effect-free, and idempotent; every surviving cell is an
// independent unit of work with no ordering dependency on its siblings.
package matrix

import (
	"fmt"

	"git.home.luguber.info/inful/relforge/internal/config"
)

// Cell is one (os, python) build task.
type Cell struct {
	OS     string
	Python string
}

// String renders the canonical cell identifier used in logs and reports.
func (c Cell) String() string { return fmt.Sprintf("%s/%s", c.OS, c.Python) }

// IsPortableLinux reports whether this cell builds on the portable-linux
// platform, which is the only one subject to compatibility repair.
func (c Cell) IsPortableLinux() bool {
	return len(c.OS) >= 5 && c.OS[:5] == "linux"
}

// Expand yields the filtered cross-product in declaration order: OSes outer,
// python versions inner.
func Expand(mc config.MatrixConfig) []Cell {
	excluded := make(map[Cell]bool, len(mc.Exclude))
	for _, ex := range mc.Exclude {
		excluded[Cell{OS: ex.OS, Python: ex.Python}] = true
	}
	cells := make([]Cell, 0, len(mc.OSes)*len(mc.PythonVersions))
	for _, os := range mc.OSes {
		for _, py := range mc.PythonVersions {
			cell := Cell{OS: os, Python: py}
			if excluded[cell] {
				continue
			}
			cells = append(cells, cell)
		}
	}
	return cells
}
