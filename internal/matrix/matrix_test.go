package matrix

import (
	"reflect"
	"testing"

	"git.home.luguber.info/inful/relforge/internal/config"
)

func testMatrix() config.MatrixConfig {
	return config.MatrixConfig{
		OSes:           []string{"linux-x86_64", "macos-x86_64", "windows-x86_64"},
		PythonVersions: []string{"3.8", "3.9", "3.10"},
		Exclude: []config.ExcludePair{
			{OS: "windows-x86_64", Python: "3.8"},
		},
	}
}

// TestExpandExcludesDeclaredPairs verifies exactly the declared pairs are
// dropped and every other combination appears exactly once.
func TestExpandExcludesDeclaredPairs(t *testing.T) {
	cells := Expand(testMatrix())
	if len(cells) != 8 {
		t.Fatalf("expected 8 cells (9 - 1 excluded) got %d", len(cells))
	}
	seen := make(map[Cell]int)
	for _, c := range cells {
		seen[c]++
	}
	if seen[Cell{OS: "windows-x86_64", Python: "3.8"}] != 0 {
		t.Error("excluded pair present in expansion")
	}
	for cell, n := range seen {
		if n != 1 {
			t.Errorf("cell %s appears %d times", cell, n)
		}
	}
}

// TestExpandIsIdempotent: same inputs, same output, every time.
func TestExpandIsIdempotent(t *testing.T) {
	mc := testMatrix()
	first := Expand(mc)
	for range 5 {
		if got := Expand(mc); !reflect.DeepEqual(got, first) {
			t.Fatal("expansion not stable across invocations")
		}
	}
}

// TestExpandEmptyDimensions yields no cells.
func TestExpandEmptyDimensions(t *testing.T) {
	if cells := Expand(config.MatrixConfig{OSes: []string{"linux-x86_64"}}); len(cells) != 0 {
		t.Fatalf("no python versions should mean no cells, got %d", len(cells))
	}
	if cells := Expand(config.MatrixConfig{PythonVersions: []string{"3.11"}}); len(cells) != 0 {
		t.Fatalf("no oses should mean no cells, got %d", len(cells))
	}
}

// TestExpandDoesNotMutateInput guards the side-effect-free contract.
func TestExpandDoesNotMutateInput(t *testing.T) {
	mc := testMatrix()
	before := len(mc.Exclude)
	_ = Expand(mc)
	if len(mc.Exclude) != before {
		t.Fatal("expansion mutated the exclusion list")
	}
}

func TestCellString(t *testing.T) {
	c := Cell{OS: "linux-x86_64", Python: "3.11"}
	if c.String() != "linux-x86_64/3.11" {
		t.Fatalf("unexpected cell id %q", c.String())
	}
}

func TestIsPortableLinux(t *testing.T) {
	if !(Cell{OS: "linux-x86_64"}).IsPortableLinux() {
		t.Error("linux-x86_64 is the portable platform")
	}
	if (Cell{OS: "macos-x86_64"}).IsPortableLinux() {
		t.Error("macos is not the portable platform")
	}
	if (Cell{OS: "windows-x86_64"}).IsPortableLinux() {
		t.Error("windows is not the portable platform")
	}
}
