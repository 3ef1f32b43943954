package docs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/relforge/internal/config"
	"git.home.luguber.info/inful/relforge/internal/shell"
)

func TestBuilderRunsConfiguredCommand(t *testing.T) {
	fake := &shell.FakeRunner{}
	b := NewBuilder(config.DocsConfig{
		SourceDir:    "docs",
		BuildCommand: "make html",
		OutputDir:    "docs/build/html",
	}).WithRunner(fake)

	out, err := b.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "docs/build/html", out)
	require.Len(t, fake.Commands, 1)
	assert.Equal(t, "make html", fake.Commands[0].String())
	assert.Equal(t, "docs", fake.Commands[0].Dir)
}

func TestBuilderRejectsEmptyCommand(t *testing.T) {
	b := NewBuilder(config.DocsConfig{BuildCommand: "   "}).WithRunner(&shell.FakeRunner{})
	_, err := b.Build(context.Background())
	require.Error(t, err)
}

func TestEnsureIndexKeepsExisting(t *testing.T) {
	site := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(site, "index.html"), []byte("tool-made"), 0o644))

	require.NoError(t, EnsureIndex(site, "does-not-matter.md", "torchdata"))

	data, err := os.ReadFile(filepath.Join(site, "index.html"))
	require.NoError(t, err)
	assert.Equal(t, "tool-made", string(data))
}

func TestEnsureIndexRendersReadme(t *testing.T) {
	site := t.TempDir()
	readme := filepath.Join(t.TempDir(), "README.md")
	require.NoError(t, os.WriteFile(readme, []byte("# torchdata\n\nComposable data loading.\n"), 0o644))

	require.NoError(t, EnsureIndex(site, readme, "torchdata"))

	data, err := os.ReadFile(filepath.Join(site, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "<title>torchdata</title>")
	assert.Contains(t, string(data), "<h1")
	assert.Contains(t, string(data), "Composable data loading.")
}

func TestCopyTreePreservesStructure(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(src, "api", "generated"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(src, "index.html"), []byte("root"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "api", "generated", "datapipes.html"), []byte("leaf"), 0o644))

	dst := filepath.Join(t.TempDir(), "1.13")
	require.NoError(t, copyTree(src, dst))

	data, err := os.ReadFile(filepath.Join(dst, "api", "generated", "datapipes.html"))
	require.NoError(t, err)
	assert.Equal(t, "leaf", string(data))
	_, err = os.Stat(filepath.Join(dst, "index.html"))
	assert.NoError(t, err)
}
