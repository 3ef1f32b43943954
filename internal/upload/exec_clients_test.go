package upload

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/relforge/internal/artifact"
	"git.home.luguber.info/inful/relforge/internal/shell"
)

func TestCondaRegistryListParsing(t *testing.T) {
	fake := &shell.FakeRunner{Outputs: map[string]string{
		"anaconda show": `Using Anaconda API: https://api.anaconda.org
Name:    torchdata
Files:
   linux-64/torchdata-0.7.0.dev20260827-py311_0.tar.bz2
   osx-64/torchdata-0.7.0.dev20260827-py311_0.tar.bz2
   not-a-package-line
`,
	}}
	reg := &execCondaRegistry{runner: fake}

	names, err := reg.ListPackages(context.Background(), "pytorch-nightly", "torchdata", "tok")
	require.NoError(t, err)
	require.Len(t, names, 2)
	assert.Equal(t, artifact.CondaName{Platform: "linux-64", Dist: "torchdata", Version: "0.7.0.dev20260827", Build: "py311_0"}, names[0])
	assert.Equal(t, "osx-64", names[1].Platform)
}

func TestCondaRegistryCommandShapes(t *testing.T) {
	fake := &shell.FakeRunner{}
	reg := &execCondaRegistry{runner: fake}
	ctx := context.Background()

	stale := artifact.CondaName{Platform: "linux-64", Dist: "torchdata", Version: "0.7.0.dev20260827", Build: "py311_0"}
	require.NoError(t, reg.Remove(ctx, "pytorch-nightly", stale, "tok"))
	require.NoError(t, reg.Upload(ctx, "pytorch-nightly", "/tmp/pkg.tar.bz2", false, "tok"))
	require.NoError(t, reg.Upload(ctx, "pytorch", "/tmp/pkg.tar.bz2", true, "tok"))

	lines := fake.CommandLines()
	require.Len(t, lines, 3)
	assert.Equal(t, "anaconda remove --force pytorch-nightly/torchdata/0.7.0.dev20260827/linux-64/torchdata-0.7.0.dev20260827-py311_0.tar.bz2", lines[0])
	assert.Equal(t, "anaconda upload --user pytorch-nightly /tmp/pkg.tar.bz2", lines[1])
	assert.Equal(t, "anaconda upload --user pytorch --force /tmp/pkg.tar.bz2", lines[2])

	// tokens ride in the environment, never on the command line
	for _, cmd := range fake.Commands {
		assert.Contains(t, cmd.Env, "ANACONDA_API_TOKEN=tok")
	}
}

func TestObjectStoreCommandShape(t *testing.T) {
	fake := &shell.FakeRunner{}
	store := &execObjectStore{runner: fake}

	creds := ObjectStoreCreds{AccessKey: "AKIA", SecretKey: "shhh"}
	require.NoError(t, store.PutFile(context.Background(), "pytorch", "nightly/x.whl", "/tmp/x.whl", creds))

	require.Len(t, fake.Commands, 1)
	assert.Equal(t, "aws s3 cp /tmp/x.whl s3://pytorch/nightly/x.whl", fake.Commands[0].String())
	assert.Contains(t, fake.Commands[0].Env, "AWS_ACCESS_KEY_ID=AKIA")
	assert.Contains(t, fake.Commands[0].Env, "AWS_SECRET_ACCESS_KEY=shhh")
}

func TestPackageIndexCommandShape(t *testing.T) {
	fake := &shell.FakeRunner{}
	idx := &execPackageIndex{repositoryURL: "https://upload.example.org/legacy/", runner: fake}

	require.NoError(t, idx.Publish(context.Background(), []string{"/tmp/a.whl", "/tmp/b.whl"}, "pypi-token"))

	require.Len(t, fake.Commands, 1)
	assert.Equal(t, "twine upload --non-interactive --repository-url https://upload.example.org/legacy/ /tmp/a.whl /tmp/b.whl", fake.Commands[0].String())
	assert.Contains(t, fake.Commands[0].Env, "TWINE_PASSWORD=pypi-token")
}

func TestNightlyRemovals(t *testing.T) {
	published := []artifact.CondaName{
		{Platform: "linux-64", Dist: "torchdata", Version: "0.6.9.dev1", Build: "py311_0"},
		{Platform: "linux-64", Dist: "torchdata", Version: "0.6.9.dev1", Build: "py310_0"},
		{Platform: "win-64", Dist: "torchdata", Version: "0.6.9.dev1", Build: "py311_0"},
	}
	local := []artifact.CondaName{
		{Platform: "linux-64", Dist: "torchdata", Version: "0.7.0.dev2", Build: "py311_0"},
	}

	removals := nightlyRemovals(published, local)
	require.Len(t, removals, 1)
	assert.Equal(t, published[0], removals[0])

	assert.Empty(t, nightlyRemovals(published, nil), "no incoming packages, nothing to remove")
	assert.Empty(t, nightlyRemovals(nil, local), "empty channel, nothing to remove")
}
