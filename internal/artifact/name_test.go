package artifact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWheelName(t *testing.T) {
	w, err := ParseWheelName("torchdata-0.7.1-cp311-cp311-linux_x86_64.whl")
	require.NoError(t, err)
	assert.Equal(t, "torchdata", w.Dist)
	assert.Equal(t, "0.7.1", w.Version)
	assert.Equal(t, "cp311", w.Python)
	assert.Equal(t, "cp311", w.ABI)
	assert.Equal(t, "linux_x86_64", w.Platform)
	assert.Equal(t, "torchdata-0.7.1-cp311-cp311-linux_x86_64.whl", w.String())
}

func TestParseWheelNameWithBuildTag(t *testing.T) {
	w, err := ParseWheelName("torchdata-0.7.1-1-cp38-cp38-win_amd64.whl")
	require.NoError(t, err)
	assert.Equal(t, "1", w.Build)
	assert.Equal(t, "cp38", w.Python)
	assert.Equal(t, "torchdata-0.7.1-1-cp38-cp38-win_amd64.whl", w.String())
}

func TestParseWheelNameRejectsGarbage(t *testing.T) {
	for _, bad := range []string{
		"torchdata-0.7.1.tar.gz",
		"torchdata.whl",
		"torchdata-0.7.1-cp311.whl",
		"a-b-c-d-e-f-g.whl",
	} {
		_, err := ParseWheelName(bad)
		assert.Error(t, err, "expected parse failure for %s", bad)
	}
}

func TestRepairedRewritesLinuxTag(t *testing.T) {
	w, err := ParseWheelName("torchdata-0.7.1-cp311-cp311-linux_x86_64.whl")
	require.NoError(t, err)
	repaired := w.Repaired()
	assert.Equal(t, "manylinux2014_x86_64", repaired.Platform)
	assert.Equal(t, "torchdata-0.7.1-cp311-cp311-manylinux2014_x86_64.whl", repaired.String())
	// non-linux tags pass through
	assert.Equal(t, "macosx_11_0_arm64", PortablePlatform("macosx_11_0_arm64"))
	assert.Equal(t, "manylinux2014_x86_64", PortablePlatform("manylinux2014_x86_64"))
}

func TestParseCondaName(t *testing.T) {
	c, err := ParseCondaName("linux-64/torchdata-0.7.1-py311_0.tar.bz2")
	require.NoError(t, err)
	assert.Equal(t, "linux-64", c.Platform)
	assert.Equal(t, "torchdata", c.Dist)
	assert.Equal(t, "0.7.1", c.Version)
	assert.Equal(t, "py311_0", c.Build)
	assert.Equal(t, "linux-64/torchdata-0.7.1-py311_0.tar.bz2", c.String())
}

func TestParseCondaNameDashedDist(t *testing.T) {
	c, err := ParseCondaName("osx-64/my-lib-extra-1.2.0-py39_1.tar.bz2")
	require.NoError(t, err)
	assert.Equal(t, "my-lib-extra", c.Dist)
	assert.Equal(t, "1.2.0", c.Version)
	assert.Equal(t, "py39_1", c.Build)
}

func TestParseCondaNameRejectsMissingPlatform(t *testing.T) {
	_, err := ParseCondaName("torchdata-0.7.1-py311_0.tar.bz2")
	assert.Error(t, err)
}

func TestCondaIdentity(t *testing.T) {
	a, _ := ParseCondaName("linux-64/torchdata-0.7.1.dev20240101-py311_0.tar.bz2")
	b, _ := ParseCondaName("linux-64/torchdata-0.7.1.dev20240202-py311_0.tar.bz2")
	c, _ := ParseCondaName("osx-64/torchdata-0.7.1.dev20240101-py311_0.tar.bz2")
	assert.Equal(t, a.Identity(), b.Identity(), "same platform+build share identity across versions")
	assert.NotEqual(t, a.Identity(), c.Identity(), "different platforms differ")
}

func TestCondaPlatform(t *testing.T) {
	cases := map[string]string{
		"linux-x86_64":   "linux-64",
		"linux-aarch64":  "linux-aarch64",
		"macos-x86_64":   "osx-64",
		"macos-arm64":    "osx-arm64",
		"windows-x86_64": "win-64",
		"plan9-mips":     "plan9-mips",
	}
	for os, want := range cases {
		assert.Equal(t, want, CondaPlatform(os), "os %s", os)
	}
}
