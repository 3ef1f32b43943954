package artifact

import (
	"fmt"
	"path"
	"strings"
)

// CondaName is the parsed form of a channel-style package path:
// <platform>/<dist>-<version>-<build>.tar.bz2
type CondaName struct {
	Platform string // channel subdir, e.g. linux-64, osx-64, win-64
	Dist     string
	Version  string
	Build    string // build string, e.g. py311_0
}

// ParseCondaName splits a platform-qualified conda package path.
func ParseCondaName(name string) (CondaName, error) {
	platform, file := path.Split(name)
	platform = strings.TrimSuffix(platform, "/")
	if platform == "" {
		return CondaName{}, fmt.Errorf("conda package %s missing platform subdirectory", name)
	}
	base, ok := strings.CutSuffix(file, ".tar.bz2")
	if !ok {
		return CondaName{}, fmt.Errorf("not a conda package filename: %s", file)
	}
	// dist names may themselves contain dashes; version and build are the
	// last two segments.
	parts := strings.Split(base, "-")
	if len(parts) < 3 {
		return CondaName{}, fmt.Errorf("malformed conda filename %s: %d segments", file, len(parts))
	}
	return CondaName{
		Platform: platform,
		Dist:     strings.Join(parts[:len(parts)-2], "-"),
		Version:  parts[len(parts)-2],
		Build:    parts[len(parts)-1],
	}, nil
}

// String renders the canonical platform-qualified path.
func (c CondaName) String() string {
	return path.Join(c.Platform, fmt.Sprintf("%s-%s-%s.tar.bz2", c.Dist, c.Version, c.Build))
}

// Spec renders the registry removal spec for this package:
// <dist>/<version>/<platform>/<filename>.
func (c CondaName) Spec() string {
	return path.Join(c.Dist, c.Version, c.Platform, fmt.Sprintf("%s-%s-%s.tar.bz2", c.Dist, c.Version, c.Build))
}

// Identity is the (platform, build) pair the nightly channel dedupes on:
// re-uploading a nightly must first remove any published package sharing
// this identity.
type Identity struct {
	Platform string
	Build    string
}

// Identity returns the dedup key for this package.
func (c CondaName) Identity() Identity {
	return Identity{Platform: c.Platform, Build: c.Build}
}

// CondaPlatform maps a matrix OS identifier to the channel platform subdir.
// Unknown OS identifiers map to themselves so new platforms degrade loudly
// in listings rather than silently colliding.
func CondaPlatform(os string) string {
	switch {
	case strings.HasPrefix(os, "linux-x86_64"):
		return "linux-64"
	case strings.HasPrefix(os, "linux-aarch64"):
		return "linux-aarch64"
	case strings.HasPrefix(os, "macos-arm64"):
		return "osx-arm64"
	case strings.HasPrefix(os, "macos"):
		return "osx-64"
	case strings.HasPrefix(os, "windows"):
		return "win-64"
	default:
		return os
	}
}
