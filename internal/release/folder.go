package release

import (
	"regexp"
	"strings"
)

// versionTag matches a plain release tag like v1.13.0, capturing major.minor.
var versionTag = regexp.MustCompile(`^v(\d+\.\d+)(?:\.\d+)?$`)

// TargetFolder derives the docs deployment path segment from a branch name.
// Known prefixes are stripped; a non-pre-release version tag collapses to
// its major.minor pair; everything else passes through unchanged.
//
//	release/1.13        -> 1.13
//	tags/v1.0.0         -> v1.0.0
//	v1.13.0 (release)   -> 1.13
//	v1.13.0-rc1 (pre)   -> v1.13.0-rc1
//	main                -> main
func TargetFolder(branch string, preRelease bool) string {
	name := strings.TrimSpace(branch)
	if after, ok := strings.CutPrefix(name, "release/"); ok {
		return after
	}
	if after, ok := strings.CutPrefix(name, "tags/"); ok {
		return after
	}
	if !preRelease {
		if m := versionTag.FindStringSubmatch(name); m != nil {
			return m[1]
		}
	}
	return name
}
