package release

import (
	"regexp"
	"strings"
)

// RefKind tags the shape of a branch reference.
type RefKind int

const (
	RefOther RefKind = iota
	RefTag
	RefReleaseBranch
)

func (k RefKind) String() string {
	switch k {
	case RefTag:
		return "tag"
	case RefReleaseBranch:
		return "release-branch"
	default:
		return "other"
	}
}

// Ref is a classified branch reference. Classification happens once at
// parse time so downstream rules match on the tagged kind instead of
// re-running string checks.
type Ref struct {
	Name string
	Kind RefKind
}

var tagPattern = regexp.MustCompile(`^v\d`)

// ParseRef classifies a raw branch name. It never fails: anything that is
// neither a version tag nor a release branch is RefOther.
func ParseRef(branch string) Ref {
	name := strings.TrimSpace(branch)
	switch {
	case tagPattern.MatchString(name):
		return Ref{Name: name, Kind: RefTag}
	case strings.HasPrefix(name, "release/"):
		return Ref{Name: name, Kind: RefReleaseBranch}
	default:
		return Ref{Name: name, Kind: RefOther}
	}
}
