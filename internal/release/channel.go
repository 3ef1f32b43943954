package release

import "strings"

// Channel is the release channel a pipeline run publishes to. It is derived
// once per run and never re-derived mid-pipeline; every downstream
// credential and path decision is a pure function of it plus static config.
type Channel string

const (
	ChannelOfficial Channel = "official"
	ChannelTest     Channel = "test"
	ChannelNightly  Channel = "nightly"
)

// NormalizeChannel converts arbitrary user input (case-insensitive) into a typed channel, returning empty string for unknown.
func NormalizeChannel(raw string) Channel {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(ChannelOfficial):
		return ChannelOfficial
	case string(ChannelTest):
		return ChannelTest
	case string(ChannelNightly):
		return ChannelNightly
	default:
		return ""
	}
}

// Classify derives the release channel from the triggering ref. Rules are
// evaluated in order, first match wins:
//
//  1. version tag and not a pre-release        -> official
//  2. release branch and a pre-release         -> test
//  3. base branch of the change is release/*   -> test
//  4. anything else (incl. malformed input)    -> nightly
//
// Falling through to nightly is the safe default: nightly carries the least
// privileged credentials.
func Classify(ref Ref, preRelease bool, baseBranch string) Channel {
	switch {
	case ref.Kind == RefTag && !preRelease:
		return ChannelOfficial
	case ref.Kind == RefReleaseBranch && preRelease:
		return ChannelTest
	case ParseRef(baseBranch).Kind == RefReleaseBranch:
		return ChannelTest
	default:
		return ChannelNightly
	}
}
