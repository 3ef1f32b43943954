package upload

import "git.home.luguber.info/inful/relforge/internal/artifact"

// nightlyRemovals returns the published packages that must be deleted
// before a nightly upload: every published package sharing a
// (platform, build) identity with a package about to be uploaded. Without
// this, nightly channels accumulate stale dev versions for the same
// platform/build pair. Official and test channels never remove.
func nightlyRemovals(published, local []artifact.CondaName) []artifact.CondaName {
	incoming := make(map[artifact.Identity]bool, len(local))
	for _, pkg := range local {
		incoming[pkg.Identity()] = true
	}
	var removals []artifact.CondaName
	for _, pkg := range published {
		if incoming[pkg.Identity()] {
			removals = append(removals, pkg)
		}
	}
	return removals
}
