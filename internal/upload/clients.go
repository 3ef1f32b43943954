// Package upload implements the publish gate: it decides per packaging
// format whether any artifact exists and pushes the ones that do to their
// destinations. The destinations themselves (object storage, package
// index, channel registry) are external collaborators behind interfaces.
package upload

import (
	"context"

	"git.home.luguber.info/inful/relforge/internal/artifact"
)

// ObjectStore pushes wheel files to bucket storage.
type ObjectStore interface {
	PutFile(ctx context.Context, bucket, key, path string, creds ObjectStoreCreds) error
}

// PackageIndex publishes wheels to the public package index.
type PackageIndex interface {
	Publish(ctx context.Context, paths []string, token string) error
}

// CondaRegistry manages packages on a named channel.
type CondaRegistry interface {
	// ListPackages returns the published packages for the package name on
	// the channel.
	ListPackages(ctx context.Context, channel, pkg, token string) ([]artifact.CondaName, error)
	// Remove deletes one published package from the channel.
	Remove(ctx context.Context, channel string, name artifact.CondaName, token string) error
	// Upload pushes one package file to the channel. Overwrite semantics
	// are requested for official and test uploads.
	Upload(ctx context.Context, channel, path string, overwrite bool, token string) error
}
