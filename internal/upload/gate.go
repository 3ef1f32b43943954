package upload

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/relforge/internal/artifact"
	"git.home.luguber.info/inful/relforge/internal/config"
	"git.home.luguber.info/inful/relforge/internal/logfields"
	"git.home.luguber.info/inful/relforge/internal/metrics"
	"git.home.luguber.info/inful/relforge/internal/observability"
	"git.home.luguber.info/inful/relforge/internal/release"
	"git.home.luguber.info/inful/relforge/internal/retry"
)

// destination labels for logs and metrics.
const (
	destObjectStore  = "object-storage"
	destPackageIndex = "package-index"
	destCondaChannel = "conda-channel"
)

// uploadConcurrency bounds parallel pushes per destination.
const uploadConcurrency = 4

// Outcome summarizes what the gate published.
type Outcome struct {
	WheelsUploaded int
	CondaUploaded  int
	IndexPublished bool
}

// Any reports whether at least one upload of either format occurred. The
// docs publisher keys off this.
func (o Outcome) Any() bool { return o.WheelsUploaded > 0 || o.CondaUploaded > 0 }

// Gate owns the per-format upload decision and the destination pushes.
type Gate struct {
	cfg      *config.Config
	store    artifact.Store
	objects  ObjectStore
	index    PackageIndex
	registry CondaRegistry
	policy   retry.Policy
	recorder metrics.Recorder
}

// NewGate builds a gate with production clients.
func NewGate(cfg *config.Config, store artifact.Store) *Gate {
	g := &Gate{
		cfg:      cfg,
		store:    store,
		objects:  &execObjectStore{},
		index:    &execPackageIndex{repositoryURL: cfg.Upload.PackageIndex.RepositoryURL},
		registry: &execCondaRegistry{},
		policy:   retry.FromConfig(cfg.Upload.Retry),
		recorder: metrics.NoopRecorder{},
	}
	g.policy.OnRetry = func(op string, _ int) { g.recorder.IncRetry(op) }
	return g
}

// WithClients swaps the destination clients (fluent helper, used by tests).
func (g *Gate) WithClients(o ObjectStore, i PackageIndex, r CondaRegistry) *Gate {
	g.objects, g.index, g.registry = o, i, r
	return g
}

// WithRecorder swaps the metrics recorder (fluent helper).
func (g *Gate) WithRecorder(rec metrics.Recorder) *Gate { g.recorder = rec; return g }

// Publish evaluates both packaging formats and pushes whatever exists. The
// two formats are decided and published independently: a missing kind never
// blocks the other. The first error is returned but only after every
// destination had its chance.
func (g *Gate) Publish(ctx context.Context, channel release.Channel, branch string) (Outcome, error) {
	ctx = observability.WithChannel(ctx, string(channel))
	var outcome Outcome
	var firstErr error

	if err := g.publishWheels(ctx, channel, branch, &outcome); err != nil {
		firstErr = err
	}
	if err := g.publishConda(ctx, channel, &outcome); err != nil && firstErr == nil {
		firstErr = err
	}
	return outcome, firstErr
}

// publishWheels pushes wheels to object storage (always, path by branch)
// and to the public package index (official channel only).
func (g *Gate) publishWheels(ctx context.Context, channel release.Channel, branch string, outcome *Outcome) error {
	present, err := artifact.Decide(g.store, artifact.KindWheel)
	if err != nil {
		return err
	}
	if !present {
		observability.InfoContext(ctx, "no wheel artifacts present, skipping wheel upload")
		return nil
	}
	names, err := g.store.List(artifact.KindWheel)
	if err != nil {
		return err
	}
	names = artifact.FilterValid(artifact.KindWheel, names)

	creds, err := objectStoreCreds(g.cfg.Upload.ObjectStore)
	if err != nil {
		return err // configuration error, fatal
	}
	prefix := g.objectPrefix(branch)

	var uploaded atomic.Int64
	grp, gctx := errgroup.WithContext(ctx)
	grp.SetLimit(uploadConcurrency)
	for _, name := range names {
		grp.Go(func() error {
			key := prefix + "/" + name
			err := g.policy.Do(gctx, "object-store upload "+name, func() error {
				return g.objects.PutFile(gctx, g.cfg.Upload.ObjectStore.Bucket, key, g.store.Path(artifact.KindWheel, name), creds)
			})
			g.recorder.IncUploadResult(destObjectStore, err == nil)
			if err != nil {
				return err
			}
			uploaded.Add(1)
			observability.InfoContext(gctx, "wheel uploaded", logfields.Artifact(name), logfields.Destination(destObjectStore), logfields.Path(key))
			return nil
		})
	}
	err = grp.Wait()
	outcome.WheelsUploaded = int(uploaded.Load())
	if err != nil {
		return err
	}

	if channel == release.ChannelOfficial {
		token, err := indexToken(g.cfg.Upload.PackageIndex)
		if err != nil {
			return err
		}
		paths := make([]string, len(names))
		for i, name := range names {
			paths[i] = g.store.Path(artifact.KindWheel, name)
		}
		err = g.policy.Do(ctx, "package-index publish", func() error {
			return g.index.Publish(ctx, paths, token)
		})
		g.recorder.IncUploadResult(destPackageIndex, err == nil)
		if err != nil {
			return fmt.Errorf("package index publish: %w", err)
		}
		outcome.IndexPublished = true
		observability.InfoContext(ctx, "wheels published to package index", logfields.Destination(destPackageIndex))
	}
	return nil
}

// objectPrefix selects the bucket path by branch: main feeds the nightly
// prefix, everything else the test prefix.
func (g *Gate) objectPrefix(branch string) string {
	if branch == "main" {
		return g.cfg.Upload.ObjectStore.NightlyPrefix
	}
	return g.cfg.Upload.ObjectStore.TestPrefix
}

// publishConda pushes channel-style packages to the registry. The nightly
// channel first removes published packages sharing a (platform, build)
// identity with the incoming set; official and test upload with overwrite
// and never remove.
func (g *Gate) publishConda(ctx context.Context, channel release.Channel, outcome *Outcome) error {
	present, err := artifact.Decide(g.store, artifact.KindConda)
	if err != nil {
		return err
	}
	if !present {
		observability.InfoContext(ctx, "no conda artifacts present, skipping conda upload")
		return nil
	}
	names, err := g.store.List(artifact.KindConda)
	if err != nil {
		return err
	}
	names = artifact.FilterValid(artifact.KindConda, names)

	token, err := condaToken(g.cfg.Upload.Conda, channel)
	if err != nil {
		return err // configuration error, fatal
	}
	channelName := CondaChannelName(g.cfg.Upload.Conda, channel)

	local := make([]artifact.CondaName, 0, len(names))
	for _, name := range names {
		parsed, err := artifact.ParseCondaName(name)
		if err != nil {
			continue
		}
		local = append(local, parsed)
	}

	if channel == release.ChannelNightly {
		published, err := g.registry.ListPackages(ctx, channelName, g.cfg.Package.Name, token)
		if err != nil {
			return fmt.Errorf("list published nightly packages: %w", err)
		}
		for _, stale := range nightlyRemovals(published, local) {
			err := g.policy.Do(ctx, "conda remove "+stale.String(), func() error {
				return g.registry.Remove(ctx, channelName, stale, token)
			})
			if err != nil {
				return fmt.Errorf("remove stale nightly %s: %w", stale, err)
			}
			observability.InfoContext(ctx, "removed stale nightly package", logfields.Artifact(stale.String()), logfields.Destination(destCondaChannel))
		}
	}

	overwrite := channel != release.ChannelNightly
	var uploaded atomic.Int64
	grp, gctx := errgroup.WithContext(ctx)
	grp.SetLimit(uploadConcurrency)
	for _, name := range names {
		grp.Go(func() error {
			err := g.policy.Do(gctx, "conda upload "+name, func() error {
				return g.registry.Upload(gctx, channelName, g.store.Path(artifact.KindConda, name), overwrite, token)
			})
			g.recorder.IncUploadResult(destCondaChannel, err == nil)
			if err != nil {
				return err
			}
			uploaded.Add(1)
			observability.InfoContext(gctx, "conda package uploaded", logfields.Artifact(name), logfields.Destination(destCondaChannel), logfields.Channel(channelName))
			return nil
		})
	}
	err = grp.Wait()
	outcome.CondaUploaded = int(uploaded.Load())
	return err
}
