package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/relforge/internal/artifact"
	"git.home.luguber.info/inful/relforge/internal/config"
	"git.home.luguber.info/inful/relforge/internal/docs"
	"git.home.luguber.info/inful/relforge/internal/journal"
	"git.home.luguber.info/inful/relforge/internal/logfields"
	"git.home.luguber.info/inful/relforge/internal/matrix"
	"git.home.luguber.info/inful/relforge/internal/metrics"
	"git.home.luguber.info/inful/relforge/internal/notify"
	"git.home.luguber.info/inful/relforge/internal/observability"
	"git.home.luguber.info/inful/relforge/internal/pipeline"
	"git.home.luguber.info/inful/relforge/internal/release"
	"git.home.luguber.info/inful/relforge/internal/upload"
)

// RunCmd implements the 'run' command: one full pipeline pass.
type RunCmd struct {
	Branch      string `short:"b" help:"Branch or tag reference being released" default:"main"`
	BaseBranch  string `help:"Base branch when building a merge request"`
	PreRelease  bool   `help:"Mark the reference as a pre-release"`
	CoreVersion string `help:"Core dependency version to build against (defaults to <CORE>_VERSION env)"`
	Upload      bool   `help:"Publish collected artifacts after the build (--no-upload to build only)" default:"true" negatable:""`
	Workspace   string `help:"Override the configured build workspace"`
	SkipDocs    bool   `help:"Skip the documentation build and deploy"`
}

func (r *RunCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if r.Workspace != "" {
		cfg.Build.Workspace = r.Workspace
	}
	params := RunParams{
		Branch:      r.Branch,
		BaseBranch:  r.BaseBranch,
		PreRelease:  r.PreRelease,
		CoreVersion: r.CoreVersion,
		Upload:      r.Upload,
		SkipDocs:    r.SkipDocs,
	}
	return ExecuteRun(context.Background(), cfg, params, metrics.NoopRecorder{})
}

// RunParams are the trigger inputs for one pipeline pass.
type RunParams struct {
	Branch      string
	BaseBranch  string
	PreRelease  bool
	CoreVersion string
	Upload      bool
	SkipDocs    bool
}

// ExecuteRun drives the whole pipeline: classification, matrix build,
// artifact publication, and docs deployment. The daemon calls this on its
// schedule; the run command calls it once.
func ExecuteRun(ctx context.Context, cfg *config.Config, params RunParams, recorder metrics.Recorder) error {
	runID := uuid.NewString()
	ctx = observability.WithRunID(ctx, runID)
	started := time.Now()

	store, err := journal.NewSQLiteStore(cfg.Daemon.JournalPath)
	if err != nil {
		return fmt.Errorf("open run journal: %w", err)
	}
	defer func() { _ = store.Close() }()

	notifier, err := notify.NewNATSPublisher(cfg.Daemon)
	if err != nil {
		observability.WarnContext(ctx, "run-event publishing disabled", logfields.Error(err))
		notifier = notify.Noop{}
	}
	defer notifier.Close()

	ref := release.ParseRef(params.Branch)
	channel := release.Classify(ref, params.PreRelease, params.BaseBranch)
	cells := matrix.Expand(cfg.Matrix)
	observability.InfoContext(ctx, "pipeline run starting",
		logfields.Branch(params.Branch), logfields.Channel(string(channel)),
		slog.Int("cells", len(cells)))

	recordEvent(ctx, store, notifier, runID, journal.TypeRunStarted, journal.RunStartedPayload{
		Channel:   string(channel),
		Branch:    params.Branch,
		Ref:       ref.Kind.String(),
		CellCount: len(cells),
	}, notify.RunEvent{RunID: runID, Type: journal.TypeRunStarted, Channel: string(channel), Branch: params.Branch})

	artifacts, err := artifact.NewDirStore(filepath.Join(cfg.Build.Workspace, "artifacts"))
	if err != nil {
		return finishRun(ctx, store, notifier, runID, started, recorder, err)
	}

	coreVersion := params.CoreVersion
	if coreVersion == "" {
		coreVersion = os.Getenv(coreVersionEnv(cfg))
	}

	pool := pipeline.NewPool(cfg, artifacts).WithRecorder(recorder)
	results := pool.Run(ctx, cells, pipeline.Params{RunID: runID, CoreVersion: coreVersion})

	var cellFailed, cellWarned bool
	for _, result := range results {
		for _, name := range result.Wheels {
			recordEvent(ctx, store, notifier, runID, journal.TypeArtifactCollected,
				journal.ArtifactCollectedPayload{Cell: result.Cell.String(), Kind: string(artifact.KindWheel), Name: name}, notify.RunEvent{})
		}
		for _, name := range result.Conda {
			recordEvent(ctx, store, notifier, runID, journal.TypeArtifactCollected,
				journal.ArtifactCollectedPayload{Cell: result.Cell.String(), Kind: string(artifact.KindConda), Name: name}, notify.RunEvent{})
		}
		payload := journal.CellFinishedPayload{
			Cell:       result.Cell.String(),
			Outcome:    result.Outcome(),
			DurationMS: result.Report.Elapsed().Milliseconds(),
			Wheels:     len(result.Wheels),
			Conda:      len(result.Conda),
		}
		if result.Err != nil {
			payload.Error = result.Err.Error()
			cellFailed = true
		} else if result.Report.TestsFailed() {
			cellWarned = true
		}
		recordEvent(ctx, store, notifier, runID, journal.TypeCellFinished, payload, notify.RunEvent{})
	}

	var outcome upload.Outcome
	var uploadErr error
	if params.Upload {
		// Collected artifacts are published even when some cells failed: a
		// broken windows build must not hold back the linux nightlies.
		gate := upload.NewGate(cfg, artifacts).WithRecorder(recorder)
		outcome, uploadErr = gate.Publish(ctx, channel, params.Branch)

		uploadPayload := journal.UploadCompletedPayload{
			WheelsUploaded: outcome.WheelsUploaded,
			CondaUploaded:  outcome.CondaUploaded,
			IndexPublished: outcome.IndexPublished,
		}
		if uploadErr != nil {
			uploadPayload.Error = uploadErr.Error()
		}
		recordEvent(ctx, store, notifier, runID, journal.TypeUploadCompleted, uploadPayload, notify.RunEvent{})
	} else {
		observability.InfoContext(ctx, "uploads disabled for this run")
	}

	var docsErr error
	if outcome.Any() && !params.SkipDocs {
		folder := release.TargetFolder(params.Branch, params.PreRelease)
		docsErr = deployDocs(ctx, cfg, folder)
		if docsErr == nil {
			recordEvent(ctx, store, notifier, runID, journal.TypeDocsPublished,
				journal.DocsPublishedPayload{TargetFolder: folder}, notify.RunEvent{})
		}
	} else if params.Upload && !outcome.Any() {
		observability.InfoContext(ctx, "no uploads occurred, docs deploy skipped")
	}

	runErr := errors.Join(uploadErr, docsErr)
	if runErr == nil && cellFailed {
		runErr = fmt.Errorf("one or more matrix cells failed")
	}
	if runErr == nil && cellWarned {
		// surfaced in the journal status; the run itself still passes
		observability.WarnContext(ctx, "run finished with test-suite warnings")
	}
	return finishRunWithStatus(ctx, store, notifier, runID, started, recorder, runErr, cellWarned)
}

// buildSite runs the docs build and guarantees a landing page.
func buildSite(ctx context.Context, cfg *config.Config) (string, error) {
	siteDir, err := docs.NewBuilder(cfg.Docs).Build(ctx)
	if err != nil {
		return "", err
	}
	readme := filepath.Join(cfg.Docs.SourceDir, "..", "README.md")
	if err := docs.EnsureIndex(siteDir, readme, cfg.Package.Name); err != nil {
		observability.WarnContext(ctx, "landing page fallback failed", logfields.Error(err))
	}
	return siteDir, nil
}

// deployDocs builds the site and pushes it to the hosting repository.
func deployDocs(ctx context.Context, cfg *config.Config, folder string) error {
	siteDir, err := buildSite(ctx, cfg)
	if err != nil {
		return err
	}
	return docs.NewPublisher(cfg.Docs).Publish(ctx, siteDir, folder)
}

// coreVersionEnv derives the conventional env var for the core dependency
// version, e.g. torch -> TORCH_VERSION.
func coreVersionEnv(cfg *config.Config) string {
	core := cfg.Package.CoreDependency
	if core == "" {
		core = cfg.Package.Name
	}
	return strings.ToUpper(strings.ReplaceAll(core, "-", "_")) + "_VERSION"
}

// recordEvent journals a payload and, for lifecycle transitions, notifies
// downstream consumers. Journal failures are logged, never fatal.
func recordEvent(ctx context.Context, store journal.Store, notifier notify.Publisher, runID, eventType string, payload any, event notify.RunEvent) {
	journalEvent, err := journal.NewEvent(runID, eventType, payload)
	if err == nil {
		err = journal.Record(ctx, store, journalEvent)
	}
	if err != nil {
		observability.WarnContext(ctx, "journal write failed", logfields.Error(err))
	}
	if event.RunID != "" {
		if err := notifier.PublishRunEvent(ctx, event); err != nil {
			observability.WarnContext(ctx, "run-event publish failed", logfields.Error(err))
		}
	}
}

func finishRun(ctx context.Context, store journal.Store, notifier notify.Publisher, runID string, started time.Time, recorder metrics.Recorder, runErr error) error {
	return finishRunWithStatus(ctx, store, notifier, runID, started, recorder, runErr, false)
}

func finishRunWithStatus(ctx context.Context, store journal.Store, notifier notify.Publisher, runID string, started time.Time, recorder metrics.Recorder, runErr error, warned bool) error {
	status := journal.StatusSucceeded
	switch {
	case runErr != nil:
		status = journal.StatusFailed
	case warned:
		status = journal.StatusWarning
	}
	payload := journal.RunFinishedPayload{
		Status:     status,
		DurationMS: time.Since(started).Milliseconds(),
	}
	if runErr != nil {
		payload.Error = runErr.Error()
	}
	recordEvent(ctx, store, notifier, runID, journal.TypeRunFinished, payload,
		notify.RunEvent{RunID: runID, Type: journal.TypeRunFinished, Status: status})
	recorder.ObserveRunDuration(time.Since(started))
	observability.InfoContext(ctx, "pipeline run finished",
		logfields.DurationMS(float64(time.Since(started).Milliseconds())),
		slog.String("status", status))
	return runErr
}
