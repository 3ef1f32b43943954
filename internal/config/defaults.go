package config

// Default test-module exclusions. These three are skipped unconditionally
// when running the suite against an installed package; the list is
// configurable because the exclusions predate this tool and nobody has
// re-validated them.
var defaultExcludedTestModules = []string{
	"test_audio_examples",
	"test_text_examples",
	"test_period",
}

// applyDefaults fills zero values with sensible defaults after unmarshal.
func (c *Config) applyDefaults() {
	if c.Package.ImportName == "" {
		c.Package.ImportName = c.Package.Name
	}
	if c.Build.Workspace == "" {
		c.Build.Workspace = "./work"
	}
	if c.Build.Concurrency <= 0 {
		c.Build.Concurrency = 2
	}
	if c.Build.ExcludedTestModules == nil {
		c.Build.ExcludedTestModules = append([]string(nil), defaultExcludedTestModules...)
	}
	if c.Upload.ObjectStore.NightlyPrefix == "" {
		c.Upload.ObjectStore.NightlyPrefix = "nightly"
	}
	if c.Upload.ObjectStore.TestPrefix == "" {
		c.Upload.ObjectStore.TestPrefix = "test"
	}
	if c.Upload.Retry.Backoff == "" {
		c.Upload.Retry.Backoff = string(RetryBackoffLinear)
	}
	if c.Upload.Retry.InitialDelay == "" {
		c.Upload.Retry.InitialDelay = "1s"
	}
	if c.Upload.Retry.MaxDelay == "" {
		c.Upload.Retry.MaxDelay = "30s"
	}
	if c.Upload.Retry.MaxRetries == 0 {
		c.Upload.Retry.MaxRetries = 3
	}
	if c.Docs.SourceDir == "" {
		c.Docs.SourceDir = "docs"
	}
	if c.Docs.BuildCommand == "" {
		c.Docs.BuildCommand = "make html"
	}
	if c.Docs.OutputDir == "" {
		c.Docs.OutputDir = "docs/build/html"
	}
	if c.Docs.DeployBranch == "" {
		c.Docs.DeployBranch = "site"
	}
	if c.Daemon.ScheduleInterval == "" {
		c.Daemon.ScheduleInterval = "24h"
	}
	if c.Daemon.JournalPath == "" {
		c.Daemon.JournalPath = "relforge.db"
	}
	if c.Daemon.NATSSubject == "" {
		c.Daemon.NATSSubject = "relforge.runs"
	}
}
