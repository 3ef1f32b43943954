package config

import (
	"os"
	"path/filepath"
	"testing"
)

const minimalYAML = `
package:
  name: torchdata
  core_dependency: torch
matrix:
  oses: [linux-x86_64, macos-x86_64, windows-x86_64]
  python_versions: ["3.8", "3.9", "3.10", "3.11"]
  exclude:
    - os: macos-arm64
      python: "3.8"
upload:
  object_store:
    bucket: pkg-artifacts
  conda:
    base_channel: inful
docs:
  deploy_repo: https://git.home.luguber.info/inful/torchdata-docs.git
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "relforge.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMinimalAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalYAML))
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	if cfg.Package.ImportName != "torchdata" {
		t.Errorf("import name should default to package name, got %q", cfg.Package.ImportName)
	}
	if cfg.Build.Workspace != "./work" {
		t.Errorf("expected default workspace ./work got %q", cfg.Build.Workspace)
	}
	if len(cfg.Build.ExcludedTestModules) != 3 {
		t.Errorf("expected three default excluded test modules got %v", cfg.Build.ExcludedTestModules)
	}
	if cfg.Upload.ObjectStore.NightlyPrefix != "nightly" || cfg.Upload.ObjectStore.TestPrefix != "test" {
		t.Errorf("object store prefixes not defaulted: %+v", cfg.Upload.ObjectStore)
	}
	if cfg.Upload.Retry.MaxRetries != 3 {
		t.Errorf("expected default max_retries 3 got %d", cfg.Upload.Retry.MaxRetries)
	}
	if cfg.Docs.DeployBranch != "site" {
		t.Errorf("expected default deploy branch site got %q", cfg.Docs.DeployBranch)
	}
}

func TestLoadExpandsEnvironment(t *testing.T) {
	t.Setenv("RELFORGE_TEST_BUCKET", "expanded-bucket")
	yaml := `
package:
  name: torchdata
matrix:
  oses: [linux-x86_64]
  python_versions: ["3.11"]
upload:
  object_store:
    bucket: ${RELFORGE_TEST_BUCKET}
  conda:
    base_channel: inful
docs:
  deploy_repo: https://example.org/docs.git
`
	cfg, err := Load(writeConfig(t, yaml))
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	if cfg.Upload.ObjectStore.Bucket != "expanded-bucket" {
		t.Errorf("environment expansion failed, got %q", cfg.Upload.ObjectStore.Bucket)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestValidateRejectsEmptyMatrix(t *testing.T) {
	yaml := `
package:
  name: torchdata
matrix:
  oses: []
  python_versions: ["3.11"]
upload:
  object_store:
    bucket: b
  conda:
    base_channel: c
docs:
  deploy_repo: r
`
	if _, err := Load(writeConfig(t, yaml)); err == nil {
		t.Fatal("expected validation error for empty matrix.oses")
	}
}

func TestValidateRejectsUnknownBackoff(t *testing.T) {
	yaml := `
package:
  name: torchdata
matrix:
  oses: [linux-x86_64]
  python_versions: ["3.11"]
upload:
  object_store:
    bucket: b
  conda:
    base_channel: c
  retry:
    backoff: sometimes
docs:
  deploy_repo: r
`
	if _, err := Load(writeConfig(t, yaml)); err == nil {
		t.Fatal("expected validation error for unknown backoff mode")
	}
}

func TestNormalizeRetryBackoff(t *testing.T) {
	cases := map[string]RetryBackoffMode{
		"fixed":        RetryBackoffFixed,
		" Linear ":     RetryBackoffLinear,
		"EXPONENTIAL":  RetryBackoffExponential,
		"":             "",
		"quadratic":    "",
		"exponential2": "",
	}
	for raw, want := range cases {
		if got := NormalizeRetryBackoff(raw); got != want {
			t.Errorf("NormalizeRetryBackoff(%q) = %q want %q", raw, got, want)
		}
	}
}
