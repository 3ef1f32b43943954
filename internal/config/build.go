package config

// BuildConfig controls per-cell build behaviour.
type BuildConfig struct {
	Workspace        string   `yaml:"workspace,omitempty"`         // root directory for per-cell build trees
	Concurrency      int      `yaml:"concurrency,omitempty"`       // parallel matrix cells; clamped to matrix size
	CloudIntegration bool     `yaml:"cloud_integration,omitempty"` // enable the optional cloud-storage feature at build time
	StaticLibs       []string `yaml:"static_libs,omitempty"`       // libraries built statically on the portable linux platform
	// ExcludedTestModules are skipped unconditionally when running the test
	// suite against a freshly installed package. See config defaults for the
	// inherited list.
	ExcludedTestModules []string `yaml:"excluded_test_modules,omitempty"`
}
