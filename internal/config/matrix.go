package config

// MatrixConfig declares the build matrix dimensions and known-unsupported
// (os, python) pairings.
type MatrixConfig struct {
	OSes           []string      `yaml:"oses"`
	PythonVersions []string      `yaml:"python_versions"`
	Exclude        []ExcludePair `yaml:"exclude,omitempty"`
}

// ExcludePair names one (os, python) combination to drop from the
// cross-product.
type ExcludePair struct {
	OS     string `yaml:"os"`
	Python string `yaml:"python"`
}
