package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Package PackageConfig `yaml:"package"`
	Matrix  MatrixConfig  `yaml:"matrix"`
	Build   BuildConfig   `yaml:"build"`
	Upload  UploadConfig  `yaml:"upload"`
	Docs    DocsConfig    `yaml:"docs"`
	Daemon  DaemonConfig  `yaml:"daemon"`
}

// PackageConfig identifies the library whose distributions are being released.
type PackageConfig struct {
	Name           string `yaml:"name"`                      // distribution name, e.g. "torchdata"
	ImportName     string `yaml:"import_name,omitempty"`     // python import name; defaults to Name
	CoreDependency string `yaml:"core_dependency,omitempty"` // library the build links against, e.g. "torch"
}

// Load loads configuration from the specified file.
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists; missing .env is not an error.
	if err := loadEnvFile(); err != nil {
		fmt.Fprintf(os.Stderr, "Note: .env file not found or couldn't be loaded: %v\n", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expandedData := os.ExpandEnv(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expandedData), &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Init creates a new configuration file with example content.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	exampleConfig := Config{
		Package: PackageConfig{
			Name:           "torchdata",
			CoreDependency: "torch",
		},
		Matrix: MatrixConfig{
			OSes:           []string{"linux-x86_64", "macos-x86_64", "windows-x86_64"},
			PythonVersions: []string{"3.9", "3.10", "3.11"},
			Exclude: []ExcludePair{
				{OS: "macos-arm64", Python: "3.9"},
			},
		},
		Build: BuildConfig{
			Workspace:   "./work",
			Concurrency: 2,
			StaticLibs:  []string{"zlib", "openssl"},
		},
		Upload: UploadConfig{
			ObjectStore: ObjectStoreConfig{
				Bucket:       "pkg-artifacts",
				AccessKeyEnv: "RELEASE_STORAGE_ACCESS_KEY",
				SecretKeyEnv: "RELEASE_STORAGE_SECRET_KEY",
			},
			PackageIndex: PackageIndexConfig{
				TokenEnv: "RELEASE_INDEX_TOKEN",
			},
			Conda: CondaChannelConfig{
				BaseChannel: "mychannel",
				TokenEnvs: map[string]string{
					"official": "CONDA_TOKEN_OFFICIAL",
					"test":     "CONDA_TOKEN_TEST",
					"nightly":  "CONDA_TOKEN_NIGHTLY",
				},
			},
		},
		Docs: DocsConfig{
			DeployRepo:  "https://example.com/org/project-docs.git",
			AuthorName:  "release-bot",
			AuthorEmail: "release-bot@example.com",
			TokenEnv:    "DOCS_DEPLOY_TOKEN",
		},
	}

	data, err := yaml.Marshal(&exampleConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// loadEnvFile loads a .env file from the working directory when present.
func loadEnvFile() error {
	if _, err := os.Stat(".env"); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load()
}
