package config

// UploadConfig declares the publish destinations and the per-channel
// credential environment variable mapping.
type UploadConfig struct {
	ObjectStore  ObjectStoreConfig  `yaml:"object_store"`
	PackageIndex PackageIndexConfig `yaml:"package_index"`
	Conda        CondaChannelConfig `yaml:"conda"`
	Retry        RetryConfig        `yaml:"retry,omitempty"`
}

// ObjectStoreConfig addresses the wheel object-storage destination.
// Wheels always land here; the prefix is selected by branch.
type ObjectStoreConfig struct {
	Bucket        string `yaml:"bucket"`
	NightlyPrefix string `yaml:"nightly_prefix,omitempty"`
	TestPrefix    string `yaml:"test_prefix,omitempty"`
	AccessKeyEnv  string `yaml:"access_key_env,omitempty"`
	SecretKeyEnv  string `yaml:"secret_key_env,omitempty"`
}

// PackageIndexConfig addresses the public package index. Only official
// releases are pushed there.
type PackageIndexConfig struct {
	RepositoryURL string `yaml:"repository_url,omitempty"`
	TokenEnv      string `yaml:"token_env,omitempty"`
}

// CondaChannelConfig addresses the channel registry. The effective channel
// name is the base channel for official releases and base-<channel>
// otherwise.
type CondaChannelConfig struct {
	BaseChannel string `yaml:"base_channel"`
	// TokenEnvs maps release channel name (official|test|nightly) to the
	// environment variable holding that channel's registry token.
	TokenEnvs map[string]string `yaml:"token_envs,omitempty"`
}
