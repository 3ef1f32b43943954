package upload

import (
	"fmt"
	"os"

	"git.home.luguber.info/inful/relforge/internal/config"
	"git.home.luguber.info/inful/relforge/internal/release"
)

// ErrMissingCredential marks a configuration-level failure: the credential
// required for the selected channel is absent. This is never retried.
type ErrMissingCredential struct {
	What string
	Env  string
}

func (e *ErrMissingCredential) Error() string {
	return fmt.Sprintf("missing %s credential: environment variable %s is empty", e.What, e.Env)
}

// ObjectStoreCreds is the access key pair for bucket storage.
type ObjectStoreCreds struct {
	AccessKey string
	SecretKey string
}

// objectStoreCreds resolves the bucket credentials from the configured
// environment variable names.
func objectStoreCreds(cfg config.ObjectStoreConfig) (ObjectStoreCreds, error) {
	access := os.Getenv(cfg.AccessKeyEnv)
	if access == "" {
		return ObjectStoreCreds{}, &ErrMissingCredential{What: "object storage access key", Env: cfg.AccessKeyEnv}
	}
	secret := os.Getenv(cfg.SecretKeyEnv)
	if secret == "" {
		return ObjectStoreCreds{}, &ErrMissingCredential{What: "object storage secret key", Env: cfg.SecretKeyEnv}
	}
	return ObjectStoreCreds{AccessKey: access, SecretKey: secret}, nil
}

// indexToken resolves the package index token.
func indexToken(cfg config.PackageIndexConfig) (string, error) {
	token := os.Getenv(cfg.TokenEnv)
	if token == "" {
		return "", &ErrMissingCredential{What: "package index", Env: cfg.TokenEnv}
	}
	return token, nil
}

// condaToken resolves the registry token for the release channel from the
// fixed per-channel mapping.
func condaToken(cfg config.CondaChannelConfig, channel release.Channel) (string, error) {
	env, ok := cfg.TokenEnvs[string(channel)]
	if !ok || env == "" {
		return "", &ErrMissingCredential{What: fmt.Sprintf("conda %s channel", channel), Env: "upload.conda.token_envs." + string(channel)}
	}
	token := os.Getenv(env)
	if token == "" {
		return "", &ErrMissingCredential{What: fmt.Sprintf("conda %s channel", channel), Env: env}
	}
	return token, nil
}

// CondaChannelName derives the registry channel name: the base channel for
// official releases, base-<channel> otherwise.
func CondaChannelName(cfg config.CondaChannelConfig, channel release.Channel) string {
	if channel == release.ChannelOfficial {
		return cfg.BaseChannel
	}
	return cfg.BaseChannel + "-" + string(channel)
}
