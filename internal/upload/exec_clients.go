package upload

import (
	"context"
	"strings"

	"git.home.luguber.info/inful/relforge/internal/artifact"
	"git.home.luguber.info/inful/relforge/internal/shell"
)

// execObjectStore pushes files with the aws CLI. Credentials travel in the
// child environment, never on the command line.
type execObjectStore struct {
	runner shell.Runner
}

func (s *execObjectStore) PutFile(ctx context.Context, bucket, key, path string, creds ObjectStoreCreds) error {
	return s.run().Run(ctx, shell.Command{
		Name: "aws",
		Args: []string{"s3", "cp", path, "s3://" + bucket + "/" + key},
		Env: []string{
			"AWS_ACCESS_KEY_ID=" + creds.AccessKey,
			"AWS_SECRET_ACCESS_KEY=" + creds.SecretKey,
		},
	})
}

func (s *execObjectStore) run() shell.Runner {
	if s.runner == nil {
		return shell.ExecRunner{}
	}
	return s.runner
}

// execPackageIndex publishes wheels with twine.
type execPackageIndex struct {
	repositoryURL string
	runner        shell.Runner
}

func (p *execPackageIndex) Publish(ctx context.Context, paths []string, token string) error {
	args := []string{"upload", "--non-interactive"}
	if p.repositoryURL != "" {
		args = append(args, "--repository-url", p.repositoryURL)
	}
	args = append(args, paths...)
	return p.run().Run(ctx, shell.Command{
		Name: "twine",
		Args: args,
		Env: []string{
			"TWINE_USERNAME=__token__",
			"TWINE_PASSWORD=" + token,
		},
	})
}

func (p *execPackageIndex) run() shell.Runner {
	if p.runner == nil {
		return shell.ExecRunner{}
	}
	return p.runner
}

// execCondaRegistry drives the anaconda client.
type execCondaRegistry struct {
	runner shell.Runner
}

func (r *execCondaRegistry) ListPackages(ctx context.Context, channel, pkg, token string) ([]artifact.CondaName, error) {
	out, err := r.run().Output(ctx, shell.Command{
		Name: "anaconda",
		Args: []string{"show", channel + "/" + pkg, "--files"},
		Env:  []string{"ANACONDA_API_TOKEN=" + token},
	})
	if err != nil {
		return nil, err
	}
	var names []artifact.CondaName
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		// Lines that are not platform-qualified package files (headers,
		// version banners) simply do not parse and are skipped.
		name, err := artifact.ParseCondaName(line)
		if err != nil {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

func (r *execCondaRegistry) Remove(ctx context.Context, channel string, name artifact.CondaName, token string) error {
	return r.run().Run(ctx, shell.Command{
		Name: "anaconda",
		Args: []string{"remove", "--force", channel + "/" + name.Spec()},
		Env:  []string{"ANACONDA_API_TOKEN=" + token},
	})
}

func (r *execCondaRegistry) Upload(ctx context.Context, channel, path string, overwrite bool, token string) error {
	args := []string{"upload", "--user", channel}
	if overwrite {
		args = append(args, "--force")
	}
	args = append(args, path)
	return r.run().Run(ctx, shell.Command{
		Name: "anaconda",
		Args: args,
		Env:  []string{"ANACONDA_API_TOKEN=" + token},
	})
}

func (r *execCondaRegistry) run() shell.Runner {
	if r.runner == nil {
		return shell.ExecRunner{}
	}
	return r.runner
}
