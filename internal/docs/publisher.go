package docs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"

	"git.home.luguber.info/inful/relforge/internal/config"
	"git.home.luguber.info/inful/relforge/internal/logfields"
	"git.home.luguber.info/inful/relforge/internal/observability"
)

// Publisher deploys a rendered site into a target folder of the hosting
// repository's deploy branch.
type Publisher struct {
	cfg config.DocsConfig
}

// NewPublisher creates a publisher for the configured hosting repository.
func NewPublisher(cfg config.DocsConfig) *Publisher {
	return &Publisher{cfg: cfg}
}

// Publish clones the deploy branch, replaces the target folder with the
// rendered site, and pushes one commit. A push with nothing changed is
// treated as success.
func (p *Publisher) Publish(ctx context.Context, siteDir, targetFolder string) error {
	ctx = observability.WithStage(ctx, "docs-publish")
	workDir, err := os.MkdirTemp("", "relforge-docs-*")
	if err != nil {
		return fmt.Errorf("create deploy workspace: %w", err)
	}
	defer os.RemoveAll(workDir)

	auth := p.auth()
	observability.InfoContext(ctx, "cloning hosting repository",
		logfields.Branch(p.cfg.DeployBranch), logfields.Destination(p.cfg.DeployRepo))
	repo, err := git.PlainCloneContext(ctx, workDir, false, &git.CloneOptions{
		URL:           p.cfg.DeployRepo,
		ReferenceName: plumbing.ReferenceName("refs/heads/" + p.cfg.DeployBranch),
		SingleBranch:  true,
		Auth:          auth,
	})
	if err != nil {
		return fmt.Errorf("clone hosting repository: %w", err)
	}

	target := filepath.Join(workDir, targetFolder)
	if err := os.RemoveAll(target); err != nil {
		return fmt.Errorf("clear target folder: %w", err)
	}
	if err := copyTree(siteDir, target); err != nil {
		return fmt.Errorf("stage rendered site: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("open worktree: %w", err)
	}
	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return fmt.Errorf("stage changes: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return fmt.Errorf("worktree status: %w", err)
	}
	if status.IsClean() {
		observability.InfoContext(ctx, "site unchanged, nothing to deploy", logfields.Path(targetFolder))
		return nil
	}

	msg := fmt.Sprintf("Deploy docs to %s", targetFolder)
	_, err = wt.Commit(msg, &git.CommitOptions{
		Author: &object.Signature{
			Name:  p.cfg.AuthorName,
			Email: p.cfg.AuthorEmail,
			When:  time.Now(),
		},
	})
	if err != nil {
		return fmt.Errorf("commit site: %w", err)
	}

	if err := repo.PushContext(ctx, &git.PushOptions{Auth: auth}); err != nil {
		return fmt.Errorf("push site: %w", err)
	}
	observability.InfoContext(ctx, "documentation deployed",
		logfields.Path(targetFolder), logfields.Branch(p.cfg.DeployBranch))
	return nil
}

// auth builds token auth for the hosting repository. Hosting forges accept
// the token as a basic-auth password with any username.
func (p *Publisher) auth() transport.AuthMethod {
	token := os.Getenv(p.cfg.TokenEnv)
	if token == "" {
		return nil
	}
	return &http.BasicAuth{Username: "token", Password: token}
}

// copyTree copies the rendered site under dst, preserving structure.
func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		out := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(out, 0o750)
		}
		in, err := os.Open(path)
		if err != nil {
			return err
		}
		defer in.Close()
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		if _, err := io.Copy(f, in); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	})
}
