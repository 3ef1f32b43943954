package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/relforge/internal/config"
	"git.home.luguber.info/inful/relforge/internal/release"
)

// DocsCmd implements the 'docs' command: build and deploy the site on its
// own, outside a pipeline run.
type DocsCmd struct {
	Branch     string `short:"b" help:"Reference the target folder is derived from" default:"main"`
	PreRelease bool   `help:"Mark the reference as a pre-release"`
	Folder     string `help:"Deploy into this folder instead of deriving it from the branch"`
	BuildOnly  bool   `help:"Build the site without deploying"`
}

func (d *DocsCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	folder := d.Folder
	if folder == "" {
		folder = release.TargetFolder(d.Branch, d.PreRelease)
	}
	if d.BuildOnly {
		ctx := context.Background()
		siteDir, err := buildSite(ctx, cfg)
		if err != nil {
			return err
		}
		fmt.Printf("site built at %s (deploy folder would be %s)\n", siteDir, folder)
		return nil
	}
	return deployDocs(context.Background(), cfg, folder)
}
