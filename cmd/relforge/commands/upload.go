package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"git.home.luguber.info/inful/relforge/internal/artifact"
	"git.home.luguber.info/inful/relforge/internal/config"
	"git.home.luguber.info/inful/relforge/internal/release"
	"git.home.luguber.info/inful/relforge/internal/upload"
)

// UploadCmd implements the 'upload' command: publish whatever a previous
// run left in the artifact store, without rebuilding.
type UploadCmd struct {
	Branch     string `short:"b" help:"Branch or tag reference being released" default:"main"`
	BaseBranch string `help:"Base branch when building a merge request"`
	PreRelease bool   `help:"Mark the reference as a pre-release"`
}

func (u *UploadCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	store, err := artifact.NewDirStore(filepath.Join(cfg.Build.Workspace, "artifacts"))
	if err != nil {
		return err
	}

	ref := release.ParseRef(u.Branch)
	channel := release.Classify(ref, u.PreRelease, u.BaseBranch)

	gate := upload.NewGate(cfg, store)
	outcome, err := gate.Publish(context.Background(), channel, u.Branch)
	fmt.Printf("wheels uploaded: %d\nconda uploaded:  %d\nindex published: %t\n",
		outcome.WheelsUploaded, outcome.CondaUploaded, outcome.IndexPublished)
	return err
}
