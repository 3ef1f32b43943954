package commands

import (
	"fmt"

	"git.home.luguber.info/inful/relforge/internal/release"
)

// ClassifyCmd implements the 'classify' command: show what a reference
// would release without running anything.
type ClassifyCmd struct {
	Branch     string `arg:"" help:"Branch or tag reference to classify"`
	BaseBranch string `help:"Base branch when classifying a merge request"`
	PreRelease bool   `help:"Mark the reference as a pre-release"`
}

func (c *ClassifyCmd) Run(_ *Global, _ *CLI) error {
	ref := release.ParseRef(c.Branch)
	channel := release.Classify(ref, c.PreRelease, c.BaseBranch)
	folder := release.TargetFolder(c.Branch, c.PreRelease)

	fmt.Printf("reference:     %s (%s)\n", ref.Name, ref.Kind)
	fmt.Printf("channel:       %s\n", channel)
	fmt.Printf("docs folder:   %s\n", folder)
	return nil
}
