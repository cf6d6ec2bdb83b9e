package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/go-drift/ecstree/pkg/core"
	"github.com/go-drift/ecstree/pkg/scene"
)

// NewDiffCommand creates the diff command.
func NewDiffCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "diff <old> <new>",
		Short: "Reconcile one scene into another and report what changed",
		Long: `Mount the old scene and build it, then apply the new scene to the same
hierarchy and build again. Prints how many instances were mounted, replaced,
unmounted, and rebuilt by the transition, followed by the resulting tree.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(rootOpts, args[0], args[1], cmd)
		},
	}
}

func runDiff(opts *RootOptions, oldPath, newPath string, cmd *cobra.Command) error {
	oldDoc, err := scene.Load(opts.scenePath(oldPath))
	if err != nil {
		return err
	}
	newDoc, err := scene.Load(opts.scenePath(newPath))
	if err != nil {
		return err
	}

	h := opts.newHierarchy()
	sc, err := scene.Mount(h, oldDoc)
	if err != nil {
		return err
	}
	h.Build()
	before := h.Stats()

	if err := scene.Apply(h, sc, newDoc); err != nil {
		return err
	}
	h.Build()

	out := cmd.OutOrStdout()
	if err := printDelta(out, before, h.Stats()); err != nil {
		return err
	}
	return scene.Fprint(out, h, scene.PrintOptions{HideIDs: opts.HideIDs})
}

func printDelta(w io.Writer, before, after core.Stats) error {
	_, err := fmt.Fprintf(w, "mounted: %d\nreplaced: %d\nunmounted: %d\nrebuilt: %d\n\n",
		after.Mounted-before.Mounted,
		after.Replaced-before.Replaced,
		after.Unmounted-before.Unmounted,
		after.Rebuilt-before.Rebuilt,
	)
	return err
}
