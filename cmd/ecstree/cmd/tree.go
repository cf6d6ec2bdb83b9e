package cmd

import (
	"github.com/spf13/cobra"

	"github.com/go-drift/ecstree/pkg/scene"
)

// NewTreeCommand creates the tree command.
func NewTreeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tree <scene>",
		Short: "Mount a scene and print the realized tree",
		Long: `Load a YAML or TOML scene document, mount it, run one build, and print
the realized tree, one entity per line as "kind name #id".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTree(rootOpts, args[0], cmd)
		},
	}
}

func runTree(opts *RootOptions, path string, cmd *cobra.Command) error {
	doc, err := scene.Load(opts.scenePath(path))
	if err != nil {
		return err
	}

	h := opts.newHierarchy()
	if _, err := scene.Mount(h, doc); err != nil {
		return err
	}
	h.Build()

	opts.logger.Info().Str("scene", path).Int("entities", h.Store().Len()).Msg("mounted")
	return scene.Fprint(cmd.OutOrStdout(), h, scene.PrintOptions{HideIDs: opts.HideIDs})
}
