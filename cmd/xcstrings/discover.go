package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/xcstrings/pkg/discovery"
)

type discoverResponse struct {
	Root     string   `json:"root"`
	Catalogs []string `json:"catalogs"`
}

func (c *cli) discoverCmd() *cobra.Command {
	var skip []string
	cmd := &cobra.Command{
		Use:   "discover [DIR]",
		Short: "Find catalog files below a directory",
		Long: `Find catalog files below DIR, or --root, or the working directory.
Hidden directories and common build outputs are skipped.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := c.cfg.Root
			if len(args) == 1 {
				root = args[0]
			}
			if root == "" {
				wd, err := os.Getwd()
				if err != nil {
					return err
				}
				root = wd
			}

			opts := []discovery.Option{discovery.WithLogger(c.log)}
			if len(skip) > 0 {
				opts = append(opts, discovery.WithSkipDirs(skip...))
			}
			paths, err := discovery.Find(cmd.Context(), root, opts...)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), discoverResponse{Root: root, Catalogs: paths})
		},
	}
	cmd.Flags().StringSliceVar(&skip, "skip", nil, "additional directory names to skip")
	return cmd
}
