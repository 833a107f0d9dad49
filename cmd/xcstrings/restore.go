package main

import (
	"errors"

	"github.com/spf13/cobra"
)

var errNoMirror = errors.New("mirror is not configured: set MIRROR_BUCKET and credentials")

type restoreResponse struct {
	Path  string `json:"path"`
	Bytes int    `json:"bytes"`
}

func (c *cli) restoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore",
		Short: "Replace the catalog with its latest mirrored snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if c.mirror == nil {
				return errNoMirror
			}
			s, err := c.catalog(cmd.Context())
			if err != nil {
				return err
			}
			data, err := c.mirror.Latest(cmd.Context(), s.Path())
			if err != nil {
				return err
			}
			if err := s.Replace(cmd.Context(), data); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), restoreResponse{Path: s.Path(), Bytes: len(data)})
		},
	}
}
