package main

import (
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/xcstrings/pkg/catalog"
)

type languagesResponse struct {
	SourceLanguage string   `json:"sourceLanguage"`
	Languages      []string `json:"languages"`
}

type addLanguageResponse struct {
	Code  string `json:"code"`
	Added int    `json:"added"`
}

func (c *cli) languagesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "languages",
		Short: "Manage catalog languages",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List the languages present in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := c.catalog(cmd.Context())
			if err != nil {
				return err
			}
			info, err := s.Info(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), languagesResponse{SourceLanguage: info.SourceLanguage, Languages: info.Languages})
		},
	}

	add := &cobra.Command{
		Use:   "add CODE",
		Short: "Add a language to every key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.catalog(cmd.Context())
			if err != nil {
				return err
			}
			added, err := s.AddLanguage(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), addLanguageResponse{Code: args[0], Added: added})
		},
	}

	remove := &cobra.Command{
		Use:   "remove CODE",
		Short: "Remove a language from every key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.catalog(cmd.Context())
			if err != nil {
				return err
			}
			if err := s.RemoveLanguage(cmd.Context(), args[0]); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), statusOK)
		},
	}

	rename := &cobra.Command{
		Use:   "rename FROM TO",
		Short: "Rename a language code",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.catalog(cmd.Context())
			if err != nil {
				return err
			}
			if err := s.UpdateLanguage(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), statusOK)
		},
	}

	cmd.AddCommand(list, add, remove, rename)
	return cmd
}

type untranslatedResponse struct {
	Language string   `json:"language"`
	Keys     []string `json:"keys"`
}

func (c *cli) untranslatedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "untranslated LANG",
		Short: "List translatable keys without a translation for LANG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.catalog(cmd.Context())
			if err != nil {
				return err
			}
			keys, err := s.ListUntranslated(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), untranslatedResponse{Language: args[0], Keys: keys})
		},
	}
}

type overviewResponse struct {
	Languages []catalog.Progress `json:"languages"`
}

func (c *cli) progressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "progress [LANG]",
		Short: "Show translation progress of one language or all of them",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.catalog(cmd.Context())
			if err != nil {
				return err
			}
			if len(args) == 1 {
				p, err := s.Progress(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), p)
			}
			out, err := s.Overview(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), overviewResponse{Languages: out})
		},
	}
}
