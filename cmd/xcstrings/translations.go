package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/xcstrings/pkg/catalog"
)

type translationResponse struct {
	Key      string       `json:"key"`
	Language string       `json:"language"`
	Unit     catalog.Unit `json:"unit"`
}

func (c *cli) infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show catalog summary",
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
			return printJSON(cmd.OutOrStdout(), info)
		},
	}
}

func (c *cli) listCmd() *cobra.Command {
	var (
		query string
		limit int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List translations, optionally filtered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := c.catalog(cmd.Context())
			if err != nil {
				return err
			}
			res, err := s.ListTranslations(cmd.Context(), query, limit)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "case-insensitive filter on keys, comments and values")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of results, 0 for all")
	return cmd
}

func (c *cli) keysCmd() *cobra.Command {
	var (
		query string
		limit int
	)
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "List keys with their languages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := c.catalog(cmd.Context())
			if err != nil {
				return err
			}
			res, err := s.ListKeys(cmd.Context(), query, limit)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "case-insensitive filter")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of results, 0 for all")
	return cmd
}

func (c *cli) getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get KEY LANG",
		Short: "Show one translation",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.catalog(cmd.Context())
			if err != nil {
				return err
			}
			u, err := s.GetTranslation(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), translationResponse{Key: args[0], Language: args[1], Unit: u})
		},
	}
}

func (c *cli) setCmd() *cobra.Command {
	var text, state, patchJSON string
	cmd := &cobra.Command{
		Use:   "set KEY LANG",
		Short: "Create or update a translation",
		Long: `Create or update a translation.

--text and --state set a plain value. --patch takes a JSON patch with
"text", "state", "variations" and "substitutions"; --text and --state are
applied on top of it.`,
		Example: `  xcstrings set greeting fr --text Bonjour
  xcstrings set items uk --patch '{"variations":{"plural":{"few":{"text":"%lld елементи"}}}}'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch catalog.Patch
			if patchJSON != "" {
				dec := json.NewDecoder(bytes.NewReader([]byte(patchJSON)))
				dec.DisallowUnknownFields()
				if err := dec.Decode(&patch); err != nil {
					return fmt.Errorf("invalid --patch: %w", err)
				}
			}
			if cmd.Flags().Changed("text") {
				patch.Text = &text
			}
			if cmd.Flags().Changed("state") {
				patch.State = &state
			}

			s, err := c.catalog(cmd.Context())
			if err != nil {
				return err
			}
			u, err := s.UpsertTranslation(cmd.Context(), args[0], args[1], patch)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), translationResponse{Key: args[0], Language: args[1], Unit: u})
		},
	}
	cmd.Flags().StringVar(&text, "text", "", "translated text")
	cmd.Flags().StringVar(&state, "state", "", "translation state, e.g. translated or needs_review")
	cmd.Flags().StringVar(&patchJSON, "patch", "", "JSON patch")
	return cmd
}

func (c *cli) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete KEY LANG",
		Short: "Delete one translation",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.catalog(cmd.Context())
			if err != nil {
				return err
			}
			if err := s.DeleteTranslation(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), statusOK)
		},
	}
}

func (c *cli) deleteKeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-key KEY",
		Short: "Delete a key with all its translations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.catalog(cmd.Context())
			if err != nil {
				return err
			}
			if err := s.DeleteKey(cmd.Context(), args[0]); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), statusOK)
		},
	}
}

func (c *cli) renameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename FROM TO",
		Short: "Rename a key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.catalog(cmd.Context())
			if err != nil {
				return err
			}
			if err := s.RenameKey(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), statusOK)
		},
	}
}

// optionalArg returns nil when unset is true, and the second argument
// otherwise.
func optionalArg(args []string, unset bool) (*string, error) {
	switch {
	case unset && len(args) > 1:
		return nil, errors.New("--clear takes no value")
	case unset:
		return nil, nil
	case len(args) < 2:
		return nil, errors.New("a value or --clear is required")
	}
	return &args[1], nil
}

func (c *cli) commentCmd() *cobra.Command {
	var unset bool
	cmd := &cobra.Command{
		Use:   "comment KEY [TEXT]",
		Short: "Set or clear the developer comment of a key",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			comment, err := optionalArg(args, unset)
			if err != nil {
				return err
			}
			s, err := c.catalog(cmd.Context())
			if err != nil {
				return err
			}
			if err := s.SetComment(cmd.Context(), args[0], comment); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), statusOK)
		},
	}
	cmd.Flags().BoolVar(&unset, "clear", false, "remove the comment")
	return cmd
}

func (c *cli) extractionStateCmd() *cobra.Command {
	var unset bool
	cmd := &cobra.Command{
		Use:   "extraction-state KEY [STATE]",
		Short: "Set or clear the extraction state of a key",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := optionalArg(args, unset)
			if err != nil {
				return err
			}
			s, err := c.catalog(cmd.Context())
			if err != nil {
				return err
			}
			if err := s.SetExtractionState(cmd.Context(), args[0], state); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), statusOK)
		},
	}
	cmd.Flags().BoolVar(&unset, "clear", false, "remove the extraction state")
	return cmd
}

func (c *cli) shouldTranslateCmd() *cobra.Command {
	var unset bool
	cmd := &cobra.Command{
		Use:   "should-translate KEY [true|false]",
		Short: "Mark a key as translatable or not",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := optionalArg(args, unset)
			if err != nil {
				return err
			}
			var should *bool
			if raw != nil {
				v, err := strconv.ParseBool(*raw)
				if err != nil {
					return fmt.Errorf("invalid value %q: want true or false", *raw)
				}
				should = &v
			}
			s, err := c.catalog(cmd.Context())
			if err != nil {
				return err
			}
			if err := s.SetShouldTranslate(cmd.Context(), args[0], should); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), statusOK)
		},
	}
	cmd.Flags().BoolVar(&unset, "clear", false, "remove the flag")
	return cmd
}
