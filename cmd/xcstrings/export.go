package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/xcstrings/pkg/catalog"
)

func (c *cli) exportCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export LANG",
		Short: "Export one language as a flat key/value document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(format)
			if format != "json" && format != "yaml" {
				return fmt.Errorf("unknown format %q: want json or yaml", format)
			}
			s, err := c.catalog(cmd.Context())
			if err != nil {
				return err
			}
			out, err := s.Export(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if format == "json" {
				return printJSON(cmd.OutOrStdout(), out)
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(out); err != nil {
				return err
			}
			return enc.Close()
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json or yaml")
	return cmd
}

type previewResponse struct {
	Key      string `json:"key"`
	Language string `json:"language"`
	Text     string `json:"text"`
}

func (c *cli) previewCmd() *cobra.Command {
	var (
		count  int
		device string
	)
	cmd := &cobra.Command{
		Use:   "preview KEY LANG",
		Short: "Render the text a device would show",
		Example: `  xcstrings preview items uk --count 3
  xcstrings preview welcome en --device iphone`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sel := catalog.Selection{Device: device}
			if cmd.Flags().Changed("count") {
				sel.Count = &count
			}
			s, err := c.catalog(cmd.Context())
			if err != nil {
				return err
			}
			text, err := s.Preview(cmd.Context(), args[0], args[1], sel)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), previewResponse{Key: args[0], Language: args[1], Text: text})
		},
	}
	cmd.Flags().IntVar(&count, "count", 0, "number selecting the plural form")
	cmd.Flags().StringVar(&device, "device", "", "device class, e.g. iphone, mac")
	return cmd
}
