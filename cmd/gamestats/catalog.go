package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/morezero/gamestats/internal/server"
	"github.com/morezero/gamestats/pkg/catalog"
)

func newCatalogCmd() *cobra.Command {
	var output string
	var raw bool
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Print the effective endpoint catalog (file, database or built-in)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			cat, pool, err := server.LoadCatalog(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			if pool != nil {
				pool.Close()
			}
			if raw {
				return writeDocument(cmd.OutOrStdout(), output, cat)
			}
			endpoints, regions, err := catalog.Build(cat)
			if err != nil {
				return err
			}
			return writeDocument(cmd.OutOrStdout(), output, catalog.Describe(cat.Name, cat.Version, endpoints, regions))
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "json", "output format: json or yaml")
	cmd.Flags().BoolVar(&raw, "raw", false, "print the catalog document instead of the resolved view")
	return cmd
}

func newValidateCatalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate-catalog <file>",
		Short: "Check a catalog file (JSON or YAML) without starting anything",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.LoadCatalogFile(args[0])
			if err != nil {
				return err
			}
			if err := catalog.Validate(cat); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Catalog %s@%s is valid: %d groups, %d regions\n",
				cat.Name, cat.Version, len(cat.Groups), len(cat.Regions))
			return err
		},
	}
}

func writeDocument(out io.Writer, format string, v interface{}) error {
	switch format {
	case "yaml", "yml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case "json", "":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	default:
		return fmt.Errorf("unknown output format %q (use json or yaml)", format)
	}
}
