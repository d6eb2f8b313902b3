/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lodeworks/lodestone/pkg/catalog"
	"github.com/lodeworks/lodestone/pkg/schema"
)

// decodeCmd represents the decode command
var decodeCmd = &cobra.Command{
	Use:   "decode <file>",
	Short: "Decode one binary config file to JSON",
	Long: `Decode a single client config file against the schema catalog and print
the decoded document as JSON on stdout.

The schema is picked by matching the file name against the catalog's
patterns, or forced with --schema.

Examples:
  lodestone decode pet_config.bin
  lodestone decode --schema=pets mystery.bin`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		cat, err := catalog.Load(schemaDir(cmd, cfg))
		if err != nil {
			return fmt.Errorf("failed to load schema catalog: %w", err)
		}

		path := args[0]
		schemaName, _ := cmd.Flags().GetString("schema")

		var s *schema.Schema
		if schemaName != "" {
			found, ok := cat.Lookup(schemaName)
			if !ok {
				return fmt.Errorf("unknown schema %q (known: %v)", schemaName, cat.Names())
			}
			s = found
		} else {
			found, ok := cat.MatchFile(path)
			if !ok {
				return fmt.Errorf("no schema matches %q; use --schema", path)
			}
			s = found
		}

		buf, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		decoder := schema.NewDecoder(schema.DecoderConfig{MaxDepth: cfg.MaxDepth})
		doc, err := decoder.DecodeDocument(buf, s)
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal document: %w", err)
		}
		cmd.Println(string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)
	decodeCmd.Flags().String("schema", "", "Schema name to decode with (default: match by file name)")
}
