/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lodeworks/lodestone/pkg/catalog"
	"github.com/lodeworks/lodestone/pkg/extract"
	"github.com/lodeworks/lodestone/pkg/store"
)

// mineCmd represents the mine command
var mineCmd = &cobra.Command{
	Use:   "mine",
	Short: "Decode every matching config file and persist versioned resources",
	Long: `Walk the input directory, decode every file that matches a catalog
schema, and persist the results as versioned resources.

Files that fail to decode are reported and skipped; one corrupt file never
aborts the batch. Re-mining unchanged files creates no new versions.

Examples:
  lodestone mine --input-dir=./client_config --data-dir=./data
  lodestone mine --workers=8`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if dir, _ := cmd.Flags().GetString("input-dir"); dir != "" {
			cfg.InputDir = dir
		}
		if dir, _ := cmd.Flags().GetString("data-dir"); dir != "" {
			cfg.DataDir = dir
		}
		if workers, _ := cmd.Flags().GetInt("workers"); workers > 0 {
			cfg.Workers = workers
		}

		cat, err := catalog.Load(schemaDir(cmd, cfg))
		if err != nil {
			return fmt.Errorf("failed to load schema catalog: %w", err)
		}

		resourceStore, err := store.Open(cfg.DataDir)
		if err != nil {
			return err
		}
		defer resourceStore.Close()

		extractor := extract.New(cat, resourceStore, extract.Config{
			InputDir: cfg.InputDir,
			Workers:  cfg.Workers,
			MaxDepth: cfg.MaxDepth,
			Logger:   logrus.StandardLogger(),
		})

		summary, err := extractor.Run()
		if err != nil {
			return err
		}

		cmd.Printf("Matched:  %d\n", summary.Matched)
		cmd.Printf("Decoded:  %d\n", summary.Decoded)
		cmd.Printf("Changed:  %d\n", summary.Changed)
		cmd.Printf("Skipped:  %d\n", summary.Skipped)
		cmd.Printf("Failed:   %d\n", len(summary.Failures))
		for _, f := range summary.Failures {
			cmd.Printf("  %s: %v\n", f.File, f.Err)
		}
		if len(summary.Failures) > 0 {
			return fmt.Errorf("%d file(s) failed to extract", len(summary.Failures))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mineCmd)
	mineCmd.Flags().String("input-dir", "", "Directory of client config files (overrides config)")
	mineCmd.Flags().StringP("data-dir", "d", "", "Resource store directory (overrides config)")
	mineCmd.Flags().Int("workers", 0, "Parallel decode workers (overrides config)")
}
