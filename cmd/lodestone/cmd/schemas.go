/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lodeworks/lodestone/pkg/catalog"
)

// schemasCmd represents the schemas command
var schemasCmd = &cobra.Command{
	Use:   "schemas",
	Short: "Inspect the schema catalog",
}

// schemasListCmd represents the schemas list command
var schemasListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the schemas in the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		cat, err := catalog.Load(schemaDir(cmd, cfg))
		if err != nil {
			return fmt.Errorf("failed to load schema catalog: %w", err)
		}

		for _, s := range cat.Schemas() {
			cmd.Printf("%-24s %s\n", s.Name, s.Match)
		}
		return nil
	},
}

// schemasValidateCmd represents the schemas validate command
var schemasValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate every schema descriptor in the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		cat, err := catalog.Load(schemaDir(cmd, cfg))
		if err != nil {
			return err
		}

		cmd.Printf("✓ %d schema(s) valid\n", cat.Len())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemasCmd)
	schemasCmd.AddCommand(schemasListCmd)
	schemasCmd.AddCommand(schemasValidateCmd)
}
