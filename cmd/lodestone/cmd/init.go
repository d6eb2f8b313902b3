/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/lodeworks/lodestone/pkg/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Bootstrap a lodestone configuration file",
	Long: `Create a configuration file with sensible defaults and a generated
API key for the REST server.

This command will:
- Create the config directory if needed
- Write a config file with default paths
- Generate a secure API key for the serve command

Examples:
  lodestone init
  lodestone init --input-dir=./client_config --force`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		inputDir, _ := cmd.Flags().GetString("input-dir")
		force, _ := cmd.Flags().GetBool("force")

		if configPath == "" {
			configPath = config.GetDefaultConfigPath()
		}

		if config.ConfigExists(configPath) && !force {
			cmd.Printf("Config already exists at %s. Use --force to overwrite.\n", configPath)
			return
		}

		cfg, err := config.BootstrapConfig(configPath, inputDir)
		if err != nil {
			cmd.Printf("Error bootstrapping config: %v\n", err)
			os.Exit(1)
		}

		cmd.Printf("✅ Lodestone configuration created at %s\n", configPath)
		cmd.Printf("Input directory:  %s\n", cfg.InputDir)
		cmd.Printf("Schema directory: %s\n", cfg.SchemaDir)
		cmd.Printf("Data directory:   %s\n", cfg.DataDir)
		cmd.Printf("API key:          %s\n", cfg.Security.APIKey)
		cmd.Printf("\nNext steps:\n")
		cmd.Printf("  lodestone mine\n")
		cmd.Printf("  lodestone serve\n")
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().String("input-dir", "", "Directory of client config files")
	initCmd.Flags().Bool("force", false, "Overwrite an existing config file")
}
