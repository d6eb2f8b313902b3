/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/lodeworks/lodestone/pkg/api"
	"github.com/lodeworks/lodestone/pkg/store"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve mined resources over a REST API",
	Long: `Start an HTTP server that exposes the mined resources: current
snapshots, version history, and the list of known kinds.

The /metrics endpoint serves Prometheus metrics and is unauthenticated;
every /api/v1 route requires the configured API key.

Examples:
  lodestone serve
  lodestone serve --port=9090 --data-dir=./data`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if dir, _ := cmd.Flags().GetString("data-dir"); dir != "" {
			cfg.DataDir = dir
		}
		if port, _ := cmd.Flags().GetInt("port"); port > 0 {
			cfg.Port = port
		}
		if bind, _ := cmd.Flags().GetString("bind"); bind != "" {
			cfg.Bind = bind
		}

		resourceStore, err := store.Open(cfg.DataDir)
		if err != nil {
			return err
		}
		defer resourceStore.Close()

		return api.StartServer(resourceStore, api.ServerConfig{
			Bind:   cfg.Bind,
			Port:   cfg.Port,
			APIKey: cfg.Security.APIKey,
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("data-dir", "d", "", "Resource store directory (overrides config)")
	serveCmd.Flags().IntP("port", "p", 0, "Port to listen on (overrides config)")
	serveCmd.Flags().String("bind", "", "Address to bind to (overrides config)")
}
