// Package main is the entry point for the encounter manager
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/wfrp-encounter-api/cmd/server/client"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "wfrp-encounter-api",
	Short: "Warhammer Fantasy 2e encounter manager",
	Long:  `Stores weapon and enemy records, rolls dice and resolves combat over an HTTP API.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "path to a YAML config file")

	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(client.ClientCmd)
}
