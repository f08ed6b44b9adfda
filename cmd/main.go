// cmd is the application entry point. `serve` wires together all layers and
// starts the HTTP server; `generate` runs a single profile generation.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ignite-quest",
	Short: "Ignite quest registration service",
	Long:  `Serves the Ignite event schedule, countdown and the quest profile registration flow.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(generateCmd)
}
