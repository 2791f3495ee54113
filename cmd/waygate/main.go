// Main package for the waygate game server and its operator tools.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Set at build time.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "waygate",
		Short:         "Secure connection server for game clients",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (yaml or toml); WAYGATE_* env vars override it")

	rootCmd.AddCommand(
		serveCmd(&configPath),
		keygenCmd(),
		notifyCmd(&configPath),
		probeCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
