package main

import (
	"os"

	"github.com/spf13/cobra"

	"remory/internal/interfaces/cli/migrate"
	"remory/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "remory",
		Short: "Remory - authentication and chat service",
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
