// Command sheet is the maintenance tool for the character sheet data:
// refreshing the bundled catalog datasets and moving backups in and out of
// the persistence store.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	rootCmd := &cobra.Command{
		Use:           "sheet",
		Short:         "Character sheet and campaign tracker tooling",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(newFetchCommand())
	rootCmd.AddCommand(newShowCommand())
	rootCmd.AddCommand(newExportCommand())
	rootCmd.AddCommand(newImportCommand())

	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "error", err.Error())
		os.Exit(1)
	}
}
