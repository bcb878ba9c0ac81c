package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/torneo-cremesi/sheet-api/internal/config"
	"github.com/torneo-cremesi/sheet-api/internal/errors"
	"github.com/torneo-cremesi/sheet-api/internal/orchestrators/backup"
	"github.com/torneo-cremesi/sheet-api/internal/pkg/idgen"
	"github.com/torneo-cremesi/sheet-api/internal/redis"
	"github.com/torneo-cremesi/sheet-api/internal/repositories/appstate"
	"github.com/torneo-cremesi/sheet-api/internal/repositories/items"
)

func newExportCommand() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the character state and item catalog to a backup file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExport(cmd.Context(), out)
		},
	}
	cmd.Flags().StringVar(&out, "out", "backup.json", "file to write, - for stdout")
	return cmd
}

func newImportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Restore the character state and item catalog from a backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.Context(), args[0])
		},
	}
	return cmd
}

func runExport(ctx context.Context, out string) error {
	orch, err := buildBackupOrchestrator()
	if err != nil {
		return err
	}

	exported, err := orch.Export(ctx, &backup.ExportInput{})
	if err != nil {
		return err
	}

	if out == "-" {
		_, err = os.Stdout.Write(append(exported.Payload, '\n'))
		return err
	}
	if err := os.WriteFile(out, exported.Payload, 0o644); err != nil {
		return errors.Wrapf(err, "failed to write %s", out)
	}
	slog.Info("wrote backup", "file", out, "bytes", len(exported.Payload))
	return nil
}

func runImport(ctx context.Context, file string) error {
	payload, err := os.ReadFile(file)
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", file)
	}

	orch, err := buildBackupOrchestrator()
	if err != nil {
		return err
	}

	output, err := orch.Import(ctx, &backup.ImportInput{Payload: payload})
	if err != nil {
		return err
	}
	slog.Info("restored backup",
		"file", file,
		"appRestored", output.AppRestored,
		"itemsRestored", output.ItemsRestored)
	return nil
}

func buildBackupOrchestrator() (*backup.Orchestrator, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	client, err := redis.NewClient(cfg.RedisAddr, &redis.Options{
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		return nil, err
	}

	appStateRepo, err := appstate.NewRedis(&appstate.Config{Client: client})
	if err != nil {
		return nil, err
	}
	itemRepo, err := items.NewRedis(&items.Config{
		Client:      client,
		IDGenerator: idgen.NewUUID("item"),
	})
	if err != nil {
		return nil, err
	}

	return backup.New(&backup.Config{
		AppState: appStateRepo,
		Items:    itemRepo,
	})
}
