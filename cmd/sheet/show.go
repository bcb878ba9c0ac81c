package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/torneo-cremesi/sheet-api/internal/clients/aon"
	"github.com/torneo-cremesi/sheet-api/internal/config"
	"github.com/torneo-cremesi/sheet-api/internal/orchestrators/sheet"
	"github.com/torneo-cremesi/sheet-api/internal/redis"
	"github.com/torneo-cremesi/sheet-api/internal/repositories/appstate"
	"github.com/torneo-cremesi/sheet-api/internal/rules"
)

func newShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Hydrate the sheet and print the derived summaries",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShow(cmd.Context(), cmd)
		},
	}
}

func runShow(ctx context.Context, cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	client, err := redis.NewClient(cfg.RedisAddr, &redis.Options{
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		return err
	}

	appStateRepo, err := appstate.NewRedis(&appstate.Config{Client: client})
	if err != nil {
		return err
	}
	catalogs, err := aon.New(&aon.Config{
		Endpoints: aon.Endpoints{
			Races:      cfg.RacesURL,
			Classes:    cfg.ClassesURL,
			Archetypes: cfg.ArchetypesURL,
			Traits:     cfg.TraitsURL,
		},
		StubDir: cfg.DataDir,
	})
	if err != nil {
		return err
	}
	rulesService, err := rules.NewService(&rules.Config{DataDir: cfg.DataDir})
	if err != nil {
		return err
	}

	orch, err := sheet.New(&sheet.Config{
		Catalogs:  catalogs,
		Rules:     rulesService,
		AppState:  appStateRepo,
		SaveDelay: cfg.SaveDelay,
	})
	if err != nil {
		return err
	}
	defer orch.Close()

	if err := orch.Hydrate(ctx); err != nil {
		return err
	}
	orch.Flush()

	state := orch.State()
	rows := []struct{ label, key string }{
		{"Allineamento", sheet.ComputedAlignment},
		{"Anagrafica", sheet.ComputedAnagraphics},
		{"Razza e classi", sheet.ComputedRaceClass},
		{"Misure", sheet.ComputedMeasures},
		{"Tratti", sheet.ComputedTraitNotes},
		{"Difetti", sheet.ComputedDrawbackNotes},
		{"Regole attive", sheet.ComputedRules},
	}
	for _, row := range rows {
		value := state.String(row.key)
		if value == "" {
			value = "-"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%-16s %s\n", row.label, value)
	}
	return nil
}
