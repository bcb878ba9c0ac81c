package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/spf13/cobra"

	"github.com/torneo-cremesi/sheet-api/internal/catalog"
	"github.com/torneo-cremesi/sheet-api/internal/config"
	"github.com/torneo-cremesi/sheet-api/internal/errors"
)

type fetchOptions struct {
	only     []string
	outDir   string
	noWrite  bool
	attempts int
	timeout  time.Duration
}

func newFetchCommand() *cobra.Command {
	opts := &fetchOptions{}
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Refresh the bundled catalog datasets from the remote archive",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFetch(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringSliceVar(&opts.only, "only", []string{"races", "classes", "traits"},
		"datasets to fetch (races, classes, traits)")
	cmd.Flags().StringVar(&opts.outDir, "out-dir", "data", "directory to write datasets to")
	cmd.Flags().BoolVar(&opts.noWrite, "no-write", false, "fetch and validate without writing files")
	cmd.Flags().IntVar(&opts.attempts, "attempts", 4, "fetch attempts per endpoint")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 15*time.Second, "timeout per attempt")
	return cmd
}

func runFetch(ctx context.Context, opts *fetchOptions) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if opts.attempts < 1 {
		return errors.InvalidArgument("attempts must be at least 1")
	}

	client := &http.Client{}
	for _, dataset := range opts.only {
		switch dataset {
		case "races":
			err = fetchRaces(ctx, client, cfg, opts)
		case "classes":
			err = fetchClasses(ctx, client, cfg, opts)
		case "traits":
			err = fetchTraits(ctx, client, cfg, opts)
		default:
			err = errors.InvalidArgumentf("unknown dataset %q", dataset)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func fetchRaces(ctx context.Context, client *http.Client, cfg *config.Config, opts *fetchOptions) error {
	raw, err := fetchWithRetry(ctx, client, cfg.RacesURL, opts)
	if err != nil {
		return err
	}

	var races []catalog.Race
	var altTraits []catalog.AltTrait
	for _, entry := range catalog.UnwrapEntries(raw, "Races") {
		race := catalog.NormaliseRace(entry)
		if race == nil {
			continue
		}
		if race.Name == "" {
			slog.Warn("dropping race without a name", "id", race.ID)
			continue
		}
		races = append(races, *race)
		altTraits = append(altTraits, race.AltTraits...)
	}
	slog.Info("fetched races", "races", len(races), "altTraits", len(altTraits))

	if err := writeDataset(opts, "aon-races.json", races); err != nil {
		return err
	}
	return writeDataset(opts, "aon-alt-traits.json", altTraits)
}

func fetchClasses(ctx context.Context, client *http.Client, cfg *config.Config, opts *fetchOptions) error {
	rawClasses, err := fetchWithRetry(ctx, client, cfg.ClassesURL, opts)
	if err != nil {
		return err
	}
	rawArchetypes, err := fetchWithRetry(ctx, client, cfg.ArchetypesURL, opts)
	if err != nil {
		return err
	}

	archetypeIndex := catalog.UnwrapEntries(rawArchetypes, "Archetypes")

	var classes []catalog.Class
	for _, entry := range catalog.UnwrapEntries(rawClasses, "Classes") {
		class := catalog.NormaliseClass(entry, archetypeIndex)
		if class == nil {
			continue
		}
		if class.Name == "" {
			slog.Warn("dropping class without a name", "id", class.ID)
			continue
		}
		classes = append(classes, *class)
	}

	var archetypes []catalog.Archetype
	for _, entry := range archetypeIndex {
		archetype := catalog.NormaliseArchetype(entry)
		if archetype == nil || archetype.Name == "" {
			continue
		}
		archetypes = append(archetypes, *archetype)
	}
	slog.Info("fetched classes", "classes", len(classes), "archetypes", len(archetypes))

	if err := writeDataset(opts, "aon-classes.json", classes); err != nil {
		return err
	}
	return writeDataset(opts, "aon-archetypes.json", archetypes)
}

func fetchTraits(ctx context.Context, client *http.Client, cfg *config.Config, opts *fetchOptions) error {
	raw, err := fetchWithRetry(ctx, client, cfg.TraitsURL, opts)
	if err != nil {
		return err
	}

	bundle := catalog.NormaliseTraitBundle(raw)
	kept := &catalog.TraitBundle{}
	for _, t := range bundle.Traits {
		if t.Name == "" {
			slog.Warn("dropping trait without a name", "id", t.ID)
			continue
		}
		kept.Traits = append(kept.Traits, t)
	}
	for _, t := range bundle.Drawbacks {
		if t.Name == "" {
			slog.Warn("dropping drawback without a name", "id", t.ID)
			continue
		}
		kept.Drawbacks = append(kept.Drawbacks, t)
	}
	slog.Info("fetched traits", "traits", len(kept.Traits), "drawbacks", len(kept.Drawbacks))

	return writeDataset(opts, "aon-traits.json", kept)
}

// fetchWithRetry fetches and decodes one endpoint, retrying transient
// failures with exponential backoff. Each attempt gets its own timeout.
func fetchWithRetry(ctx context.Context, client *http.Client, url string, opts *fetchOptions) (any, error) {
	if url == "" {
		return nil, errors.InvalidArgument("endpoint URL cannot be empty")
	}

	var raw any
	operation := func() error {
		attemptCtx, cancel := context.WithTimeout(ctx, opts.timeout)
		defer cancel()

		req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			slog.Warn("fetch attempt failed", "url", url, "error", err.Error())
			return err
		}
		defer func() { _ = resp.Body.Close() }()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			err := errors.Unavailablef("unexpected status %d from %s", resp.StatusCode, url)
			slog.Warn("fetch attempt failed", "url", url, "error", err.Error())
			return err
		}
		return json.NewDecoder(resp.Body).Decode(&raw)
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(opts.attempts-1)),
		ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, errors.Wrapf(err, "failed to fetch %s", url)
	}
	return raw, nil
}

func writeDataset(opts *fetchOptions, name string, v any) error {
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrapf(err, "failed to serialize %s", name)
	}

	if opts.noWrite {
		slog.Info("skipping write", "file", name, "bytes", len(payload))
		return nil
	}

	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return errors.Wrapf(err, "failed to create %s", opts.outDir)
	}
	path := filepath.Join(opts.outDir, name)
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	slog.Info("wrote dataset", "file", path, "bytes", len(payload))
	return nil
}
