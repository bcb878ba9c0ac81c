package aon

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/torneo-cremesi/sheet-api/internal/catalog"
	"github.com/torneo-cremesi/sheet-api/internal/errors"
)

// Endpoints lists the remote catalog URLs. An empty URL skips the network
// and loads the bundled stub directly.
type Endpoints struct {
	Races      string
	Classes    string
	Archetypes string
	Traits     string
}

// DefaultEndpoints points at the Archives of Nethys datasets.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		Races:      "https://aonprd.com/Data/Races.json",
		Classes:    "https://aonprd.com/Data/Classes.json",
		Archetypes: "https://aonprd.com/Data/Archetypes.json",
		Traits:     "https://aonprd.com/Data/Traits.json",
	}
}

// Bundled snapshot files, one per catalog.
const (
	stubRaces      = "aon-races.stub.json"
	stubClasses    = "aon-classes.stub.json"
	stubArchetypes = "aon-archetypes.stub.json"
	stubTraits     = "aon-traits.stub.json"
)

// Config holds the dependencies for the catalog client.
type Config struct {
	// HTTPClient is optional; a client with a sane timeout is used when nil.
	HTTPClient *http.Client
	Endpoints  Endpoints
	// StubDir is the directory holding the bundled snapshot datasets used
	// when the remote archive is unreachable.
	StubDir string
}

// Validate validates the Config.
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.StubDir == "" {
		return errors.InvalidArgument("stub dir cannot be empty")
	}
	return nil
}

type client struct {
	http      *http.Client
	endpoints Endpoints
	stubDir   string

	group singleflight.Group

	mu      sync.Mutex
	races   []catalog.Race
	classes []catalog.Class
	traits  *catalog.TraitBundle
}

// New creates a catalog client.
func New(cfg *Config) (Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}

	return &client{
		http:      httpClient,
		endpoints: cfg.Endpoints,
		stubDir:   cfg.StubDir,
	}, nil
}

func (c *client) GetRaces(ctx context.Context) ([]catalog.Race, error) {
	c.mu.Lock()
	if c.races != nil {
		cached := c.races
		c.mu.Unlock()
		return cached, nil
	}
	c.mu.Unlock()

	v, err, _ := c.group.Do("races", func() (any, error) {
		raw, err := c.fetchWithFallback(ctx, c.endpoints.Races, stubRaces)
		if err != nil {
			return nil, err
		}
		entries := catalog.UnwrapEntries(raw, "Races")
		races := make([]catalog.Race, 0, len(entries))
		for _, entry := range entries {
			if race := catalog.NormaliseRace(entry); race != nil {
				races = append(races, *race)
			}
		}
		c.mu.Lock()
		c.races = races
		c.mu.Unlock()
		return races, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]catalog.Race), nil
}

func (c *client) GetClasses(ctx context.Context) ([]catalog.Class, error) {
	c.mu.Lock()
	if c.classes != nil {
		cached := c.classes
		c.mu.Unlock()
		return cached, nil
	}
	c.mu.Unlock()

	v, err, _ := c.group.Do("classes", func() (any, error) {
		var rawClasses, rawArchetypes any
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			rawClasses, err = c.fetchWithFallback(gctx, c.endpoints.Classes, stubClasses)
			return err
		})
		g.Go(func() error {
			var err error
			rawArchetypes, err = c.fetchWithFallback(gctx, c.endpoints.Archetypes, stubArchetypes)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}

		archetypeIndex := catalog.UnwrapEntries(rawArchetypes, "Archetypes")
		entries := catalog.UnwrapEntries(rawClasses, "Classes")
		classes := make([]catalog.Class, 0, len(entries))
		for _, entry := range entries {
			if class := catalog.NormaliseClass(entry, archetypeIndex); class != nil {
				classes = append(classes, *class)
			}
		}
		c.mu.Lock()
		c.classes = classes
		c.mu.Unlock()
		return classes, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]catalog.Class), nil
}

func (c *client) GetTraitsAndDrawbacks(ctx context.Context) (*catalog.TraitBundle, error) {
	c.mu.Lock()
	if c.traits != nil {
		cached := c.traits
		c.mu.Unlock()
		return cached, nil
	}
	c.mu.Unlock()

	v, err, _ := c.group.Do("traits", func() (any, error) {
		raw, err := c.fetchWithFallback(ctx, c.endpoints.Traits, stubTraits)
		if err != nil {
			return nil, err
		}
		bundle := catalog.NormaliseTraitBundle(raw)
		c.mu.Lock()
		c.traits = bundle
		c.mu.Unlock()
		return bundle, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*catalog.TraitBundle), nil
}

// fetchWithFallback fetches url and decodes the JSON payload, falling back
// to the bundled stub on network failure, non-success status, or a body that
// doesn't parse. Only a stub that itself fails to load surfaces an error.
func (c *client) fetchWithFallback(ctx context.Context, url, stubName string) (any, error) {
	if url == "" {
		return c.readStub(stubName)
	}

	raw, err := c.fetchJSON(ctx, url)
	if err != nil {
		slog.WarnContext(ctx, "remote catalog unreachable, using local stub",
			"url", url,
			"stub", stubName,
			"error", err.Error())
		return c.readStub(stubName)
	}
	return raw, nil
}

func (c *client) fetchJSON(ctx context.Context, url string) (any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build request for %s", url)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.Unavailablef("unexpected status %d from %s", resp.StatusCode, url)
	}

	var raw any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, errors.Wrapf(err, "failed to decode payload from %s", url)
	}
	return raw, nil
}

func (c *client) readStub(name string) (any, error) {
	path := filepath.Join(c.stubDir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable,
			"failed to load stub "+path)
	}
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrapf(err, "failed to parse stub %s", path)
	}
	return raw, nil
}
