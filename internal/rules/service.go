package rules

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/torneo-cremesi/sheet-api/internal/errors"
)

// Known variant IDs.
const (
	VariantEITR = "eitr"
	VariantABP  = "abp"
)

var variantFiles = map[string]string{
	VariantEITR: "rules_eitr.json",
	VariantABP:  "rules_abp.json",
}

// Config holds the dependencies for the rules service.
type Config struct {
	// DataDir is the directory holding the variant dataset files.
	DataDir string
}

// Validate validates the Config.
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.DataDir == "" {
		return errors.InvalidArgument("data dir cannot be empty")
	}
	return nil
}

// Service loads variant datasets on demand and caches them for the session.
// Concurrent loads of the same variant share one read.
type Service struct {
	dataDir string
	group   singleflight.Group

	mu    sync.Mutex
	cache map[string]*Variant
}

// NewService creates a rules service.
func NewService(cfg *Config) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Service{
		dataDir: cfg.DataDir,
		cache:   make(map[string]*Variant),
	}, nil
}

// Load returns the variant with the given id, reading its dataset on first
// use. Unknown IDs fail with a not found error, never a partial variant.
func (s *Service) Load(ctx context.Context, id string) (*Variant, error) {
	file, ok := variantFiles[id]
	if !ok {
		return nil, errors.NotFoundf("unknown rule variant %q", id)
	}

	s.mu.Lock()
	if cached, ok := s.cache[id]; ok {
		s.mu.Unlock()
		return cached, nil
	}
	s.mu.Unlock()

	v, err, _ := s.group.Do(id, func() (any, error) {
		if err := ctx.Err(); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeCanceled, "load canceled")
		}

		path := filepath.Join(s.dataDir, file)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeUnavailable,
				"failed to read variant dataset "+path)
		}

		var variant Variant
		if err := json.Unmarshal(data, &variant); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeDataLoss,
				"failed to parse variant dataset "+path)
		}
		if variant.ID == "" {
			variant.ID = id
		}

		s.mu.Lock()
		s.cache[id] = &variant
		s.mu.Unlock()
		return &variant, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Variant), nil
}

// LoadAll loads every known variant.
func (s *Service) LoadAll(ctx context.Context) (map[string]*Variant, error) {
	out := make(map[string]*Variant, len(variantFiles))
	for id := range variantFiles {
		variant, err := s.Load(ctx, id)
		if err != nil {
			return nil, err
		}
		out[id] = variant
	}
	return out, nil
}

// Get returns a variant already loaded this session, or nil.
func (s *Service) Get(id string) *Variant {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache[id]
}
