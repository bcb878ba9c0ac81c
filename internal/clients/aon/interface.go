// Package aon fetches the remote rules catalogs and normalizes them into
// the application's canonical entities, falling back to bundled snapshot
// data when the archive is unreachable.
package aon

//go:generate mockgen -destination=mock/mock_client.go -package=aonmock -source=interface.go

import (
	"context"

	"github.com/torneo-cremesi/sheet-api/internal/catalog"
)

// Client provides the normalized catalogs. Results are cached for the
// session; concurrent callers for the same catalog share one fetch.
type Client interface {
	// GetRaces returns the race catalog, alt traits included.
	GetRaces(ctx context.Context) ([]catalog.Race, error)

	// GetClasses returns the class catalog with archetypes attached, either
	// embedded in the class entries or pulled from the archetype index.
	GetClasses(ctx context.Context) ([]catalog.Class, error)

	// GetTraitsAndDrawbacks returns the trait catalog partitioned into
	// traits and drawbacks.
	GetTraitsAndDrawbacks(ctx context.Context) (*catalog.TraitBundle, error)
}
