// Package appstate persists the whole character state under a single key,
// mirroring the single-payload save model of the sheet.
package appstate

//go:generate mockgen -destination=mock/mock_repository.go -package=appstatemock -source=repository.go

import (
	"context"

	"github.com/torneo-cremesi/sheet-api/internal/entities"
)

// LoadInput has no fields yet; the state lives under one well-known key.
type LoadInput struct{}

// LoadOutput carries the loaded state. A missing or unreadable payload
// yields an empty state, never an error.
type LoadOutput struct {
	State entities.CharacterState
}

// SaveInput carries the state to persist.
type SaveInput struct {
	State entities.CharacterState
}

// SaveOutput reports whether the store was actually written. A save whose
// payload matches what is already stored is skipped.
type SaveOutput struct {
	Written bool
}

// DeleteInput has no fields yet.
type DeleteInput struct{}

// DeleteOutput has no fields yet.
type DeleteOutput struct{}

// Repository persists the character state.
type Repository interface {
	// Load returns the persisted state, or an empty one when nothing usable
	// is stored.
	Load(ctx context.Context, input *LoadInput) (*LoadOutput, error)

	// Save persists the state, skipping the write when the stored payload
	// is already identical.
	Save(ctx context.Context, input *SaveInput) (*SaveOutput, error)

	// Delete removes the persisted state.
	Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error)
}
