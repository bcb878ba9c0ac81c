// Package items persists the user-maintained custom item catalog.
package items

//go:generate mockgen -destination=mock/mock_repository.go -package=itemsmock -source=repository.go

import (
	"context"

	"github.com/torneo-cremesi/sheet-api/internal/entities"
)

// ListInput has no fields yet.
type ListInput struct{}

// ListOutput carries the stored catalog in insertion order.
type ListOutput struct {
	Items []entities.CustomItem
}

// AddInput carries the item to append. An empty ID gets one assigned.
type AddInput struct {
	Item entities.CustomItem
}

// AddOutput carries the stored item, ID included.
type AddOutput struct {
	Item entities.CustomItem
}

// UpdateInput carries the replacement for an existing item, matched by ID.
type UpdateInput struct {
	Item entities.CustomItem
}

// UpdateOutput carries the stored item.
type UpdateOutput struct {
	Item entities.CustomItem
}

// RemoveInput names the item to remove.
type RemoveInput struct {
	ID string
}

// RemoveOutput has no fields yet.
type RemoveOutput struct{}

// ReplaceInput carries a whole catalog that replaces the stored one, used
// by backup import.
type ReplaceInput struct {
	Items []entities.CustomItem
}

// ReplaceOutput reports how many items were stored.
type ReplaceOutput struct {
	Count int
}

// Repository persists the custom item catalog.
type Repository interface {
	// List returns every stored item.
	List(ctx context.Context, input *ListInput) (*ListOutput, error)

	// Add appends an item, assigning an ID when it has none.
	Add(ctx context.Context, input *AddInput) (*AddOutput, error)

	// Update replaces the item with the same ID.
	Update(ctx context.Context, input *UpdateInput) (*UpdateOutput, error)

	// Remove deletes the item with the given ID.
	Remove(ctx context.Context, input *RemoveInput) (*RemoveOutput, error)

	// Replace swaps the whole stored catalog for the given one.
	Replace(ctx context.Context, input *ReplaceInput) (*ReplaceOutput, error)
}
