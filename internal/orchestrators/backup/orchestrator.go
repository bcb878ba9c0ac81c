// Package backup serializes the persisted stores to a single portable
// envelope and restores them from one.
package backup

import (
	"context"
	"encoding/json"
	"time"

	"github.com/torneo-cremesi/sheet-api/internal/entities"
	"github.com/torneo-cremesi/sheet-api/internal/errors"
	"github.com/torneo-cremesi/sheet-api/internal/pkg/clock"
	"github.com/torneo-cremesi/sheet-api/internal/repositories/appstate"
	"github.com/torneo-cremesi/sheet-api/internal/repositories/items"
)

// envelope is the backup file format. Raw messages keep per-field presence:
// a file holding only "oc" must not touch the character state on import.
// ExportedAt is informational and ignored on import.
type envelope struct {
	App        json.RawMessage `json:"app,omitempty"`
	OC         json.RawMessage `json:"oc,omitempty"`
	ExportedAt string          `json:"exportedAt,omitempty"`
}

// Config holds the dependencies for the backup orchestrator.
type Config struct {
	AppState appstate.Repository
	Items    items.Repository
	// Clock is optional; the system clock is used when nil.
	Clock clock.Clock
}

// Validate validates the Config.
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.AppState == nil {
		return errors.InvalidArgument("appstate repository cannot be nil")
	}
	if cfg.Items == nil {
		return errors.InvalidArgument("items repository cannot be nil")
	}
	return nil
}

// Orchestrator exports and imports backups of both persisted stores.
type Orchestrator struct {
	appState appstate.Repository
	items    items.Repository
	clock    clock.Clock
}

// New creates a backup orchestrator.
func New(cfg *Config) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}
	return &Orchestrator{
		appState: cfg.AppState,
		items:    cfg.Items,
		clock:    c,
	}, nil
}

// ExportInput has no fields yet.
type ExportInput struct{}

// ExportOutput carries the serialized backup envelope.
type ExportOutput struct {
	Payload []byte
}

// Export serializes the character state and the item catalog into one
// envelope.
func (o *Orchestrator) Export(ctx context.Context, input *ExportInput) (*ExportOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}

	loaded, err := o.appState.Load(ctx, &appstate.LoadInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to export character state")
	}
	catalog, err := o.items.List(ctx, &items.ListInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to export item catalog")
	}

	app, err := json.Marshal(loaded.State)
	if err != nil {
		return nil, errors.Wrap(err, "failed to serialize character state")
	}
	itemList := catalog.Items
	if itemList == nil {
		itemList = []entities.CustomItem{}
	}
	oc, err := json.Marshal(itemList)
	if err != nil {
		return nil, errors.Wrap(err, "failed to serialize item catalog")
	}

	payload, err := json.MarshalIndent(envelope{
		App:        app,
		OC:         oc,
		ExportedAt: o.clock.Now().UTC().Format(time.RFC3339),
	}, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to serialize backup envelope")
	}
	return &ExportOutput{Payload: payload}, nil
}

// ImportInput carries the backup envelope to restore.
type ImportInput struct {
	Payload []byte
}

// ImportOutput reports what the import restored.
type ImportOutput struct {
	AppRestored   bool
	ItemsRestored int
}

// Import restores the stores named by the envelope. Each present section is
// parsed in full before anything is written, so a malformed file leaves both
// stores untouched. A section absent from the envelope is left as is.
func (o *Orchestrator) Import(ctx context.Context, input *ImportInput) (*ImportOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}
	if len(input.Payload) == 0 {
		return nil, errors.InvalidArgument("backup payload cannot be empty")
	}

	var env envelope
	if err := json.Unmarshal(input.Payload, &env); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument,
			"backup payload is not a valid envelope")
	}

	var state entities.CharacterState
	if env.App != nil {
		if err := json.Unmarshal(env.App, &state); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument,
				"backup app section is malformed")
		}
		if state == nil {
			state = entities.NewCharacterState()
		}
	}
	var itemList []entities.CustomItem
	if env.OC != nil {
		if err := json.Unmarshal(env.OC, &itemList); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument,
				"backup oc section is malformed")
		}
	}

	output := &ImportOutput{}
	if env.App != nil {
		if _, err := o.appState.Save(ctx, &appstate.SaveInput{State: state}); err != nil {
			return nil, errors.Wrap(err, "failed to restore character state")
		}
		output.AppRestored = true
	}
	if env.OC != nil {
		replaced, err := o.items.Replace(ctx, &items.ReplaceInput{Items: itemList})
		if err != nil {
			return nil, errors.Wrap(err, "failed to restore item catalog")
		}
		output.ItemsRestored = replaced.Count
	}
	return output, nil
}
