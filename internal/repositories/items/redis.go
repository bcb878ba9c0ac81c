package items

import (
	"context"
	"encoding/json"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"

	"github.com/torneo-cremesi/sheet-api/internal/entities"
	"github.com/torneo-cremesi/sheet-api/internal/errors"
	"github.com/torneo-cremesi/sheet-api/internal/pkg/idgen"
	"github.com/torneo-cremesi/sheet-api/internal/redis"
)

// catalogKey matches the v2 custom-object slot of the original sheet storage.
const catalogKey = "sheet:oc:v2"

// Config holds the dependencies for the redis repository.
type Config struct {
	Client      redis.Client
	IDGenerator idgen.Generator
}

// Validate validates the Config.
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("redis client cannot be nil")
	}
	if cfg.IDGenerator == nil {
		return errors.InvalidArgument("id generator cannot be nil")
	}
	return nil
}

type redisRepository struct {
	client redis.Client
	idGen  idgen.Generator
}

// NewRedis creates a redis-backed item repository.
func NewRedis(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &redisRepository{
		client: cfg.Client,
		idGen:  cfg.IDGenerator,
	}, nil
}

func (r *redisRepository) List(ctx context.Context, input *ListInput) (*ListOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}
	items, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	return &ListOutput{Items: items}, nil
}

func (r *redisRepository) Add(ctx context.Context, input *AddInput) (*AddOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}
	if input.Item.Name == "" {
		return nil, errors.InvalidArgument("item name cannot be empty")
	}

	items, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	item := input.Item
	if item.ID == "" {
		item.ID = r.idGen.Generate()
	}
	for _, existing := range items {
		if existing.ID == item.ID {
			return nil, errors.AlreadyExists("item " + item.ID + " already exists")
		}
	}

	items = append(items, item)
	if err := r.store(ctx, items); err != nil {
		return nil, err
	}
	return &AddOutput{Item: item}, nil
}

func (r *redisRepository) Update(ctx context.Context, input *UpdateInput) (*UpdateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}
	if input.Item.ID == "" {
		return nil, errors.InvalidArgument("item id cannot be empty")
	}

	items, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	for i, existing := range items {
		if existing.ID != input.Item.ID {
			continue
		}
		items[i] = input.Item
		if err := r.store(ctx, items); err != nil {
			return nil, err
		}
		return &UpdateOutput{Item: input.Item}, nil
	}
	return nil, errors.NotFoundf("item %s not found", input.Item.ID)
}

func (r *redisRepository) Remove(ctx context.Context, input *RemoveInput) (*RemoveOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}
	if input.ID == "" {
		return nil, errors.InvalidArgument("item id cannot be empty")
	}

	items, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	for i, existing := range items {
		if existing.ID != input.ID {
			continue
		}
		items = append(items[:i], items[i+1:]...)
		if err := r.store(ctx, items); err != nil {
			return nil, err
		}
		return &RemoveOutput{}, nil
	}
	return nil, errors.NotFoundf("item %s not found", input.ID)
}

func (r *redisRepository) Replace(ctx context.Context, input *ReplaceInput) (*ReplaceOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}

	items := make([]entities.CustomItem, 0, len(input.Items))
	for _, item := range input.Items {
		if item.ID == "" {
			item.ID = r.idGen.Generate()
		}
		items = append(items, item)
	}

	if err := r.store(ctx, items); err != nil {
		return nil, err
	}
	return &ReplaceOutput{Count: len(items)}, nil
}

func (r *redisRepository) load(ctx context.Context) ([]entities.CustomItem, error) {
	data, err := r.client.Get(ctx, catalogKey).Result()
	if err == goredis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load item catalog")
	}

	var items []entities.CustomItem
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		// Same degradation as the character state: a corrupt catalog starts
		// over instead of wedging every item operation.
		slog.WarnContext(ctx, "stored item catalog is corrupt, starting fresh",
			"key", catalogKey,
			"error", err.Error())
		return nil, nil
	}
	return items, nil
}

func (r *redisRepository) store(ctx context.Context, items []entities.CustomItem) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return errors.Wrap(err, "failed to marshal item catalog")
	}

	current, err := r.client.Get(ctx, catalogKey).Result()
	if err == nil && current == string(payload) {
		return nil
	}
	if err != nil && err != goredis.Nil {
		return errors.Wrap(err, "failed to read current item catalog")
	}

	if err := r.client.Set(ctx, catalogKey, payload, 0).Err(); err != nil {
		return errors.Wrap(err, "failed to save item catalog")
	}
	return nil
}
