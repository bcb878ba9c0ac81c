package appstate

import (
	"context"
	"encoding/json"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"

	"github.com/torneo-cremesi/sheet-api/internal/entities"
	"github.com/torneo-cremesi/sheet-api/internal/errors"
	"github.com/torneo-cremesi/sheet-api/internal/redis"
)

// stateKey matches the v2 payload slot of the original sheet storage.
const stateKey = "sheet:app:v2"

// Config holds the dependencies for the redis repository.
type Config struct {
	Client redis.Client
}

// Validate validates the Config.
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("redis client cannot be nil")
	}
	return nil
}

type redisRepository struct {
	client redis.Client
}

// NewRedis creates a redis-backed state repository.
func NewRedis(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &redisRepository{client: cfg.Client}, nil
}

func (r *redisRepository) Load(ctx context.Context, input *LoadInput) (*LoadOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}

	data, err := r.client.Get(ctx, stateKey).Result()
	if err == goredis.Nil {
		return &LoadOutput{State: entities.NewCharacterState()}, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load character state")
	}

	var state entities.CharacterState
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		// A corrupt payload degrades to a fresh sheet rather than blocking
		// the whole app.
		slog.WarnContext(ctx, "stored character state is corrupt, starting fresh",
			"key", stateKey,
			"error", err.Error())
		return &LoadOutput{State: entities.NewCharacterState()}, nil
	}
	if state == nil {
		state = entities.NewCharacterState()
	}
	return &LoadOutput{State: state}, nil
}

func (r *redisRepository) Save(ctx context.Context, input *SaveInput) (*SaveOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}
	if input.State == nil {
		return nil, errors.InvalidArgument("state cannot be nil")
	}

	payload, err := json.Marshal(input.State)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal character state")
	}

	current, err := r.client.Get(ctx, stateKey).Result()
	if err == nil && current == string(payload) {
		return &SaveOutput{Written: false}, nil
	}
	if err != nil && err != goredis.Nil {
		return nil, errors.Wrap(err, "failed to read current character state")
	}

	if err := r.client.Set(ctx, stateKey, payload, 0).Err(); err != nil {
		return nil, errors.Wrap(err, "failed to save character state")
	}
	return &SaveOutput{Written: true}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input cannot be nil")
	}
	if err := r.client.Del(ctx, stateKey).Err(); err != nil {
		return nil, errors.Wrap(err, "failed to delete character state")
	}
	return &DeleteOutput{}, nil
}
