package cart

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	pkgerrors "github.com/shivaganesh9515/nextgen-organic-backend/pkg/errors"
	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/logger"
	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/redis"
)

// Store persists cart snapshots wholesale under a single key per user.
// Every mutation rewrites the full snapshot; there is no per-line storage.
type Store interface {
	Load(ctx context.Context, userID string) (Snapshot, error)
	Save(ctx context.Context, userID string, snapshot Snapshot) error
	Clear(ctx context.Context, userID string) error
}

type redisStore struct {
	client *redis.Client
	logger *logger.Logger
	ttl    time.Duration
}

type StoreParams struct {
	Client *redis.Client
	Logger *logger.Logger
	TTL    time.Duration
}

func NewStore(params StoreParams) (Store, error) {
	if params.Client == nil {
		return nil, errors.New("cart store requires a redis client")
	}
	if params.Logger == nil {
		return nil, errors.New("cart store requires a logger")
	}
	return &redisStore{
		client: params.Client,
		logger: params.Logger,
		ttl:    params.TTL,
	}, nil
}

// Load reads the user's snapshot. A missing key yields an empty cart. A
// snapshot that no longer decodes is dropped and replaced with an empty
// cart rather than surfacing an error to the shopper.
func (s *redisStore) Load(ctx context.Context, userID string) (Snapshot, error) {
	raw, err := s.client.Get(ctx, s.client.CartKey(userID))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Snapshot{}, nil
		}
		return Snapshot{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading cart snapshot")
	}

	var snapshot Snapshot
	if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
		s.logger.Warn(s.logger.WithUserID(ctx, userID), "cart snapshot corrupt, resetting to empty")
		if delErr := s.client.Del(ctx, s.client.CartKey(userID)); delErr != nil {
			return Snapshot{}, pkgerrors.Wrap(pkgerrors.CodeDependency, delErr, "resetting corrupt cart snapshot")
		}
		return Snapshot{}, nil
	}
	return snapshot, nil
}

// Save serializes the full snapshot to the user's cart key.
func (s *redisStore) Save(ctx context.Context, userID string, snapshot Snapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding cart snapshot")
	}
	if err := s.client.Set(ctx, s.client.CartKey(userID), payload, s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving cart snapshot")
	}
	return nil
}

// Clear removes the user's cart key entirely.
func (s *redisStore) Clear(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, s.client.CartKey(userID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clearing cart snapshot")
	}
	return nil
}
