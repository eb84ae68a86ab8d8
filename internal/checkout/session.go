package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/shivaganesh9515/nextgen-organic-backend/internal/wizard"
	pkgerrors "github.com/shivaganesh9515/nextgen-organic-backend/pkg/errors"
	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/redis"
)

// SessionStore parks in-flight checkout wizard state between requests.
type SessionStore interface {
	Load(ctx context.Context, userID string) (wizard.State, error)
	Save(ctx context.Context, userID string, state wizard.State) error
	Delete(ctx context.Context, userID string) error
}

type redisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionStore(client *redis.Client, ttl time.Duration) (SessionStore, error) {
	if client == nil {
		return nil, errors.New("checkout session store requires a redis client")
	}
	return &redisSessionStore{client: client, ttl: ttl}, nil
}

// Load returns the parked state. A missing or undecodable session reads as
// not found; the caller starts a fresh one.
func (s *redisSessionStore) Load(ctx context.Context, userID string) (wizard.State, error) {
	raw, err := s.client.Get(ctx, s.client.CheckoutSessionKey(userID))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return wizard.State{}, pkgerrors.New(pkgerrors.CodeNotFound, "no checkout session in progress")
		}
		return wizard.State{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading checkout session")
	}
	var state wizard.State
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return wizard.State{}, pkgerrors.New(pkgerrors.CodeNotFound, "no checkout session in progress")
	}
	return state, nil
}

func (s *redisSessionStore) Save(ctx context.Context, userID string, state wizard.State) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding checkout session")
	}
	if err := s.client.Set(ctx, s.client.CheckoutSessionKey(userID), payload, s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving checkout session")
	}
	return nil
}

func (s *redisSessionStore) Delete(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, s.client.CheckoutSessionKey(userID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting checkout session")
	}
	return nil
}
