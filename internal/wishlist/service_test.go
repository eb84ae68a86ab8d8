package wishlist

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/db/models"
	pkgerrors "github.com/shivaganesh9515/nextgen-organic-backend/pkg/errors"
	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/logger"
)

type memoryRepository struct {
	items map[uuid.UUID][]uuid.UUID
}

func (m *memoryRepository) Add(_ context.Context, userID, productID uuid.UUID) error {
	for _, id := range m.items[userID] {
		if id == productID {
			return nil
		}
	}
	m.items[userID] = append(m.items[userID], productID)
	return nil
}

func (m *memoryRepository) Remove(_ context.Context, userID, productID uuid.UUID) error {
	ids := m.items[userID]
	for i, id := range ids {
		if id == productID {
			m.items[userID] = append(ids[:i], ids[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *memoryRepository) ListProductIDs(_ context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return m.items[userID], nil
}

type stubProducts struct {
	known map[uuid.UUID]bool
}

func (s *stubProducts) GetProduct(_ context.Context, id uuid.UUID) (*models.Product, error) {
	if !s.known[id] {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return &models.Product{ID: id}, nil
}

func newTestService(t *testing.T, known ...uuid.UUID) Service {
	t.Helper()
	products := &stubProducts{known: map[uuid.UUID]bool{}}
	for _, id := range known {
		products.known[id] = true
	}
	svc, err := NewService(ServiceParams{
		Repository: &memoryRepository{items: map[uuid.UUID][]uuid.UUID{}},
		Products:   products,
		Logger:     logger.New(logger.Options{Level: zerolog.Disabled}),
	})
	require.NoError(t, err)
	return svc
}

func TestAddIsIdempotent(t *testing.T) {
	t.Parallel()

	productID := uuid.New()
	svc := newTestService(t, productID)
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, svc.Add(ctx, userID, productID))
	require.NoError(t, svc.Add(ctx, userID, productID))

	ids, err := svc.List(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{productID}, ids)
}

func TestAddUnknownProductFails(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	err := svc.Add(context.Background(), uuid.New(), uuid.New())
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}

func TestRemoveAbsentIsNoOp(t *testing.T) {
	t.Parallel()

	productID := uuid.New()
	svc := newTestService(t, productID)
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, svc.Add(ctx, userID, productID))
	require.NoError(t, svc.Remove(ctx, userID, uuid.New()))

	ids, err := svc.List(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, ids, 1)
}
