package wishlist

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/shivaganesh9515/nextgen-organic-backend/internal/cart"
	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/logger"
)

// Service is the per-user wishlist: a flat product-id list. Adds verify
// the product exists so the list never accumulates dangling references.
type Service interface {
	Add(ctx context.Context, userID, productID uuid.UUID) error
	Remove(ctx context.Context, userID, productID uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type ServiceParams struct {
	Repository Repository
	Products   cart.ProductReader
	Logger     *logger.Logger
}

type service struct {
	repo     Repository
	products cart.ProductReader
	logger   *logger.Logger
}

func NewService(params ServiceParams) (Service, error) {
	if params.Repository == nil {
		return nil, errors.New("wishlist service requires a repository")
	}
	if params.Products == nil {
		return nil, errors.New("wishlist service requires a product reader")
	}
	if params.Logger == nil {
		return nil, errors.New("wishlist service requires a logger")
	}
	return &service{repo: params.Repository, products: params.Products, logger: params.Logger}, nil
}

func (s *service) Add(ctx context.Context, userID, productID uuid.UUID) error {
	if _, err := s.products.GetProduct(ctx, productID); err != nil {
		return err
	}
	return s.repo.Add(ctx, userID, productID)
}

func (s *service) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	return s.repo.Remove(ctx, userID, productID)
}

func (s *service) List(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return s.repo.ListProductIDs(ctx, userID)
}
