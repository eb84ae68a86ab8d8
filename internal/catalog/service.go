package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/shivaganesh9515/nextgen-organic-backend/internal/cart"
	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/db/models"
	pkgerrors "github.com/shivaganesh9515/nextgen-organic-backend/pkg/errors"
	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/logger"
)

// Service is the storefront catalog. It also backs the cart: product
// lookups for mutations and vendor delivery rates for quoting.
type Service interface {
	ListProducts(ctx context.Context, filter ProductFilter) ([]models.Product, string, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListVendors(ctx context.Context) ([]models.Vendor, error)
	GetVendorRates(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]cart.VendorRate, error)
}

type ServiceParams struct {
	Repository Repository
	Logger     *logger.Logger
}

type service struct {
	repo   Repository
	logger *logger.Logger
}

func NewService(params ServiceParams) (Service, error) {
	if params.Repository == nil {
		return nil, errors.New("catalog service requires a repository")
	}
	if params.Logger == nil {
		return nil, errors.New("catalog service requires a logger")
	}
	return &service{repo: params.Repository, logger: params.Logger}, nil
}

func (s *service) ListProducts(ctx context.Context, filter ProductFilter) ([]models.Product, string, error) {
	return s.repo.ListProducts(ctx, filter)
}

func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return s.repo.GetProduct(ctx, id)
}

func (s *service) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *service) ListVendors(ctx context.Context) ([]models.Vendor, error) {
	return s.repo.ListVendors(ctx)
}

// GetVendorRates resolves delivery rates for the requested vendors. Every
// requested id must resolve; a cart line pointing at a vanished vendor is a
// validation problem, not a silent omission.
func (s *service) GetVendorRates(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]cart.VendorRate, error) {
	vendors, err := s.repo.GetVendors(ctx, ids)
	if err != nil {
		return nil, err
	}
	rates := make(map[uuid.UUID]cart.VendorRate, len(vendors))
	for _, vendor := range vendors {
		rates[vendor.ID] = cart.VendorRate{
			VendorID:    vendor.ID,
			VendorName:  vendor.Name,
			DeliveryFee: vendor.DeliveryFee,
		}
	}
	for _, id := range ids {
		if _, ok := rates[id]; !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart references an unknown vendor")
		}
	}
	return rates, nil
}
