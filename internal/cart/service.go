package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/db/models"
	pkgerrors "github.com/shivaganesh9515/nextgen-organic-backend/pkg/errors"
	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/logger"
	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/metrics"
)

// ProductReader resolves catalog products for cart mutations.
type ProductReader interface {
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// VendorRateReader resolves the delivery rates for a set of vendors.
type VendorRateReader interface {
	GetVendorRates(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]VendorRate, error)
}

// CouponResolver turns a coupon code into a concrete discount amount for
// the given subtotal.
type CouponResolver interface {
	ResolveDiscount(ctx context.Context, code string, subtotal decimal.Decimal) (decimal.Decimal, error)
}

// Service is the cart state container. All mutations load the snapshot,
// apply the change, and persist the whole snapshot back.
type Service interface {
	Get(ctx context.Context, userID string) (Snapshot, error)
	AddItem(ctx context.Context, userID string, productID uuid.UUID, quantity int) (Snapshot, error)
	RemoveItem(ctx context.Context, userID string, productID uuid.UUID) (Snapshot, error)
	UpdateQuantity(ctx context.Context, userID string, productID uuid.UUID, quantity int) (Snapshot, error)
	Clear(ctx context.Context, userID string) error
	Quote(ctx context.Context, userID string, couponCode string) (Quote, error)
}

type ServiceParams struct {
	Store                 Store
	Products              ProductReader
	Vendors               VendorRateReader
	Coupons               CouponResolver
	Logger                *logger.Logger
	Metrics               *metrics.HTTPMetrics
	FreeDeliveryThreshold decimal.Decimal
}

type service struct {
	store     Store
	products  ProductReader
	vendors   VendorRateReader
	coupons   CouponResolver
	logger    *logger.Logger
	metrics   *metrics.HTTPMetrics
	threshold decimal.Decimal
}

func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, errors.New("cart service requires a store")
	}
	if params.Products == nil {
		return nil, errors.New("cart service requires a product reader")
	}
	if params.Vendors == nil {
		return nil, errors.New("cart service requires a vendor rate reader")
	}
	if params.Logger == nil {
		return nil, errors.New("cart service requires a logger")
	}
	return &service{
		store:     params.Store,
		products:  params.Products,
		vendors:   params.Vendors,
		coupons:   params.Coupons,
		logger:    params.Logger,
		metrics:   params.Metrics,
		threshold: params.FreeDeliveryThreshold,
	}, nil
}

func (s *service) Get(ctx context.Context, userID string) (Snapshot, error) {
	return s.store.Load(ctx, userID)
}

func (s *service) AddItem(ctx context.Context, userID string, productID uuid.UUID, quantity int) (Snapshot, error) {
	if quantity < 1 {
		return Snapshot{}, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return Snapshot{}, err
	}
	if !product.InStock {
		return Snapshot{}, pkgerrors.New(pkgerrors.CodeStateConflict, "product is out of stock")
	}

	snapshot, err := s.store.Load(ctx, userID)
	if err != nil {
		return Snapshot{}, err
	}
	snapshot.Add(Line{
		ProductID:       product.ID,
		VendorID:        product.VendorID,
		ProductName:     product.Name,
		Unit:            product.Unit,
		UnitPrice:       product.Price,
		OriginalPrice:   product.OriginalPrice,
		DiscountPercent: product.DiscountPercent,
		Quantity:        quantity,
	})
	if err := s.store.Save(ctx, userID, snapshot); err != nil {
		return Snapshot{}, err
	}
	return snapshot, nil
}

func (s *service) RemoveItem(ctx context.Context, userID string, productID uuid.UUID) (Snapshot, error) {
	snapshot, err := s.store.Load(ctx, userID)
	if err != nil {
		return Snapshot{}, err
	}
	snapshot.Remove(productID)
	if err := s.store.Save(ctx, userID, snapshot); err != nil {
		return Snapshot{}, err
	}
	return snapshot, nil
}

func (s *service) UpdateQuantity(ctx context.Context, userID string, productID uuid.UUID, quantity int) (Snapshot, error) {
	snapshot, err := s.store.Load(ctx, userID)
	if err != nil {
		return Snapshot{}, err
	}
	snapshot.SetQuantity(productID, quantity)
	if err := s.store.Save(ctx, userID, snapshot); err != nil {
		return Snapshot{}, err
	}
	return snapshot, nil
}

func (s *service) Clear(ctx context.Context, userID string) error {
	return s.store.Clear(ctx, userID)
}

// Quote prices the current snapshot: vendor grouping, per-vendor delivery
// fees with the free-delivery waiver, and an optional coupon discount.
func (s *service) Quote(ctx context.Context, userID string, couponCode string) (Quote, error) {
	snapshot, err := s.store.Load(ctx, userID)
	if err != nil {
		return Quote{}, err
	}

	vendorIDs := make([]uuid.UUID, 0, len(snapshot.Lines))
	seen := make(map[uuid.UUID]struct{}, len(snapshot.Lines))
	for _, line := range snapshot.Lines {
		if _, ok := seen[line.VendorID]; ok {
			continue
		}
		seen[line.VendorID] = struct{}{}
		vendorIDs = append(vendorIDs, line.VendorID)
	}

	rates := map[uuid.UUID]VendorRate{}
	if len(vendorIDs) > 0 {
		rates, err = s.vendors.GetVendorRates(ctx, vendorIDs)
		if err != nil {
			return Quote{}, err
		}
	}

	discount := decimal.Zero
	if couponCode != "" && s.coupons != nil {
		discount, err = s.coupons.ResolveDiscount(ctx, couponCode, snapshot.TotalPrice())
		if err != nil {
			return Quote{}, err
		}
	}

	quote, err := ComputeQuote(snapshot.Lines, rates, s.threshold, discount)
	if err != nil {
		return Quote{}, err
	}
	s.metrics.IncQuote()
	return quote, nil
}
