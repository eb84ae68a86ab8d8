package coupons

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/db/models"
	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/enums"
	pkgerrors "github.com/shivaganesh9515/nextgen-organic-backend/pkg/errors"
	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/logger"
)

var oneHundred = decimal.NewFromInt(100)

// Service validates coupon codes and turns them into discount amounts.
// The final floor-at-zero clamp belongs to the pricing calculator; this
// service only clamps to the coupon's own maximum.
type Service interface {
	ResolveDiscount(ctx context.Context, code string, subtotal decimal.Decimal) (decimal.Decimal, error)
	ListActive(ctx context.Context) ([]models.Coupon, error)
}

type ServiceParams struct {
	Repository Repository
	Logger     *logger.Logger
	Now        func() time.Time
}

type service struct {
	repo   Repository
	logger *logger.Logger
	now    func() time.Time
}

func NewService(params ServiceParams) (Service, error) {
	if params.Repository == nil {
		return nil, errors.New("coupon service requires a repository")
	}
	if params.Logger == nil {
		return nil, errors.New("coupon service requires a logger")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{repo: params.Repository, logger: params.Logger, now: now}, nil
}

func (s *service) ListActive(ctx context.Context) ([]models.Coupon, error) {
	return s.repo.ListActive(ctx)
}

// ResolveDiscount checks the coupon's active window and minimum subtotal,
// then computes the discount: percentage coupons scale the subtotal, fixed
// coupons apply their value directly, both capped by MaxDiscount.
func (s *service) ResolveDiscount(ctx context.Context, code string, subtotal decimal.Decimal) (decimal.Decimal, error) {
	coupon, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		if appErr := pkgerrors.As(err); appErr != nil && appErr.Code() == pkgerrors.CodeNotFound {
			return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "coupon code is not valid")
		}
		return decimal.Zero, err
	}

	now := s.now()
	if !coupon.IsActive {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "coupon is no longer active")
	}
	if coupon.StartsAt != nil && now.Before(*coupon.StartsAt) {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "coupon is not active yet")
	}
	if coupon.EndsAt != nil && now.After(*coupon.EndsAt) {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "coupon has expired")
	}
	if subtotal.LessThan(coupon.MinSubtotal) {
		return decimal.Zero, pkgerrors.
			New(pkgerrors.CodeValidation, "cart subtotal is below the coupon minimum").
			WithDetails(map[string]string{"min_subtotal": coupon.MinSubtotal.StringFixed(2)})
	}

	var discount decimal.Decimal
	switch coupon.Type {
	case enums.CouponTypePercentage:
		discount = subtotal.Mul(coupon.Value).Div(oneHundred)
	case enums.CouponTypeFixed:
		discount = coupon.Value
	default:
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeInternal, "unknown coupon type")
	}

	if coupon.MaxDiscount != nil && discount.GreaterThan(*coupon.MaxDiscount) {
		discount = *coupon.MaxDiscount
	}
	return discount, nil
}
