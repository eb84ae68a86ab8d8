package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/shivaganesh9515/nextgen-organic-backend/api/responses"
	couponsvc "github.com/shivaganesh9515/nextgen-organic-backend/internal/coupons"
	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/logger"
)

// CouponList returns the currently redeemable coupon codes.
func CouponList(svc couponsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		coupons, err := svc.ListActive(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items := make([]couponResponse, 0, len(coupons))
		for _, coupon := range coupons {
			item := couponResponse{
				ID:          coupon.ID,
				Code:        coupon.Code,
				Type:        string(coupon.Type),
				Value:       coupon.Value.StringFixed(2),
				MinSubtotal: coupon.MinSubtotal.StringFixed(2),
				EndsAt:      coupon.EndsAt,
			}
			if coupon.MaxDiscount != nil {
				capped := coupon.MaxDiscount.StringFixed(2)
				item.MaxDiscount = &capped
			}
			items = append(items, item)
		}
		responses.WriteSuccess(w, map[string]any{"items": items})
	}
}

type couponResponse struct {
	ID          uuid.UUID  `json:"id"`
	Code        string     `json:"code"`
	Type        string     `json:"type"`
	Value       string     `json:"value"`
	MinSubtotal string     `json:"min_subtotal"`
	MaxDiscount *string    `json:"max_discount,omitempty"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`
}
