package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/enums"
)

// Coupon is a storefront discount code applied at cart level.
type Coupon struct {
	ID          uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Code        string           `gorm:"column:code;not null;uniqueIndex"`
	Type        enums.CouponType `gorm:"column:type;not null"`
	Value       decimal.Decimal  `gorm:"column:value;type:numeric(12,2);not null"`
	MinSubtotal decimal.Decimal  `gorm:"column:min_subtotal;type:numeric(12,2);not null;default:0"`
	MaxDiscount *decimal.Decimal `gorm:"column:max_discount;type:numeric(12,2)"`
	IsActive    bool             `gorm:"column:is_active;not null;default:true"`
	StartsAt    *time.Time       `gorm:"column:starts_at"`
	EndsAt      *time.Time       `gorm:"column:ends_at"`
	CreatedAt   time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
