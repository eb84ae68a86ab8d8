package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/enums"
)

// Vendor is the reference record for a selling party. Delivery fee and
// minimum order amount are per-vendor storefront policy.
type Vendor struct {
	ID             uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name           string             `gorm:"column:name;not null"`
	Slug           string             `gorm:"column:slug;not null;uniqueIndex"`
	Description    *string            `gorm:"column:description"`
	DeliveryFee    decimal.Decimal    `gorm:"column:delivery_fee;type:numeric(12,2);not null"`
	MinOrderAmount decimal.Decimal    `gorm:"column:min_order_amount;type:numeric(12,2);not null"`
	Rating         float64            `gorm:"column:rating;not null;default:0"`
	ReviewCount    int                `gorm:"column:review_count;not null;default:0"`
	Status         enums.VendorStatus `gorm:"column:status;not null;default:'pending'"`
	Specialties    pq.StringArray     `gorm:"column:specialties;type:text[]"`
	City           *string            `gorm:"column:city"`
	OwnerID        uuid.UUID          `gorm:"column:owner_id;type:uuid;not null"`
	CreatedAt      time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
