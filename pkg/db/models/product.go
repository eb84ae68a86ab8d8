package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Product is a catalog listing owned by exactly one vendor. OriginalPrice
// and DiscountPercent are optional; when present the effective unit price
// is OriginalPrice reduced by DiscountPercent.
type Product struct {
	ID              uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	VendorID        uuid.UUID        `gorm:"column:vendor_id;type:uuid;not null;index"`
	CategoryID      uuid.UUID        `gorm:"column:category_id;type:uuid;not null;index"`
	Name            string           `gorm:"column:name;not null"`
	Slug            string           `gorm:"column:slug;not null;uniqueIndex"`
	Description     *string          `gorm:"column:description"`
	Unit            string           `gorm:"column:unit;not null;default:'piece'"`
	Price           decimal.Decimal  `gorm:"column:price;type:numeric(12,2);not null"`
	OriginalPrice   *decimal.Decimal `gorm:"column:original_price;type:numeric(12,2)"`
	DiscountPercent *decimal.Decimal `gorm:"column:discount_percent;type:numeric(5,2)"`
	Rating          float64          `gorm:"column:rating;not null;default:0"`
	ReviewCount     int              `gorm:"column:review_count;not null;default:0"`
	InStock         bool             `gorm:"column:in_stock;not null;default:true"`
	IsOrganic       bool             `gorm:"column:is_organic;not null;default:false"`
	Tags            pq.StringArray   `gorm:"column:tags;type:text[]"`
	CreatedAt       time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
