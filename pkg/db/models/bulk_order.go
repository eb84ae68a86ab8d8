package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/enums"
)

// BulkOrder is a wholesale quote request a customer sends to one vendor.
// The vendor responds with a price and terms while the order is still
// awaiting a quote.
type BulkOrder struct {
	ID            uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID    uuid.UUID             `gorm:"column:customer_id;type:uuid;not null;index"`
	VendorID      uuid.UUID             `gorm:"column:vendor_id;type:uuid;not null;index"`
	ProductName   string                `gorm:"column:product_name;not null"`
	Quantity      int                   `gorm:"column:quantity;not null"`
	Unit          string                `gorm:"column:unit;not null;default:'kg'"`
	Notes         *string               `gorm:"column:notes"`
	Status        enums.BulkOrderStatus `gorm:"column:status;not null;default:'pending_quote'"`
	QuotedPrice   *decimal.Decimal      `gorm:"column:quoted_price;type:numeric(12,2)"`
	QuotedDetails *string               `gorm:"column:quoted_details"`
	QuotedAt      *time.Time            `gorm:"column:quoted_at"`
	CreatedAt     time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
