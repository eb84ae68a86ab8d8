package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/enums"
)

// Order is the header produced by a completed checkout. Vendor groups and
// line items snapshot the quote at placement time.
type Order struct {
	ID            uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID        uuid.UUID          `gorm:"column:user_id;type:uuid;not null;index"`
	Status        enums.OrderStatus  `gorm:"column:status;not null;default:'placed'"`
	Subtotal      decimal.Decimal    `gorm:"column:subtotal;type:numeric(12,2);not null"`
	DeliveryFee   decimal.Decimal    `gorm:"column:delivery_fee;type:numeric(12,2);not null"`
	Discount      decimal.Decimal    `gorm:"column:discount;type:numeric(12,2);not null;default:0"`
	Total         decimal.Decimal    `gorm:"column:total;type:numeric(12,2);not null"`
	CouponCode    *string            `gorm:"column:coupon_code"`
	DeliveryName  string             `gorm:"column:delivery_name;not null"`
	DeliveryPhone string             `gorm:"column:delivery_phone;not null"`
	AddressLine   string             `gorm:"column:address_line;not null"`
	City          string             `gorm:"column:city;not null"`
	Pincode       string             `gorm:"column:pincode;not null"`
	DeliverySlot  string             `gorm:"column:delivery_slot;not null"`
	PaymentMethod string             `gorm:"column:payment_method;not null"`
	VendorGroups  []OrderVendorGroup `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

// OrderVendorGroup snapshots one vendor's bucket of the order.
type OrderVendorGroup struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID     uuid.UUID       `gorm:"column:order_id;type:uuid;not null;index"`
	VendorID    uuid.UUID       `gorm:"column:vendor_id;type:uuid;not null"`
	VendorName  string          `gorm:"column:vendor_name;not null"`
	Position    int             `gorm:"column:position;not null"`
	Subtotal    decimal.Decimal `gorm:"column:subtotal;type:numeric(12,2);not null"`
	DeliveryFee decimal.Decimal `gorm:"column:delivery_fee;type:numeric(12,2);not null"`
	Total       decimal.Decimal `gorm:"column:total;type:numeric(12,2);not null"`
	Items       []OrderItem     `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
}

// OrderItem is one product line inside a vendor group.
type OrderItem struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	GroupID     uuid.UUID       `gorm:"column:group_id;type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"column:product_id;type:uuid;not null"`
	ProductName string          `gorm:"column:product_name;not null"`
	UnitPrice   decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2);not null"`
	Quantity    int             `gorm:"column:quantity;not null"`
	LineTotal   decimal.Decimal `gorm:"column:line_total;type:numeric(12,2);not null"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
}
