package enums

// OrderStatus reflects the lifecycle of a placed storefront order. The
// platform creates orders and hands them off; there is no fulfilment state
// machine beyond this marker.
type OrderStatus string

const (
	OrderStatusPlaced    OrderStatus = "placed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPlaced, OrderStatusCancelled:
		return true
	}
	return false
}
