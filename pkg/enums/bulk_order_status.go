package enums

// BulkOrderStatus tracks a bulk purchase request through quoting.
type BulkOrderStatus string

const (
	BulkOrderStatusPendingQuote BulkOrderStatus = "pending_quote"
	BulkOrderStatusQuoted       BulkOrderStatus = "quoted"
	BulkOrderStatusAccepted     BulkOrderStatus = "accepted"
	BulkOrderStatusDeclined     BulkOrderStatus = "declined"
	BulkOrderStatusCancelled    BulkOrderStatus = "cancelled"
)

func (s BulkOrderStatus) IsValid() bool {
	switch s {
	case BulkOrderStatusPendingQuote, BulkOrderStatusQuoted,
		BulkOrderStatusAccepted, BulkOrderStatusDeclined, BulkOrderStatusCancelled:
		return true
	}
	return false
}

// Quotable reports whether a vendor may still attach a quote.
func (s BulkOrderStatus) Quotable() bool {
	return s == BulkOrderStatusPendingQuote
}
