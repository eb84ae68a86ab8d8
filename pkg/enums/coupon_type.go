package enums

// CouponType selects how a coupon's value is interpreted.
type CouponType string

const (
	CouponTypePercentage CouponType = "percentage"
	CouponTypeFixed      CouponType = "fixed"
)

func (t CouponType) IsValid() bool {
	switch t {
	case CouponTypePercentage, CouponTypeFixed:
		return true
	}
	return false
}
