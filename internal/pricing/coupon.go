package pricing

import (
	"github.com/shopspring/decimal"

	"storefront/internal/models"
)

var hundred = decimal.NewFromInt(100)

// ApplyCoupon reduces amount by the coupon. Fixed-amount coupons floor
// at zero; percentage coupons round half away from zero. Unknown types
// leave the amount untouched.
func ApplyCoupon(amount int64, c models.Coupon) int64 {
	switch c.Type {
	case models.FixedAmount:
		if amount < c.Value {
			return 0
		}
		return amount - c.Value
	case models.Percentage:
		return decimal.NewFromInt(amount).
			Mul(decimal.NewFromInt(100 - c.Value)).
			Div(hundred).
			Round(0).
			IntPart()
	}
	return amount
}

// CouponEligible reports whether c may be selected against the cart's
// current discounted total (before the coupon itself is applied).
// Percentage coupons require a minimum order; fixed-amount coupons
// have no floor. The check runs once, at selection time.
func CouponEligible(c models.Coupon, totalAfterDiscount int64) bool {
	if c.Type == models.Percentage {
		return totalAfterDiscount >= MinOrderForPercentage
	}
	return true
}
