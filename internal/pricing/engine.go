// Package pricing computes cart totals with deterministic discount
// stacking: per-item quantity tiers, a cart-wide bulk-purchase bonus,
// and an optional coupon adjustment on the final amount.
//
// All functions are pure and never fail. Money is whole currency units
// in int64; rates are decimals so 0.1 + 0.05 compares exactly against
// the cap. Rounding is applied once per line, half away from zero.
package pricing

import (
	"github.com/shopspring/decimal"

	"storefront/internal/models"
)

// BulkQuantity is the line quantity that switches on the cart-wide bonus.
const BulkQuantity = 10

// MinOrderForPercentage is the discounted total a cart must reach
// before a percentage coupon may be selected.
const MinOrderForPercentage = 10000

var (
	one       = decimal.NewFromInt(1)
	bulkBonus = decimal.New(5, -2) // 0.05
	rateCap   = decimal.New(5, -1) // 0.5
)

// MaxTierDiscount returns the best rate among tiers whose threshold is
// met by quantity, zero when none qualify. The tier list is scanned in
// full; it is not assumed sorted, and between tiers with the same
// threshold the larger rate wins.
func MaxTierDiscount(tiers []models.DiscountTier, quantity int64) decimal.Decimal {
	best := decimal.Zero
	for _, t := range tiers {
		if t.Threshold <= quantity && t.Rate.GreaterThan(best) {
			best = t.Rate
		}
	}
	return best
}

// BulkPurchaseBonus returns 0.05 when any line in the cart reaches
// BulkQuantity. The bonus is a cart-wide signal: one qualifying line
// grants it to every line's rate.
func BulkPurchaseBonus(cart models.Cart) decimal.Decimal {
	for _, l := range cart {
		if l.Quantity >= BulkQuantity {
			return bulkBonus
		}
	}
	return decimal.Zero
}

// EffectiveRate is the line's tier rate plus the bulk bonus, capped at
// 0.5. The cap is unconditional, even for tier rates that alone exceed it.
func EffectiveRate(line models.CartLine, cart models.Cart) decimal.Decimal {
	rate := MaxTierDiscount(line.Product.Discounts, line.Quantity).Add(BulkPurchaseBonus(cart))
	if rate.GreaterThan(rateCap) {
		return rateCap
	}
	return rate
}

// LineTotal is price * quantity * (1 - rate), rounded once at the end,
// half away from zero.
func LineTotal(line models.CartLine, cart models.Cart) int64 {
	gross := decimal.NewFromInt(line.Product.Price * line.Quantity)
	return gross.Mul(one.Sub(EffectiveRate(line, cart))).Round(0).IntPart()
}

// Subtotal is the undiscounted sum over all lines.
func Subtotal(cart models.Cart) int64 {
	var sum int64
	for _, l := range cart {
		sum += l.Product.Price * l.Quantity
	}
	return sum
}

// TotalWithLineDiscounts sums LineTotal over all lines.
func TotalWithLineDiscounts(cart models.Cart) int64 {
	var sum int64
	for _, l := range cart {
		sum += LineTotal(l, cart)
	}
	return sum
}

// Totals carries a cart's before/after-discount amounts. Both are
// non-negative and TotalAfterDiscount never exceeds TotalBeforeDiscount.
type Totals struct {
	TotalBeforeDiscount int64 `json:"totalBeforeDiscount"`
	TotalAfterDiscount  int64 `json:"totalAfterDiscount"`
}

// CartTotals computes both totals, applying coupon (when non-nil) on
// top of the line-discounted amount.
func CartTotals(cart models.Cart, coupon *models.Coupon) Totals {
	t := Totals{
		TotalBeforeDiscount: Subtotal(cart),
		TotalAfterDiscount:  TotalWithLineDiscounts(cart),
	}
	if coupon != nil {
		t.TotalAfterDiscount = ApplyCoupon(t.TotalAfterDiscount, *coupon)
	}
	return t
}
