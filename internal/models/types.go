package models

import "github.com/shopspring/decimal"

// DiscountType selects how a coupon reduces the cart total.
type DiscountType string

const (
	FixedAmount DiscountType = "fixed"
	Percentage  DiscountType = "percentage"
)

// DiscountTier grants Rate once the line quantity reaches Threshold.
// Tiers are not required to arrive sorted.
type DiscountTier struct {
	Threshold int64           `db:"threshold" json:"threshold"`
	Rate      decimal.Decimal `db:"rate" json:"rate"`
}

// Product is a catalog snapshot. Prices are whole currency units.
// The pricing and stock packages treat products as read-only input;
// only the admin surface creates or edits them.
type Product struct {
	ID        string         `db:"id" json:"id"`
	Name      string         `db:"name" json:"name"`
	Price     int64          `db:"price" json:"price"`
	Stock     int64          `db:"stock" json:"stock"`
	Discounts []DiscountTier `json:"discounts"`
}

// Coupon is a storewide discount keyed by Code. Value is a currency
// amount for FixedAmount coupons and a 0-100 percentage otherwise.
type Coupon struct {
	Code  string       `db:"code" json:"code"`
	Name  string       `db:"name" json:"name"`
	Type  DiscountType `db:"discount_type" json:"discountType"`
	Value int64        `db:"discount_value" json:"discountValue"`
}

// CartLine pairs a product snapshot with the quantity in the cart.
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int64   `json:"quantity"`
}

// Cart is an ordered list of lines, at most one per product id.
type Cart []CartLine

// Line returns the line for productID, if present.
func (c Cart) Line(productID string) (CartLine, bool) {
	for _, l := range c {
		if l.Product.ID == productID {
			return l, true
		}
	}
	return CartLine{}, false
}

// Quantity reports how many units of productID the cart holds, 0 when absent.
func (c Cart) Quantity(productID string) int64 {
	for _, l := range c {
		if l.Product.ID == productID {
			return l.Quantity
		}
	}
	return 0
}
