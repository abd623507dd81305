// Package checkout owns the coupon-selection state machine and the
// order-completion step that sits on top of the pricing engine.
//
// The engine itself never errors; this is the layer where rejections
// become typed Go errors for the surface to translate.
package checkout

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"storefront/internal/models"
	"storefront/internal/pricing"
)

var (
	// ErrCouponIneligible rejects a coupon selection below the
	// minimum-order threshold.
	ErrCouponIneligible = errors.New("coupon not eligible for current total")
	// ErrEmptyCart rejects checkout of a cart with no lines.
	ErrEmptyCart = errors.New("cart is empty")
)

// Session is a cart plus an optional selected coupon. The zero value
// is an empty cart with no coupon selected.
type Session struct {
	cart   models.Cart
	coupon *models.Coupon
}

// NewSession returns an empty session.
func NewSession() *Session { return &Session{} }

// Resume rebuilds a session from persisted state.
func Resume(cart models.Cart, coupon *models.Coupon) *Session {
	return &Session{cart: cart, coupon: coupon}
}

// Cart returns the current cart snapshot.
func (s *Session) Cart() models.Cart { return s.cart }

// SetCart replaces the cart snapshot. A selected coupon survives cart
// changes: eligibility is a one-time gate at selection, not an
// invariant that is re-checked on every mutation.
func (s *Session) SetCart(cart models.Cart) { s.cart = cart }

// Coupon returns the selected coupon, nil when none is selected.
func (s *Session) Coupon() *models.Coupon { return s.coupon }

// SelectCoupon applies c if it is eligible against the cart's current
// discounted total. Ineligible selections leave the state unchanged.
func (s *Session) SelectCoupon(c models.Coupon) error {
	totals := pricing.CartTotals(s.cart, nil)
	if !pricing.CouponEligible(c, totals.TotalAfterDiscount) {
		return ErrCouponIneligible
	}
	cc := c
	s.coupon = &cc
	return nil
}

// ClearCoupon drops any selection. Valid from every state.
func (s *Session) ClearCoupon() { s.coupon = nil }

// Revalidate clears the coupon when the cart no longer qualifies for
// it and reports whether it did. Whether to call this after cart
// mutations is the host's policy; nothing in this package does.
func (s *Session) Revalidate() bool {
	if s.coupon == nil {
		return false
	}
	totals := pricing.CartTotals(s.cart, nil)
	if pricing.CouponEligible(*s.coupon, totals.TotalAfterDiscount) {
		return false
	}
	s.coupon = nil
	return true
}

// Totals computes the cart's totals including the selected coupon.
func (s *Session) Totals() pricing.Totals {
	return pricing.CartTotals(s.cart, s.coupon)
}

// Receipt is the outcome of a completed checkout.
type Receipt struct {
	OrderNumber string         `json:"orderNumber"`
	Totals      pricing.Totals `json:"totals"`
	CouponCode  string         `json:"couponCode,omitempty"`
}

// Checkout finalizes the session: it snapshots the totals, mints an
// order number, and resets cart and coupon. There is no payment step;
// completion is the terminal action of the session.
func (s *Session) Checkout() (Receipt, error) {
	if len(s.cart) == 0 {
		return Receipt{}, ErrEmptyCart
	}
	r := Receipt{
		OrderNumber: newOrderNumber(),
		Totals:      s.Totals(),
	}
	if s.coupon != nil {
		r.CouponCode = s.coupon.Code
	}
	s.cart = nil
	s.coupon = nil
	return r, nil
}

func newOrderNumber() string {
	id := uuid.New()
	return fmt.Sprintf("ORD-%X", id[:4])
}
