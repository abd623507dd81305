package checkout

import (
	"errors"
	"strings"
	"testing"

	"storefront/internal/models"
)

func cartWorth(amount int64) models.Cart {
	return models.Cart{{
		Product:  models.Product{ID: "p1", Name: "Product One", Price: amount, Stock: 10},
		Quantity: 1,
	}}
}

func TestSelectCouponEligible(t *testing.T) {
	s := Resume(cartWorth(12000), nil)
	pct := models.Coupon{Code: "PERCENT10", Name: "Ten percent", Type: models.Percentage, Value: 10}

	if err := s.SelectCoupon(pct); err != nil {
		t.Fatalf("SelectCoupon: %v", err)
	}
	if s.Coupon() == nil || s.Coupon().Code != "PERCENT10" {
		t.Fatalf("coupon not recorded: %+v", s.Coupon())
	}
	if got := s.Totals().TotalAfterDiscount; got != 10800 {
		t.Fatalf("TotalAfterDiscount = %d, want 10800", got)
	}
}

func TestSelectCouponBelowMinimumRejected(t *testing.T) {
	s := Resume(cartWorth(9000), nil)
	pct := models.Coupon{Code: "PERCENT10", Name: "Ten percent", Type: models.Percentage, Value: 10}

	err := s.SelectCoupon(pct)
	if !errors.Is(err, ErrCouponIneligible) {
		t.Fatalf("err = %v, want ErrCouponIneligible", err)
	}
	if s.Coupon() != nil {
		t.Fatal("rejected selection must leave state unchanged")
	}
}

func TestFixedCouponHasNoMinimum(t *testing.T) {
	s := Resume(cartWorth(100), nil)
	fixed := models.Coupon{Code: "AMOUNT5000", Name: "Five off", Type: models.FixedAmount, Value: 5000}

	if err := s.SelectCoupon(fixed); err != nil {
		t.Fatalf("SelectCoupon: %v", err)
	}
	if got := s.Totals().TotalAfterDiscount; got != 0 {
		t.Fatalf("TotalAfterDiscount = %d, want 0", got)
	}
}

func TestCouponSurvivesCartShrink(t *testing.T) {
	s := Resume(cartWorth(15000), nil)
	pct := models.Coupon{Code: "PERCENT10", Name: "Ten percent", Type: models.Percentage, Value: 10}
	if err := s.SelectCoupon(pct); err != nil {
		t.Fatalf("SelectCoupon: %v", err)
	}

	// Eligibility is a one-time gate; shrinking the cart afterwards
	// does not clear the selection on its own.
	s.SetCart(cartWorth(500))
	if s.Coupon() == nil {
		t.Fatal("coupon cleared by cart change")
	}

	// Revalidate is the opt-in host policy.
	if cleared := s.Revalidate(); !cleared {
		t.Fatal("Revalidate should clear the no-longer-eligible coupon")
	}
	if s.Coupon() != nil {
		t.Fatal("coupon still set after Revalidate")
	}
}

func TestClearCoupon(t *testing.T) {
	s := NewSession()
	s.ClearCoupon() // valid from every state
	if s.Coupon() != nil {
		t.Fatal("coupon set on empty session")
	}
}

func TestCheckout(t *testing.T) {
	s := Resume(cartWorth(12000), nil)
	fixed := models.Coupon{Code: "AMOUNT5000", Name: "Five off", Type: models.FixedAmount, Value: 5000}
	if err := s.SelectCoupon(fixed); err != nil {
		t.Fatalf("SelectCoupon: %v", err)
	}

	r, err := s.Checkout()
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if !strings.HasPrefix(r.OrderNumber, "ORD-") {
		t.Fatalf("order number %q", r.OrderNumber)
	}
	if r.Totals.TotalBeforeDiscount != 12000 || r.Totals.TotalAfterDiscount != 7000 {
		t.Fatalf("receipt totals = %+v", r.Totals)
	}
	if r.CouponCode != "AMOUNT5000" {
		t.Fatalf("receipt coupon = %q", r.CouponCode)
	}
	if len(s.Cart()) != 0 || s.Coupon() != nil {
		t.Fatal("checkout must reset cart and coupon")
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	s := NewSession()
	if _, err := s.Checkout(); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("err = %v, want ErrEmptyCart", err)
	}
}

func TestOrderNumbersAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		s := Resume(cartWorth(1000), nil)
		r, err := s.Checkout()
		if err != nil {
			t.Fatalf("Checkout: %v", err)
		}
		if seen[r.OrderNumber] {
			t.Fatalf("duplicate order number %s", r.OrderNumber)
		}
		seen[r.OrderNumber] = true
	}
}
