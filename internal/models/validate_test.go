package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestChecks(t *testing.T) {
	tests := []struct {
		name      string
		got       Check
		valid     bool
		corrected int64
	}{
		{"price ok", CheckPrice(100), true, 100},
		{"price negative", CheckPrice(-1), false, 0},
		{"stock ok", CheckStock(0), true, 0},
		{"stock negative", CheckStock(-5), false, 0},
		{"percentage ok", CheckPercentage(100), true, 100},
		{"percentage negative", CheckPercentage(-1), false, 0},
		{"percentage over 100", CheckPercentage(150), false, 100},
		{"threshold ok", CheckThreshold(1), true, 1},
		{"threshold zero", CheckThreshold(0), false, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got.Valid != tt.valid || tt.got.Corrected != tt.corrected {
				t.Fatalf("got %+v, want valid=%v corrected=%d", tt.got, tt.valid, tt.corrected)
			}
			if !tt.got.Valid && tt.got.Message == "" {
				t.Fatal("invalid check without a message")
			}
		})
	}
}

func TestProductValidate(t *testing.T) {
	good := Product{
		ID: "p1", Name: "Product One", Price: 10000, Stock: 20,
		Discounts: []DiscountTier{{Threshold: 10, Rate: decimal.RequireFromString("0.1")}},
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("valid product rejected: %v", err)
	}

	tests := []struct {
		name string
		mod  func(p *Product)
	}{
		{"missing id", func(p *Product) { p.ID = "" }},
		{"missing name", func(p *Product) { p.Name = "" }},
		{"negative price", func(p *Product) { p.Price = -1 }},
		{"negative stock", func(p *Product) { p.Stock = -1 }},
		{"zero threshold", func(p *Product) { p.Discounts[0].Threshold = 0 }},
		{"rate at one", func(p *Product) { p.Discounts[0].Rate = decimal.NewFromInt(1) }},
		{"negative rate", func(p *Product) { p.Discounts[0].Rate = decimal.RequireFromString("-0.1") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := good
			p.Discounts = append([]DiscountTier(nil), good.Discounts...)
			tt.mod(&p)
			if err := p.Validate(); err == nil {
				t.Fatal("want validation error, got nil")
			}
		})
	}
}

func TestCouponValidate(t *testing.T) {
	tests := []struct {
		name    string
		coupon  Coupon
		wantErr bool
	}{
		{"fixed ok", Coupon{Code: "C1", Name: "Five off", Type: FixedAmount, Value: 5000}, false},
		{"percentage ok", Coupon{Code: "C2", Name: "Ten percent", Type: Percentage, Value: 10}, false},
		{"missing code", Coupon{Name: "x", Type: FixedAmount}, true},
		{"missing name", Coupon{Code: "C3", Type: FixedAmount}, true},
		{"negative fixed", Coupon{Code: "C4", Name: "x", Type: FixedAmount, Value: -1}, true},
		{"percentage over 100", Coupon{Code: "C5", Name: "x", Type: Percentage, Value: 101}, true},
		{"unknown type", Coupon{Code: "C6", Name: "x", Type: "mystery", Value: 1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.coupon.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCartLookups(t *testing.T) {
	cart := Cart{
		{Product: Product{ID: "p1"}, Quantity: 2},
		{Product: Product{ID: "p2"}, Quantity: 5},
	}
	if q := cart.Quantity("p2"); q != 5 {
		t.Fatalf("Quantity = %d, want 5", q)
	}
	if q := cart.Quantity("p9"); q != 0 {
		t.Fatalf("Quantity for absent product = %d, want 0", q)
	}
	if _, found := cart.Line("p1"); !found {
		t.Fatal("Line(p1) not found")
	}
	if _, found := cart.Line("p9"); found {
		t.Fatal("Line(p9) unexpectedly found")
	}
}
