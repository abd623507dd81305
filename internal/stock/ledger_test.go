package stock

import (
	"reflect"
	"testing"

	"storefront/internal/models"
)

func product(id string, stockQty int64) models.Product {
	return models.Product{ID: id, Name: "Product " + id, Price: 1000, Stock: stockQty}
}

func sameBacking(a, b models.Cart) bool {
	return len(a) == len(b) && (len(a) == 0 || &a[0] == &b[0])
}

func TestRemaining(t *testing.T) {
	p := product("p1", 20)
	tests := []struct {
		name string
		cart models.Cart
		want int64
	}{
		{"empty cart", nil, 20},
		{"partly in cart", models.Cart{{Product: p, Quantity: 7}}, 13},
		{"fully in cart", models.Cart{{Product: p, Quantity: 20}}, 0},
		{"other product only", models.Cart{{Product: product("p2", 5), Quantity: 3}}, 20},
		// Corrupted external state passes through unclamped.
		{"over-committed cart", models.Cart{{Product: p, Quantity: 25}}, -5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Remaining(p, tt.cart); got != tt.want {
				t.Fatalf("Remaining = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCanAdd(t *testing.T) {
	p := product("p1", 5)
	full := models.Cart{{Product: p, Quantity: 5}}
	if CanAdd(p, full, 1) {
		t.Fatal("CanAdd at full stock = true, want false")
	}
	almost := models.Cart{{Product: p, Quantity: 4}}
	if !CanAdd(p, almost, 1) {
		t.Fatal("CanAdd with room = false, want true")
	}
	if CanAdd(p, almost, 2) {
		t.Fatal("CanAdd(increment 2) past stock = true, want false")
	}
}

func TestAddOrIncrement(t *testing.T) {
	p1 := product("p1", 5)
	p2 := product("p2", 3)

	cart := AddOrIncrement(nil, p1)
	if len(cart) != 1 || cart[0].Quantity != 1 {
		t.Fatalf("first add: %+v", cart)
	}

	cart = AddOrIncrement(cart, p1)
	if len(cart) != 1 || cart[0].Quantity != 2 {
		t.Fatalf("increment collapsed into existing line failed: %+v", cart)
	}

	cart = AddOrIncrement(cart, p2)
	if len(cart) != 2 || cart[1].Product.ID != "p2" {
		t.Fatalf("append new line failed: %+v", cart)
	}
}

func TestAddOrIncrementBlockedReturnsInputUnchanged(t *testing.T) {
	p := product("p1", 5)
	cart := models.Cart{{Product: p, Quantity: 5}}

	got := AddOrIncrement(cart, p)
	if !sameBacking(cart, got) {
		t.Fatal("blocked add should return the input cart as-is")
	}
	// Repeating the rejected call never changes state.
	again := AddOrIncrement(got, p)
	if !reflect.DeepEqual(cart, again) {
		t.Fatalf("repeated rejection drifted: %+v", again)
	}
}

func TestAddOrIncrementDoesNotMutateInput(t *testing.T) {
	p := product("p1", 5)
	in := models.Cart{{Product: p, Quantity: 2}}
	_ = AddOrIncrement(in, p)
	if in[0].Quantity != 2 {
		t.Fatalf("input cart mutated: qty %d", in[0].Quantity)
	}
}

func TestSetQuantity(t *testing.T) {
	p1 := product("p1", 10)
	p2 := product("p2", 10)
	base := models.Cart{
		{Product: p1, Quantity: 3},
		{Product: p2, Quantity: 1},
	}

	t.Run("replace quantity", func(t *testing.T) {
		got := SetQuantity(base, "p1", 7)
		if got[0].Quantity != 7 || got[1].Quantity != 1 {
			t.Fatalf("got %+v", got)
		}
		if base[0].Quantity != 3 {
			t.Fatal("input mutated")
		}
	})

	t.Run("zero removes the line", func(t *testing.T) {
		got := SetQuantity(base, "p1", 0)
		if len(got) != 1 || got[0].Product.ID != "p2" {
			t.Fatalf("got %+v", got)
		}
	})

	t.Run("negative removes the line", func(t *testing.T) {
		got := SetQuantity(base, "p1", -4)
		if len(got) != 1 || got[0].Product.ID != "p2" {
			t.Fatalf("got %+v", got)
		}
	})

	t.Run("over stock rejects without clamping", func(t *testing.T) {
		got := SetQuantity(base, "p1", 11)
		if !sameBacking(base, got) {
			t.Fatal("over-stock set should return the input cart as-is")
		}
	})

	t.Run("absent product is a no-op", func(t *testing.T) {
		got := SetQuantity(base, "p9", 2)
		if !sameBacking(base, got) {
			t.Fatal("unknown product should leave the cart untouched")
		}
	})
}

func TestRemoveLine(t *testing.T) {
	p1 := product("p1", 10)
	p2 := product("p2", 10)
	base := models.Cart{
		{Product: p1, Quantity: 3},
		{Product: p2, Quantity: 1},
	}

	got := RemoveLine(base, "p1")
	if len(got) != 1 || got[0].Product.ID != "p2" {
		t.Fatalf("got %+v", got)
	}

	missing := RemoveLine(base, "p9")
	if !sameBacking(base, missing) {
		t.Fatal("removing an absent line should be a no-op")
	}
}

func TestAddRoundTripWithRemaining(t *testing.T) {
	p := product("p1", 8)
	cart := models.Cart{{Product: p, Quantity: 3}}

	before := Remaining(p, cart)
	after := AddOrIncrement(cart, p)
	if got := Remaining(p, after); got != before-1 {
		t.Fatalf("Remaining after successful add = %d, want %d", got, before-1)
	}
}
