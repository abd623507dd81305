// Package stock gates cart mutations against catalog stock.
//
// Every operation is total: a mutation that would exceed stock returns
// the input cart unchanged instead of failing. Callers that need to
// report the rejection check CanAdd or Remaining first. Input carts are
// never mutated; successful mutations return a fresh slice.
package stock

import "storefront/internal/models"

// Remaining reports how many more units of p can still be added.
// The result is not clamped: a negative value means the cart already
// holds more than the catalog says exists, which callers may want to
// surface rather than hide.
func Remaining(p models.Product, cart models.Cart) int64 {
	return p.Stock - cart.Quantity(p.ID)
}

// CanAdd reports whether increment more units of p fit within stock.
func CanAdd(p models.Product, cart models.Cart, increment int64) bool {
	return cart.Quantity(p.ID)+increment <= p.Stock
}

// AddOrIncrement adds one unit of p, appending a new line when the
// product is not yet in the cart. Blocked adds return cart as-is.
func AddOrIncrement(cart models.Cart, p models.Product) models.Cart {
	if !CanAdd(p, cart, 1) {
		return cart
	}
	out := make(models.Cart, len(cart), len(cart)+1)
	copy(out, cart)
	for i := range out {
		if out[i].Product.ID == p.ID {
			out[i].Quantity++
			return out
		}
	}
	return append(out, models.CartLine{Product: p, Quantity: 1})
}

// SetQuantity replaces the quantity of an existing line. A quantity of
// zero or less removes the line; that is the contract, not an error.
// A quantity above the product's stock is rejected, returning the cart
// unchanged rather than clamping. Absent lines are left alone.
func SetQuantity(cart models.Cart, productID string, quantity int64) models.Cart {
	if quantity <= 0 {
		return RemoveLine(cart, productID)
	}
	for i, l := range cart {
		if l.Product.ID != productID {
			continue
		}
		if quantity > l.Product.Stock {
			return cart
		}
		out := make(models.Cart, len(cart))
		copy(out, cart)
		out[i].Quantity = quantity
		return out
	}
	return cart
}

// RemoveLine drops the line for productID, no-op when absent.
func RemoveLine(cart models.Cart, productID string) models.Cart {
	if _, found := cart.Line(productID); !found {
		return cart
	}
	out := make(models.Cart, 0, len(cart))
	for _, l := range cart {
		if l.Product.ID != productID {
			out = append(out, l)
		}
	}
	return out
}
