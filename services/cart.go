package services

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"go-commerce/models"
)

// Pure in-memory cart mutations. The mongoose version of this system did
// the totals recompute in a pre-save hook; here every mutation path calls
// RecomputeTotals explicitly before the cart is persisted.

// AddOrIncrementItem adds a product line to the cart, or increments the
// quantity of the existing line for the same product. The line total is
// recomputed from the new quantity and the given unit price.
func AddOrIncrementItem(cart *models.Cart, productID primitive.ObjectID, quantity int, unitPrice float64) error {
	if quantity <= 0 {
		return ErrInvalidInput
	}
	if unitPrice < 0 {
		return ErrInvalidInput
	}

	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity += quantity
			cart.Items[i].UnitPrice = unitPrice
			cart.Items[i].LineTotal = float64(cart.Items[i].Quantity) * unitPrice
			return nil
		}
	}

	cart.Items = append(cart.Items, models.CartItem{
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		LineTotal: float64(quantity) * unitPrice,
	})
	return nil
}

// RemoveItem deletes the line for productID. Removing a product that is not
// in the cart is a silent no-op, which makes the operation idempotent.
func RemoveItem(cart *models.Cart, productID primitive.ObjectID) {
	items := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ProductID != productID {
			items = append(items, item)
		}
	}
	cart.Items = items
}

// RecomputeTotals derives TotalQuantity and TotalPrice from the current
// items list. Must run before every persistence of the cart; the stored
// totals are never independently authoritative.
func RecomputeTotals(cart *models.Cart) {
	totalQuantity := 0
	totalPrice := 0.0
	for _, item := range cart.Items {
		totalQuantity += item.Quantity
		totalPrice += item.LineTotal
	}
	cart.TotalQuantity = totalQuantity
	cart.TotalPrice = totalPrice
}

// Clear empties the cart and zeroes both totals. Identity and status are
// untouched; the caller decides the status transition.
func Clear(cart *models.Cart) {
	cart.Items = []models.CartItem{}
	cart.TotalQuantity = 0
	cart.TotalPrice = 0
}
