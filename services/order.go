package services

import (
	"time"

	"go-commerce/models"
)

// BuildOrder materializes a PENDING order from the cart's current state.
// Items are copied, not referenced, so later cart mutation cannot alter a
// placed order. Persistence is the caller's job and must happen inside the
// checkout transaction.
func BuildOrder(cart *models.Cart, discountAmount float64, currency string) (*models.Order, error) {
	if discountAmount < 0 {
		return nil, ErrInvalidDiscount
	}
	if discountAmount > cart.TotalPrice {
		return nil, ErrInvalidDiscount
	}

	items := make([]models.CartItem, len(cart.Items))
	copy(items, cart.Items)

	now := time.Now()
	return &models.Order{
		UserID:         cart.UserID,
		Items:          items,
		TotalQuantity:  cart.TotalQuantity,
		TotalPrice:     cart.TotalPrice,
		DiscountAmount: discountAmount,
		Currency:       currency,
		Status:         models.OrderStatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}
