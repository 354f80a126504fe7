package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"go-commerce/models"
)

func sampleCart() *models.Cart {
	cart := &models.Cart{
		UserID: primitive.NewObjectID(),
		Items: []models.CartItem{
			{ProductID: primitive.NewObjectID(), Quantity: 3, UnitPrice: 10, LineTotal: 30},
			{ProductID: primitive.NewObjectID(), Quantity: 1, UnitPrice: 50, LineTotal: 50},
		},
		Status: models.CartStatusActive,
	}
	RecomputeTotals(cart)
	return cart
}

func TestBuildOrder(t *testing.T) {
	cart := sampleCart()

	order, err := BuildOrder(cart, 10, "USD")

	require.NoError(t, err)
	assert.Equal(t, cart.UserID, order.UserID)
	assert.Equal(t, 4, order.TotalQuantity)
	assert.Equal(t, 80.0, order.TotalPrice)
	assert.Equal(t, 10.0, order.DiscountAmount)
	assert.Equal(t, 70.0, order.PayableAmount())
	assert.Equal(t, "USD", order.Currency)
	assert.Equal(t, models.OrderStatusPending, order.Status)
}

func TestBuildOrder_SnapshotsItems(t *testing.T) {
	cart := sampleCart()

	order, err := BuildOrder(cart, 0, "USD")
	require.NoError(t, err)

	// Draining the cart afterwards must not touch the order's items.
	Clear(cart)
	RecomputeTotals(cart)

	require.Len(t, order.Items, 2)
	assert.Equal(t, 80.0, order.TotalPrice)
}

func TestBuildOrder_DiscountExceedsTotal(t *testing.T) {
	cart := sampleCart()

	_, err := BuildOrder(cart, 81, "USD")

	assert.ErrorIs(t, err, ErrInvalidDiscount)
}

func TestBuildOrder_NegativeDiscount(t *testing.T) {
	cart := sampleCart()

	_, err := BuildOrder(cart, -1, "USD")

	assert.ErrorIs(t, err, ErrInvalidDiscount)
}
