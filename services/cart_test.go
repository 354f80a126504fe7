package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"go-commerce/models"
)

func TestAddOrIncrementItem_NewItem(t *testing.T) {
	cart := &models.Cart{Status: models.CartStatusActive}
	productID := primitive.NewObjectID()

	err := AddOrIncrementItem(cart, productID, 3, 10)

	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.Equal(t, 10.0, cart.Items[0].UnitPrice)
	assert.Equal(t, 30.0, cart.Items[0].LineTotal)
}

func TestAddOrIncrementItem_ExistingItem(t *testing.T) {
	productID := primitive.NewObjectID()
	cart := &models.Cart{
		Items: []models.CartItem{
			{ProductID: productID, Quantity: 2, UnitPrice: 10, LineTotal: 20},
		},
	}

	err := AddOrIncrementItem(cart, productID, 3, 10)

	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.Equal(t, 50.0, cart.Items[0].LineTotal)
}

func TestAddOrIncrementItem_InvalidQuantity(t *testing.T) {
	cart := &models.Cart{}

	assert.ErrorIs(t, AddOrIncrementItem(cart, primitive.NewObjectID(), 0, 10), ErrInvalidInput)
	assert.ErrorIs(t, AddOrIncrementItem(cart, primitive.NewObjectID(), -2, 10), ErrInvalidInput)
	assert.Empty(t, cart.Items)
}

func TestRemoveItem_Idempotent(t *testing.T) {
	kept := primitive.NewObjectID()
	removed := primitive.NewObjectID()
	cart := &models.Cart{
		Items: []models.CartItem{
			{ProductID: kept, Quantity: 1, UnitPrice: 5, LineTotal: 5},
			{ProductID: removed, Quantity: 2, UnitPrice: 3, LineTotal: 6},
		},
	}

	RemoveItem(cart, removed)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, kept, cart.Items[0].ProductID)

	// Removing the same product again changes nothing.
	RemoveItem(cart, removed)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, kept, cart.Items[0].ProductID)
}

func TestRecomputeTotals(t *testing.T) {
	cart := &models.Cart{
		Items: []models.CartItem{
			{Quantity: 3, UnitPrice: 10, LineTotal: 30},
			{Quantity: 1, UnitPrice: 50, LineTotal: 50},
		},
		// Stale stored totals must be overwritten.
		TotalQuantity: 99,
		TotalPrice:    999,
	}

	RecomputeTotals(cart)

	assert.Equal(t, 4, cart.TotalQuantity)
	assert.Equal(t, 80.0, cart.TotalPrice)
}

func TestRecomputeTotals_AfterEveryMutation(t *testing.T) {
	cart := &models.Cart{}
	first := primitive.NewObjectID()
	second := primitive.NewObjectID()

	require.NoError(t, AddOrIncrementItem(cart, first, 2, 4))
	require.NoError(t, AddOrIncrementItem(cart, second, 1, 7))
	RecomputeTotals(cart)
	assert.Equal(t, 3, cart.TotalQuantity)
	assert.Equal(t, 15.0, cart.TotalPrice)

	RemoveItem(cart, first)
	RecomputeTotals(cart)
	assert.Equal(t, 1, cart.TotalQuantity)
	assert.Equal(t, 7.0, cart.TotalPrice)
}

func TestClear(t *testing.T) {
	cart := &models.Cart{
		ID:            primitive.NewObjectID(),
		Items:         []models.CartItem{{Quantity: 2, UnitPrice: 10, LineTotal: 20}},
		TotalQuantity: 2,
		TotalPrice:    20,
		Status:        models.CartStatusActive,
	}
	id := cart.ID

	Clear(cart)

	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.TotalQuantity)
	assert.Zero(t, cart.TotalPrice)
	assert.Equal(t, id, cart.ID)
	assert.Equal(t, models.CartStatusActive, cart.Status)
}
