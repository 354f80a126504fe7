package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"go-commerce/models"
)

type checkoutFixture struct {
	service *CheckoutService
	carts   *mockCartStore
	orders  *mockOrderStore
	payment *mockPayment
	tx      *fakeTxRunner
}

func newCheckoutFixture(cart *models.Cart, coupon *models.Coupon, payment *mockPayment) *checkoutFixture {
	carts := &mockCartStore{cart: cloneCart(cart)}
	orders := &mockOrderStore{}
	tx := &fakeTxRunner{carts: carts, orders: orders}
	evaluator := NewCouponEvaluator(&mockCouponStore{coupon: coupon})

	service := NewCheckoutService(
		carts, orders, evaluator, payment, tx, nil,
		zerolog.Nop(), "USD", 30*time.Second,
	)
	return &checkoutFixture{service: service, carts: carts, orders: orders, payment: payment, tx: tx}
}

func approvedPayment() *mockPayment {
	return &mockPayment{result: PaymentResult{Success: true, Reference: "pay-ref-1"}}
}

func TestCheckout_NoCart(t *testing.T) {
	f := newCheckoutFixture(nil, nil, approvedPayment())

	_, err := f.service.Checkout(context.Background(), primitive.NewObjectID(), "")

	assert.ErrorIs(t, err, ErrCartNotFound)
	assert.Empty(t, f.orders.orders)
}

func TestCheckout_EmptyCart(t *testing.T) {
	cart := &models.Cart{
		UserID: primitive.NewObjectID(),
		Items:  []models.CartItem{},
		Status: models.CartStatusActive,
	}
	f := newCheckoutFixture(cart, nil, approvedPayment())

	_, err := f.service.Checkout(context.Background(), cart.UserID, "")

	assert.ErrorIs(t, err, ErrCartEmpty)
	assert.Empty(t, f.orders.orders)
}

func TestCheckout_Success(t *testing.T) {
	cart := sampleCart()
	f := newCheckoutFixture(cart, nil, approvedPayment())

	order, err := f.service.Checkout(context.Background(), cart.UserID, "")

	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCompleted, order.Status)
	assert.Equal(t, 80.0, order.TotalPrice)
	assert.Equal(t, 0.0, order.DiscountAmount)
	assert.Equal(t, "USD", order.Currency)
	assert.Equal(t, "pay-ref-1", order.PaymentReference)
	require.Len(t, order.Items, 2)

	// The persisted order matches what was returned.
	require.Len(t, f.orders.orders, 1)
	assert.Equal(t, models.OrderStatusCompleted, f.orders.orders[0].Status)

	// The cart was drained inside the same unit of work.
	drained := f.carts.cart
	assert.Empty(t, drained.Items)
	assert.Zero(t, drained.TotalQuantity)
	assert.Zero(t, drained.TotalPrice)
	assert.Equal(t, models.CartStatusCheckout, drained.Status)
}

func TestCheckout_WithCoupon(t *testing.T) {
	cart := sampleCart()
	coupon := &models.Coupon{
		Code:            "SAVE20",
		DiscountPercent: 20,
		MaxDiscount:     10,
		Expiry:          time.Now().Add(24 * time.Hour),
		IsActive:        true,
	}
	f := newCheckoutFixture(cart, coupon, approvedPayment())

	order, err := f.service.Checkout(context.Background(), cart.UserID, "SAVE20")

	require.NoError(t, err)
	assert.Equal(t, 10.0, order.DiscountAmount)
	assert.Equal(t, 70.0, order.PayableAmount())
	require.Len(t, f.orders.orders, 1)
	assert.Equal(t, 10.0, f.orders.orders[0].DiscountAmount)
}

func TestCheckout_PaymentFailure_RollsBack(t *testing.T) {
	cart := sampleCart()
	before := cloneCart(cart)
	f := newCheckoutFixture(cart, nil, &mockPayment{result: PaymentResult{Success: false}})

	_, err := f.service.Checkout(context.Background(), cart.UserID, "")

	assert.ErrorIs(t, err, ErrPaymentFailed)
	assert.True(t, f.tx.aborted)
	assert.Empty(t, f.orders.orders)

	// The cart is exactly as it was before the attempt.
	after := f.carts.cart
	assert.Equal(t, before.Items, after.Items)
	assert.Equal(t, before.Status, after.Status)
	assert.Equal(t, models.CartStatusActive, after.Status)
}

func TestCheckout_PaymentProcessorError(t *testing.T) {
	cart := sampleCart()
	f := newCheckoutFixture(cart, nil, &mockPayment{err: context.DeadlineExceeded})

	_, err := f.service.Checkout(context.Background(), cart.UserID, "")

	assert.ErrorIs(t, err, ErrPaymentFailed)
	assert.Empty(t, f.orders.orders)
}

func TestCheckout_ExpiredCoupon_NoOrderCreated(t *testing.T) {
	cart := sampleCart()
	coupon := &models.Coupon{
		Code:            "OLD",
		DiscountPercent: 20,
		Expiry:          time.Now().Add(-time.Hour),
		IsActive:        true,
	}
	payment := approvedPayment()
	f := newCheckoutFixture(cart, coupon, payment)

	_, err := f.service.Checkout(context.Background(), cart.UserID, "OLD")

	assert.ErrorIs(t, err, ErrCouponExpired)
	assert.Empty(t, f.orders.orders)
	assert.Empty(t, payment.orders, "payment must not run after a coupon failure")
	assert.Equal(t, models.CartStatusActive, f.carts.cart.Status)
}

func TestCheckout_InfrastructureFailure_IsTransactionAborted(t *testing.T) {
	cart := sampleCart()
	f := newCheckoutFixture(cart, nil, approvedPayment())
	f.carts.upsertErr = errors.New("connection reset")

	_, err := f.service.Checkout(context.Background(), cart.UserID, "")

	assert.ErrorIs(t, err, ErrTransactionAborted)
	assert.Empty(t, f.orders.orders)
}

func TestCheckout_RecomputesStaleTotals(t *testing.T) {
	cart := sampleCart()
	cart.TotalQuantity = 1
	cart.TotalPrice = 1
	f := newCheckoutFixture(cart, nil, approvedPayment())

	order, err := f.service.Checkout(context.Background(), cart.UserID, "")

	require.NoError(t, err)
	assert.Equal(t, 4, order.TotalQuantity)
	assert.Equal(t, 80.0, order.TotalPrice)
}
