package services

import "errors"

// Failure kinds surfaced by the cart/checkout core. Handlers map these to
// HTTP statuses; nothing in this package retries or recovers silently.
var (
	ErrCartNotFound       = errors.New("no cart found")
	ErrCartEmpty          = errors.New("cart is empty")
	ErrCouponInvalid      = errors.New("coupon code is not valid")
	ErrCouponExpired      = errors.New("coupon has expired")
	ErrCouponInactive     = errors.New("coupon is not active")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidDiscount    = errors.New("discount exceeds cart total")
	ErrPaymentFailed      = errors.New("payment failed")
	ErrTransactionAborted = errors.New("checkout transaction aborted")

	// ErrNotFound covers catalog and admin lookups outside the checkout
	// core (products, categories, coupons by id, users, orders).
	ErrNotFound = errors.New("resource not found")
)
