package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-commerce/models"
)

func newEvaluator(coupon *models.Coupon, now time.Time) *CouponEvaluator {
	e := NewCouponEvaluator(&mockCouponStore{coupon: coupon})
	e.now = func() time.Time { return now }
	return e
}

func TestApplyCoupon_ClampedToMaxDiscount(t *testing.T) {
	now := time.Now()
	e := newEvaluator(&models.Coupon{
		Code:            "SAVE20",
		DiscountPercent: 20,
		MaxDiscount:     10,
		Expiry:          now.Add(24 * time.Hour),
		IsActive:        true,
	}, now)

	// 20% of 80 is 16, capped at 10.
	discount, err := e.Apply(context.Background(), "SAVE20", 80)

	require.NoError(t, err)
	assert.Equal(t, 10.0, discount)
}

func TestApplyCoupon_PercentBelowCap(t *testing.T) {
	now := time.Now()
	e := newEvaluator(&models.Coupon{
		Code:            "SAVE10",
		DiscountPercent: 10,
		MaxDiscount:     100,
		Expiry:          now.Add(time.Hour),
		IsActive:        true,
	}, now)

	discount, err := e.Apply(context.Background(), "SAVE10", 80)

	require.NoError(t, err)
	assert.Equal(t, 8.0, discount)
}

func TestApplyCoupon_NormalizesCode(t *testing.T) {
	now := time.Now()
	e := newEvaluator(&models.Coupon{
		Code:            "SAVE20",
		DiscountPercent: 20,
		Expiry:          now.Add(time.Hour),
		IsActive:        true,
	}, now)

	discount, err := e.Apply(context.Background(), "  save20 ", 50)

	require.NoError(t, err)
	assert.Equal(t, 10.0, discount)
}

func TestApplyCoupon_UnknownCode(t *testing.T) {
	e := newEvaluator(nil, time.Now())

	_, err := e.Apply(context.Background(), "NOPE", 80)

	assert.ErrorIs(t, err, ErrCouponInvalid)
}

func TestApplyCoupon_Expired(t *testing.T) {
	now := time.Now()
	e := newEvaluator(&models.Coupon{
		Code:            "OLD",
		DiscountPercent: 20,
		Expiry:          now.Add(-time.Minute),
		IsActive:        true,
	}, now)

	_, err := e.Apply(context.Background(), "OLD", 80)

	assert.ErrorIs(t, err, ErrCouponExpired)
}

func TestApplyCoupon_Inactive(t *testing.T) {
	now := time.Now()
	e := newEvaluator(&models.Coupon{
		Code:            "OFF",
		DiscountPercent: 20,
		Expiry:          now.Add(time.Hour),
		IsActive:        false,
	}, now)

	_, err := e.Apply(context.Background(), "OFF", 80)

	assert.ErrorIs(t, err, ErrCouponInactive)
}

func TestApplyCoupon_NeverExceedsCartTotal(t *testing.T) {
	now := time.Now()
	e := newEvaluator(&models.Coupon{
		Code:            "ALL",
		DiscountPercent: 100,
		MaxDiscount:     500,
		Expiry:          now.Add(time.Hour),
		IsActive:        true,
	}, now)

	discount, err := e.Apply(context.Background(), "ALL", 42.5)

	require.NoError(t, err)
	assert.Equal(t, 42.5, discount)
}

func TestApplyCoupon_RoundsToCents(t *testing.T) {
	now := time.Now()
	e := newEvaluator(&models.Coupon{
		Code:            "THIRD",
		DiscountPercent: 33.33,
		MaxDiscount:     100,
		Expiry:          now.Add(time.Hour),
		IsActive:        true,
	}, now)

	discount, err := e.Apply(context.Background(), "THIRD", 10)

	require.NoError(t, err)
	assert.Equal(t, 3.33, discount)
}
