package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CouponEvaluator resolves a coupon code against a cart total and computes
// the discount amount. Coupons are read-only from this path.
type CouponEvaluator struct {
	coupons CouponStore
	now     func() time.Time
}

func NewCouponEvaluator(coupons CouponStore) *CouponEvaluator {
	return &CouponEvaluator{
		coupons: coupons,
		now:     time.Now,
	}
}

// Apply looks up the coupon by its uppercase-normalized code, validates it
// and returns the discount amount: cartTotal * percent / 100, clamped to the
// coupon's max discount and to the cart total itself, rounded to two
// decimal places. The result is always in [0, cartTotal].
func (e *CouponEvaluator) Apply(ctx context.Context, code string, cartTotal float64) (float64, error) {
	coupon, err := e.coupons.GetByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return 0, ErrCouponInvalid
		}
		return 0, err
	}

	if !coupon.IsActive {
		return 0, ErrCouponInactive
	}
	if coupon.Expiry.Before(e.now()) {
		return 0, ErrCouponExpired
	}

	total := decimal.NewFromFloat(cartTotal)
	discount := total.
		Mul(decimal.NewFromFloat(coupon.DiscountPercent)).
		Div(decimal.NewFromInt(100))

	if coupon.MaxDiscount > 0 {
		limit := decimal.NewFromFloat(coupon.MaxDiscount)
		if discount.GreaterThan(limit) {
			discount = limit
		}
	}
	if discount.GreaterThan(total) {
		discount = total
	}
	if discount.IsNegative() {
		discount = decimal.Zero
	}

	return discount.Round(2).InexactFloat64(), nil
}
