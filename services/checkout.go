package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"go-commerce/cache"
	"go-commerce/models"
)

// CheckoutService turns an active cart into a completed order. The whole
// flow (cart load, coupon, order creation, payment, cart drain) runs inside
// one transaction: either the completed order and the drained cart are both
// persisted, or neither is and the cart is left exactly as it was.
type CheckoutService struct {
	carts          CartStore
	orders         OrderStore
	coupons        *CouponEvaluator
	payment        PaymentProcessor
	tx             TxRunner
	cartCache      cache.CartCache
	logger         zerolog.Logger
	currency       string
	paymentTimeout time.Duration
}

func NewCheckoutService(
	carts CartStore,
	orders OrderStore,
	coupons *CouponEvaluator,
	payment PaymentProcessor,
	tx TxRunner,
	cartCache cache.CartCache,
	logger zerolog.Logger,
	currency string,
	paymentTimeout time.Duration,
) *CheckoutService {
	return &CheckoutService{
		carts:          carts,
		orders:         orders,
		coupons:        coupons,
		payment:        payment,
		tx:             tx,
		cartCache:      cartCache,
		logger:         logger,
		currency:       currency,
		paymentTimeout: paymentTimeout,
	}
}

// Checkout places an order for the user's active cart. couponCode may be
// empty. On success the returned order is COMPLETED and the cart has been
// drained to status CHECKOUT. On any failure the unit of work is aborted
// and the cart is unchanged; no automatic retry happens, the caller may
// re-invoke checkout against the intact cart.
func (s *CheckoutService) Checkout(ctx context.Context, userID primitive.ObjectID, couponCode string) (*models.Order, error) {
	var placed *models.Order

	err := s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		cart, err := s.carts.GetByUser(txCtx, userID)
		if err != nil {
			return err
		}
		if len(cart.Items) == 0 || cart.Status != models.CartStatusActive {
			return ErrCartEmpty
		}

		// Stored totals are never trusted at checkout time.
		RecomputeTotals(cart)

		discount := 0.0
		if couponCode != "" {
			discount, err = s.coupons.Apply(txCtx, couponCode, cart.TotalPrice)
			if err != nil {
				return err
			}
		}

		order, err := BuildOrder(cart, discount, s.currency)
		if err != nil {
			return err
		}
		if err := s.orders.Insert(txCtx, order); err != nil {
			return err
		}

		payCtx, cancel := context.WithTimeout(txCtx, s.paymentTimeout)
		defer cancel()
		result, err := s.payment.Process(payCtx, order)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrPaymentFailed, err)
		}
		if !result.Success {
			return ErrPaymentFailed
		}

		order.Status = models.OrderStatusCompleted
		order.PaymentReference = result.Reference
		order.UpdatedAt = time.Now()
		if err := s.orders.Update(txCtx, order); err != nil {
			return err
		}

		Clear(cart)
		cart.Status = models.CartStatusCheckout
		if err := s.carts.Upsert(txCtx, cart); err != nil {
			return err
		}

		placed = order
		return nil
	})
	if err != nil {
		if isCheckoutFailure(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrTransactionAborted, err)
	}

	s.invalidateCartCache(userID)
	return placed, nil
}

// isCheckoutFailure reports whether err already carries one of the typed
// failure kinds; anything else is an infrastructure failure and is surfaced
// as an aborted transaction.
func isCheckoutFailure(err error) bool {
	for _, kind := range []error{
		ErrCartNotFound,
		ErrCartEmpty,
		ErrCouponInvalid,
		ErrCouponExpired,
		ErrCouponInactive,
		ErrInvalidInput,
		ErrInvalidDiscount,
		ErrPaymentFailed,
	} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}

func (s *CheckoutService) invalidateCartCache(userID primitive.ObjectID) {
	if s.cartCache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cartCache.Delete(ctx, userID); err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID.Hex()).Msg("cart cache invalidate failed")
	}
}
