package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/singleflight"

	"go-commerce/cache"
	"go-commerce/models"
)

// CartService implements the cart use-cases behind the HTTP layer. Reads go
// through the cache; every write goes to the store and invalidates the
// cached copy.
type CartService struct {
	carts    CartStore
	products ProductStore
	cache    cache.CartCache
	logger   zerolog.Logger
	sfg      singleflight.Group // collapses concurrent cache misses per user
}

func NewCartService(carts CartStore, products ProductStore, cartCache cache.CartCache, logger zerolog.Logger) *CartService {
	return &CartService{
		carts:    carts,
		products: products,
		cache:    cartCache,
		logger:   logger,
	}
}

// GetCart returns the user's cart, or ErrCartNotFound if none exists yet.
func (s *CartService) GetCart(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	v, err, _ := s.sfg.Do(userID.Hex(), func() (interface{}, error) {
		if s.cache != nil {
			cart, err := s.cache.Get(ctx, userID)
			if err == nil {
				return cart, nil
			}
			if !errors.Is(err, cache.ErrCacheMiss) {
				s.logger.Warn().Err(err).Msg("cart cache get failed")
			}
		}

		cart, err := s.carts.GetByUser(ctx, userID)
		if err != nil {
			return nil, err
		}

		if s.cache != nil {
			go func() {
				setCtx, cancel := context.WithTimeout(context.Background(), time.Second)
				defer cancel()
				if err := s.cache.Set(setCtx, userID, cart); err != nil {
					s.logger.Warn().Err(err).Msg("cart cache set failed")
				}
			}()
		}
		return cart, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.Cart), nil
}

// AddToCart adds quantity units of the product to the user's cart, creating
// the cart lazily on first use. The product's current price becomes the
// line's unit price.
func (s *CartService) AddToCart(ctx context.Context, userID, productID primitive.ObjectID, quantity int) (*models.Cart, error) {
	if quantity <= 0 {
		return nil, ErrInvalidInput
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	cart, err := s.carts.GetByUser(ctx, userID)
	if errors.Is(err, ErrCartNotFound) {
		cart = &models.Cart{
			UserID:    userID,
			Items:     []models.CartItem{},
			Status:    models.CartStatusActive,
			CreatedAt: time.Now(),
		}
	} else if err != nil {
		return nil, err
	}

	// A drained post-checkout cart becomes active again on the next add.
	cart.Status = models.CartStatusActive

	if err := AddOrIncrementItem(cart, productID, quantity, product.Price); err != nil {
		return nil, err
	}
	return s.persist(ctx, cart)
}

// RemoveItem removes the product's line from the cart. Removing a product
// that is not in the cart leaves the cart unchanged.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID primitive.ObjectID) (*models.Cart, error) {
	cart, err := s.carts.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	RemoveItem(cart, productID)
	return s.persist(ctx, cart)
}

// EmptyCart drains the cart, keeping it ACTIVE for further use.
func (s *CartService) EmptyCart(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	cart, err := s.carts.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	Clear(cart)
	cart.Status = models.CartStatusActive
	return s.persist(ctx, cart)
}

func (s *CartService) persist(ctx context.Context, cart *models.Cart) (*models.Cart, error) {
	RecomputeTotals(cart)
	cart.UpdatedAt = time.Now()
	if err := s.carts.Upsert(ctx, cart); err != nil {
		return nil, err
	}
	s.invalidateCache(cart.UserID)
	return cart, nil
}

func (s *CartService) invalidateCache(userID primitive.ObjectID) {
	if s.cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, userID); err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID.Hex()).Msg("cart cache invalidate failed")
	}
}
