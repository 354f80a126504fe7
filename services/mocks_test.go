package services

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"go-commerce/cache"
	"go-commerce/models"
)

type mockCartStore struct {
	mu        sync.Mutex
	cart      *models.Cart
	upsertErr error
	gets      int
	upserts   int
}

func (m *mockCartStore) GetByUser(_ context.Context, _ primitive.ObjectID) (*models.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	if m.cart == nil {
		return nil, ErrCartNotFound
	}
	c := cloneCart(m.cart)
	return c, nil
}

func (m *mockCartStore) Upsert(_ context.Context, cart *models.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.cart = cloneCart(cart)
	m.upserts++
	return nil
}

type mockOrderStore struct {
	mu        sync.Mutex
	orders    []*models.Order
	insertErr error
	updateErr error
}

func (m *mockOrderStore) Insert(_ context.Context, order *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.insertErr != nil {
		return m.insertErr
	}
	order.ID = primitive.NewObjectID()
	stored := *order
	m.orders = append(m.orders, &stored)
	return nil
}

func (m *mockOrderStore) Update(_ context.Context, order *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		return m.updateErr
	}
	for i, stored := range m.orders {
		if stored.ID == order.ID {
			updated := *order
			m.orders[i] = &updated
			return nil
		}
	}
	return ErrNotFound
}

type mockCouponStore struct {
	coupon *models.Coupon
	err    error
}

func (m *mockCouponStore) GetByCode(_ context.Context, code string) (*models.Coupon, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.coupon == nil || m.coupon.Code != code {
		return nil, ErrNotFound
	}
	c := *m.coupon
	return &c, nil
}

type mockProductStore struct {
	product *models.Product
	err     error
}

func (m *mockProductStore) GetByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.product == nil || m.product.ID != id {
		return nil, ErrNotFound
	}
	p := *m.product
	return &p, nil
}

type mockPayment struct {
	result PaymentResult
	err    error
	orders []*models.Order
}

func (m *mockPayment) Process(_ context.Context, order *models.Order) (PaymentResult, error) {
	m.orders = append(m.orders, order)
	if m.err != nil {
		return PaymentResult{}, m.err
	}
	return m.result, nil
}

// fakeTxRunner mimics transactional rollback over the in-memory mocks: it
// snapshots the stores before running fn and restores them when fn fails.
type fakeTxRunner struct {
	carts   *mockCartStore
	orders  *mockOrderStore
	aborted bool
}

func (r *fakeTxRunner) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	cartSnapshot := cloneCart(r.carts.cart)
	orderCount := len(r.orders.orders)

	if err := fn(ctx); err != nil {
		r.carts.cart = cartSnapshot
		r.orders.orders = r.orders.orders[:orderCount]
		r.aborted = true
		return err
	}
	return nil
}

type mockCache struct {
	mu      sync.RWMutex
	cart    *models.Cart
	err     error
	deletes int
}

func (m *mockCache) Get(context.Context, primitive.ObjectID) (*models.Cart, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	if m.cart == nil {
		return nil, cache.ErrCacheMiss
	}
	return cloneCart(m.cart), nil
}

func (m *mockCache) Set(_ context.Context, _ primitive.ObjectID, cart *models.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.cart = cloneCart(cart)
	return nil
}

func (m *mockCache) Delete(context.Context, primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cart = nil
	m.deletes++
	return nil
}

func cloneCart(cart *models.Cart) *models.Cart {
	if cart == nil {
		return nil
	}
	c := *cart
	c.Items = make([]models.CartItem, len(cart.Items))
	copy(c.Items, cart.Items)
	return &c
}
