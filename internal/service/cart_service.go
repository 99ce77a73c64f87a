package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gomarketplace/cart-service/internal/domain/entity"
	"github.com/gomarketplace/cart-service/internal/platform/logger"
	"github.com/gomarketplace/cart-service/internal/platform/metrics"
	"github.com/gomarketplace/cart-service/internal/repository"
	"github.com/google/uuid"
)

const DefaultStorageKey = "@GoMarketplace:cart"

var ErrNotLoaded = errors.New("cart store has not been loaded")

const (
	outcomeOK    = "ok"
	outcomeNoop  = "noop"
	outcomeError = "error"
)

// CartStore is the process-wide cart handle. It is created once at startup,
// populated by Load and injected into every consumer.
type CartStore interface {
	Load(ctx context.Context) error
	Cart(ctx context.Context) (*entity.Cart, error)
	AddToCart(ctx context.Context, product entity.Product) (*entity.Cart, error)
	Increment(ctx context.Context, id string) (*entity.Cart, error)
	Decrement(ctx context.Context, id string) (*entity.Cart, error)
	Clear(ctx context.Context) error
}

type CartEventPublisher interface {
	PublishCartUpdated(ctx context.Context, event entity.CartEvent) error
}

type CartStoreConfig struct {
	StorageKey string
	TTL        time.Duration
}

type cartStore struct {
	// mu is held across the snapshot write so read-modify-write steps never interleave.
	mu     sync.Mutex
	cart   *entity.Cart
	loaded bool
	// version counts committed mutations; events carry it and are published under mu.
	version uint64

	repo      repository.CartSnapshotRepository
	publisher CartEventPublisher
	log       logger.Logger
	metrics   *metrics.MetricsManager
	key       string
	ttl       time.Duration
	now       func() time.Time
}

// NewCartStore builds an empty, unloaded store. publisher and m may be nil.
func NewCartStore(
	repo repository.CartSnapshotRepository,
	publisher CartEventPublisher,
	log logger.Logger,
	m *metrics.MetricsManager,
	cfg CartStoreConfig,
) CartStore {
	key := cfg.StorageKey
	if key == "" {
		key = DefaultStorageKey
	}
	ttl := cfg.TTL
	if ttl < 0 {
		ttl = 0
	}

	return &cartStore{
		cart:      entity.NewCart(),
		repo:      repo,
		publisher: publisher,
		log:       log.With("component", "cart_store", "storage_key", key),
		metrics:   m,
		key:       key,
		ttl:       ttl,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *cartStore) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return nil
	}

	started := time.Now()
	blob, err := s.repo.Load(ctx, s.key)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		s.metrics.ObservePersist("load", started, err)
		s.metrics.ObserveOperation(entity.OperationLoad, outcomeError)
		s.log.Errorf("Failed to read cart snapshot: %v", err)
		return fmt.Errorf("could not load cart: %w", err)
	}
	s.metrics.ObservePersist("load", started, nil)

	s.cart = s.decodeSnapshot(blob, err)
	s.loaded = true
	s.metrics.SetLineItems(len(s.cart.Items))
	s.metrics.ObserveOperation(entity.OperationLoad, outcomeOK)
	s.log.Infof("Cart loaded with %d line items", len(s.cart.Items))
	return nil
}

// decodeSnapshot treats a missing or unreadable blob as an empty cart.
func (s *cartStore) decodeSnapshot(blob []byte, loadErr error) *entity.Cart {
	if errors.Is(loadErr, repository.ErrNotFound) || len(blob) == 0 {
		s.log.Infof("No persisted cart found, starting empty")
		return entity.NewCart()
	}

	var items []entity.LineItem
	if err := json.Unmarshal(blob, &items); err != nil {
		s.log.Warnf("Persisted cart is not valid JSON, starting empty: %v", err)
		return entity.NewCart()
	}

	cart, dropped := entity.NewCartFromItems(items)
	if dropped > 0 {
		s.log.Warnw("Dropped invalid items from persisted cart", "dropped", dropped)
	}
	return cart
}

func (s *cartStore) Cart(ctx context.Context) (*entity.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return nil, ErrNotLoaded
	}
	return s.cart.Clone(), nil
}

func (s *cartStore) AddToCart(ctx context.Context, product entity.Product) (*entity.Cart, error) {
	s.log.Infof("Adding product to cart: ID=%s", product.ID)
	return s.mutate(ctx, entity.OperationAddToCart, product.ID, func(c *entity.Cart) error {
		return c.AddProduct(product)
	})
}

func (s *cartStore) Increment(ctx context.Context, id string) (*entity.Cart, error) {
	s.log.Infof("Incrementing cart item: ID=%s", id)
	return s.mutate(ctx, entity.OperationIncrement, id, func(c *entity.Cart) error {
		return c.Increment(id)
	})
}

func (s *cartStore) Decrement(ctx context.Context, id string) (*entity.Cart, error) {
	s.log.Infof("Decrementing cart item: ID=%s", id)
	return s.mutate(ctx, entity.OperationDecrement, id, func(c *entity.Cart) error {
		return c.Decrement(id)
	})
}

func (s *cartStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	if !s.loaded {
		s.mu.Unlock()
		return ErrNotLoaded
	}

	started := time.Now()
	err := s.repo.Delete(ctx, s.key)
	s.metrics.ObservePersist("delete", started, err)
	if err != nil {
		s.mu.Unlock()
		s.metrics.ObserveOperation(entity.OperationClear, outcomeError)
		s.log.Errorf("Error deleting cart snapshot: %v", err)
		return fmt.Errorf("could not clear cart: %w", err)
	}

	s.cart = entity.NewCart()
	s.version++
	s.metrics.SetLineItems(0)
	s.publish(ctx, entity.OperationClear, s.cart)
	s.mu.Unlock()

	s.metrics.ObserveOperation(entity.OperationClear, outcomeOK)
	s.log.Info("Cart cleared successfully")
	return nil
}

// mutate applies fn to a copy of the cart, persists the copy and only then
// commits it to memory. A missing id leaves the cart untouched and skips the write.
func (s *cartStore) mutate(ctx context.Context, op, id string, fn func(*entity.Cart) error) (*entity.Cart, error) {
	s.mu.Lock()
	if !s.loaded {
		s.mu.Unlock()
		return nil, ErrNotLoaded
	}

	next := s.cart.Clone()
	if err := fn(next); err != nil {
		if errors.Is(err, entity.ErrItemNotFound) {
			unchanged := s.cart.Clone()
			s.mu.Unlock()
			s.metrics.ObserveOperation(op, outcomeNoop)
			s.log.Warnw("Item not in cart, nothing to do", "operation", op, "id", id)
			return unchanged, nil
		}
		s.mu.Unlock()
		s.metrics.ObserveOperation(op, outcomeError)
		s.log.Errorf("Error applying %s to cart: %v", op, err)
		return nil, err
	}

	if err := s.save(ctx, next); err != nil {
		s.mu.Unlock()
		s.metrics.ObserveOperation(op, outcomeError)
		s.log.Errorf("Error saving cart after %s: %v", op, err)
		return nil, fmt.Errorf("could not save cart: %w", err)
	}

	s.cart = next
	s.version++
	s.metrics.SetLineItems(len(next.Items))
	s.publish(ctx, op, next)
	snapshot := next.Clone()
	s.mu.Unlock()

	s.metrics.ObserveOperation(op, outcomeOK)
	return snapshot, nil
}

func (s *cartStore) save(ctx context.Context, cart *entity.Cart) error {
	blob, err := json.Marshal(cart.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}

	started := time.Now()
	err = s.repo.Save(ctx, s.key, blob, s.ttl)
	s.metrics.ObservePersist("save", started, err)
	return err
}

// publish must be called with mu held so events leave in commit order.
func (s *cartStore) publish(ctx context.Context, op string, cart *entity.Cart) {
	if s.publisher == nil {
		return
	}

	snapshot := cart.Clone()
	event := entity.CartEvent{
		EventID:    uuid.NewString(),
		Version:    s.version,
		Operation:  op,
		Items:      snapshot.Items,
		Summary:    snapshot.Summary(),
		OccurredAt: s.now(),
	}
	if err := s.publisher.PublishCartUpdated(ctx, event); err != nil {
		s.log.Warnf("Failed to publish cart event for %s: %v", op, err)
	}
}
