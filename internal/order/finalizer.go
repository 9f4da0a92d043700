package order

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fruitshop/basket/internal/domain"
	"fruitshop/basket/internal/kv"
	"fruitshop/basket/internal/store"

	"github.com/benbjohnson/clock"
	log "github.com/sirupsen/logrus"
)

// Format controls the display date and time stored with an order
type Format struct {
	DateLayout string
	TimeLayout string
	Location   *time.Location
}

type Finalizer struct {
	basket  store.BasketStore
	storage kv.Storage
	key     string
	clock   clock.Clock
	format  Format
}

func NewFinalizer(basket store.BasketStore, storage kv.Storage, key string, clk clock.Clock, format Format) *Finalizer {
	if format.Location == nil {
		format.Location = time.Local
	}
	return &Finalizer{
		basket:  basket,
		storage: storage,
		key:     key,
		clock:   clk,
		format:  format,
	}
}

// Finalize snapshots the basket into the order slot, replacing any earlier
// order, and then clears the basket. An empty basket yields a nil order and
// nothing is written.
func (f *Finalizer) Finalize(ctx context.Context) (*domain.Order, error) {
	items, err := f.basket.Load(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		log.Debug("Checkout requested on an empty basket")
		return nil, nil
	}

	now := f.clock.Now()
	local := now.In(f.format.Location)
	order := &domain.Order{
		Items:     items,
		CreatedAt: now,
		Date:      local.Format(f.format.DateLayout),
		Time:      local.Format(f.format.TimeLayout),
	}

	data, err := json.Marshal(order)
	if err != nil {
		return nil, fmt.Errorf("failed to encode order: %w", err)
	}
	if err := f.storage.Set(ctx, f.key, string(data)); err != nil {
		return nil, fmt.Errorf("failed to save order: %w", err)
	}

	if err := f.basket.Clear(ctx); err != nil {
		return nil, err
	}

	log.Infof("✅ Order placed with %d entries at %s", len(items), order.CreatedAt.UTC().Format(domain.TimestampLayout))
	return order, nil
}

// LastOrder returns the most recent order, or nil when there is none or it
// cannot be read.
func (f *Finalizer) LastOrder(ctx context.Context) (*domain.Order, error) {
	value, ok, err := f.storage.Get(ctx, f.key)
	if err != nil {
		return nil, fmt.Errorf("failed to load last order: %w", err)
	}
	if !ok || value == "" {
		return nil, nil
	}

	var order domain.Order
	if err := json.Unmarshal([]byte(value), &order); err != nil {
		log.Errorf("❌ Error retrieving last order: %v", err)
		return nil, nil
	}

	return &order, nil
}
