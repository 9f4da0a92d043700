package store

import (
	"context"
	"encoding/json"
	"fmt"

	"fruitshop/basket/internal/domain"
	"fruitshop/basket/internal/kv"

	log "github.com/sirupsen/logrus"
)

// RequestFields are the editable fields of a requested item
type RequestFields struct {
	Name        string
	Description string
	Link        string
}

// BasketStore is the only owner of the basket slot. Every call is a full
// read-modify-write of the slot; callers are expected to run sequentially.
type BasketStore interface {
	Load(ctx context.Context) ([]domain.RawEntry, error)
	Append(ctx context.Context, entry domain.RawEntry) error
	Clear(ctx context.Context) error
	RemoveByID(ctx context.Context, id string) (bool, error)
	UpdateByID(ctx context.Context, id string, fields RequestFields) (bool, error)
	Count(ctx context.Context) (int, error)
}

type basketStore struct {
	storage kv.Storage
	key     string
}

func NewBasketStore(storage kv.Storage, key string) BasketStore {
	return &basketStore{
		storage: storage,
		key:     key,
	}
}

// Load returns the persisted basket. A missing slot, unparseable JSON or a
// non-array value all read as an empty basket.
func (s *basketStore) Load(ctx context.Context) ([]domain.RawEntry, error) {
	value, ok, err := s.storage.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to load basket: %w", err)
	}
	if !ok || value == "" {
		return []domain.RawEntry{}, nil
	}

	var entries []domain.RawEntry
	if err := json.Unmarshal([]byte(value), &entries); err != nil {
		log.Warnf("⚠️ Error parsing basket from slot %s, treating as empty: %v", s.key, err)
		return []domain.RawEntry{}, nil
	}
	if entries == nil {
		// literal null
		log.Warnf("⚠️ Basket slot %s holds null, treating as empty", s.key)
		return []domain.RawEntry{}, nil
	}

	return entries, nil
}

func (s *basketStore) Append(ctx context.Context, entry domain.RawEntry) error {
	entries, err := s.Load(ctx)
	if err != nil {
		return err
	}

	entries = append(entries, entry)
	return s.save(ctx, entries)
}

// Clear removes the slot entirely
func (s *basketStore) Clear(ctx context.Context) error {
	if err := s.storage.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("failed to clear basket: %w", err)
	}
	return nil
}

func (s *basketStore) RemoveByID(ctx context.Context, id string) (bool, error) {
	entries, err := s.Load(ctx)
	if err != nil {
		return false, err
	}

	index := findRequested(entries, id)
	if index < 0 {
		return false, nil
	}

	entries = append(entries[:index], entries[index+1:]...)
	if err := s.save(ctx, entries); err != nil {
		return false, err
	}

	log.Debugf("Removed requested item %s from basket", id)
	return true, nil
}

// UpdateByID rewrites name, description and link of a requested item in
// place. Other fields of the stored object are kept as they are.
func (s *basketStore) UpdateByID(ctx context.Context, id string, fields RequestFields) (bool, error) {
	entries, err := s.Load(ctx)
	if err != nil {
		return false, err
	}

	index := findRequested(entries, id)
	if index < 0 {
		return false, nil
	}

	var object map[string]json.RawMessage
	if err := json.Unmarshal(entries[index], &object); err != nil {
		return false, fmt.Errorf("failed to decode requested item %s: %w", id, err)
	}
	for key, value := range map[string]string{
		"name":        fields.Name,
		"description": fields.Description,
		"link":        fields.Link,
	} {
		encoded, err := json.Marshal(value)
		if err != nil {
			return false, fmt.Errorf("failed to encode %s of requested item %s: %w", key, id, err)
		}
		object[key] = encoded
	}

	updated, err := json.Marshal(object)
	if err != nil {
		return false, fmt.Errorf("failed to encode requested item %s: %w", id, err)
	}
	entries[index] = updated

	if err := s.save(ctx, entries); err != nil {
		return false, err
	}

	return true, nil
}

func (s *basketStore) Count(ctx context.Context) (int, error) {
	entries, err := s.Load(ctx)
	if err != nil {
		return 0, err
	}
	return len(entries), nil
}

func (s *basketStore) save(ctx context.Context, entries []domain.RawEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode basket: %w", err)
	}

	if err := s.storage.Set(ctx, s.key, string(data)); err != nil {
		return fmt.Errorf("failed to save basket: %w", err)
	}
	return nil
}

// findRequested never matches an empty id, so items stored without one
// cannot be targeted.
func findRequested(entries []domain.RawEntry, id string) int {
	if id == "" {
		return -1
	}
	for i, raw := range entries {
		entry, err := domain.Normalize(raw)
		if err != nil {
			continue
		}
		if item, ok := entry.(domain.RequestedItem); ok && item.ID == id {
			return i
		}
	}
	return -1
}
