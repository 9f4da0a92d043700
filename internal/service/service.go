package service

import (
	"context"
	"fmt"
	"strings"

	"fruitshop/basket/internal/basket"
	"fruitshop/basket/internal/domain"
	"fruitshop/basket/internal/order"
	"fruitshop/basket/internal/store"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const (
	MsgItemAdded    = "Item added to basket!"
	MsgRequestAdded = "Product request added to basket!"
	MsgOrderPlaced  = "Order placed!"
)

// RequestForm is the user input for a requested (non-catalog) item
type RequestForm struct {
	Name        string `validate:"required"`
	Description string `validate:"required"`
	Link        string `validate:"omitempty,url"`
}

func (f RequestForm) trimmed() RequestForm {
	return RequestForm{
		Name:        strings.TrimSpace(f.Name),
		Description: strings.TrimSpace(f.Description),
		Link:        strings.TrimSpace(f.Link),
	}
}

// Service is what the basket UI calls on user gestures. After every
// mutation it refreshes the basket count through the notifier.
type Service struct {
	catalog   *domain.Catalog
	basket    store.BasketStore
	finalizer *order.Finalizer
	notifier  Notifier
	validate  *validator.Validate
}

func NewService(
	catalog *domain.Catalog,
	basket store.BasketStore,
	finalizer *order.Finalizer,
	notifier Notifier,
) *Service {
	if notifier == nil {
		notifier = NewLogNotifier()
	}
	return &Service{
		catalog:   catalog,
		basket:    basket,
		finalizer: finalizer,
		notifier:  notifier,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
	}
}

// AddToBasket appends a catalog pick. An empty variant means "regular".
// Products are not checked against the catalog here; unknown ones are
// dropped when the basket is summarized.
func (s *Service) AddToBasket(ctx context.Context, productID, variantID string) error {
	if err := s.basket.Append(ctx, domain.NewPickEntry(productID, variantID)); err != nil {
		return err
	}

	s.notifier.Clear()
	s.notifier.Success(MsgItemAdded)
	s.refreshIndicator(ctx)
	return nil
}

// AddRequestedItem validates the form and appends a new requested item
// with a fresh id. Invalid input is reported and nothing is stored.
func (s *Service) AddRequestedItem(ctx context.Context, form RequestForm) (domain.RequestedItem, error) {
	form, err := s.validateForm(form)
	if err != nil {
		return domain.RequestedItem{}, err
	}

	id, err := newRequestID()
	if err != nil {
		return domain.RequestedItem{}, err
	}

	item := domain.RequestedItem{
		ID:          id,
		Name:        form.Name,
		Description: form.Description,
		Link:        form.Link,
	}
	if err := s.basket.Append(ctx, domain.NewRequestEntry(item)); err != nil {
		return domain.RequestedItem{}, err
	}

	s.notifier.Clear()
	s.notifier.Success(MsgRequestAdded)
	s.refreshIndicator(ctx)
	return item, nil
}

// EditRequestedItem replaces the fields of a requested item. It reports
// false when no requested item has that id.
func (s *Service) EditRequestedItem(ctx context.Context, id string, form RequestForm) (bool, error) {
	form, err := s.validateForm(form)
	if err != nil {
		return false, err
	}

	found, err := s.basket.UpdateByID(ctx, id, store.RequestFields{
		Name:        form.Name,
		Description: form.Description,
		Link:        form.Link,
	})
	if err != nil || !found {
		return found, err
	}

	s.refreshIndicator(ctx)
	return true, nil
}

func (s *Service) RemoveRequestedItem(ctx context.Context, id string) (bool, error) {
	removed, err := s.basket.RemoveByID(ctx, id)
	if err != nil || !removed {
		return removed, err
	}

	s.refreshIndicator(ctx)
	return true, nil
}

// Summary groups the current basket for rendering
func (s *Service) Summary(ctx context.Context) (basket.Summary, error) {
	entries, err := s.basket.Load(ctx)
	if err != nil {
		return basket.Summary{}, err
	}
	return basket.Aggregate(s.catalog, entries), nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.basket.Count(ctx)
}

// Checkout turns the basket into the last order. It returns nil when the
// basket was empty.
func (s *Service) Checkout(ctx context.Context) (*domain.Order, error) {
	placed, err := s.finalizer.Finalize(ctx)
	if err != nil {
		return nil, err
	}

	s.notifier.Clear()
	if placed != nil {
		s.notifier.Success(MsgOrderPlaced)
	}
	s.refreshIndicator(ctx)
	return placed, nil
}

func (s *Service) LastOrder(ctx context.Context) (*domain.Order, error) {
	return s.finalizer.LastOrder(ctx)
}

func (s *Service) validateForm(form RequestForm) (RequestForm, error) {
	form = form.trimmed()
	if err := s.validate.Struct(form); err != nil {
		verr := fromValidatorError(err)
		s.notifier.Error(verr.Message())
		return form, verr
	}
	return form, nil
}

func (s *Service) refreshIndicator(ctx context.Context) {
	count, err := s.basket.Count(ctx)
	if err != nil {
		log.Warnf("⚠️ Failed to refresh basket indicator: %v", err)
		return
	}
	s.notifier.BasketChanged(count)
}

// newRequestID combines a millisecond timestamp with random bits (UUIDv7)
func newRequestID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate request id: %w", err)
	}
	return "custom-" + id.String(), nil
}
