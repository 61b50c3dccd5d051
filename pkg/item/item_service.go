package item

import (
	"context"
	"time"

	"github.com/nairaplan/nairaplan/internal/utils"
	"github.com/nairaplan/nairaplan/pkg/currency"
	log "github.com/sirupsen/logrus"
)

// ItemUpdate carries the only fields an update may change. Currency and
// creation time are frozen once an item exists.
type ItemUpdate struct {
	Text     string
	Budgeted float64
	Spent    float64
}

type ItemService interface {
	List(ctx context.Context) ([]Item, error)
	ListRange(ctx context.Context, from, to time.Time) ([]Item, error)
	Create(ctx context.Context, item Item) (Item, error)
	Update(ctx context.Context, id string, update ItemUpdate) (Item, error)
	Delete(ctx context.Context, id string) error
}

type ItemServiceImpl struct {
	repo  ItemRepo
	clock utils.Clock
}

func NewItemServiceImpl(repo ItemRepo, clock utils.Clock) *ItemServiceImpl {
	return &ItemServiceImpl{repo: repo, clock: clock}
}

func (s *ItemServiceImpl) List(ctx context.Context) ([]Item, error) {
	return s.repo.FindAll(ctx)
}

func (s *ItemServiceImpl) ListRange(ctx context.Context, from, to time.Time) ([]Item, error) {
	return s.repo.FindByTimeRange(ctx, from, to)
}

func (s *ItemServiceImpl) Create(ctx context.Context, item Item) (Item, error) {
	if item.Currency == "" {
		item.Currency = currency.NGN
	}
	rate := currency.Rate(item.Currency)
	item.ConvertedBudgetedNGN = item.Budgeted * rate
	item.ConvertedSpentNGN = item.Spent * rate
	item.Time = s.clock.Now()
	item.Completed = false

	id, err := s.repo.Store(ctx, item)
	if err != nil {
		return Item{}, err
	}
	item.ID = id

	return item, nil
}

func (s *ItemServiceImpl) Update(ctx context.Context, id string, update ItemUpdate) (Item, error) {
	existing, err := s.repo.FindById(ctx, id)
	if err != nil {
		return Item{}, err
	}

	// Recompute the converted amounts with the stored currency; the request
	// cannot change it.
	rate := currency.Rate(existing.Currency)
	updated := existing
	updated.Text = update.Text
	updated.Budgeted = update.Budgeted
	updated.Spent = update.Spent
	updated.ConvertedBudgetedNGN = update.Budgeted * rate
	updated.ConvertedSpentNGN = update.Spent * rate

	ok, err := s.repo.Update(ctx, updated)
	if err != nil {
		return Item{}, err
	}
	if !ok {
		log.Warnf("item not updated, probably because it does not exist (%s)", id)
		return Item{}, ErrItemNotFound
	}
	return updated, nil
}

func (s *ItemServiceImpl) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
