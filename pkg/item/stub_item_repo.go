package item

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type StubItemRepo struct {
	order []string
	data  map[string]Item
}

func NewStubItemRepo() *StubItemRepo {
	return &StubItemRepo{
		order: []string{},
		data:  map[string]Item{},
	}
}

func (s *StubItemRepo) Store(ctx context.Context, item Item) (string, error) {
	id := uuid.NewString()
	item.ID = id
	s.order = append(s.order, id)
	s.data[id] = item
	return id, nil
}

func (s *StubItemRepo) FindAll(ctx context.Context) ([]Item, error) {
	items := make([]Item, 0, len(s.data))
	for _, id := range s.order {
		items = append(items, s.data[id])
	}
	return items, nil
}

func (s *StubItemRepo) FindById(ctx context.Context, id string) (Item, error) {
	item, ok := s.data[id]
	if !ok {
		return Item{}, ErrItemNotFound
	}
	return item, nil
}

func (s *StubItemRepo) FindByTimeRange(ctx context.Context, from, to time.Time) ([]Item, error) {
	items := make([]Item, 0, len(s.data))
	for _, id := range s.order {
		item := s.data[id]
		if !item.Time.Before(from) && !item.Time.After(to) {
			items = append(items, item)
		}
	}
	return items, nil
}

func (s *StubItemRepo) Update(ctx context.Context, item Item) (bool, error) {
	if _, ok := s.data[item.ID]; !ok {
		return false, nil
	}
	s.data[item.ID] = item
	return true, nil
}

func (s *StubItemRepo) Delete(ctx context.Context, id string) error {
	if _, ok := s.data[id]; ok {
		delete(s.data, id)
		for i, storedId := range s.order {
			if storedId == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
	return nil
}

func (s *StubItemRepo) Cleanup() {
	s.order = []string{}
	s.data = map[string]Item{}
}
