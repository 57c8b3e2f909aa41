package menu

import (
	"context"
	"sort"
	"sync"
)

type InMemoryRepository struct {
	mu     sync.Mutex
	items  map[int64]MenuItem
	nextID int64
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		items:  make(map[int64]MenuItem),
		nextID: 1,
	}
}

// clone deep-copies option groups so callers can't mutate stored state.
func clone(item MenuItem) MenuItem {
	if item.Options == nil {
		return item
	}
	groups := make([]OptionGroup, len(item.Options))
	for i, g := range item.Options {
		groups[i] = g
		groups[i].Choices = append([]OptionChoice(nil), g.Choices...)
	}
	item.Options = groups
	return item
}

func (r *InMemoryRepository) List(_ context.Context) ([]MenuItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := make([]MenuItem, 0, len(r.items))
	for _, item := range r.items {
		items = append(items, clone(item))
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Category != items[j].Category {
			return items[i].Category < items[j].Category
		}
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return items[i].ID < items[j].ID
	})
	return items, nil
}

func (r *InMemoryRepository) Get(_ context.Context, id int64) (*MenuItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return nil, ErrItemNotFound
	}
	cp := clone(item)
	return &cp, nil
}

func (r *InMemoryRepository) Count(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items), nil
}

func (r *InMemoryRepository) Create(_ context.Context, item *MenuItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item.ID = r.nextID
	r.nextID++
	r.items[item.ID] = clone(*item)
	return nil
}

func (r *InMemoryRepository) Update(_ context.Context, item *MenuItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ID]; !ok {
		return ErrItemNotFound
	}
	r.items[item.ID] = clone(*item)
	return nil
}

func (r *InMemoryRepository) SetImage(_ context.Context, id int64, url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return ErrItemNotFound
	}
	item.ImageURL = &url
	r.items[id] = item
	return nil
}

func (r *InMemoryRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return ErrItemNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *InMemoryRepository) Clear(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = make(map[int64]MenuItem)
	return nil
}
