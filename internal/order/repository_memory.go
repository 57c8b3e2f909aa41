package order

import (
	"context"
	"sort"
	"sync"
	"time"
)

type InMemoryRepository struct {
	mu     sync.Mutex
	orders map[int64]Order
	nextID int64
	now    func() time.Time
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		orders: make(map[int64]Order),
		nextID: 1,
		now:    time.Now,
	}
}

func cloneOrder(o Order) Order {
	lines := make([]Line, len(o.Items))
	for i, l := range o.Items {
		lines[i] = l
		lines[i].Options = append([]SelectedOption{}, l.Options...)
	}
	o.Items = lines
	return o
}

func (r *InMemoryRepository) Create(_ context.Context, order *Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order.ID = r.nextID
	order.CreatedAt = r.now().UTC()
	r.nextID++
	r.orders[order.ID] = cloneOrder(*order)
	return nil
}

func (r *InMemoryRepository) ListAll(_ context.Context) ([]Order, error) {
	return r.filter(func(Order) bool { return true }), nil
}

func (r *InMemoryRepository) ListByUser(_ context.Context, userID int64) ([]Order, error) {
	return r.filter(func(o Order) bool { return o.UserID == userID }), nil
}

func (r *InMemoryRepository) filter(keep func(Order) bool) []Order {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Order, 0, len(r.orders))
	for _, o := range r.orders {
		if keep(o) {
			out = append(out, cloneOrder(o))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (r *InMemoryRepository) MarkServed(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[id]
	if !ok {
		return ErrOrderNotFound
	}
	o.Served = true
	r.orders[id] = o
	return nil
}

func (r *InMemoryRepository) Clear(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.orders = make(map[int64]Order)
	return nil
}
