package auth

import (
	"context"
	"sort"
	"sync"
	"time"
)

type InMemoryUserRepository struct {
	mu     sync.Mutex
	users  map[int64]*User
	nextID int64
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		users:  make(map[int64]*User),
		nextID: 1,
	}
}

func (r *InMemoryUserRepository) Create(_ context.Context, user *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email {
			return ErrEmailTaken
		}
	}
	if user.IsMaster {
		for _, u := range r.users {
			u.IsMaster = false
		}
	}

	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now().UTC()

	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *InMemoryUserRepository) FindByEmail(_ context.Context, email string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *InMemoryUserRepository) FindByID(_ context.Context, id int64) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *InMemoryUserRepository) FindMaster(_ context.Context) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.IsMaster {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *InMemoryUserRepository) List(_ context.Context) ([]*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*User, 0, len(r.users))
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *InMemoryUserRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *InMemoryUserRepository) AssignMaster(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	target, ok := r.users[id]
	if !ok {
		return ErrUserNotFound
	}
	for _, u := range r.users {
		u.IsMaster = false
	}
	target.IsMaster = true
	return nil
}
