package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/AlibekovAA/app-registry/internal/registry/domain"
)

type storedApp struct {
	users []domain.User
}

type MemoryRepository struct {
	mu         sync.RWMutex
	apps       map[string]storedApp
	order      []string
	lastUserID int64
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{apps: make(map[string]storedApp)}
}

func (r *MemoryRepository) List(ctx context.Context) ([]*domain.App, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	apps := make([]*domain.App, 0, len(r.order))
	for _, id := range r.order {
		apps = append(apps, domain.Restore(id, r.apps[id].users))
	}
	return apps, nil
}

func (r *MemoryRepository) Get(ctx context.Context, id string) (*domain.App, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.apps[id]
	if !ok {
		return nil, domain.ErrAppNotFound
	}
	return domain.Restore(id, stored.users), nil
}

func (r *MemoryRepository) Save(ctx context.Context, app *domain.App) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, known := r.apps[app.ID()]
	if known {
		present := make(map[int64]struct{}, len(existing.users))
		for _, u := range existing.users {
			id, _ := u.ID()
			present[id] = struct{}{}
		}
		for _, u := range app.Users() {
			if id, ok := u.ID(); ok {
				if _, found := present[id]; !found {
					return ErrStaleSnapshot
				}
			}
		}
	}

	next := r.lastUserID
	if err := app.AssignUserIDs(func(domain.User) (int64, error) {
		next++
		return next, nil
	}); err != nil {
		return fmt.Errorf("failed to assign user ids: %w", err)
	}
	r.lastUserID = next

	if !known {
		r.order = append(r.order, app.ID())
	}
	r.apps[app.ID()] = storedApp{users: app.Users()}
	return nil
}
