// Package service wires validation, enrichment and side effects around the
// lifecycle primitives. Handlers talk to services, services talk to managers
// and repositories.
package service

import (
	"context"
	"fmt"
	"time"

	"estoquerapido/internal/event"
	"estoquerapido/internal/lifecycle"
	"estoquerapido/internal/model"
	"estoquerapido/internal/recyclebin"
)

// Catalog carries the lifecycle operations every entity kind shares. The
// per-kind services embed it and add validation and enrichment on top.
type Catalog[T recyclebin.Entity] struct {
	manager *recyclebin.Manager[T]
	repo    recyclebin.EntityRepository[T]
	bus     event.Bus
}

func NewCatalog[T recyclebin.Entity](manager *recyclebin.Manager[T], repo recyclebin.EntityRepository[T], bus event.Bus) Catalog[T] {
	return Catalog[T]{manager: manager, repo: repo, bus: bus}
}

func (c *Catalog[T]) Manager() *recyclebin.Manager[T] { return c.manager }

func (c *Catalog[T]) Get(ctx context.Context, companyID string, id string) (T, error) {
	return c.repo.Get(ctx, companyID, id)
}

func (c *Catalog[T]) List(ctx context.Context, companyID string) ([]T, error) {
	return c.manager.ListActive(ctx, companyID)
}

func (c *Catalog[T]) SoftDelete(ctx context.Context, op lifecycle.Context, id string) (T, error) {
	return c.manager.SoftDelete(ctx, op, id)
}

func (c *Catalog[T]) Archive(ctx context.Context, op lifecycle.Context, id string) (T, error) {
	return c.manager.Archive(ctx, op, id)
}

func (c *Catalog[T]) Deactivate(ctx context.Context, op lifecycle.Context, id string) (T, error) {
	return c.manager.Deactivate(ctx, op, id)
}

func (c *Catalog[T]) Activate(ctx context.Context, op lifecycle.Context, id string) (T, error) {
	return c.manager.Activate(ctx, op, id)
}

func (c *Catalog[T]) Restore(ctx context.Context, op lifecycle.Context, id string) (T, error) {
	return c.manager.Restore(ctx, op, id)
}

// create stamps and persists a brand-new entity, then announces it on the
// bus. Callers fill the entity's fields before handing it over.
func (c *Catalog[T]) create(ctx context.Context, op lifecycle.Context, entity T) (T, error) {
	var zero T
	if err := op.Validate(); err != nil {
		return zero, err
	}
	if err := lifecycle.StampCreate(entity.Lifecycle(), op.Actor, op.Now); err != nil {
		return zero, err
	}
	saved, err := c.repo.Save(ctx, entity)
	if err != nil {
		return zero, err
	}
	c.announce(saved.EntityID(), op.Actor.ID)
	return saved, nil
}

// update applies mutate to the stored entity, refreshes the update stamp and
// persists. Status never changes here; lifecycle moves go through the
// manager.
func (c *Catalog[T]) update(ctx context.Context, op lifecycle.Context, id string, mutate func(T) error) (T, error) {
	var zero T
	if err := op.Validate(); err != nil {
		return zero, err
	}
	entity, err := c.repo.Get(ctx, op.CompanyID, id)
	if err != nil {
		return zero, err
	}
	if err := mutate(entity); err != nil {
		return zero, err
	}
	if err := lifecycle.StampUpdate(entity.Lifecycle(), op.Actor, op.Now); err != nil {
		return zero, err
	}
	saved, err := c.repo.Save(ctx, entity)
	if err != nil {
		return zero, err
	}
	c.announce(saved.EntityID(), op.Actor.ID)
	return saved, nil
}

func (c *Catalog[T]) announce(entityID string, actorID string) {
	if c.bus == nil {
		return
	}
	c.bus.Publish(event.New(event.EntityUpdated(c.manager.Kind()), map[string]string{"id": entityID}, actorID))
	c.bus.Publish(event.New(event.TypeDashboardRefreshed, nil, actorID))
}

// BinView is the read side of one kind's recycle bin, consumed by the
// recycle-bin handler without knowing the entity type.
type BinView interface {
	Kind() model.Kind
	RecycleBin(ctx context.Context, companyID string, now time.Time) ([]recyclebin.Entry, int, error)
	CountDeleted(ctx context.Context, companyID string) (int, error)
}

func requireName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", model.ErrInvalidInput)
	}
	return nil
}
