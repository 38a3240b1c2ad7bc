// Package recyclebin implements the soft-delete lifecycle shared by every
// recyclable entity kind: soft delete, archive, restore, purge, and the
// recycle-bin view the UI renders.
package recyclebin

import (
	"context"
	"fmt"
	"time"

	"estoquerapido/internal/event"
	"estoquerapido/internal/lifecycle"
	"estoquerapido/internal/model"
)

// DefaultRetention is how long a DELETED entity is kept before it becomes
// eligible for purge.
const DefaultRetention = 90 * 24 * time.Hour

// Entity is what the manager needs from a recyclable record.
type Entity interface {
	EntityID() string
	Scope() string
	DisplayName() string
	// ObjectKey is the bucket key of the entity's side object (logo, product
	// image), or "" when it has none.
	ObjectKey() string
	Lifecycle() *model.Audit
}

// EntityRepository is the persistence capability the manager is parameterized
// over. Save is an atomic upsert that assigns an id on first persist; Delete
// is a hard delete and is reserved for purging. ListByStatus iterates in a
// deterministic order: display name ascending, id as tiebreak.
type EntityRepository[T Entity] interface {
	Get(ctx context.Context, companyID string, id string) (T, error)
	Save(ctx context.Context, entity T) (T, error)
	Delete(ctx context.Context, companyID string, id string) error
	ListByStatus(ctx context.Context, companyID string, statuses ...model.Status) ([]T, error)
	CountByStatus(ctx context.Context, companyID string, status model.Status) (int, error)
	ListDeletedBefore(ctx context.Context, cutoff time.Time) ([]T, error)
}

// Entry is one row of the recycle-bin view.
type Entry struct {
	Kind      model.Kind   `json:"kind"`
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Status    model.Status `json:"status"`
	Since     time.Time    `json:"since"`
	DaysLeft  int          `json:"days_left"`
	Retention string       `json:"retention"`
}

// Candidate is a purge-eligible entity as seen by the sweeper.
type Candidate struct {
	Kind      model.Kind
	ID        string
	CompanyID string
	Name      string
	ObjectKey string
	DeletedAt time.Time
}

// Purger is the non-generic face of a Manager, consumed by the sweeper.
type Purger interface {
	Kind() model.Kind
	ExpiredCandidates(ctx context.Context, now time.Time) ([]Candidate, error)
	Purge(ctx context.Context, companyID string, id string, now time.Time) error
}

// Manager enforces the status transition table and audit invariants for one
// entity kind. Every operation either succeeds and returns the audited entity
// or fails with a typed error; there is no partial-transition state.
type Manager[T Entity] struct {
	kind      model.Kind
	repo      EntityRepository[T]
	bus       event.Bus
	retention time.Duration
}

func NewManager[T Entity](kind model.Kind, repo EntityRepository[T], bus event.Bus, retention time.Duration) *Manager[T] {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &Manager[T]{kind: kind, repo: repo, bus: bus, retention: retention}
}

func (m *Manager[T]) Kind() model.Kind {
	return m.kind
}

func (m *Manager[T]) Retention() time.Duration {
	return m.retention
}

// SoftDelete moves an entity into the recycle bin and starts its retention
// clock.
func (m *Manager[T]) SoftDelete(ctx context.Context, op lifecycle.Context, id string) (T, error) {
	return m.transition(ctx, op, id, model.StatusDeleted)
}

// Archive puts an entity on a long-term hold without a retention clock.
func (m *Manager[T]) Archive(ctx context.Context, op lifecycle.Context, id string) (T, error) {
	return m.transition(ctx, op, id, model.StatusArchived)
}

// Deactivate hides an entity from pickers while keeping it referenceable.
func (m *Manager[T]) Deactivate(ctx context.Context, op lifecycle.Context, id string) (T, error) {
	return m.transition(ctx, op, id, model.StatusInactive)
}

// Activate re-enables an INACTIVE entity.
func (m *Manager[T]) Activate(ctx context.Context, op lifecycle.Context, id string) (T, error) {
	var zero T
	entity, err := m.repo.Get(ctx, op.CompanyID, id)
	if err != nil {
		return zero, err
	}
	if entity.Lifecycle().Status != model.StatusInactive {
		return zero, fmt.Errorf("%w: activate requires INACTIVE, entity is %s",
			model.ErrInvalidTransition, entity.Lifecycle().Status)
	}
	return m.save(ctx, op, entity, model.StatusActive)
}

// Restore brings an ARCHIVED or DELETED entity back to ACTIVE. Restore never
// returns to INACTIVE: the user's intent is to make the entity usable again.
func (m *Manager[T]) Restore(ctx context.Context, op lifecycle.Context, id string) (T, error) {
	var zero T
	if err := op.Validate(); err != nil {
		return zero, err
	}
	entity, err := m.repo.Get(ctx, op.CompanyID, id)
	if err != nil {
		return zero, err
	}
	if !entity.Lifecycle().Status.InRecycleBin() {
		return zero, fmt.Errorf("%w: restore requires ARCHIVED or DELETED, entity is %s",
			model.ErrInvalidTransition, entity.Lifecycle().Status)
	}
	return m.save(ctx, op, entity, model.StatusActive)
}

func (m *Manager[T]) transition(ctx context.Context, op lifecycle.Context, id string, target model.Status) (T, error) {
	var zero T
	if err := op.Validate(); err != nil {
		return zero, err
	}
	entity, err := m.repo.Get(ctx, op.CompanyID, id)
	if err != nil {
		return zero, err
	}
	return m.save(ctx, op, entity, target)
}

func (m *Manager[T]) save(ctx context.Context, op lifecycle.Context, entity T, target model.Status) (T, error) {
	var zero T
	if err := lifecycle.StampTransition(entity.Lifecycle(), target, op.Actor, op.Now); err != nil {
		return zero, err
	}
	saved, err := m.repo.Save(ctx, entity)
	if err != nil {
		return zero, err
	}
	m.publish(saved.EntityID(), op.Actor.ID)
	return saved, nil
}

// Purge hard-deletes a DELETED entity whose retention horizon has elapsed.
// Eligibility is re-checked here so a restore that committed first turns a
// concurrent purge into a no-op failure.
func (m *Manager[T]) Purge(ctx context.Context, companyID string, id string, now time.Time) error {
	entity, err := m.repo.Get(ctx, companyID, id)
	if err != nil {
		return err
	}

	audit := entity.Lifecycle()
	if audit.Status != model.StatusDeleted {
		return fmt.Errorf("%w: entity is %s", model.ErrNotEligibleForPurge, audit.Status)
	}
	if audit.Deleted.At.After(now.UTC().Add(-m.retention)) {
		return fmt.Errorf("%w: retention elapses at %s", model.ErrNotEligibleForPurge,
			audit.Deleted.At.Add(m.retention).Format(time.RFC3339))
	}

	if err := m.repo.Delete(ctx, companyID, id); err != nil {
		return err
	}
	m.publish(id, "")
	return nil
}

// ExpiredCandidates lists purge-eligible entities across all companies,
// oldest deleted_at first.
func (m *Manager[T]) ExpiredCandidates(ctx context.Context, now time.Time) ([]Candidate, error) {
	expired, err := m.repo.ListDeletedBefore(ctx, now.UTC().Add(-m.retention))
	if err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(expired))
	for _, e := range expired {
		candidates = append(candidates, Candidate{
			Kind:      m.kind,
			ID:        e.EntityID(),
			CompanyID: e.Scope(),
			Name:      e.DisplayName(),
			ObjectKey: e.ObjectKey(),
			DeletedAt: e.Lifecycle().Deleted.At,
		})
	}
	return candidates, nil
}

// ListActive returns the entities default grid queries show: ACTIVE plus
// INACTIVE.
func (m *Manager[T]) ListActive(ctx context.Context, companyID string) ([]T, error) {
	return m.repo.ListByStatus(ctx, companyID, model.StatusActive, model.StatusInactive)
}

// RecycleBin returns the ARCHIVED and DELETED entries for one company along
// with the count of DELETED entities.
func (m *Manager[T]) RecycleBin(ctx context.Context, companyID string, now time.Time) ([]Entry, int, error) {
	items, err := m.repo.ListByStatus(ctx, companyID, model.StatusArchived, model.StatusDeleted)
	if err != nil {
		return nil, 0, err
	}

	entries := make([]Entry, 0, len(items))
	deleted := 0
	for _, item := range items {
		audit := item.Lifecycle()
		entry := Entry{
			Kind:   m.kind,
			ID:     item.EntityID(),
			Name:   item.DisplayName(),
			Status: audit.Status,
		}
		switch audit.Status {
		case model.StatusDeleted:
			deleted++
			entry.Since = audit.Deleted.At
			entry.DaysLeft = DaysRemaining(audit.Deleted.At, now, m.retention)
		case model.StatusArchived:
			entry.Since = audit.Archived.At
		}
		entry.Retention = RetentionLabel(audit.Status, audit.Deleted.At, now, m.retention)
		entries = append(entries, entry)
	}
	return entries, deleted, nil
}

// CountDeleted backs the recycle-bin badge on the dashboard.
func (m *Manager[T]) CountDeleted(ctx context.Context, companyID string) (int, error) {
	return m.repo.CountByStatus(ctx, companyID, model.StatusDeleted)
}

func (m *Manager[T]) publish(entityID string, actorID string) {
	if m.bus == nil {
		return
	}
	m.bus.Publish(event.New(event.EntityUpdated(m.kind), map[string]string{"id": entityID}, actorID))
	m.bus.Publish(event.New(event.TypeDashboardRefreshed, nil, actorID))
}
