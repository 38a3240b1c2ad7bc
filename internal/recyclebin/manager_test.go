package recyclebin

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"estoquerapido/internal/event"
	"estoquerapido/internal/lifecycle"
	"estoquerapido/internal/model"
)

var (
	t0    = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	alice = model.Actor{ID: "u1", Name: "Alice"}
)

// fakeRepo is an in-memory EntityRepository for payment methods. It deep
// copies on the way in and out so tests can detect unintended shared
// mutation.
type fakeRepo struct {
	items map[string]model.PaymentMethod
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: map[string]model.PaymentMethod{}}
}

func (r *fakeRepo) Get(_ context.Context, companyID string, id string) (*model.PaymentMethod, error) {
	item, ok := r.items[id]
	if !ok || item.CompanyID != companyID {
		return nil, model.ErrNotFound
	}
	copied := item
	return &copied, nil
}

func (r *fakeRepo) Save(_ context.Context, entity *model.PaymentMethod) (*model.PaymentMethod, error) {
	if entity.ID == "" {
		entity.ID = uuid.NewString()
	}
	r.items[entity.ID] = *entity
	copied := *entity
	return &copied, nil
}

func (r *fakeRepo) Delete(_ context.Context, companyID string, id string) error {
	item, ok := r.items[id]
	if !ok || item.CompanyID != companyID {
		return model.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeRepo) ListByStatus(_ context.Context, companyID string, statuses ...model.Status) ([]*model.PaymentMethod, error) {
	wanted := map[model.Status]bool{}
	for _, s := range statuses {
		wanted[s] = true
	}

	out := []*model.PaymentMethod{}
	for _, item := range r.items {
		if item.CompanyID == companyID && wanted[item.Audit.Status] {
			copied := item
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *fakeRepo) CountByStatus(ctx context.Context, companyID string, status model.Status) (int, error) {
	items, err := r.ListByStatus(ctx, companyID, status)
	return len(items), err
}

func (r *fakeRepo) ListDeletedBefore(_ context.Context, cutoff time.Time) ([]*model.PaymentMethod, error) {
	out := []*model.PaymentMethod{}
	for _, item := range r.items {
		if item.Audit.Status == model.StatusDeleted && !item.Audit.Deleted.At.After(cutoff) {
			copied := item
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Audit.Deleted.At.Before(out[j].Audit.Deleted.At)
	})
	return out, nil
}

func newTestManager(t *testing.T) (*Manager[*model.PaymentMethod], *fakeRepo, <-chan event.Event) {
	t.Helper()
	repo := newFakeRepo()
	bus := event.NewBus()
	events, stop := bus.Subscribe()
	t.Cleanup(stop)
	return NewManager[*model.PaymentMethod](model.KindPaymentMethod, repo, bus, DefaultRetention), repo, events
}

func seed(t *testing.T, repo *fakeRepo, name string, at time.Time) *model.PaymentMethod {
	t.Helper()
	pm := &model.PaymentMethod{CompanyID: "c1", Name: name, Kind: model.PaymentPix}
	require.NoError(t, lifecycle.StampCreate(&pm.Audit, alice, at))
	saved, err := repo.Save(context.Background(), pm)
	require.NoError(t, err)
	return saved
}

func op(at time.Time) lifecycle.Context {
	return lifecycle.NewContext(alice, "c1", at)
}

func TestManagerSoftDeleteAndRestore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("soft delete stamps DELETED and counts in the bin", func(t *testing.T) {
		mgr, repo, _ := newTestManager(t)
		pm := seed(t, repo, "PIX", t0)

		deleted, err := mgr.SoftDelete(ctx, op(t0.Add(time.Hour)), pm.ID)
		require.NoError(t, err)
		require.Equal(t, model.StatusDeleted, deleted.Audit.Status)
		require.Equal(t, t0.Add(time.Hour), deleted.Audit.Deleted.At)
		require.Equal(t, deleted.Audit.Deleted, deleted.Audit.Updated)

		count, err := mgr.CountDeleted(ctx, "c1")
		require.NoError(t, err)
		require.Equal(t, 1, count)
	})

	t.Run("restore returns to ACTIVE and keeps the delete stamp", func(t *testing.T) {
		mgr, repo, _ := newTestManager(t)
		pm := seed(t, repo, "PIX", t0)

		_, err := mgr.SoftDelete(ctx, op(t0.Add(time.Hour)), pm.ID)
		require.NoError(t, err)

		restored, err := mgr.Restore(ctx, op(t0.Add(2*time.Hour)), pm.ID)
		require.NoError(t, err)
		require.Equal(t, model.StatusActive, restored.Audit.Status)
		require.Equal(t, t0.Add(2*time.Hour), restored.Audit.Activated.At)
		require.Equal(t, t0.Add(time.Hour), restored.Audit.Deleted.At)
	})

	t.Run("restore of an active entity is rejected and changes nothing", func(t *testing.T) {
		mgr, repo, _ := newTestManager(t)
		pm := seed(t, repo, "PIX", t0)

		_, err := mgr.Restore(ctx, op(t0.Add(time.Hour)), pm.ID)
		require.ErrorIs(t, err, model.ErrInvalidTransition)

		stored, err := repo.Get(ctx, "c1", pm.ID)
		require.NoError(t, err)
		require.Equal(t, pm, stored)
	})

	t.Run("unknown id fails with NotFound", func(t *testing.T) {
		mgr, _, _ := newTestManager(t)
		_, err := mgr.SoftDelete(ctx, op(t0), "missing")
		require.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("missing actor fails before touching the repository", func(t *testing.T) {
		mgr, repo, _ := newTestManager(t)
		pm := seed(t, repo, "PIX", t0)

		bad := lifecycle.NewContext(model.Actor{}, "c1", t0.Add(time.Hour))
		_, err := mgr.SoftDelete(ctx, bad, pm.ID)
		require.ErrorIs(t, err, model.ErrMissingActor)
	})
}

func TestManagerArchive(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("second archive fails and the entity stays as the first left it", func(t *testing.T) {
		mgr, repo, _ := newTestManager(t)
		pm := seed(t, repo, "Dinheiro", t0)

		archived, err := mgr.Archive(ctx, op(t0.Add(time.Hour)), pm.ID)
		require.NoError(t, err)
		require.Equal(t, model.StatusArchived, archived.Audit.Status)

		_, err = mgr.Archive(ctx, op(t0.Add(2*time.Hour)), pm.ID)
		require.ErrorIs(t, err, model.ErrInvalidTransition)

		stored, err := repo.Get(ctx, "c1", pm.ID)
		require.NoError(t, err)
		require.Equal(t, archived, stored)
	})

	t.Run("archiving a deleted entity is forbidden", func(t *testing.T) {
		mgr, repo, _ := newTestManager(t)
		pm := seed(t, repo, "Dinheiro", t0)

		_, err := mgr.SoftDelete(ctx, op(t0.Add(time.Hour)), pm.ID)
		require.NoError(t, err)
		_, err = mgr.Archive(ctx, op(t0.Add(2*time.Hour)), pm.ID)
		require.ErrorIs(t, err, model.ErrInvalidTransition)
	})
}

func TestManagerPurge(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	deletedAt := t0.Add(time.Hour)

	t.Run("purge at the retention boundary succeeds", func(t *testing.T) {
		mgr, repo, _ := newTestManager(t)
		pm := seed(t, repo, "PIX", t0)
		_, err := mgr.SoftDelete(ctx, op(deletedAt), pm.ID)
		require.NoError(t, err)

		require.NoError(t, mgr.Purge(ctx, "c1", pm.ID, deletedAt.Add(DefaultRetention)))

		_, err = repo.Get(ctx, "c1", pm.ID)
		require.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("purge one millisecond early is not eligible", func(t *testing.T) {
		mgr, repo, _ := newTestManager(t)
		pm := seed(t, repo, "PIX", t0)
		_, err := mgr.SoftDelete(ctx, op(deletedAt), pm.ID)
		require.NoError(t, err)

		err = mgr.Purge(ctx, "c1", pm.ID, deletedAt.Add(DefaultRetention-time.Millisecond))
		require.ErrorIs(t, err, model.ErrNotEligibleForPurge)

		_, err = repo.Get(ctx, "c1", pm.ID)
		require.NoError(t, err, "ineligible purge must leave the entity in place")
	})

	t.Run("purge of a non-deleted entity is not eligible", func(t *testing.T) {
		mgr, repo, _ := newTestManager(t)
		pm := seed(t, repo, "PIX", t0)
		_, err := mgr.Archive(ctx, op(t0.Add(time.Hour)), pm.ID)
		require.NoError(t, err)

		err = mgr.Purge(ctx, "c1", pm.ID, t0.Add(10*365*day))
		require.ErrorIs(t, err, model.ErrNotEligibleForPurge)
	})

	t.Run("restore before the sweeper wins the race", func(t *testing.T) {
		mgr, repo, _ := newTestManager(t)
		pm := seed(t, repo, "PIX", t0)
		_, err := mgr.SoftDelete(ctx, op(deletedAt), pm.ID)
		require.NoError(t, err)
		_, err = mgr.Restore(ctx, op(deletedAt.Add(time.Hour)), pm.ID)
		require.NoError(t, err)

		err = mgr.Purge(ctx, "c1", pm.ID, deletedAt.Add(2*DefaultRetention))
		require.ErrorIs(t, err, model.ErrNotEligibleForPurge)
	})
}

func TestManagerRecycleBin(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	mgr, repo, _ := newTestManager(t)
	active := seed(t, repo, "Dinheiro", t0)
	archivedB := seed(t, repo, "Boleto", t0)
	archivedA := seed(t, repo, "Boleto", t0) // same name, id breaks the tie
	deleted := seed(t, repo, "PIX", t0)

	_, err := mgr.Archive(ctx, op(t0.Add(time.Hour)), archivedA.ID)
	require.NoError(t, err)
	_, err = mgr.Archive(ctx, op(t0.Add(time.Hour)), archivedB.ID)
	require.NoError(t, err)
	_, err = mgr.SoftDelete(ctx, op(t0.Add(2*time.Hour)), deleted.ID)
	require.NoError(t, err)

	now := t0.Add(3 * time.Hour)
	entries, deletedCount, err := mgr.RecycleBin(ctx, "c1", now)
	require.NoError(t, err)
	require.Equal(t, 1, deletedCount)
	require.Len(t, entries, 3)

	// Name ascending, id tiebreak; the active entity is absent.
	require.Equal(t, "Boleto", entries[0].Name)
	require.Equal(t, "Boleto", entries[1].Name)
	require.Less(t, entries[0].ID, entries[1].ID)
	require.Equal(t, "PIX", entries[2].Name)

	require.Equal(t, model.StatusArchived, entries[0].Status)
	require.Equal(t, 0, entries[0].DaysLeft)
	require.Contains(t, entries[0].Retention, "archived")

	require.Equal(t, model.StatusDeleted, entries[2].Status)
	require.Equal(t, 90, entries[2].DaysLeft)
	require.Contains(t, entries[2].Retention, "90 days")

	listed, err := mgr.ListActive(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, active.ID, listed[0].ID)
}

func TestManagerPublishesEvents(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	mgr, repo, events := newTestManager(t)
	pm := seed(t, repo, "PIX", t0)

	_, err := mgr.SoftDelete(ctx, op(t0.Add(time.Hour)), pm.ID)
	require.NoError(t, err)

	types := []event.Type{}
	for i := 0; i < 2; i++ {
		select {
		case e := <-events:
			types = append(types, e.Type)
		case <-time.After(time.Second):
			t.Fatal("expected two events after a transition")
		}
	}
	require.Contains(t, types, event.EntityUpdated(model.KindPaymentMethod))
	require.Contains(t, types, event.TypeDashboardRefreshed)
}
