package sweeper

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"estoquerapido/internal/bucket"
	"estoquerapido/internal/event"
	"estoquerapido/internal/model"
	"estoquerapido/internal/recyclebin"
)

var t0 = time.Date(2025, 6, 1, 3, 0, 0, 0, time.UTC)

// fakePurger records purge calls in order.
type fakePurger struct {
	kind       model.Kind
	candidates []recyclebin.Candidate
	purged     []string
	failWith   map[string]error
}

func (p *fakePurger) Kind() model.Kind { return p.kind }

func (p *fakePurger) ExpiredCandidates(context.Context, time.Time) ([]recyclebin.Candidate, error) {
	return p.candidates, nil
}

func (p *fakePurger) Purge(_ context.Context, _ string, id string, _ time.Time) error {
	if err := p.failWith[id]; err != nil {
		return err
	}
	p.purged = append(p.purged, id)
	return nil
}

func candidate(id string, deletedAt time.Time, objectKey string) recyclebin.Candidate {
	return recyclebin.Candidate{
		Kind:      model.KindProduct,
		ID:        id,
		CompanyID: "c1",
		Name:      "item-" + id,
		ObjectKey: objectKey,
		DeletedAt: deletedAt,
	}
}

func newSweeper(purger recyclebin.Purger, store bucket.Bucket, bus event.Bus) *Sweeper {
	s := New([]recyclebin.Purger{purger}, store, bus, time.Hour)
	s.now = func() time.Time { return t0 }
	return s
}

func TestSweepOnce(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("purges oldest first and emits dashboard refresh", func(t *testing.T) {
		purger := &fakePurger{kind: model.KindProduct, candidates: []recyclebin.Candidate{
			candidate("old", t0.Add(-100*24*time.Hour), ""),
			candidate("newer", t0.Add(-95*24*time.Hour), ""),
		}}
		bus := event.NewBus()
		events, stop := bus.Subscribe()
		defer stop()

		purged, err := newSweeper(purger, nil, bus).SweepOnce(ctx)
		require.NoError(t, err)
		require.Equal(t, 2, purged)
		require.Equal(t, []string{"old", "newer"}, purger.purged)

		select {
		case e := <-events:
			require.Equal(t, event.TypeDashboardRefreshed, e.Type)
		case <-time.After(time.Second):
			t.Fatal("expected a dashboard_refreshed event")
		}
	})

	t.Run("a failed bucket deletion keeps the record", func(t *testing.T) {
		purger := &fakePurger{kind: model.KindProduct, candidates: []recyclebin.Candidate{
			candidate("with-image", t0.Add(-100*24*time.Hour), "products/p1/image.png"),
			candidate("plain", t0.Add(-95*24*time.Hour), ""),
		}}
		store := &bucket.MockBucket{}
		store.On("Delete", mock.Anything, "products/p1/image.png").
			Return(false, errors.New("bucket unreachable"))

		purged, err := newSweeper(purger, store, event.NewBus()).SweepOnce(ctx)
		require.NoError(t, err)
		require.Equal(t, 1, purged)
		require.Equal(t, []string{"plain"}, purger.purged, "record with a stuck object must survive the sweep")
		store.AssertExpectations(t)
	})

	t.Run("a missing bucket object does not block the purge", func(t *testing.T) {
		purger := &fakePurger{kind: model.KindProduct, candidates: []recyclebin.Candidate{
			candidate("with-image", t0.Add(-100*24*time.Hour), "products/p1/image.png"),
		}}
		store := &bucket.MockBucket{}
		store.On("Delete", mock.Anything, "products/p1/image.png").Return(false, nil)

		purged, err := newSweeper(purger, store, event.NewBus()).SweepOnce(ctx)
		require.NoError(t, err)
		require.Equal(t, 1, purged)
	})

	t.Run("an entity restored mid-sweep is skipped quietly", func(t *testing.T) {
		purger := &fakePurger{
			kind: model.KindProduct,
			candidates: []recyclebin.Candidate{
				candidate("restored", t0.Add(-100*24*time.Hour), ""),
				candidate("expired", t0.Add(-95*24*time.Hour), ""),
			},
			failWith: map[string]error{"restored": model.ErrNotEligibleForPurge},
		}

		purged, err := newSweeper(purger, nil, event.NewBus()).SweepOnce(ctx)
		require.NoError(t, err)
		require.Equal(t, 1, purged)
		require.Equal(t, []string{"expired"}, purger.purged)
	})

	t.Run("cancellation stops between entities", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		purger := &fakePurger{kind: model.KindProduct, candidates: []recyclebin.Candidate{
			candidate("a", t0.Add(-100*24*time.Hour), ""),
		}}

		purged, err := newSweeper(purger, nil, event.NewBus()).SweepOnce(cancelled)
		require.ErrorIs(t, err, context.Canceled)
		require.Zero(t, purged)
		require.Empty(t, purger.purged)
	})
}
