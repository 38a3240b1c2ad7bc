package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"estoquerapido/internal/model"
)

var (
	t0    = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	alice = model.Actor{ID: "u1", Name: "Alice"}
	bob   = model.Actor{ID: "u2", Name: "Bob"}
)

func TestStampCreate(t *testing.T) {
	t.Parallel()

	t.Run("sets created, updated and activated to the same instant", func(t *testing.T) {
		var a model.Audit
		require.NoError(t, StampCreate(&a, alice, t0))

		require.Equal(t, model.StatusActive, a.Status)
		require.Equal(t, t0, a.Created.At)
		require.Equal(t, a.Created, a.Updated)
		require.Equal(t, a.Created, a.Activated)
		require.Equal(t, "u1", a.Created.ByID)
		require.Equal(t, "Alice", a.Created.ByName)
	})

	t.Run("does not stamp activated for a non-active default", func(t *testing.T) {
		a := model.Audit{Status: model.StatusInactive}
		require.NoError(t, StampCreate(&a, alice, t0))
		require.True(t, a.Activated.IsZero())
		require.Equal(t, t0, a.Created.At)
	})

	t.Run("rejects a missing actor", func(t *testing.T) {
		var a model.Audit
		require.ErrorIs(t, StampCreate(&a, model.Actor{}, t0), model.ErrMissingActor)
	})

	t.Run("rejects pre-populated stamps", func(t *testing.T) {
		var a model.Audit
		require.NoError(t, StampCreate(&a, alice, t0))
		require.ErrorIs(t, StampCreate(&a, alice, t0.Add(time.Hour)), model.ErrInvariantViolation)
	})
}

func TestStampTransition(t *testing.T) {
	t.Parallel()

	created := func(t *testing.T) model.Audit {
		t.Helper()
		var a model.Audit
		require.NoError(t, StampCreate(&a, alice, t0))
		return a
	}

	t.Run("records the per-status stamp and advances updated", func(t *testing.T) {
		a := created(t)
		at := t0.Add(time.Hour)
		require.NoError(t, StampTransition(&a, model.StatusDeleted, bob, at))

		require.Equal(t, model.StatusDeleted, a.Status)
		require.Equal(t, at, a.Deleted.At)
		require.Equal(t, a.Deleted, a.Updated)
		require.Equal(t, "Bob", a.Deleted.ByName)
		// Creation stamp is immutable.
		require.Equal(t, t0, a.Created.At)
	})

	t.Run("soft delete then restore keeps the delete stamp for audit", func(t *testing.T) {
		a := created(t)
		require.NoError(t, StampTransition(&a, model.StatusDeleted, bob, t0.Add(time.Hour)))
		require.NoError(t, StampTransition(&a, model.StatusActive, alice, t0.Add(2*time.Hour)))

		require.Equal(t, model.StatusActive, a.Status)
		require.Equal(t, t0.Add(2*time.Hour), a.Activated.At)
		require.Equal(t, t0.Add(time.Hour), a.Deleted.At)
		require.True(t, a.Activated.At.After(a.Deleted.At))
	})

	t.Run("rejects a forbidden move", func(t *testing.T) {
		a := created(t)
		require.NoError(t, StampTransition(&a, model.StatusDeleted, bob, t0.Add(time.Hour)))

		before := a
		err := StampTransition(&a, model.StatusArchived, bob, t0.Add(2*time.Hour))
		require.ErrorIs(t, err, model.ErrInvalidTransition)
		require.Equal(t, before, a, "failed transition must leave the audit unchanged")
	})

	t.Run("rejects a repeated target", func(t *testing.T) {
		a := created(t)
		require.NoError(t, StampTransition(&a, model.StatusArchived, bob, t0.Add(time.Hour)))
		err := StampTransition(&a, model.StatusArchived, bob, t0.Add(2*time.Hour))
		require.ErrorIs(t, err, model.ErrInvalidTransition)
	})

	t.Run("rejects a clock that does not advance", func(t *testing.T) {
		a := created(t)
		err := StampTransition(&a, model.StatusDeleted, bob, t0)
		require.ErrorIs(t, err, model.ErrInvariantViolation)
	})

	t.Run("rejects a missing actor", func(t *testing.T) {
		a := created(t)
		err := StampTransition(&a, model.StatusDeleted, model.Actor{}, t0.Add(time.Hour))
		require.ErrorIs(t, err, model.ErrMissingActor)
	})

	t.Run("rejects an entity that was never created", func(t *testing.T) {
		a := model.Audit{Status: model.StatusActive}
		err := StampTransition(&a, model.StatusDeleted, bob, t0)
		require.ErrorIs(t, err, model.ErrInvariantViolation)
	})
}

func TestStampUpdate(t *testing.T) {
	t.Parallel()

	var a model.Audit
	require.NoError(t, StampCreate(&a, alice, t0))

	require.NoError(t, StampUpdate(&a, bob, t0.Add(time.Minute)))
	require.Equal(t, t0.Add(time.Minute), a.Updated.At)
	require.Equal(t, "u2", a.Updated.ByID)
	// A plain edit does not touch transition stamps.
	require.Equal(t, t0, a.Activated.At)

	require.ErrorIs(t, StampUpdate(&a, model.Actor{}, t0.Add(time.Hour)), model.ErrMissingActor)
	require.ErrorIs(t, StampUpdate(&a, bob, t0), model.ErrInvariantViolation)
}
