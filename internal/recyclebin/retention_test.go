package recyclebin

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"estoquerapido/internal/model"
)

func TestDaysRemaining(t *testing.T) {
	t.Parallel()

	deletedAt := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	retention := DefaultRetention

	cases := []struct {
		name string
		now  time.Time
		want int
	}{
		{"just deleted", deletedAt, 90},
		{"one second into the window still counts the day", deletedAt.Add(time.Second), 90},
		{"one full day left", deletedAt.Add(retention - day), 1},
		{"partial last day rounds up", deletedAt.Add(retention - time.Minute), 1},
		{"boundary clamps to zero", deletedAt.Add(retention), 0},
		{"overdue clamps to zero", deletedAt.Add(retention + 48*time.Hour), 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, DaysRemaining(deletedAt, tc.now, retention))
		})
	}
}

func TestRetentionLabel(t *testing.T) {
	t.Parallel()

	deletedAt := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("plural days", func(t *testing.T) {
		label := RetentionLabel(model.StatusDeleted, deletedAt, deletedAt, DefaultRetention)
		require.Equal(t, "90 days until permanent removal", label)
	})

	t.Run("singular day", func(t *testing.T) {
		now := deletedAt.Add(DefaultRetention - time.Hour)
		label := RetentionLabel(model.StatusDeleted, deletedAt, now, DefaultRetention)
		require.Equal(t, "1 day until permanent removal", label)
	})

	t.Run("overdue", func(t *testing.T) {
		now := deletedAt.Add(DefaultRetention)
		label := RetentionLabel(model.StatusDeleted, deletedAt, now, DefaultRetention)
		require.Equal(t, "will be removed by the next cleanup", label)
	})

	t.Run("archived entries never expire", func(t *testing.T) {
		label := RetentionLabel(model.StatusArchived, time.Time{}, deletedAt, DefaultRetention)
		require.Equal(t, "archived items are kept until you restore or delete them", label)
	})
}
