package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatusTransitions(t *testing.T) {
	t.Parallel()

	t.Run("permits exactly the table of allowed moves", func(t *testing.T) {
		allowed := map[[2]Status]bool{
			{StatusActive, StatusInactive}:   true,
			{StatusActive, StatusArchived}:   true,
			{StatusActive, StatusDeleted}:    true,
			{StatusInactive, StatusActive}:   true,
			{StatusInactive, StatusArchived}: true,
			{StatusInactive, StatusDeleted}:  true,
			{StatusArchived, StatusActive}:   true,
			{StatusArchived, StatusDeleted}:  true,
			{StatusDeleted, StatusActive}:    true,
		}

		all := []Status{StatusActive, StatusInactive, StatusArchived, StatusDeleted}
		for _, from := range all {
			for _, to := range all {
				require.Equalf(t, allowed[[2]Status{from, to}], from.CanTransitionTo(to),
					"transition %s -> %s", from, to)
			}
		}
	})

	t.Run("self transitions are forbidden", func(t *testing.T) {
		for _, s := range []Status{StatusActive, StatusInactive, StatusArchived, StatusDeleted} {
			require.False(t, s.CanTransitionTo(s))
		}
	})
}

func TestParseStatus(t *testing.T) {
	t.Parallel()

	s, err := ParseStatus("ARCHIVED")
	require.NoError(t, err)
	require.Equal(t, StatusArchived, s)

	_, err = ParseStatus("archived")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestStatusViews(t *testing.T) {
	t.Parallel()

	require.True(t, StatusActive.Listable())
	require.True(t, StatusInactive.Listable())
	require.False(t, StatusArchived.Listable())
	require.False(t, StatusDeleted.Listable())

	require.True(t, StatusArchived.InRecycleBin())
	require.True(t, StatusDeleted.InRecycleBin())
	require.False(t, StatusActive.InRecycleBin())
	require.False(t, StatusInactive.InRecycleBin())
}
