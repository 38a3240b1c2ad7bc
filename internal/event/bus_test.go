package event

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"estoquerapido/internal/model"
)

func TestInMemoryBus(t *testing.T) {
	t.Parallel()

	t.Run("delivers to every subscriber", func(t *testing.T) {
		bus := NewBus()
		first, stopFirst := bus.Subscribe()
		defer stopFirst()
		second, stopSecond := bus.Subscribe()
		defer stopSecond()

		bus.Publish(New(TypeDashboardRefreshed, nil, "u1"))

		for _, ch := range []<-chan Event{first, second} {
			select {
			case e := <-ch:
				require.Equal(t, TypeDashboardRefreshed, e.Type)
				require.Equal(t, "u1", e.ActorID)
				require.NotEmpty(t, e.ID)
			case <-time.After(time.Second):
				t.Fatal("event not delivered")
			}
		}
	})

	t.Run("unsubscribe closes the channel", func(t *testing.T) {
		bus := NewBus()
		ch, stop := bus.Subscribe()
		stop()

		_, open := <-ch
		require.False(t, open)
	})

	t.Run("publish does not block on a full subscriber", func(t *testing.T) {
		bus := NewBus()
		_, stop := bus.Subscribe()
		defer stop()

		done := make(chan struct{})
		go func() {
			defer close(done)
			for i := 0; i < 200; i++ {
				bus.Publish(New(EntityUpdated(model.KindProduct), nil, ""))
			}
		}()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("publisher blocked on slow subscriber")
		}
	})
}
