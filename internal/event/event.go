package event

import (
	"time"

	"github.com/google/uuid"

	"estoquerapido/internal/model"
)

type Type string

const (
	// TypeDashboardRefreshed tells UI counters to recompute. Emitted after
	// recycle-bin mutations and at the end of every sweep.
	TypeDashboardRefreshed Type = "dashboard_refreshed"
)

// EntityUpdated is the topic emitted after every successful lifecycle
// transition of the given kind, e.g. "entity_updated.products".
func EntityUpdated(kind model.Kind) Type {
	return Type("entity_updated." + string(kind))
}

type Event struct {
	ID        string `json:"id"`
	Type      Type   `json:"type"`
	Payload   any    `json:"payload,omitempty"`
	Timestamp string `json:"timestamp"`
	ActorID   string `json:"actor_id,omitempty"`
}

func New(t Type, payload any, actorID string) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      t,
		Payload:   payload,
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		ActorID:   actorID,
	}
}

type Bus interface {
	Publish(e Event)
	Subscribe() (<-chan Event, func())
}
