package lifecycle

import (
	"fmt"
	"time"

	"estoquerapido/internal/model"
)

// StampCreate initializes the audit metadata of a brand-new entity. All stamps
// produced by one call compare equal. The entity must not carry any prior
// stamps; a status of "" defaults to ACTIVE.
func StampCreate(a *model.Audit, actor model.Actor, now time.Time) error {
	if actor.IsZero() {
		return model.ErrMissingActor
	}
	if !a.Created.IsZero() || !a.Updated.IsZero() || !a.LastTransition().IsZero() {
		return fmt.Errorf("%w: entity already carries audit stamps", model.ErrInvariantViolation)
	}

	if a.Status == "" {
		a.Status = model.StatusActive
	}
	if !a.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", model.ErrInvariantViolation, a.Status)
	}

	stamp := model.NewStamp(actor, now)
	a.Created = stamp
	a.Updated = stamp
	if a.Status == model.StatusActive {
		a.Activated = stamp
	}
	return nil
}

// StampTransition moves the entity to target and records who did it. The
// target must differ from the current status and be permitted by the
// transition table, and the clock must advance strictly past the last update.
func StampTransition(a *model.Audit, target model.Status, actor model.Actor, now time.Time) error {
	if actor.IsZero() {
		return model.ErrMissingActor
	}
	if !target.Valid() {
		return fmt.Errorf("%w: unknown status %q", model.ErrInvalidTransition, target)
	}
	if !a.Status.CanTransitionTo(target) {
		return fmt.Errorf("%w: %s -> %s", model.ErrInvalidTransition, a.Status, target)
	}
	if a.Created.IsZero() {
		return fmt.Errorf("%w: transition on an entity that was never created", model.ErrInvariantViolation)
	}
	if !now.UTC().After(a.Updated.At) {
		return fmt.Errorf("%w: transition instant %s does not advance past last update %s",
			model.ErrInvariantViolation, now.UTC().Format(time.RFC3339Nano), a.Updated.At.Format(time.RFC3339Nano))
	}

	stamp := model.NewStamp(actor, now)
	a.Status = target
	a.Updated = stamp
	*a.StampFor(target) = stamp
	return nil
}

// StampUpdate refreshes the update stamp for a non-status-changing edit.
func StampUpdate(a *model.Audit, actor model.Actor, now time.Time) error {
	if actor.IsZero() {
		return model.ErrMissingActor
	}
	if a.Created.IsZero() {
		return fmt.Errorf("%w: update on an entity that was never created", model.ErrInvariantViolation)
	}
	if now.UTC().Before(a.Updated.At) {
		return fmt.Errorf("%w: update instant precedes last update", model.ErrInvariantViolation)
	}

	a.Updated = model.NewStamp(actor, now)
	return nil
}
