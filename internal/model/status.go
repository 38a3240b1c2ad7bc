package model

import "fmt"

// Status is the lifecycle state of a recyclable entity.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
	StatusArchived Status = "ARCHIVED"
	StatusDeleted  Status = "DELETED"
)

// transitions is the only source of truth for which status moves are legal.
// A self transition is never legal.
var transitions = map[Status]map[Status]bool{
	StatusActive:   {StatusInactive: true, StatusArchived: true, StatusDeleted: true},
	StatusInactive: {StatusActive: true, StatusArchived: true, StatusDeleted: true},
	StatusArchived: {StatusActive: true, StatusDeleted: true},
	StatusDeleted:  {StatusActive: true},
}

func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", fmt.Errorf("%w: unknown status %q", ErrInvalidInput, raw)
	}
	return s, nil
}

func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// CanTransitionTo reports whether the transition table permits moving from s
// to target.
func (s Status) CanTransitionTo(target Status) bool {
	return transitions[s][target]
}

// Listable reports whether the status shows up in default grid queries.
func (s Status) Listable() bool {
	return s == StatusActive || s == StatusInactive
}

// InRecycleBin reports whether the status places the entity in the recycle
// bin view.
func (s Status) InRecycleBin() bool {
	return s == StatusArchived || s == StatusDeleted
}
