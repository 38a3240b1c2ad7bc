package model

import "time"

// Actor identifies who performed an operation.
type Actor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (a Actor) IsZero() bool {
	return a.ID == "" && a.Name == ""
}

// Stamp records one audited instant: when it happened and who caused it.
// Instants are stored in UTC.
type Stamp struct {
	At     time.Time `json:"at"`
	ByID   string    `json:"by_id"`
	ByName string    `json:"by_name"`
}

func (s Stamp) IsZero() bool {
	return s.At.IsZero() && s.ByID == "" && s.ByName == ""
}

func NewStamp(actor Actor, at time.Time) Stamp {
	return Stamp{At: at.UTC(), ByID: actor.ID, ByName: actor.Name}
}

// Audit is the lifecycle metadata embedded in every recyclable entity. The
// status-specific stamps keep the last instant the entity entered that
// status; a zero stamp means it never did.
type Audit struct {
	Status      Status `json:"status"`
	Created     Stamp  `json:"created,omitzero"`
	Updated     Stamp  `json:"updated,omitzero"`
	Activated   Stamp  `json:"activated,omitzero"`
	Inactivated Stamp  `json:"inactivated,omitzero"`
	Archived    Stamp  `json:"archived,omitzero"`
	Deleted     Stamp  `json:"deleted,omitzero"`
}

// StampFor returns the stamp slot that records entry into the given status.
func (a *Audit) StampFor(s Status) *Stamp {
	switch s {
	case StatusActive:
		return &a.Activated
	case StatusInactive:
		return &a.Inactivated
	case StatusArchived:
		return &a.Archived
	default:
		return &a.Deleted
	}
}

// LastTransition returns the stamp of the entity's current status.
func (a *Audit) LastTransition() Stamp {
	return *a.StampFor(a.Status)
}
