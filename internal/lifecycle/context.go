// Package lifecycle owns audit stamping for recyclable entities: who did what,
// when, and whether the status model permits it.
package lifecycle

import (
	"fmt"
	"time"

	"estoquerapido/internal/model"
)

// Context carries the identity, tenant scope and clock of one core operation.
// It is threaded explicitly so the core never reaches out to ambient session
// state.
type Context struct {
	Actor     model.Actor
	CompanyID string
	Now       time.Time
}

func NewContext(actor model.Actor, companyID string, now time.Time) Context {
	return Context{Actor: actor, CompanyID: companyID, Now: now.UTC()}
}

func (c Context) Validate() error {
	if c.Actor.IsZero() {
		return model.ErrMissingActor
	}
	if c.CompanyID == "" {
		return fmt.Errorf("%w: company scope is required", model.ErrInvalidInput)
	}
	return nil
}
