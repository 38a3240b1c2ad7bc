package repository

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgx/v5/pgconn"

	"estoquerapido/internal/model"
)

// wrapErr classifies a database failure as transient (retriable) or permanent
// so callers can decide between "try again later" and "give up".
func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w: %v", op, model.ErrTransient, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%s: %w: %v", op, model.ErrTransient, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// Connection (08), insufficient resources (53) and operator
		// intervention (57) come back on retry; everything else is a schema
		// or data problem.
		if len(pgErr.Code) >= 2 {
			switch pgErr.Code[:2] {
			case "08", "53", "57":
				return fmt.Errorf("%s: %w: %v", op, model.ErrTransient, err)
			}
		}
		return fmt.Errorf("%s: %w: %v", op, model.ErrPermanent, err)
	}

	return fmt.Errorf("%s: %w", op, err)
}
