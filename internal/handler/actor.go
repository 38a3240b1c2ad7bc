package handler

import (
	"net/http"
	"time"

	"estoquerapido/internal/lifecycle"
	"estoquerapido/internal/middleware"
	"estoquerapido/internal/model"
)

// operationContext builds the lifecycle context of the current request from
// its JWT claims. Every mutating endpoint goes through here, so an
// unauthenticated mutation can never produce an unstamped audit.
func operationContext(r *http.Request) (lifecycle.Context, error) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		return lifecycle.Context{}, model.ErrMissingActor
	}
	return lifecycle.NewContext(claims.Actor(), claims.CompanyID, time.Now()), nil
}

// companyScope resolves the tenant of the current request for read endpoints.
func companyScope(r *http.Request) (string, error) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		return "", model.ErrUnauthorized
	}
	if claims.CompanyID == "" {
		return "", model.ErrForbidden
	}
	return claims.CompanyID, nil
}
