package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"estoquerapido/internal/model"
	"estoquerapido/pkg/apierror"
)

func writeSuccess(w http.ResponseWriter, status int, data any, meta *model.Meta) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Success: true,
		Data:    data,
		Meta:    meta,
	})
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	body := &model.APIError{
		Code:    "INTERNAL_ERROR",
		Message: "Unexpected server error",
	}

	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		status = apiErr.HTTPStatus
		body.Code = apiErr.Code
		body.Message = apiErr.Message
		body.Details = apiErr.Details
	} else if errors.Is(err, model.ErrNotFound) {
		status = http.StatusNotFound
		body.Code = "NOT_FOUND"
		body.Message = "Entity not found"
	} else if errors.Is(err, model.ErrUserNotFound) {
		status = http.StatusNotFound
		body.Code = "NOT_FOUND"
		body.Message = "User not found"
	} else if errors.Is(err, model.ErrInvalidTransition) {
		status = http.StatusConflict
		body.Code = "INVALID_TRANSITION"
		body.Message = "Status transition not permitted"
		body.Details = err.Error()
	} else if errors.Is(err, model.ErrNotEligibleForPurge) {
		status = http.StatusConflict
		body.Code = "NOT_ELIGIBLE"
		body.Message = "Entity is not eligible for permanent removal"
		body.Details = err.Error()
	} else if errors.Is(err, model.ErrInvariantViolation) {
		status = http.StatusUnprocessableEntity
		body.Code = "INVARIANT_VIOLATION"
		body.Message = "Audit metadata rejected the operation"
		body.Details = err.Error()
	} else if errors.Is(err, model.ErrMissingActor) {
		status = http.StatusUnauthorized
		body.Code = "UNAUTHORIZED"
		body.Message = "Operation requires an identified actor"
	} else if errors.Is(err, model.ErrInvalidCredentials) {
		status = http.StatusUnauthorized
		body.Code = "UNAUTHORIZED"
		body.Message = "Invalid credentials"
	} else if errors.Is(err, model.ErrUnauthorized) {
		status = http.StatusUnauthorized
		body.Code = "UNAUTHORIZED"
		body.Message = "Authentication required"
	} else if errors.Is(err, model.ErrForbidden) {
		status = http.StatusForbidden
		body.Code = "FORBIDDEN"
		body.Message = "Access denied"
	} else if errors.Is(err, model.ErrInvalidInput) {
		status = http.StatusBadRequest
		body.Code = "BAD_REQUEST"
		body.Message = "Invalid input"
		body.Details = err.Error()
	} else if errors.Is(err, model.ErrTransient) {
		status = http.StatusServiceUnavailable
		body.Code = "UNAVAILABLE"
		body.Message = "Upstream dependency unavailable, try again later"
	} else if errors.Is(err, model.ErrPermanent) {
		status = http.StatusInternalServerError
		body.Code = "INTERNAL_ERROR"
		body.Message = "Operation failed permanently"
	} else {
		// Log unclassified errors so they are visible in container logs.
		slog.Error("unhandled error in writeError", "error", err.Error())
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Success: false,
		Error:   body,
	})
}
