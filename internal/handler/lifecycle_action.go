package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"estoquerapido/internal/lifecycle"
	"estoquerapido/internal/recyclebin"
)

// lifecycleAction runs one status transition endpoint: resolve the actor,
// apply the transition to the entity in the URL, return the stamped entity.
func lifecycleAction[T recyclebin.Entity](w http.ResponseWriter, r *http.Request,
	action func(context.Context, lifecycle.Context, string) (T, error)) {

	op, err := operationContext(r)
	if err != nil {
		writeError(w, err)
		return
	}

	entity, err := action(r.Context(), op, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, entity, nil)
}
