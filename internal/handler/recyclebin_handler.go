package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"estoquerapido/internal/model"
	"estoquerapido/internal/recyclebin"
	"estoquerapido/internal/service"
	"estoquerapido/pkg/apierror"
)

// RecycleBinHandler renders the recycle bin across every entity kind.
type RecycleBinHandler struct {
	views map[model.Kind]service.BinView
}

func NewRecycleBinHandler(views ...service.BinView) *RecycleBinHandler {
	byKind := make(map[model.Kind]service.BinView, len(views))
	for _, v := range views {
		byKind[v.Kind()] = v
	}
	return &RecycleBinHandler{views: byKind}
}

// List returns the ARCHIVED and DELETED entries of one kind, with retention
// labels computed against the current clock.
func (h *RecycleBinHandler) List(w http.ResponseWriter, r *http.Request) {
	companyID, err := companyScope(r)
	if err != nil {
		writeError(w, err)
		return
	}

	kind := model.Kind(chi.URLParam(r, "kind"))
	if !kind.Valid() {
		writeError(w, apierror.New("BAD_REQUEST", "unknown recycle-bin kind", string(kind), http.StatusBadRequest))
		return
	}
	view, ok := h.views[kind]
	if !ok {
		writeError(w, apierror.New("BAD_REQUEST", "kind has no recycle bin", string(kind), http.StatusBadRequest))
		return
	}

	entries, deleted, err := view.RecycleBin(r.Context(), companyID, time.Now())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{
		"kind":          kind,
		"entries":       entries,
		"deleted_count": deleted,
	}, nil)
}

// Counts returns the deleted count per kind, backing the dashboard badge.
func (h *RecycleBinHandler) Counts(w http.ResponseWriter, r *http.Request) {
	companyID, err := companyScope(r)
	if err != nil {
		writeError(w, err)
		return
	}

	counts := make(map[model.Kind]int, len(h.views))
	total := 0
	for _, kind := range model.Kinds() {
		view, ok := h.views[kind]
		if !ok {
			continue
		}
		n, err := view.CountDeleted(r.Context(), companyID)
		if err != nil {
			writeError(w, err)
			return
		}
		counts[kind] = n
		total += n
	}

	writeSuccess(w, http.StatusOK, map[string]any{
		"counts": counts,
		"total":  total,
	}, nil)
}

// All returns the recycle bin of every kind in one response.
func (h *RecycleBinHandler) All(w http.ResponseWriter, r *http.Request) {
	companyID, err := companyScope(r)
	if err != nil {
		writeError(w, err)
		return
	}

	now := time.Now()
	bins := make(map[model.Kind][]recyclebin.Entry, len(h.views))
	total := 0
	for _, kind := range model.Kinds() {
		view, ok := h.views[kind]
		if !ok {
			continue
		}
		entries, deleted, err := view.RecycleBin(r.Context(), companyID, now)
		if err != nil {
			writeError(w, err)
			return
		}
		bins[kind] = entries
		total += deleted
	}

	writeSuccess(w, http.StatusOK, map[string]any{
		"bins":          bins,
		"deleted_count": total,
	}, nil)
}
