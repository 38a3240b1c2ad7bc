package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"estoquerapido/internal/model"
	"estoquerapido/internal/service"
	"estoquerapido/pkg/apierror"
)

type CategoryHandler struct {
	service *service.CategoryService
}

func NewCategoryHandler(service *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	companyID, err := companyScope(r)
	if err != nil {
		writeError(w, err)
		return
	}

	categories, err := h.service.List(r.Context(), companyID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, categories, nil)
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.CategoryPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	op, err := operationContext(r)
	if err != nil {
		writeError(w, err)
		return
	}

	category, err := h.service.Create(r.Context(), op, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, category, nil)
}

func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	companyID, err := companyScope(r)
	if err != nil {
		writeError(w, err)
		return
	}

	category, err := h.service.Get(r.Context(), companyID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, category, nil)
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.CategoryPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	op, err := operationContext(r)
	if err != nil {
		writeError(w, err)
		return
	}

	category, err := h.service.Update(r.Context(), op, chi.URLParam(r, "id"), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, category, nil)
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	lifecycleAction(w, r, h.service.SoftDelete)
}

func (h *CategoryHandler) Archive(w http.ResponseWriter, r *http.Request) {
	lifecycleAction(w, r, h.service.Archive)
}

func (h *CategoryHandler) Restore(w http.ResponseWriter, r *http.Request) {
	lifecycleAction(w, r, h.service.Restore)
}

func (h *CategoryHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	lifecycleAction(w, r, h.service.Deactivate)
}

func (h *CategoryHandler) Activate(w http.ResponseWriter, r *http.Request) {
	lifecycleAction(w, r, h.service.Activate)
}
