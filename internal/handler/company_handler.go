package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"estoquerapido/internal/model"
	"estoquerapido/internal/service"
	"estoquerapido/pkg/apierror"
)

type CompanyHandler struct {
	service *service.CompanyService
}

func NewCompanyHandler(service *service.CompanyService) *CompanyHandler {
	return &CompanyHandler{service: service}
}

func (h *CompanyHandler) Create(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.CompanyPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	op, err := operationContext(r)
	if err != nil {
		writeError(w, err)
		return
	}

	company, err := h.service.Create(r.Context(), op, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, company, nil)
}

func (h *CompanyHandler) Get(w http.ResponseWriter, r *http.Request) {
	companyID, err := companyScope(r)
	if err != nil {
		writeError(w, err)
		return
	}

	company, err := h.service.Get(r.Context(), companyID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, company, nil)
}

func (h *CompanyHandler) Update(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.CompanyPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	op, err := operationContext(r)
	if err != nil {
		writeError(w, err)
		return
	}

	company, err := h.service.Update(r.Context(), op, chi.URLParam(r, "id"), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, company, nil)
}

func (h *CompanyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	lifecycleAction(w, r, h.service.SoftDelete)
}

func (h *CompanyHandler) Archive(w http.ResponseWriter, r *http.Request) {
	lifecycleAction(w, r, h.service.Archive)
}

func (h *CompanyHandler) Restore(w http.ResponseWriter, r *http.Request) {
	lifecycleAction(w, r, h.service.Restore)
}

func (h *CompanyHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	lifecycleAction(w, r, h.service.Deactivate)
}

func (h *CompanyHandler) Activate(w http.ResponseWriter, r *http.Request) {
	lifecycleAction(w, r, h.service.Activate)
}
