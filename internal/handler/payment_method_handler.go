package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"estoquerapido/internal/model"
	"estoquerapido/internal/service"
	"estoquerapido/pkg/apierror"
)

type PaymentMethodHandler struct {
	service *service.PaymentMethodService
}

func NewPaymentMethodHandler(service *service.PaymentMethodService) *PaymentMethodHandler {
	return &PaymentMethodHandler{service: service}
}

func (h *PaymentMethodHandler) List(w http.ResponseWriter, r *http.Request) {
	companyID, err := companyScope(r)
	if err != nil {
		writeError(w, err)
		return
	}

	methods, err := h.service.List(r.Context(), companyID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, methods, nil)
}

func (h *PaymentMethodHandler) Create(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.PaymentMethodPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	op, err := operationContext(r)
	if err != nil {
		writeError(w, err)
		return
	}

	method, err := h.service.Create(r.Context(), op, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, method, nil)
}

func (h *PaymentMethodHandler) Get(w http.ResponseWriter, r *http.Request) {
	companyID, err := companyScope(r)
	if err != nil {
		writeError(w, err)
		return
	}

	method, err := h.service.Get(r.Context(), companyID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, method, nil)
}

func (h *PaymentMethodHandler) Update(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.PaymentMethodPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	op, err := operationContext(r)
	if err != nil {
		writeError(w, err)
		return
	}

	method, err := h.service.Update(r.Context(), op, chi.URLParam(r, "id"), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, method, nil)
}

func (h *PaymentMethodHandler) Delete(w http.ResponseWriter, r *http.Request) {
	lifecycleAction(w, r, h.service.SoftDelete)
}

func (h *PaymentMethodHandler) Archive(w http.ResponseWriter, r *http.Request) {
	lifecycleAction(w, r, h.service.Archive)
}

func (h *PaymentMethodHandler) Restore(w http.ResponseWriter, r *http.Request) {
	lifecycleAction(w, r, h.service.Restore)
}

func (h *PaymentMethodHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	lifecycleAction(w, r, h.service.Deactivate)
}

func (h *PaymentMethodHandler) Activate(w http.ResponseWriter, r *http.Request) {
	lifecycleAction(w, r, h.service.Activate)
}
