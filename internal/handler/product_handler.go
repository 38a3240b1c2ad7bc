package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"estoquerapido/internal/model"
	"estoquerapido/internal/service"
	"estoquerapido/pkg/apierror"
)

// maxImageBytes caps product image uploads at 8 MiB.
const maxImageBytes = 8 << 20

type ProductHandler struct {
	service *service.ProductService
}

func NewProductHandler(service *service.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	companyID, err := companyScope(r)
	if err != nil {
		writeError(w, err)
		return
	}

	products, err := h.service.List(r.Context(), companyID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, products, nil)
}

func (h *ProductHandler) LowStock(w http.ResponseWriter, r *http.Request) {
	companyID, err := companyScope(r)
	if err != nil {
		writeError(w, err)
		return
	}

	products, err := h.service.LowStock(r.Context(), companyID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, products, nil)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.ProductPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	op, err := operationContext(r)
	if err != nil {
		writeError(w, err)
		return
	}

	product, err := h.service.Create(r.Context(), op, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, product, nil)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	companyID, err := companyScope(r)
	if err != nil {
		writeError(w, err)
		return
	}

	product, err := h.service.Get(r.Context(), companyID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, product, nil)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.ProductPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	op, err := operationContext(r)
	if err != nil {
		writeError(w, err)
		return
	}

	product, err := h.service.Update(r.Context(), op, chi.URLParam(r, "id"), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, product, nil)
}

// UploadImage accepts a multipart form with a "file" field and attaches it as
// the product image.
func (h *ProductHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	r.Body = http.MaxBytesReader(w, r.Body, maxImageBytes)
	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid or oversized multipart body", "", http.StatusBadRequest))
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "file field is required", "file", http.StatusBadRequest))
		return
	}
	defer file.Close()

	op, err := operationContext(r)
	if err != nil {
		writeError(w, err)
		return
	}

	product, err := h.service.AttachImage(r.Context(), op, chi.URLParam(r, "id"), file)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, product, nil)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	lifecycleAction(w, r, h.service.SoftDelete)
}

func (h *ProductHandler) Archive(w http.ResponseWriter, r *http.Request) {
	lifecycleAction(w, r, h.service.Archive)
}

func (h *ProductHandler) Restore(w http.ResponseWriter, r *http.Request) {
	lifecycleAction(w, r, h.service.Restore)
}

func (h *ProductHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	lifecycleAction(w, r, h.service.Deactivate)
}

func (h *ProductHandler) Activate(w http.ResponseWriter, r *http.Request) {
	lifecycleAction(w, r, h.service.Activate)
}
