package http

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/MKhiriev/warehouse-keeper/internal/service"
	"github.com/MKhiriev/warehouse-keeper/internal/utils"
	"github.com/MKhiriev/warehouse-keeper/models"
	"github.com/go-chi/chi/v5"
)

const (
	imageFormField   = "image"
	msgProductDelete = "Product deleted Successfully"
)

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, service.ErrNotAuthorized)
		return
	}

	req, image, err := h.readProductRequest(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer closeImage(image)

	product, err := h.services.ProductService.CreateProduct(r.Context(), userID, req, image)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, product, http.StatusCreated)
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, service.ErrNotAuthorized)
		return
	}

	products, err := h.services.ProductService.ListProducts(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, products, http.StatusOK)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, service.ErrNotAuthorized)
		return
	}

	product, err := h.services.ProductService.GetProduct(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, product, http.StatusOK)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, service.ErrNotAuthorized)
		return
	}

	req, image, err := h.readProductRequest(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer closeImage(image)

	product, err := h.services.ProductService.UpdateProduct(r.Context(), userID, chi.URLParam(r, "id"), req, image)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, product, http.StatusOK)
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, service.ErrNotAuthorized)
		return
	}

	if err := h.services.ProductService.DeleteProduct(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteMessage(w, msgProductDelete, http.StatusOK)
}

// readProductRequest accepts either a multipart form (with an optional
// "image" file) or a JSON body.
func (h *Handler) readProductRequest(w http.ResponseWriter, r *http.Request) (models.ProductRequest, *models.ImageUpload, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		var req models.ProductRequest
		if err := decodeJSON(r, &req); err != nil {
			return models.ProductRequest{}, nil, err
		}
		return req, nil, nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize+(1<<20))
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		return models.ProductRequest{}, nil, fmt.Errorf("%w: %w", ErrInvalidForm, err)
	}

	req := models.ProductRequest{
		Name:        r.FormValue("name"),
		SKU:         r.FormValue("sku"),
		Category:    r.FormValue("category"),
		Description: r.FormValue("description"),
	}

	var err error
	if req.Quantity, err = parseFormInt(r.FormValue("quantity")); err != nil {
		return models.ProductRequest{}, nil, err
	}
	if req.Price, err = parseFormFloat(r.FormValue("price")); err != nil {
		return models.ProductRequest{}, nil, err
	}

	file, header, err := r.FormFile(imageFormField)
	if errors.Is(err, http.ErrMissingFile) {
		return req, nil, nil
	}
	if err != nil {
		return models.ProductRequest{}, nil, fmt.Errorf("%w: %w", ErrInvalidForm, err)
	}

	return req, &models.ImageUpload{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Content:     file,
	}, nil
}

func closeImage(image *models.ImageUpload) {
	if image == nil {
		return
	}
	if closer, ok := image.Content.(io.Closer); ok {
		closer.Close()
	}
}

// parseFormInt treats an empty field as zero.
func parseFormInt(value string) (int64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidNumber, err)
	}
	return n, nil
}

func parseFormFloat(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidNumber, err)
	}
	return f, nil
}
