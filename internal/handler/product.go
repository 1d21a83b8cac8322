package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/msomdec/product-catalog/internal/domain"
	"github.com/msomdec/product-catalog/internal/service"
)

const msgProductNotFound = "Product not found"

// ProductHandler serves the product catalog endpoints.
type ProductHandler struct {
	products *service.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(products *service.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// HandleCreate adds a product.
// POST /api/products
// Response: 201 {"message":"Product added successfully","newProduct":{...}}
func (h *ProductHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	p, err := h.products.Create(r.Context(), req.Name, req.Price, req.Description)
	if err != nil {
		slog.Error("create product", "error", err)
		writeError(w, http.StatusInternalServerError, "Error adding product")
		return
	}

	writeJSON(w, http.StatusCreated, createProductResponse{
		Message:    "Product added successfully",
		NewProduct: toProductDTO(p),
	})
}

// HandleList returns every product as a JSON array.
// GET /api/products
func (h *ProductHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context())
	if err != nil {
		slog.Error("list products", "error", err)
		writeError(w, http.StatusInternalServerError, "Error fetching products")
		return
	}

	writeJSON(w, http.StatusOK, toProductDTOs(products))
}

// HandleGet returns one product.
// GET /api/products/{id}
func (h *ProductHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	p, err := h.products.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, msgProductNotFound)
			return
		}
		slog.Error("get product", "error", err)
		writeError(w, http.StatusInternalServerError, "Error fetching product")
		return
	}

	writeJSON(w, http.StatusOK, toProductDTO(p))
}

// HandleUpdate applies a partial update.
// PUT /api/products/{id}
// Response: {"message":"Product updated successfully","updatedProduct":{...}}, 404 if absent
func (h *ProductHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateProductRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	p, err := h.products.Update(r.Context(), chi.URLParam(r, "id"), req.toPatch())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, msgProductNotFound)
			return
		}
		slog.Error("update product", "error", err)
		writeError(w, http.StatusInternalServerError, "Error updating product")
		return
	}

	writeJSON(w, http.StatusOK, updateProductResponse{
		Message:        "Product updated successfully",
		UpdatedProduct: toProductDTO(p),
	})
}

// HandleDelete removes a product. Deleting an absent product still succeeds.
// DELETE /api/products/{id}
func (h *ProductHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.products.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		slog.Error("delete product", "error", err)
		writeError(w, http.StatusInternalServerError, "Error deleting product")
		return
	}

	writeMessage(w, http.StatusOK, "Product deleted successfully")
}
