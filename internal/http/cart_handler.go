package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/micJ-r/ecommerce-app/internal/cart"
	"github.com/micJ-r/ecommerce-app/internal/domain"
	"github.com/micJ-r/ecommerce-app/internal/pricing"
	"github.com/micJ-r/ecommerce-app/internal/repository"
)

// CartHandler exposes the authenticated user's basket. Prices shown here are
// add-time snapshots; checkout re-resolves them server-side.
type CartHandler struct {
	store   cart.Store
	catalog Catalog
}

func NewCartHandler(store cart.Store, catalog Catalog) *CartHandler {
	return &CartHandler{store: store, catalog: catalog}
}

type cartView struct {
	Items []domain.CartItem `json:"items"`
	Count int               `json:"count"`
	Total string            `json:"total"` // two decimal places
}

func (h *CartHandler) respondCart(w http.ResponseWriter, status int, b *cart.Basket) {
	items := b.Items()
	if items == nil {
		items = []domain.CartItem{}
	}
	respondJSON(w, status, map[string]any{
		"success": true,
		"cart": cartView{
			Items: items,
			Count: b.Count(),
			Total: pricing.Format(b.Total()),
		},
	})
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	b := cart.Open(r.Context(), h.store, user.ID)
	h.respondCart(w, http.StatusOK, b)
}

type addCartItemRequest struct {
	ProductID string `json:"productId"`
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var req addCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	product, err := h.catalog.GetProduct(r.Context(), productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "Product not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to add to cart")
		return
	}

	b := cart.Open(r.Context(), h.store, user.ID)
	if err := b.Add(r.Context(), *product); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to add to cart")
		return
	}
	h.respondCart(w, http.StatusCreated, b)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	productID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "productId"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	// removing a product that is not in the cart is a no-op, not an error
	b := cart.Open(r.Context(), h.store, user.ID)
	if err := b.Remove(r.Context(), productID); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update cart")
		return
	}
	h.respondCart(w, http.StatusOK, b)
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	b := cart.Open(r.Context(), h.store, user.ID)
	if err := b.Clear(r.Context()); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to clear cart")
		return
	}
	h.respondCart(w, http.StatusOK, b)
}
