package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/micJ-r/ecommerce-app/internal/domain"
	"github.com/micJ-r/ecommerce-app/internal/repository"
	"github.com/micJ-r/ecommerce-app/internal/service"
)

// Orders is the order surface the handlers need; *service.OrderService
// satisfies it.
type Orders interface {
	PlaceOrder(ctx context.Context, customer *domain.User, in service.PlaceOrderInput) (*domain.Order, error)
	Get(ctx context.Context, id primitive.ObjectID, requester *domain.User) (*domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	ListMine(ctx context.Context, requester *domain.User) ([]domain.Order, error)
	Pay(ctx context.Context, id primitive.ObjectID, requester *domain.User, result domain.PaymentResult) (*domain.Order, error)
	Deliver(ctx context.Context, id primitive.ObjectID) (*domain.Order, error)
	Transition(ctx context.Context, id primitive.ObjectID, to domain.Status) (*domain.Order, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type OrderHandler struct {
	orders Orders
}

func NewOrderHandler(orders Orders) *OrderHandler {
	return &OrderHandler{orders: orders}
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var in service.PlaceOrderInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "No valid products provided.")
		return
	}

	order, err := h.orders.PlaceOrder(r.Context(), user, in)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRequest):
			respondError(w, http.StatusBadRequest, "No valid products provided.")
		case errors.Is(err, repository.ErrProductNotFound):
			respondError(w, http.StatusNotFound, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "Failed to create order.")
		}
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{"success": true, "order": order})
}

func (h *OrderHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListAll(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Server error fetching orders.")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "orders": orders})
}

func (h *OrderHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	orders, err := h.orders.ListMine(r.Context(), user)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Server error fetching your orders.")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "orders": orders})
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	order, err := h.orders.Get(r.Context(), id, user)
	if err != nil {
		h.respondOrderError(w, err, "Server error fetching order.")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "order": order})
}

type payRequest struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	UpdateTime string `json:"update_time"`
	Payer      struct {
		EmailAddress string `json:"email_address"`
	} `json:"payer"`
}

func (h *OrderHandler) Pay(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	var req payRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	order, err := h.orders.Pay(r.Context(), id, user, domain.PaymentResult{
		ID:           req.ID,
		Status:       req.Status,
		UpdateTime:   req.UpdateTime,
		EmailAddress: req.Payer.EmailAddress,
	})
	if err != nil {
		h.respondOrderError(w, err, "Server error updating order.")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "order": order})
}

func (h *OrderHandler) Deliver(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	order, err := h.orders.Deliver(r.Context(), id)
	if err != nil {
		h.respondOrderError(w, err, "Server error updating order.")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "order": order})
}

type statusRequest struct {
	Status domain.Status `json:"status"`
}

func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	order, err := h.orders.Transition(r.Context(), id, req.Status)
	if err != nil {
		if errors.Is(err, service.ErrInvalidTransition) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.respondOrderError(w, err, "Server error updating order.")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "order": order})
}

func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	if err := h.orders.Delete(r.Context(), id); err != nil {
		h.respondOrderError(w, err, "Server error deleting order.")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Order removed"})
}

func (h *OrderHandler) respondOrderError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, repository.ErrOrderNotFound):
		respondError(w, http.StatusNotFound, "Order not found")
	case errors.Is(err, service.ErrUnauthorized):
		respondError(w, http.StatusUnauthorized, "Not authorized to view this order")
	default:
		respondError(w, http.StatusInternalServerError, fallback)
	}
}
