package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gomarketplace/cart-service/internal/domain/entity"
	"github.com/gomarketplace/cart-service/internal/platform/logger"
	"github.com/gomarketplace/cart-service/internal/service"
)

type CartResponse struct {
	Items   []entity.LineItem `json:"items"`
	Summary entity.Summary    `json:"summary"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type CartHandler struct {
	store service.CartStore
	log   logger.Logger
}

func NewCartHandler(store service.CartStore, log logger.Logger) *CartHandler {
	return &CartHandler{
		store: store,
		log:   log,
	}
}

func (h *CartHandler) HandleGetCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.store.Cart(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeCart(w, http.StatusOK, cart)
}

func (h *CartHandler) HandleAddToCart(w http.ResponseWriter, r *http.Request) {
	var product entity.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		h.log.Warnf("Failed to decode add-to-cart request: %v", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	cart, err := h.store.AddToCart(r.Context(), product)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeCart(w, http.StatusOK, cart)
}

func (h *CartHandler) HandleIncrement(w http.ResponseWriter, r *http.Request) {
	cart, err := h.store.Increment(r.Context(), chi.URLParam(r, "itemId"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeCart(w, http.StatusOK, cart)
}

func (h *CartHandler) HandleDecrement(w http.ResponseWriter, r *http.Request) {
	cart, err := h.store.Decrement(r.Context(), chi.URLParam(r, "itemId"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeCart(w, http.StatusOK, cart)
}

func (h *CartHandler) HandleClearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Clear(r.Context()); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CartHandler) writeCart(w http.ResponseWriter, status int, cart *entity.Cart) {
	writeJSON(w, status, CartResponse{Items: cart.Items, Summary: cart.Summary()})
}

func (h *CartHandler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrInvalidItem):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrNotLoaded):
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
	default:
		h.log.Errorf("Cart request failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
