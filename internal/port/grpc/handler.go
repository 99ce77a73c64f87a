package grpc

import (
	"context"
	"errors"

	"github.com/gomarketplace/cart-service/internal/domain/entity"
	"github.com/gomarketplace/cart-service/internal/platform/logger"
	"github.com/gomarketplace/cart-service/internal/service"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type Handler struct {
	store service.CartStore
	log   logger.Logger
}

func NewHandler(store service.CartStore, log logger.Logger) *Handler {
	return &Handler{
		store: store,
		log:   log,
	}
}

func (h *Handler) GetCart(ctx context.Context, _ *GetCartRequest) (*CartReply, error) {
	cart, err := h.store.Cart(ctx)
	if err != nil {
		return nil, h.toStatus(err)
	}
	return toReply(cart), nil
}

func (h *Handler) AddToCart(ctx context.Context, req *AddToCartRequest) (*CartReply, error) {
	cart, err := h.store.AddToCart(ctx, entity.Product{
		ID:       req.ID,
		Title:    req.Title,
		ImageURL: req.ImageURL,
		Price:    req.Price,
	})
	if err != nil {
		return nil, h.toStatus(err)
	}
	return toReply(cart), nil
}

func (h *Handler) Increment(ctx context.Context, req *ItemRequest) (*CartReply, error) {
	cart, err := h.store.Increment(ctx, req.ID)
	if err != nil {
		return nil, h.toStatus(err)
	}
	return toReply(cart), nil
}

func (h *Handler) Decrement(ctx context.Context, req *ItemRequest) (*CartReply, error) {
	cart, err := h.store.Decrement(ctx, req.ID)
	if err != nil {
		return nil, h.toStatus(err)
	}
	return toReply(cart), nil
}

func (h *Handler) ClearCart(ctx context.Context, _ *ClearCartRequest) (*ClearCartReply, error) {
	if err := h.store.Clear(ctx); err != nil {
		return nil, h.toStatus(err)
	}
	return &ClearCartReply{}, nil
}

func (h *Handler) toStatus(err error) error {
	switch {
	case errors.Is(err, entity.ErrInvalidItem):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, service.ErrNotLoaded):
		return status.Error(codes.Unavailable, err.Error())
	default:
		h.log.Errorf("Cart RPC failed: %v", err)
		return status.Error(codes.Internal, "internal error")
	}
}

func toReply(cart *entity.Cart) *CartReply {
	return &CartReply{Items: cart.Items, Summary: cart.Summary()}
}
