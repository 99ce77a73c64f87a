package grpc

import (
	"context"

	"github.com/gomarketplace/cart-service/internal/domain/entity"
	"google.golang.org/grpc"
)

const (
	serviceName = "cartstore.v1.CartService"

	getCartMethod   = "/" + serviceName + "/GetCart"
	addToCartMethod = "/" + serviceName + "/AddToCart"
	incrementMethod = "/" + serviceName + "/Increment"
	decrementMethod = "/" + serviceName + "/Decrement"
	clearCartMethod = "/" + serviceName + "/ClearCart"
)

type GetCartRequest struct{}

type AddToCartRequest struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	ImageURL string  `json:"image_url"`
	Price    float64 `json:"price"`
}

type ItemRequest struct {
	ID string `json:"id"`
}

type ClearCartRequest struct{}

type ClearCartReply struct{}

type CartReply struct {
	Items   []entity.LineItem `json:"items"`
	Summary entity.Summary    `json:"summary"`
}

type CartServiceServer interface {
	GetCart(ctx context.Context, req *GetCartRequest) (*CartReply, error)
	AddToCart(ctx context.Context, req *AddToCartRequest) (*CartReply, error)
	Increment(ctx context.Context, req *ItemRequest) (*CartReply, error)
	Decrement(ctx context.Context, req *ItemRequest) (*CartReply, error)
	ClearCart(ctx context.Context, req *ClearCartRequest) (*ClearCartReply, error)
}

func RegisterCartServiceServer(s grpc.ServiceRegistrar, srv CartServiceServer) {
	s.RegisterService(&cartServiceDesc, srv)
}

var cartServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*CartServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetCart", Handler: getCartHandler},
		{MethodName: "AddToCart", Handler: addToCartHandler},
		{MethodName: "Increment", Handler: incrementHandler},
		{MethodName: "Decrement", Handler: decrementHandler},
		{MethodName: "ClearCart", Handler: clearCartHandler},
	},
	Streams: []grpc.StreamDesc{},
}

func getCartHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetCartRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CartServiceServer).GetCart(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: getCartMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CartServiceServer).GetCart(ctx, req.(*GetCartRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func addToCartHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(AddToCartRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CartServiceServer).AddToCart(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: addToCartMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CartServiceServer).AddToCart(ctx, req.(*AddToCartRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func incrementHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ItemRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CartServiceServer).Increment(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: incrementMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CartServiceServer).Increment(ctx, req.(*ItemRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func decrementHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ItemRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CartServiceServer).Decrement(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: decrementMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CartServiceServer).Decrement(ctx, req.(*ItemRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func clearCartHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ClearCartRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CartServiceServer).ClearCart(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: clearCartMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CartServiceServer).ClearCart(ctx, req.(*ClearCartRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// Client calls CartService over a connection using the JSON codec.
type Client struct {
	conn grpc.ClientConnInterface
}

func NewClient(conn grpc.ClientConnInterface) *Client {
	return &Client{conn: conn}
}

func (c *Client) invoke(ctx context.Context, method string, in, out interface{}, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(codecName)}, opts...)
	return c.conn.Invoke(ctx, method, in, out, opts...)
}

func (c *Client) GetCart(ctx context.Context, opts ...grpc.CallOption) (*CartReply, error) {
	out := new(CartReply)
	if err := c.invoke(ctx, getCartMethod, &GetCartRequest{}, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AddToCart(ctx context.Context, in *AddToCartRequest, opts ...grpc.CallOption) (*CartReply, error) {
	out := new(CartReply)
	if err := c.invoke(ctx, addToCartMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Increment(ctx context.Context, id string, opts ...grpc.CallOption) (*CartReply, error) {
	out := new(CartReply)
	if err := c.invoke(ctx, incrementMethod, &ItemRequest{ID: id}, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Decrement(ctx context.Context, id string, opts ...grpc.CallOption) (*CartReply, error) {
	out := new(CartReply)
	if err := c.invoke(ctx, decrementMethod, &ItemRequest{ID: id}, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ClearCart(ctx context.Context, opts ...grpc.CallOption) error {
	return c.invoke(ctx, clearCartMethod, &ClearCartRequest{}, &ClearCartReply{}, opts)
}
