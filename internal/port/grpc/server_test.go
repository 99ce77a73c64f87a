package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/gomarketplace/cart-service/internal/adapter/memory"
	"github.com/gomarketplace/cart-service/internal/platform/logger"
	"github.com/gomarketplace/cart-service/internal/platform/metrics"
	"github.com/gomarketplace/cart-service/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

func startTestServer(t *testing.T, store service.CartStore) *Client {
	t.Helper()
	log := logger.NewNop()
	lis := bufconn.Listen(1 << 20)

	srv := NewServer(log, metrics.NewMetricsManager("test"), "0", time.Second, 0, NewHandler(store, log))
	go func() {
		_ = srv.Serve(lis)
	}()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Stop(ctx)
	})

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return NewClient(conn)
}

func loadedStore(t *testing.T) service.CartStore {
	t.Helper()
	store := service.NewCartStore(memory.NewCartSnapshotRepository(), nil, logger.NewNop(), nil, service.CartStoreConfig{})
	require.NoError(t, store.Load(context.Background()))
	return store
}

func TestCartService_Lifecycle(t *testing.T) {
	client := startTestServer(t, loadedStore(t))
	ctx := context.Background()

	reply, err := client.AddToCart(ctx, &AddToCartRequest{ID: "A", Title: "Mug", ImageURL: "https://img/mug.png", Price: 12.5})
	require.NoError(t, err)
	require.Len(t, reply.Items, 1)
	assert.Equal(t, 1, reply.Items[0].Quantity)

	reply, err = client.AddToCart(ctx, &AddToCartRequest{ID: "A"})
	require.NoError(t, err)
	require.Len(t, reply.Items, 1)
	assert.Equal(t, 2, reply.Items[0].Quantity)
	assert.Equal(t, "Mug", reply.Items[0].Title)

	reply, err = client.Decrement(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, 1, reply.Items[0].Quantity)

	reply, err = client.Increment(ctx, "missing")
	require.NoError(t, err)
	assert.Len(t, reply.Items, 1)

	reply, err = client.Decrement(ctx, "A")
	require.NoError(t, err)
	assert.Empty(t, reply.Items)

	reply, err = client.GetCart(ctx)
	require.NoError(t, err)
	assert.Empty(t, reply.Items)
	assert.Equal(t, 0, reply.Summary.ItemCount)
}

func TestCartService_Clear(t *testing.T) {
	client := startTestServer(t, loadedStore(t))
	ctx := context.Background()

	_, err := client.AddToCart(ctx, &AddToCartRequest{ID: "A", Price: 2})
	require.NoError(t, err)

	require.NoError(t, client.ClearCart(ctx))

	reply, err := client.GetCart(ctx)
	require.NoError(t, err)
	assert.Empty(t, reply.Items)
}

func TestCartService_ErrorCodes(t *testing.T) {
	ctx := context.Background()

	client := startTestServer(t, loadedStore(t))
	_, err := client.AddToCart(ctx, &AddToCartRequest{Title: "no id"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	unloaded := service.NewCartStore(memory.NewCartSnapshotRepository(), nil, logger.NewNop(), nil, service.CartStoreConfig{})
	client = startTestServer(t, unloaded)
	_, err = client.GetCart(ctx)
	assert.Equal(t, codes.Unavailable, status.Code(err))
}
