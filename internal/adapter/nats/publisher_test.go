package nats

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gomarketplace/cart-service/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockMessagePublisher struct {
	mock.Mock
}

func (m *MockMessagePublisher) Publish(ctx context.Context, subject string, message interface{}) error {
	args := m.Called(ctx, subject, message)
	return args.Error(0)
}

func (m *MockMessagePublisher) PublishRaw(ctx context.Context, subject string, data []byte) error {
	args := m.Called(ctx, subject, data)
	return args.Error(0)
}

func TestCartEventPublisher_PublishCartUpdated(t *testing.T) {
	mockPublisher := new(MockMessagePublisher)
	publisher := NewCartEventPublisher(mockPublisher, "cart.updated")
	event := entity.CartEvent{
		EventID:    "evt-1",
		Operation:  entity.OperationAddToCart,
		Items:      []entity.LineItem{{ID: "A", Quantity: 1}},
		OccurredAt: time.Now().UTC(),
	}

	mockPublisher.On("Publish", mock.Anything, "cart.updated", event).Return(nil).Once()

	err := publisher.PublishCartUpdated(context.Background(), event)

	assert.NoError(t, err)
	mockPublisher.AssertExpectations(t)
}

func TestCartEventPublisher_PropagatesError(t *testing.T) {
	mockPublisher := new(MockMessagePublisher)
	publisher := NewCartEventPublisher(mockPublisher, "cart.updated")
	publishErr := errors.New("nats: connection closed")

	mockPublisher.On("Publish", mock.Anything, "cart.updated", mock.AnythingOfType("entity.CartEvent")).Return(publishErr).Once()

	err := publisher.PublishCartUpdated(context.Background(), entity.CartEvent{Operation: entity.OperationClear})

	assert.ErrorIs(t, err, publishErr)
	mockPublisher.AssertExpectations(t)
}

func TestNewNATSPublisher_NilConnection(t *testing.T) {
	_, err := NewNATSPublisher(nil)

	assert.Error(t, err)
}
