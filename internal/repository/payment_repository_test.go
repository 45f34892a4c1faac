package repository

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/seeforge-backend/internal/models"
)

func setupMiniredis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func testPaymentOrderRepository(t *testing.T, repo PaymentOrderRepository) {
	ctx := context.Background()

	order := &models.PaymentOrder{Amount: 5525, UserID: "user-a", ProjectID: "p1"}
	require.NoError(t, repo.Create(ctx, order))

	assert.True(t, strings.HasPrefix(order.OrderID, "order_"))
	assert.Equal(t, "INR", order.Currency)
	assert.Equal(t, models.PaymentOrderCreated, order.Status)

	got, err := repo.Get(ctx, order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, 5525.0, got.Amount)
	assert.Equal(t, "p1", got.ProjectID)

	paid, err := repo.MarkPaid(ctx, order.OrderID, "pay_123")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentOrderPaid, paid.Status)
	assert.Equal(t, "pay_123", paid.PaymentID)

	got, err = repo.Get(ctx, order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentOrderPaid, got.Status)

	_, err = repo.Get(ctx, "order_missing")
	assert.ErrorIs(t, err, ErrPaymentOrderNotFound)
	_, err = repo.MarkPaid(ctx, "order_missing", "pay_1")
	assert.ErrorIs(t, err, ErrPaymentOrderNotFound)
}

func TestRedisPaymentOrderRepository(t *testing.T) {
	_, client := setupMiniredis(t)
	testPaymentOrderRepository(t, NewRedisPaymentOrderRepository(client))
}

func TestRedisPaymentOrderRepository_TTL(t *testing.T) {
	mr, client := setupMiniredis(t)
	repo := NewRedisPaymentOrderRepository(client)
	ctx := context.Background()

	order := &models.PaymentOrder{Amount: 3000, UserID: "u"}
	require.NoError(t, repo.Create(ctx, order))

	key := paymentOrderKey(order.OrderID)
	assert.Equal(t, paymentOrderTTL, mr.TTL(key))

	mr.FastForward(time.Hour)
	_, err := repo.MarkPaid(ctx, order.OrderID, "pay_1")
	require.NoError(t, err)
	assert.Equal(t, paymentOrderTTL-time.Hour, mr.TTL(key))

	mr.FastForward(paymentOrderTTL)
	_, err = repo.Get(ctx, order.OrderID)
	assert.ErrorIs(t, err, ErrPaymentOrderNotFound)
}

func TestMemoryPaymentOrderRepository(t *testing.T) {
	testPaymentOrderRepository(t, NewMemoryPaymentOrderRepository())
}

func TestMemoryPaymentOrderRepository_Expiry(t *testing.T) {
	repo := NewMemoryPaymentOrderRepository()
	ctx := context.Background()

	order := &models.PaymentOrder{Amount: 100, UserID: "u"}
	require.NoError(t, repo.Create(ctx, order))

	repo.now = func() time.Time { return time.Now().Add(paymentOrderTTL + time.Minute) }
	_, err := repo.Get(ctx, order.OrderID)
	assert.ErrorIs(t, err, ErrPaymentOrderNotFound)
}
