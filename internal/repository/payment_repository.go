package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/ignatzorin/seeforge-backend/internal/models"
)

const (
	paymentOrderKeyPrefix = "seeforge:payment:order:" // seeforge:payment:order:{order_id}
	paymentOrderTTL       = 24 * time.Hour
)

// PaymentOrderRepository хранит тестовые платёжные заказы.
type PaymentOrderRepository interface {
	Create(ctx context.Context, order *models.PaymentOrder) error
	Get(ctx context.Context, orderID string) (*models.PaymentOrder, error)
	MarkPaid(ctx context.Context, orderID, paymentID string) (*models.PaymentOrder, error)
}

// RedisPaymentOrderRepository хранит заказы в Redis как JSON с TTL.
type RedisPaymentOrderRepository struct {
	client *redis.Client
}

// NewRedisPaymentOrderRepository создаёт новый экземпляр.
func NewRedisPaymentOrderRepository(client *redis.Client) *RedisPaymentOrderRepository {
	return &RedisPaymentOrderRepository{client: client}
}

func (r *RedisPaymentOrderRepository) Create(ctx context.Context, order *models.PaymentOrder) error {
	preparePaymentOrder(order)

	data, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("payment repository: marshal %w", err)
	}
	if err := r.client.Set(ctx, paymentOrderKey(order.OrderID), data, paymentOrderTTL).Err(); err != nil {
		return fmt.Errorf("payment repository: set %w", err)
	}
	return nil
}

func (r *RedisPaymentOrderRepository) Get(ctx context.Context, orderID string) (*models.PaymentOrder, error) {
	data, err := r.client.Get(ctx, paymentOrderKey(orderID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrPaymentOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("payment repository: get %w", err)
	}

	var order models.PaymentOrder
	if err := json.Unmarshal(data, &order); err != nil {
		return nil, fmt.Errorf("payment repository: unmarshal %w", err)
	}
	return &order, nil
}

// MarkPaid переводит заказ в статус paid, сохраняя оставшийся TTL.
func (r *RedisPaymentOrderRepository) MarkPaid(ctx context.Context, orderID, paymentID string) (*models.PaymentOrder, error) {
	order, err := r.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	order.Status = models.PaymentOrderPaid
	order.PaymentID = paymentID

	data, err := json.Marshal(order)
	if err != nil {
		return nil, fmt.Errorf("payment repository: marshal %w", err)
	}
	if err := r.client.Set(ctx, paymentOrderKey(orderID), data, redis.KeepTTL).Err(); err != nil {
		return nil, fmt.Errorf("payment repository: set %w", err)
	}
	return order, nil
}

func paymentOrderKey(orderID string) string {
	return paymentOrderKeyPrefix + orderID
}

// MemoryPaymentOrderRepository используется, когда Redis не настроен.
type MemoryPaymentOrderRepository struct {
	mu     sync.Mutex
	orders map[string]models.PaymentOrder
	now    func() time.Time
}

// NewMemoryPaymentOrderRepository создаёт новый экземпляр.
func NewMemoryPaymentOrderRepository() *MemoryPaymentOrderRepository {
	return &MemoryPaymentOrderRepository{
		orders: make(map[string]models.PaymentOrder),
		now:    time.Now,
	}
}

func (r *MemoryPaymentOrderRepository) Create(_ context.Context, order *models.PaymentOrder) error {
	preparePaymentOrder(order)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.evictExpired()
	r.orders[order.OrderID] = *order
	return nil
}

func (r *MemoryPaymentOrderRepository) Get(_ context.Context, orderID string) (*models.PaymentOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.evictExpired()

	order, ok := r.orders[orderID]
	if !ok {
		return nil, ErrPaymentOrderNotFound
	}
	return &order, nil
}

func (r *MemoryPaymentOrderRepository) MarkPaid(_ context.Context, orderID, paymentID string) (*models.PaymentOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.evictExpired()

	order, ok := r.orders[orderID]
	if !ok {
		return nil, ErrPaymentOrderNotFound
	}
	order.Status = models.PaymentOrderPaid
	order.PaymentID = paymentID
	r.orders[orderID] = order
	return &order, nil
}

func (r *MemoryPaymentOrderRepository) evictExpired() {
	cutoff := r.now().Add(-paymentOrderTTL)
	for id, order := range r.orders {
		if order.CreatedAt.Before(cutoff) {
			delete(r.orders, id)
		}
	}
}

func preparePaymentOrder(order *models.PaymentOrder) {
	if order.OrderID == "" {
		order.OrderID = "order_" + uuid.NewString()
	}
	if order.Currency == "" {
		order.Currency = "INR"
	}
	if order.Status == "" {
		order.Status = models.PaymentOrderCreated
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	}
}
