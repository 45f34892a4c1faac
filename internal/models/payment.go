package models

import "time"

// Статусы тестового платёжного заказа.
const (
	PaymentOrderCreated = "created"
	PaymentOrderPaid    = "paid"
)

// PaymentOrder тестовый заказ на оплату проекта. Реальный платёжный шлюз не вызывается.
type PaymentOrder struct {
	OrderID   string    `json:"order_id"`
	Amount    float64   `json:"amount"`
	Currency  string    `json:"currency"`
	ProjectID string    `json:"project_id,omitempty"`
	UserID    string    `json:"user_id"`
	Status    string    `json:"status"`
	PaymentID string    `json:"payment_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
