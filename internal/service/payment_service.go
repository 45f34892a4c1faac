package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/seeforge-backend/internal/logger"
	"github.com/ignatzorin/seeforge-backend/internal/models"
	"github.com/ignatzorin/seeforge-backend/internal/repository"
)

const PaymentVerified = "verified"

// PaymentService тестовый платёжный сценарий без обращения к шлюзу.
type PaymentService struct {
	orders   repository.PaymentOrderRepository
	projects repository.ProjectRepository
}

func NewPaymentService(orders repository.PaymentOrderRepository, projects repository.ProjectRepository) *PaymentService {
	return &PaymentService{orders: orders, projects: projects}
}

// CreateOrder открывает заказ. Если сумма не указана, берётся стоимость проекта пользователя.
func (s *PaymentService) CreateOrder(ctx context.Context, userID string, amount float64, currency, projectID string) (*models.PaymentOrder, error) {
	if amount == 0 && projectID != "" {
		project, err := s.projects.GetByIDAndUser(ctx, projectID, userID)
		if err != nil {
			return nil, storageError(err)
		}
		amount = project.EstimatedCost
	}

	order := &models.PaymentOrder{
		Amount:    amount,
		Currency:  currency,
		ProjectID: projectID,
		UserID:    userID,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, storageError(err)
	}

	logger.Log.WithFields(logrus.Fields{
		"order_id": order.OrderID,
		"user_id":  userID,
		"amount":   order.Amount,
	}).Info("payment service: заказ создан")

	return order, nil
}

// Verify всегда подтверждает оплату. Известный заказ помечается оплаченным.
func (s *PaymentService) Verify(ctx context.Context, userID, orderID, paymentID string) (string, error) {
	if orderID == "" {
		return PaymentVerified, nil
	}

	_, err := s.orders.MarkPaid(ctx, orderID, paymentID)
	switch {
	case errors.Is(err, repository.ErrPaymentOrderNotFound):
		logger.Log.WithFields(logrus.Fields{"order_id": orderID, "user_id": userID}).Debug("payment service: заказ не найден, подтверждаем без изменения")
	case err != nil:
		return "", storageError(err)
	}
	return PaymentVerified, nil
}
